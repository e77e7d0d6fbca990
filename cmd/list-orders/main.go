package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/backend"
	"github.com/farmience/orderdesk/internal/config"
	"github.com/farmience/orderdesk/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	store := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.ServiceKey, logger)
	feed := service.NewFeedService(store, logger)

	fmt.Println("📋 Unified order/quotation feed:")

	unified, err := feed.ListUnified(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list feed: %v\n", err)
		os.Exit(1)
	}

	for _, e := range unified {
		quoted := ""
		if e.QuotedTotal != nil {
			quoted = fmt.Sprintf(" (quoted %.2f)", *e.QuotedTotal)
		}
		fmt.Printf("  %-14s %-9s %-15s %8.2f %s%s  turn=%s  updated=%s\n",
			e.DisplayNumber,
			e.SourceKind,
			e.Status,
			e.TotalAmount,
			e.Currency,
			quoted,
			e.Turn(),
			e.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	fmt.Printf("\nTotal: %d entities\n", len(unified))
}
