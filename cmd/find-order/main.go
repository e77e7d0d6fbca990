package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/backend"
	"github.com/farmience/orderdesk/internal/config"
	"github.com/farmience/orderdesk/internal/domain"
	"github.com/farmience/orderdesk/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: find-order <id-or-display-number>")
		os.Exit(1)
	}
	key := os.Args[1]

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

	entity, err := feed.FindByIDOrNumber(context.Background(), key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(entity, "", "  ")
	fmt.Println(string(out))

	timeline := []domain.TimelineEvent{
		{Status: domain.StatusQuoteRequested, At: entity.CreatedAt},
		{Status: entity.Status, At: entity.UpdatedAt},
	}
	if entity.SourceKind == domain.SourceOrder {
		timeline[0].Status = domain.StatusPaymentPending
	}

	fmt.Println("\nProgress:")
	for _, stage := range domain.ProjectProgress(entity.Status, timeline) {
		marker := " "
		switch stage.State {
		case domain.StageCompleted:
			marker = "✓"
		case domain.StageCurrent:
			marker = "▶"
		case domain.StageRejected:
			marker = "✗"
		}
		fmt.Printf("  %s %s\n", marker, stage.Stage)
	}
}
