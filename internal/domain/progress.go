package domain

import "time"

// Stage is a coarse checkpoint in the unified lifecycle, used for stepper
// visualization. Several fine-grained statuses collapse onto one stage.
type Stage = UnifiedStatus

// StageSequence is the fixed, ordered stepper track. Index order is
// meaningful and must not change.
var StageSequence = []Stage{
	StatusQuoteRequested,
	StatusQuoteSent,
	StatusNegotiation,
	StatusOrderBooked,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
}

// stageCollapse folds statuses that are not themselves stages onto the
// stage they render at.
var stageCollapse = map[UnifiedStatus]Stage{
	StatusConfirmed:            StatusOrderBooked,
	StatusPaymentPending:       StatusOrderBooked,
	StatusPaid:                 StatusOrderBooked,
	UnifiedStatus("packed"):    StatusProcessing,
	UnifiedStatus("completed"): StatusDelivered,
}

// rejectionStatuses never appear on the track; they short-circuit it.
var rejectionStatuses = map[UnifiedStatus]bool{
	StatusCancelled:           true,
	StatusRejected:            true,
	UnifiedStatus("returned"): true,
	UnifiedStatus("refunded"): true,
}

// StageState classifies one stage of the stepper.
type StageState string

const (
	StageCompleted StageState = "completed"
	StageCurrent   StageState = "current"
	StagePending   StageState = "pending"
	StageRejected  StageState = "rejected"
)

// StageView is one rendered step: the stage, its state, and the earliest
// timeline timestamp that matched it, when one exists.
type StageView struct {
	Stage Stage      `json:"stage"`
	State StageState `json:"state"`
	At    *time.Time `json:"at,omitempty"`
}

// TimelineEvent is one historical status change of an entity.
type TimelineEvent struct {
	Status UnifiedStatus `json:"status"`
	At     time.Time     `json:"at"`
}

// stageIndex resolves a status to its position on the track, applying the
// collapse table. Returns -1 for statuses that never render on the track.
func stageIndex(status UnifiedStatus) int {
	if folded, ok := stageCollapse[status]; ok {
		status = folded
	}
	for i, stage := range StageSequence {
		if stage == status {
			return i
		}
	}
	return -1
}

// stageTimestamps finds, per stage, the earliest timeline event that folds
// onto it.
func stageTimestamps(timeline []TimelineEvent) map[Stage]*time.Time {
	at := make(map[Stage]*time.Time, len(StageSequence))
	for _, ev := range timeline {
		if rejectionStatuses[ev.Status] {
			continue
		}
		idx := stageIndex(ev.Status)
		if idx < 0 {
			continue
		}
		stage := StageSequence[idx]
		if prev, ok := at[stage]; !ok || ev.At.Before(*prev) {
			t := ev.At
			at[stage] = &t
		}
	}
	return at
}

// ProjectProgress maps the current status and the entity's status timeline
// onto the stepper track.
//
// For a live entity, stages before the current one are completed, the
// current one is current, and the rest are pending. For a rejected or
// cancelled entity the track short-circuits: the last stage actually
// reached before the rejection is marked rejected and everything after it
// stays pending, so the stepper shows where the lifecycle died rather than
// pretending it finished.
func ProjectProgress(status UnifiedStatus, timeline []TimelineEvent) []StageView {
	stamps := stageTimestamps(timeline)

	if rejectionStatuses[status] {
		rejectedAt := 0
		for _, ev := range timeline {
			if rejectionStatuses[ev.Status] {
				continue
			}
			if idx := stageIndex(ev.Status); idx >= 0 {
				rejectedAt = idx
			}
		}
		return buildTrack(rejectedAt, StageRejected, stamps)
	}

	current := stageIndex(status)
	if current < 0 {
		// Status is off the track entirely; nothing has visibly started.
		return buildTrack(-1, StageCurrent, stamps)
	}
	return buildTrack(current, StageCurrent, stamps)
}

func buildTrack(pivot int, pivotState StageState, stamps map[Stage]*time.Time) []StageView {
	views := make([]StageView, len(StageSequence))
	for i, stage := range StageSequence {
		state := StagePending
		switch {
		case pivot >= 0 && i < pivot:
			state = StageCompleted
		case pivot >= 0 && i == pivot:
			state = pivotState
		}
		views[i] = StageView{Stage: stage, State: state, At: stamps[stage]}
	}
	return views
}
