package services

import (
	"context"
	"fmt"

	"travelmap/internal/domain"
	"travelmap/internal/utils"
)

// Event reports the outcome of one session operation.
type Event struct {
	Key     domain.PlanKey
	Action  string
	Version uint64
	Err     error
}

// Notifier is the side channel every mutation outcome is reported on.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// LogNotifier writes events to the standard log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, e Event) {
	reqID := utils.RequestIDFrom(ctx)
	if e.Err != nil {
		utils.LogEvent(reqID, "trip", e.Action+"_error", fmt.Sprintf("plan=%s error=%v", e.Key, e.Err))
		return
	}
	utils.LogEvent(reqID, "trip", e.Action, fmt.Sprintf("plan=%s version=%d", e.Key, e.Version))
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, e Event)

func (f NotifierFunc) Notify(ctx context.Context, e Event) { f(ctx, e) }
