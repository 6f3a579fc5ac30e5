// Package timeclock contains the pure business rules for time entry
// operations. Guards are pure functions that evaluate preconditions
// without side effects.
package timeclock

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func allowed() GuardResult {
	return GuardResult{Allowed: true}
}

func denied(reason string) GuardResult {
	return GuardResult{Allowed: false, Reason: reason}
}

// StartContext provides context for timer start guards.
type StartContext struct {
	WorkerID     string
	TaskType     string // "productive" or "support"
	LineItemID   string // empty if not specified
	HasOpenTimer bool
}

// ManualEntryContext provides context for backdated entry guards.
type ManualEntryContext struct {
	TaskType      string
	LineItemID    string
	DurationHours float64
}

// CanStart evaluates whether a timer can be started.
// Rules:
// - Worker must not already be running a timer
// - Task type must be productive or support
// - Productive work is tied to a line item; support work is not
func CanStart(ctx StartContext) GuardResult {
	if ctx.HasOpenTimer {
		return denied(fmt.Sprintf("worker %s already has an active timer (stop the active timer first)", ctx.WorkerID))
	}
	return checkClassification(ctx.TaskType, ctx.LineItemID)
}

// CanAddManualEntry evaluates whether a backdated entry can be recorded.
// Rules:
// - Duration must be positive
// - Same classification rules as CanStart
func CanAddManualEntry(ctx ManualEntryContext) GuardResult {
	if ctx.DurationHours <= 0 {
		return denied(fmt.Sprintf("manual entry duration must be positive, got %.4f hours", ctx.DurationHours))
	}
	return checkClassification(ctx.TaskType, ctx.LineItemID)
}

func checkClassification(taskType, lineItemID string) GuardResult {
	switch taskType {
	case "productive":
		if lineItemID == "" {
			return denied("productive entries require a line item")
		}
	case "support":
		if lineItemID != "" {
			return denied("support entries are not tied to a line item")
		}
	default:
		return denied(fmt.Sprintf("unknown task type %q (must be productive or support)", taskType))
	}
	return allowed()
}
