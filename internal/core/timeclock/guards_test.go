package timeclock

import "testing"

func TestCanStart(t *testing.T) {
	tests := []struct {
		name        string
		ctx         StartContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name: "can start productive work on a line item",
			ctx: StartContext{
				WorkerID:   "EMP-001",
				TaskType:   "productive",
				LineItemID: "LI-001",
			},
			wantAllowed: true,
		},
		{
			name: "can start support work without a line item",
			ctx: StartContext{
				WorkerID: "EMP-001",
				TaskType: "support",
			},
			wantAllowed: true,
		},
		{
			name: "cannot start with an open timer",
			ctx: StartContext{
				WorkerID:     "EMP-001",
				TaskType:     "productive",
				LineItemID:   "LI-001",
				HasOpenTimer: true,
			},
			wantAllowed: false,
			wantReason:  "worker EMP-001 already has an active timer (stop the active timer first)",
		},
		{
			name: "cannot start productive work without a line item",
			ctx: StartContext{
				WorkerID: "EMP-001",
				TaskType: "productive",
			},
			wantAllowed: false,
			wantReason:  "productive entries require a line item",
		},
		{
			name: "cannot start support work on a line item",
			ctx: StartContext{
				WorkerID:   "EMP-001",
				TaskType:   "support",
				LineItemID: "LI-001",
			},
			wantAllowed: false,
			wantReason:  "support entries are not tied to a line item",
		},
		{
			name: "cannot start an unknown task type",
			ctx: StartContext{
				WorkerID: "EMP-001",
				TaskType: "billable",
			},
			wantAllowed: false,
			wantReason:  `unknown task type "billable" (must be productive or support)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStart(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanAddManualEntry(t *testing.T) {
	tests := []struct {
		name        string
		ctx         ManualEntryContext
		wantAllowed bool
	}{
		{
			name: "positive duration productive entry",
			ctx: ManualEntryContext{
				TaskType:      "productive",
				LineItemID:    "LI-001",
				DurationHours: 3.5,
			},
			wantAllowed: true,
		},
		{
			name: "zero duration rejected",
			ctx: ManualEntryContext{
				TaskType:      "support",
				DurationHours: 0,
			},
			wantAllowed: false,
		},
		{
			name: "negative duration rejected",
			ctx: ManualEntryContext{
				TaskType:      "support",
				DurationHours: -1,
			},
			wantAllowed: false,
		},
		{
			name: "productive entry without line item rejected",
			ctx: ManualEntryContext{
				TaskType:      "productive",
				DurationHours: 2,
			},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAddManualEntry(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Error() == nil {
				t.Error("Error() = nil for denied guard")
			}
		})
	}
}
