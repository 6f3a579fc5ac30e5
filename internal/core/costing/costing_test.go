package costing

import (
	"math"
	"testing"
	"time"
)

func TestCompute(t *testing.T) {
	t0 := time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		start, end    time.Time
		laborRate     float64
		equipmentRate float64
		wantHours     float64
		wantCost      float64
	}{
		{
			name:          "two hours at blended 60/hr",
			start:         t0,
			end:           t0.Add(2 * time.Hour),
			laborRate:     50,
			equipmentRate: 10,
			wantHours:     2.0,
			wantCost:      120.0,
		},
		{
			name:      "three and a half hours labor only",
			start:     t0,
			end:       t0.Add(3*time.Hour + 30*time.Minute),
			laborRate: 40,
			wantHours: 3.5,
			wantCost:  140.0,
		},
		{
			name:          "zero-length interval",
			start:         t0,
			end:           t0,
			laborRate:     50,
			equipmentRate: 10,
			wantHours:     0,
			wantCost:      0,
		},
		{
			name:      "negative interval passes through",
			start:     t0,
			end:       t0.Add(-30 * time.Minute),
			laborRate: 40,
			wantHours: -0.5,
			wantCost:  -20.0,
		},
		{
			name:      "zero rates cost nothing",
			start:     t0,
			end:       t0.Add(8 * time.Hour),
			wantHours: 8,
			wantCost:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.start, tt.end, tt.laborRate, tt.equipmentRate)
			if math.Abs(got.DurationHours-tt.wantHours) > 1e-9 {
				t.Errorf("DurationHours = %v, want %v", got.DurationHours, tt.wantHours)
			}
			if math.Abs(got.TotalCost-tt.wantCost) > 1e-9 {
				t.Errorf("TotalCost = %v, want %v", got.TotalCost, tt.wantCost)
			}
		})
	}
}

func TestComputeSubSecondResolution(t *testing.T) {
	t0 := time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC)
	got := Compute(t0, t0.Add(90*time.Millisecond*1000), 100, 0) // 90 seconds

	wantHours := 90.0 / 3600.0
	if math.Abs(got.DurationHours-wantHours) > 1e-12 {
		t.Errorf("DurationHours = %v, want %v", got.DurationHours, wantHours)
	}
	if math.Abs(got.TotalCost-wantHours*100) > 1e-9 {
		t.Errorf("TotalCost = %v, want %v", got.TotalCost, wantHours*100)
	}
}
