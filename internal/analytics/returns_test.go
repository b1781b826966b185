package analytics

import (
	"errors"
	"math"
	"testing"

	"quantfolio/types"
)

func TestReturns(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   []float64
	}{
		{"too short", []float64{100}, nil},
		{"two closes", []float64{100, 110}, []float64{0.1}},
		{"up and down", []float64{100, 110, 99}, []float64{0.1, -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Returns(tt.closes)
			if len(got) != len(tt.want) {
				t.Fatalf("Returns() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Returns()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReturnsLengthAndRoundTrip(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 3*math.Sin(float64(i)) + float64(i)/2
	}

	returns := Returns(closes)
	if len(returns) != len(closes)-1 {
		t.Fatalf("returns length = %d, want %d", len(returns), len(closes)-1)
	}

	// Compounding the returns must reproduce the overall price ratio.
	ratio := 1.0
	for _, r := range returns {
		ratio *= 1 + r
	}
	want := closes[len(closes)-1] / closes[0]
	if math.Abs(ratio-want) > 1e-9 {
		t.Errorf("compounded ratio = %v, want %v", ratio, want)
	}
}

func TestPositionReturnsPlaceholder(t *testing.T) {
	series := []types.PriceSeries{
		{Symbol: "AAPL", Closes: []float64{100, 101, 102}},
		{Symbol: "NEW", Closes: []float64{50}},
	}
	all := PositionReturns(series)
	if len(all) != 2 {
		t.Fatalf("series count = %d, want 2", len(all))
	}
	if len(all[0]) != 2 {
		t.Errorf("AAPL returns length = %d, want 2", len(all[0]))
	}
	if len(all[1]) != 1 || all[1][0] != 0.0 {
		t.Errorf("placeholder = %v, want [0.0]", all[1])
	}
}

func TestAlign(t *testing.T) {
	long := make([]float64, 15)
	short := make([]float64, 12)
	tiny := []float64{0.0}

	tests := []struct {
		name    string
		series  [][]float64
		wantLen int
		wantErr error
	}{
		{"empty input", nil, 0, ErrInsufficientData},
		{"below floor", [][]float64{long, {0.1, 0.2}}, 0, ErrInsufficientData},
		{"placeholder drags below floor", [][]float64{long, tiny}, 0, ErrInsufficientData},
		{"aligned to shortest", [][]float64{long, short}, 12, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aligned, n, err := Align(tt.series)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Align() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Align() unexpected error: %v", err)
			}
			if n != tt.wantLen {
				t.Errorf("Align() minLen = %d, want %d", n, tt.wantLen)
			}
			for i, s := range aligned {
				if len(s) != tt.wantLen {
					t.Errorf("aligned[%d] length = %d, want %d", i, len(s), tt.wantLen)
				}
			}
		})
	}
}

func TestCombine(t *testing.T) {
	aligned := [][]float64{
		{0.10, -0.10},
		{0.02, 0.02},
	}
	weights := []float64{0.5, 0.25}

	got := Combine(aligned, weights)
	want := []float64{0.5*0.10 + 0.25*0.02, 0.5*-0.10 + 0.25*0.02}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Combine()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPortfolioReturns(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	tests := []struct {
		name    string
		series  []types.PriceSeries
		weights []float64
		wantErr error
	}{
		{"no positions", nil, nil, ErrNoPositions},
		{"mismatched weights", []types.PriceSeries{{Symbol: "A", Closes: closes}}, []float64{0.5, 0.5}, nil},
		{"ok", []types.PriceSeries{{Symbol: "A", Closes: closes}}, []float64{1.0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PortfolioReturns(tt.series, tt.weights)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PortfolioReturns() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.name == "mismatched weights" {
				if err == nil {
					t.Fatal("PortfolioReturns() expected an error for mismatched weights")
				}
				return
			}
			if err != nil {
				t.Fatalf("PortfolioReturns() unexpected error: %v", err)
			}
			if len(got) != len(closes)-1 {
				t.Errorf("combined length = %d, want %d", len(got), len(closes)-1)
			}
		})
	}
}
