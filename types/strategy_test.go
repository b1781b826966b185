package types

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "exact", input: "momentum", want: Momentum},
		{name: "mixed case", input: "Mean_Reversion", want: MeanReversion},
		{name: "upper case", input: "BUY_AND_HOLD", want: BuyAndHold},
		{name: "unknown", input: "martingale", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStrategy) {
					t.Errorf("ParseStrategy(%q) error = %v, want %v", tt.input, err, ErrUnknownStrategy)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	params, err := DefaultParams(RSIStrategy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.RSIPeriod != 14 || params.Oversold != 30 || params.Overbought != 70 {
		t.Errorf("RSI defaults = %+v", params)
	}

	params, err = DefaultParams(SMACrossover)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.ShortPeriod != 10 || params.LongPeriod != 50 {
		t.Errorf("SMA defaults = %+v", params)
	}

	if _, err := DefaultParams(Strategy("martingale")); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("DefaultParams() error = %v, want %v", err, ErrUnknownStrategy)
	}
}

func TestStrategiesListedOnce(t *testing.T) {
	seen := map[Strategy]bool{}
	for _, info := range Strategies {
		if seen[info.ID] {
			t.Errorf("strategy %q listed twice", info.ID)
		}
		seen[info.ID] = true
		if info.Name == "" || info.Description == "" {
			t.Errorf("strategy %q missing listing text", info.ID)
		}
	}
}
