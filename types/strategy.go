package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy identifies one of the built-in signal rules.
type Strategy string

const (
	Momentum      Strategy = "momentum"
	MeanReversion Strategy = "mean_reversion"
	SMACrossover  Strategy = "sma_crossover"
	RSIStrategy   Strategy = "rsi_strategy"
	BuyAndHold    Strategy = "buy_and_hold"
)

// Signal values produced per trading period.
const (
	SignalShort   = -1
	SignalNeutral = 0
	SignalLong    = 1
)

// StrategyParams carries the parameters for every strategy. Each strategy
// reads only the fields it cares about.
type StrategyParams struct {
	LookbackPeriod    int     `json:"lookback_period,omitempty"`
	MomentumThreshold float64 `json:"momentum_threshold,omitempty"`
	BBPeriod          int     `json:"bb_period,omitempty"`
	BBStd             float64 `json:"bb_std,omitempty"`
	ShortPeriod       int     `json:"short_period,omitempty"`
	LongPeriod        int     `json:"long_period,omitempty"`
	RSIPeriod         int     `json:"rsi_period,omitempty"`
	Oversold          float64 `json:"oversold,omitempty"`
	Overbought        float64 `json:"overbought,omitempty"`
}

// StrategyInfo describes a built-in strategy for listings.
type StrategyInfo struct {
	ID          Strategy
	Name        string
	Description string
	Params      StrategyParams
}

// Strategies lists the built-in rules in a stable order, with their
// default parameters.
var Strategies = []StrategyInfo{
	{
		ID:          Momentum,
		Name:        "Momentum Strategy",
		Description: "Buy assets with positive momentum, sell when momentum reverses",
		Params:      StrategyParams{LookbackPeriod: 20, MomentumThreshold: 0.02},
	},
	{
		ID:          MeanReversion,
		Name:        "Mean Reversion Strategy",
		Description: "Buy oversold assets, sell overbought assets based on Bollinger Bands",
		Params:      StrategyParams{BBPeriod: 20, BBStd: 2.0},
	},
	{
		ID:          SMACrossover,
		Name:        "SMA Crossover Strategy",
		Description: "Buy when short SMA crosses above long SMA, sell on opposite",
		Params:      StrategyParams{ShortPeriod: 10, LongPeriod: 50},
	},
	{
		ID:          RSIStrategy,
		Name:        "RSI Strategy",
		Description: "Buy when RSI oversold (<30), sell when overbought (>70)",
		Params:      StrategyParams{RSIPeriod: 14, Oversold: 30, Overbought: 70},
	},
	{
		ID:          BuyAndHold,
		Name:        "Buy and Hold",
		Description: "Simple buy and hold benchmark strategy",
		Params:      StrategyParams{},
	},
}

// LookupStrategy returns the listing entry for s.
func LookupStrategy(s Strategy) (StrategyInfo, error) {
	for _, info := range Strategies {
		if info.ID == s {
			return info, nil
		}
	}
	return StrategyInfo{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// ParseStrategy parses a user-supplied strategy name, case-insensitive.
func ParseStrategy(s string) (Strategy, error) {
	info, err := LookupStrategy(Strategy(strings.ToLower(s)))
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// DefaultParams returns the default parameter set for s.
func DefaultParams(s Strategy) (StrategyParams, error) {
	info, err := LookupStrategy(s)
	if err != nil {
		return StrategyParams{}, err
	}
	return info.Params, nil
}
