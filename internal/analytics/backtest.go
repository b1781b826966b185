package analytics

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"quantfolio/types"
)

// RunBacktest replays a strategy over one symbol's daily closes and returns
// the simulated performance. The signal at each period is applied to the
// following period's return; the final signal has no forward return and is
// dropped.
func RunBacktest(strategy types.Strategy, params types.StrategyParams, series types.PriceSeries) (types.BacktestReport, error) {
	info, err := types.LookupStrategy(strategy)
	if err != nil {
		return types.BacktestReport{}, err
	}
	if len(series.Closes) < minBacktestObservations {
		return types.BacktestReport{}, fmt.Errorf("%w (need at least %d closes, got %d)",
			ErrInsufficientData, minBacktestObservations, len(series.Closes))
	}

	signals, err := GenerateSignals(series.Closes, strategy, params)
	if err != nil {
		return types.BacktestReport{}, err
	}

	dailyReturns := Returns(series.Closes)
	strategyReturns := make([]float64, len(dailyReturns))
	for t := range dailyReturns {
		strategyReturns[t] = float64(signals[t]) * dailyReturns[t]
	}

	totalReturn := 1.0
	for _, r := range strategyReturns {
		totalReturn *= 1 + r
	}
	totalReturn -= 1

	// Plain mean/std ratio here, unlike the portfolio Sharpe: backtests
	// compare strategies against each other, not against the risk-free rate.
	mean, err := stats.Mean(strategyReturns)
	if err != nil {
		return types.BacktestReport{}, err
	}
	std, err := stats.StandardDeviationPopulation(strategyReturns)
	if err != nil {
		return types.BacktestReport{}, err
	}
	sharpe := 0.0
	if std > 0 {
		sharpe = mean / std * math.Sqrt(tradingDays)
	}

	trades := 0
	for i := 1; i < len(signals); i++ {
		if signals[i] != signals[i-1] {
			trades++
		}
	}

	wins := 0
	for _, r := range strategyReturns {
		if r > 0 {
			wins++
		}
	}
	winRate := 0.0
	if len(strategyReturns) > 0 {
		winRate = float64(wins) / float64(len(strategyReturns)) * 100
	}

	return types.BacktestReport{
		Strategy:           strategy,
		StrategyName:       info.Name,
		Symbols:            []string{series.Symbol},
		TotalReturnPercent: totalReturn * 100,
		SharpeRatio:        sharpe,
		MaxDrawdownPercent: maxDrawdown(strategyReturns) * 100,
		TotalTrades:        trades,
		WinRatePercent:     winRate,
	}, nil
}
