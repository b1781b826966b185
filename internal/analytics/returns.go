// Package analytics is the numeric core: return-series math, the parametric
// risk engine, signal generation and the single-pass backtest simulator.
// Everything here is a pure function over in-memory slices; price data and
// portfolio state are supplied by collaborators.
package analytics

import (
	"errors"
	"fmt"

	"quantfolio/types"
)

var (
	ErrInsufficientData = errors.New("insufficient historical data")
	ErrNoPositions      = errors.New("no positions in portfolio")
)

const (
	// minRiskObservations is a hard floor so the parametric statistics are
	// not degenerate.
	minRiskObservations = 10
	// minBacktestObservations is the minimum close count for a replay.
	minBacktestObservations = 50
)

// Returns converts closes into per-period simple returns,
// r[i] = (c[i+1]-c[i])/c[i]. The result has len(closes)-1 entries.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return returns
}

// PositionReturns builds one return series per price series. A series with
// fewer than two closes contributes the single-element placeholder [0.0],
// which still participates in alignment and can trigger the
// insufficient-data failure there.
func PositionReturns(series []types.PriceSeries) [][]float64 {
	all := make([][]float64, 0, len(series))
	for _, s := range series {
		if r := Returns(s.Closes); r != nil {
			all = append(all, r)
		} else {
			all = append(all, []float64{0.0})
		}
	}
	return all
}

// Align truncates every return series to the shortest one so they share a
// common length. Fails when fewer than minRiskObservations aligned
// observations remain.
func Align(series [][]float64) ([][]float64, int, error) {
	if len(series) == 0 {
		return nil, 0, fmt.Errorf("%w: no return series", ErrInsufficientData)
	}
	minLen := len(series[0])
	for _, s := range series[1:] {
		if len(s) < minLen {
			minLen = len(s)
		}
	}
	if minLen < minRiskObservations {
		return nil, 0, fmt.Errorf("%w (need at least %d days)", ErrInsufficientData, minRiskObservations)
	}
	aligned := make([][]float64, len(series))
	for i, s := range series {
		aligned[i] = s[:minLen]
	}
	return aligned, minLen, nil
}

// Combine forms the weighted portfolio return per period. Weights are each
// position's market-value fraction of total portfolio value; their sum may be
// below 1, the remainder being cash with zero return contribution.
func Combine(aligned [][]float64, weights []float64) []float64 {
	if len(aligned) == 0 {
		return nil
	}
	combined := make([]float64, len(aligned[0]))
	for i, s := range aligned {
		for t, r := range s {
			combined[t] += r * weights[i]
		}
	}
	return combined
}

// PortfolioReturns runs the full builder pipeline: per-position returns,
// alignment, weighted combination.
func PortfolioReturns(series []types.PriceSeries, weights []float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, ErrNoPositions
	}
	if len(series) != len(weights) {
		return nil, fmt.Errorf("series/weight count mismatch: %d vs %d", len(series), len(weights))
	}
	aligned, _, err := Align(PositionReturns(series))
	if err != nil {
		return nil, err
	}
	return Combine(aligned, weights), nil
}
