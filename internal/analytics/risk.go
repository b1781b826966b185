package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"quantfolio/types"
)

var ErrZeroPortfolioValue = errors.New("portfolio has no value")

const (
	// tradingDays per year, used to annualize daily statistics.
	tradingDays = 252
	// annualRiskFree is the fixed 4% annual risk-free rate assumption.
	annualRiskFree = 0.04
)

// ComputeRisk derives the parametric risk report from the portfolio's daily
// return series. VaR assumes normally distributed returns; this is a stated
// simplification, not a general model.
func ComputeRisk(portfolioReturns []float64, totalValue, confidence float64) (types.RiskReport, error) {
	if totalValue <= 0 {
		return types.RiskReport{}, ErrZeroPortfolioValue
	}
	if confidence <= 0 || confidence >= 1 {
		return types.RiskReport{}, fmt.Errorf("confidence must be in (0,1), got %v", confidence)
	}
	if len(portfolioReturns) < minRiskObservations {
		return types.RiskReport{}, fmt.Errorf("%w (need at least %d days)", ErrInsufficientData, minRiskObservations)
	}

	mean, err := stats.Mean(portfolioReturns)
	if err != nil {
		return types.RiskReport{}, err
	}
	std, err := stats.StandardDeviationPopulation(portfolioReturns)
	if err != nil {
		return types.RiskReport{}, err
	}

	zScore := distuv.UnitNormal.Quantile(1 - confidence)
	valueAtRisk := -zScore * std * totalValue

	// Expected shortfall: average of the worst (1-confidence) tail. When the
	// tail count floors to zero it falls back to VaR.
	sorted := append([]float64(nil), portfolioReturns...)
	sort.Float64s(sorted)
	cvar := valueAtRisk
	if varIdx := int((1 - confidence) * float64(len(sorted))); varIdx > 0 {
		tailMean, err := stats.Mean(sorted[:varIdx])
		if err != nil {
			return types.RiskReport{}, err
		}
		cvar = -tailMean * totalValue
	}

	riskFreeDaily := annualRiskFree / tradingDays
	excess := mean - riskFreeDaily

	sharpe := 0.0
	if std > 0 {
		sharpe = excess / std * math.Sqrt(tradingDays)
	}

	// Sortino uses the deviation of negative returns only. With no downside
	// observations it falls back to the full deviation.
	var downside []float64
	for _, r := range portfolioReturns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	downsideStd := std
	if len(downside) > 0 {
		downsideStd, err = stats.StandardDeviationPopulation(downside)
		if err != nil {
			return types.RiskReport{}, err
		}
	}
	sortino := 0.0
	if downsideStd > 0 {
		sortino = excess / downsideStd * math.Sqrt(tradingDays)
	}

	return types.RiskReport{
		Confidence:             confidence,
		VaR:                    valueAtRisk,
		VaRPercent:             valueAtRisk / totalValue * 100,
		CVaR:                   cvar,
		CVaRPercent:            cvar / totalValue * 100,
		SharpeRatio:            sharpe,
		SortinoRatio:           sortino,
		MaxDrawdownPercent:     maxDrawdown(portfolioReturns) * 100,
		VolatilityPercent:      std * math.Sqrt(tradingDays) * 100,
		DailyMeanReturnPercent: mean * 100,
		TotalPortfolioValue:    totalValue,
	}, nil
}

// maxDrawdown returns the deepest peak-to-trough decline of the cumulative
// wealth curve as a fraction (<= 0).
func maxDrawdown(returns []float64) float64 {
	cum := 1.0
	runMax := 0.0
	minDD := 0.0
	for i, r := range returns {
		cum *= 1 + r
		// The running maximum tracks observed wealth only, so the first
		// period can never itself be a drawdown.
		if i == 0 || cum > runMax {
			runMax = cum
		}
		if dd := (cum - runMax) / runMax; dd < minDD {
			minDD = dd
		}
	}
	return minDD
}
