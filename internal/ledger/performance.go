package ledger

import "sort"

// PositionReturn is one holding's unrealized return.
type PositionReturn struct {
	Symbol        string  `json:"symbol"`
	Return        float64 `json:"return"`
	ReturnPercent float64 `json:"return_percent"`
}

// PerformanceReport compares the portfolio against its cost and a benchmark.
type PerformanceReport struct {
	TotalValue             float64          `json:"total_value"`
	TotalCost              float64          `json:"total_cost"`
	TotalReturn            float64          `json:"total_return"`
	TotalReturnPercent     float64          `json:"total_return_percent"`
	Benchmark              string           `json:"benchmark"`
	BenchmarkReturnPercent float64          `json:"benchmark_return_percent"`
	Alpha                  float64          `json:"alpha"`
	PositionReturns        []PositionReturn `json:"position_returns"`
	BestPerformer          *PositionReturn  `json:"best_performer"`
	WorstPerformer         *PositionReturn  `json:"worst_performer"`
}

// Performance derives unrealized performance from a valuation. The benchmark
// change percentage is supplied by the quote collaborator; alpha is the
// portfolio's excess over it.
func Performance(v Valuation, benchmark string, benchmarkChangePct float64) PerformanceReport {
	returns := make([]PositionReturn, 0, len(v.Positions))
	for _, pv := range v.Positions {
		gain, _ := pv.GainLoss.Float64()
		returns = append(returns, PositionReturn{
			Symbol:        pv.Position.Symbol,
			Return:        gain,
			ReturnPercent: pv.GainLossPercent,
		})
	}
	sort.SliceStable(returns, func(i, j int) bool {
		return returns[i].ReturnPercent > returns[j].ReturnPercent
	})

	// Performance measures holdings against their cost, so cash stays out of
	// the equity totals here.
	totalValue, _ := v.MarketValue.Float64()
	totalCost, _ := v.TotalCost.Float64()
	totalReturn := totalValue - totalCost
	totalReturnPct := 0.0
	if totalCost > 0 {
		totalReturnPct = totalReturn / totalCost * 100
	}

	report := PerformanceReport{
		TotalValue:             totalValue,
		TotalCost:              totalCost,
		TotalReturn:            totalReturn,
		TotalReturnPercent:     totalReturnPct,
		Benchmark:              benchmark,
		BenchmarkReturnPercent: benchmarkChangePct,
		Alpha:                  totalReturnPct - benchmarkChangePct,
		PositionReturns:        returns,
	}
	if len(returns) > 0 {
		report.BestPerformer = &returns[0]
		report.WorstPerformer = &returns[len(returns)-1]
	}
	return report
}
