package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"

	"quantfolio/internal/analytics"
	"quantfolio/internal/ledger"
	"quantfolio/internal/marketdata"
	"quantfolio/types"
)

// riskCmd computes the parametric risk report over the current holdings.
type riskCmd struct {
	confidence float64
	lookback   int
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "compute portfolio risk metrics (VaR, CVaR, Sharpe, ...)" }
func (*riskCmd) Usage() string {
	return `quantfolio risk [-confidence <level>] [-lookback <days>]

  Builds the weighted portfolio return series from each position's price
  history and reports parametric VaR, CVaR, Sharpe, Sortino, max drawdown
  and volatility.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.confidence, "confidence", 0.95, "Confidence level for VaR, in (0,1)")
	f.IntVar(&c.lookback, "lookback", 252, "Trailing trading days of price history per position")
}

func (c *riskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := openPortfolioStore().Load()
	if err != nil {
		return fail(err)
	}
	if len(p.Positions) == 0 {
		return fail(analytics.ErrNoPositions)
	}

	db, err := openDatabase()
	if err != nil {
		return fail(err)
	}
	defer db.Close()

	v := ledger.Value(p, fetchQuotes(ctx, quoteProvider(), p))
	weights := ledger.Weights(v)
	series := fetchSeries(ctx, &db, p, c.lookback)

	returns, err := analytics.PortfolioReturns(series, weights)
	if err != nil {
		return fail(err)
	}
	totalValue, _ := v.TotalValue.Float64()
	report, err := analytics.ComputeRisk(returns, totalValue, c.confidence)
	if err != nil {
		return fail(err)
	}

	printRiskReport(report)
	return subcommands.ExitSuccess
}

// fetchSeries loads each position's trailing closes. A symbol without
// usable history contributes an empty series, which the return builder
// turns into the zero-return placeholder.
func fetchSeries(ctx context.Context, db *marketdata.Database, p types.Portfolio, lookback int) []types.PriceSeries {
	bar := initProgressBar(len(p.Positions), "Fetching price history...")
	series := make([]types.PriceSeries, 0, len(p.Positions))
	for _, pos := range p.Positions {
		s, err := db.GetPriceSeries(pos.Symbol, lookback, ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: no history for %s: %v\n", pos.Symbol, err)
			s = types.PriceSeries{Symbol: pos.Symbol}
		}
		series = append(series, s)
		bar.Add(1)
	}
	return series
}

func initProgressBar(maxTicks int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func printRiskReport(r types.RiskReport) {
	fmt.Println("===== Risk Report =====")
	fmt.Printf("Confidence Level:      %.0f%%\n", r.Confidence*100)
	fmt.Printf("Portfolio Value:       %.2f\n", r.TotalPortfolioValue)
	fmt.Println("\n-- Tail Risk --")
	fmt.Printf("VaR:                   %.2f (%.2f%%)\n", r.VaR, r.VaRPercent)
	fmt.Printf("CVaR:                  %.2f (%.2f%%)\n", r.CVaR, r.CVaRPercent)
	fmt.Println("\n-- Risk-Adjusted Metrics --")
	fmt.Printf("Sharpe Ratio:          %.2f\n", r.SharpeRatio)
	fmt.Printf("Sortino Ratio:         %.2f\n", r.SortinoRatio)
	fmt.Println("\n-- Distribution --")
	fmt.Printf("Max Drawdown:          %.2f%%\n", r.MaxDrawdownPercent)
	fmt.Printf("Volatility (ann.):     %.2f%%\n", r.VolatilityPercent)
	fmt.Printf("Daily Mean Return:     %.4f%%\n", r.DailyMeanReturnPercent)
	fmt.Println("=======================")
}
