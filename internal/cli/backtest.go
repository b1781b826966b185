package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"quantfolio/internal/analytics"
	"quantfolio/types"
)

// backtestCmd replays a strategy over historical closes.
type backtestCmd struct {
	strategy string
	lookback int

	// Strategy parameter overrides; zero means "use the strategy default".
	shortPeriod    int
	longPeriod     int
	lookbackPeriod int
	threshold      float64
	bbPeriod       int
	bbStd          float64
	rsiPeriod      int
	oversold       float64
	overbought     float64
}

func (*backtestCmd) Name() string     { return "backtest" }
func (*backtestCmd) Synopsis() string { return "replay a strategy over historical closes" }
func (*backtestCmd) Usage() string {
	return `quantfolio backtest -strategy <name> [flags] <symbol>...

  Generates the strategy's signal sequence over the symbol's daily closes
  and reports the simulated return, Sharpe ratio, drawdown, trade count and
  win rate. Only the first symbol's history drives the replay.
`
}

func (c *backtestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.strategy, "strategy", "", "Strategy to replay (see 'quantfolio strategies')")
	f.IntVar(&c.lookback, "lookback", 252, "Trailing trading days of price history")
	f.IntVar(&c.shortPeriod, "short-period", 0, "sma_crossover: short SMA window")
	f.IntVar(&c.longPeriod, "long-period", 0, "sma_crossover: long SMA window")
	f.IntVar(&c.lookbackPeriod, "lookback-period", 0, "momentum: trailing return window")
	f.Float64Var(&c.threshold, "momentum-threshold", 0, "momentum: entry threshold")
	f.IntVar(&c.bbPeriod, "bb-period", 0, "mean_reversion: Bollinger window")
	f.Float64Var(&c.bbStd, "bb-std", 0, "mean_reversion: Bollinger band width in std devs")
	f.IntVar(&c.rsiPeriod, "rsi-period", 0, "rsi_strategy: RSI period")
	f.Float64Var(&c.oversold, "oversold", 0, "rsi_strategy: oversold threshold")
	f.Float64Var(&c.overbought, "overbought", 0, "rsi_strategy: overbought threshold")
}

func (c *backtestCmd) params(defaults types.StrategyParams) types.StrategyParams {
	p := defaults
	if c.shortPeriod > 0 {
		p.ShortPeriod = c.shortPeriod
	}
	if c.longPeriod > 0 {
		p.LongPeriod = c.longPeriod
	}
	if c.lookbackPeriod > 0 {
		p.LookbackPeriod = c.lookbackPeriod
	}
	if c.threshold != 0 {
		p.MomentumThreshold = c.threshold
	}
	if c.bbPeriod > 0 {
		p.BBPeriod = c.bbPeriod
	}
	if c.bbStd != 0 {
		p.BBStd = c.bbStd
	}
	if c.rsiPeriod > 0 {
		p.RSIPeriod = c.rsiPeriod
	}
	if c.oversold != 0 {
		p.Oversold = c.oversold
	}
	if c.overbought != 0 {
		p.Overbought = c.overbought
	}
	return p
}

func (c *backtestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	strategy, err := types.ParseStrategy(c.strategy)
	if err != nil {
		return fail(err)
	}
	defaults, err := types.DefaultParams(strategy)
	if err != nil {
		return fail(err)
	}

	db, err := openDatabase()
	if err != nil {
		return fail(err)
	}
	defer db.Close()

	symbols := make([]string, f.NArg())
	for i := range symbols {
		symbols[i] = strings.ToUpper(f.Arg(i))
	}
	series, err := db.GetPriceSeries(symbols[0], c.lookback, ctx)
	if err != nil {
		return fail(err)
	}

	report, err := analytics.RunBacktest(strategy, c.params(defaults), series)
	if err != nil {
		return fail(err)
	}
	report.Symbols = symbols

	printBacktestReport(report)
	return subcommands.ExitSuccess
}

func printBacktestReport(r types.BacktestReport) {
	fmt.Println("===== Backtest Report =====")
	fmt.Printf("Strategy:              %s\n", r.StrategyName)
	fmt.Printf("Symbols:               %s\n", strings.Join(r.Symbols, ", "))
	fmt.Println("\n-- Performance --")
	fmt.Printf("Total Return:          %.2f%%\n", r.TotalReturnPercent)
	fmt.Printf("Sharpe Ratio:          %.2f\n", r.SharpeRatio)
	fmt.Printf("Max Drawdown:          %.2f%%\n", r.MaxDrawdownPercent)
	fmt.Println("\n-- Trades --")
	fmt.Printf("Total Trades:          %d\n", r.TotalTrades)
	fmt.Printf("Win Rate:              %.2f%%\n", r.WinRatePercent)
	fmt.Println("===========================")
}
