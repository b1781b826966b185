package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"quantfolio/internal/ledger"
)

// performanceCmd reports unrealized performance against a benchmark.
type performanceCmd struct {
	benchmark string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "report unrealized performance vs a benchmark" }
func (*performanceCmd) Usage() string {
	return `quantfolio performance [-benchmark <symbol>]

  Reports total and per-position unrealized returns, the best and worst
  performers, and alpha against the benchmark's change today.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", "SPY", "Benchmark symbol for the alpha comparison")
}

func (c *performanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := openPortfolioStore().Load()
	if err != nil {
		return fail(err)
	}
	provider := quoteProvider()
	v := ledger.Value(p, fetchQuotes(ctx, provider, p))

	benchmarkChange := 0.0
	if provider != nil {
		if q, err := provider.GetQuote(ctx, c.benchmark); err == nil {
			benchmarkChange = q.ChangePercent
		} else {
			fmt.Fprintf(os.Stderr, "warning: no benchmark quote for %s: %v\n", c.benchmark, err)
		}
	}

	report := ledger.Performance(v, c.benchmark, benchmarkChange)

	fmt.Println("===== Performance =====")
	fmt.Printf("Total Value:           %.2f\n", report.TotalValue)
	fmt.Printf("Total Cost:            %.2f\n", report.TotalCost)
	fmt.Printf("Total Return:          %.2f (%.2f%%)\n", report.TotalReturn, report.TotalReturnPercent)
	fmt.Printf("Benchmark (%s):       %.2f%%\n", report.Benchmark, report.BenchmarkReturnPercent)
	fmt.Printf("Alpha:                 %.2f%%\n", report.Alpha)
	if report.BestPerformer != nil {
		fmt.Printf("\nBest:                  %s (%.2f%%)\n", report.BestPerformer.Symbol, report.BestPerformer.ReturnPercent)
		fmt.Printf("Worst:                 %s (%.2f%%)\n", report.WorstPerformer.Symbol, report.WorstPerformer.ReturnPercent)
	}
	fmt.Println("=======================")
	return subcommands.ExitSuccess
}
