package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/subcommands"

	"quantfolio/internal/paper"
	"quantfolio/types"
)

// paperStartCmd begins a paper trading session.
type paperStartCmd struct {
	strategy string
	capital  float64
}

func (*paperStartCmd) Name() string     { return "paper-start" }
func (*paperStartCmd) Synopsis() string { return "start a paper trading session" }
func (*paperStartCmd) Usage() string {
	return `quantfolio paper-start -strategy <name> [-capital <amount>] <symbol>...

  Starts a simulated trading session with the given strategy and capital.
  Fails when a session is already active.
`
}

func (c *paperStartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.strategy, "strategy", "", "Strategy to simulate (see 'quantfolio strategies')")
	f.Float64Var(&c.capital, "capital", 100000, "Starting capital")
}

func (c *paperStartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	strategy, err := types.ParseStrategy(c.strategy)
	if err != nil {
		return fail(err)
	}

	st := openSessionStore()
	sess, err := st.Load()
	if err != nil {
		return fail(err)
	}
	sess, err = paper.Start(sess, strategy, f.Args(), c.capital, time.Now())
	if err != nil {
		return fail(err)
	}
	if err := st.Save(sess); err != nil {
		return fail(err)
	}

	fmt.Printf("Paper trading started: %s on %s with %.2f capital\n",
		sess.StrategyName, strings.Join(sess.Symbols, ", "), sess.StartingCapital)
	return subcommands.ExitSuccess
}

// paperStatusCmd reports the session, repricing open positions while active.
type paperStatusCmd struct{}

func (*paperStatusCmd) Name() string     { return "paper-status" }
func (*paperStatusCmd) Synopsis() string { return "show the paper trading session status" }
func (*paperStatusCmd) Usage() string {
	return `quantfolio paper-status

  While active, reprices open positions against current quotes and shows
  unrealized P&L. While inactive, shows the last completed session.
`
}
func (*paperStatusCmd) SetFlags(*flag.FlagSet) {}

func (c *paperStatusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := openSessionStore().Load()
	if err != nil {
		return fail(err)
	}

	var quotes paper.QuoteProvider
	if p := quoteProvider(); p != nil {
		quotes = p
	}
	status := paper.GetStatus(ctx, sess, quotes)

	if !status.Active {
		fmt.Println("No active paper trading session")
		if last := status.LastSession; last != nil {
			fmt.Printf("\nLast session: %s on %s\n", last.StrategyName, strings.Join(last.Symbols, ", "))
			fmt.Printf("Return:       %.2f%% (%.2f -> %.2f)\n", last.TotalReturnPercent, last.StartingCapital, last.FinalCapital)
			fmt.Printf("Trades:       %d (win rate %.2f%%)\n", last.TotalTrades, last.WinRatePercent)
		}
		return subcommands.ExitSuccess
	}

	fmt.Println("===== Paper Trading =====")
	fmt.Printf("Strategy:              %s\n", status.StrategyName)
	fmt.Printf("Symbols:               %s\n", strings.Join(status.Symbols, ", "))
	if status.StartedAt != nil {
		fmt.Printf("Started At:            %s\n", status.StartedAt.Format(time.RFC3339))
	}
	fmt.Printf("Cash:                  %.2f\n", status.Cash)
	fmt.Printf("Position Value:        %.2f\n", status.PositionValue)
	fmt.Printf("Total Value:           %.2f\n", status.TotalValue)
	fmt.Printf("Total Return:          %.2f%%\n", status.TotalReturnPercent)
	fmt.Printf("Trades:                %d\n", status.TradeCount)
	for _, pos := range status.Positions {
		fmt.Printf("  %-8s %s @ %s now %s (P&L %.2f%%)\n",
			pos.Symbol, pos.Shares, pos.EntryPrice.StringFixed(2),
			pos.CurrentPrice.StringFixed(2), pos.PnLPercent)
	}
	fmt.Println("=========================")
	return subcommands.ExitSuccess
}

// paperStopCmd ends the session and retains its summary.
type paperStopCmd struct{}

func (*paperStopCmd) Name() string     { return "paper-stop" }
func (*paperStopCmd) Synopsis() string { return "stop the paper trading session" }
func (*paperStopCmd) Usage() string {
	return `quantfolio paper-stop

  Stops the active session, computes the final return and win rate, and
  keeps the summary as the last session.
`
}
func (*paperStopCmd) SetFlags(*flag.FlagSet) {}

func (c *paperStopCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st := openSessionStore()
	sess, err := st.Load()
	if err != nil {
		return fail(err)
	}
	sess, summary, err := paper.Stop(sess, time.Now())
	if err != nil {
		return fail(err)
	}
	if err := st.Save(sess); err != nil {
		return fail(err)
	}

	fmt.Printf("Paper trading stopped: %s\n", summary.StrategyName)
	fmt.Printf("Return:  %.2f%% (%.2f -> %.2f)\n", summary.TotalReturnPercent, summary.StartingCapital, summary.FinalCapital)
	fmt.Printf("Trades:  %d (win rate %.2f%%)\n", summary.TotalTrades, summary.WinRatePercent)
	return subcommands.ExitSuccess
}
