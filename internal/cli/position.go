package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"quantfolio/internal/ledger"
)

// addCmd adds shares to the portfolio, averaging the cost basis into any
// existing position.
type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a position (or average into an existing one)" }
func (*addCmd) Usage() string {
	return `quantfolio add <symbol> <shares> <cost-basis>

  Adds shares at the given per-share cost. An existing position for the
  symbol is merged: shares accumulate and the cost basis becomes the
  weighted average.
`
}
func (*addCmd) SetFlags(*flag.FlagSet) {}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	shares, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return fail(fmt.Errorf("invalid shares %q: %w", f.Arg(1), err))
	}
	costBasis, err := decimal.NewFromString(f.Arg(2))
	if err != nil {
		return fail(fmt.Errorf("invalid cost basis %q: %w", f.Arg(2), err))
	}

	st := openPortfolioStore()
	p, err := st.Load()
	if err != nil {
		return fail(err)
	}
	p, pos, err := ledger.Add(p, f.Arg(0), shares, costBasis)
	if err != nil {
		return fail(err)
	}
	if err := st.Save(p); err != nil {
		return fail(err)
	}

	fmt.Printf("%s: %s shares at %s avg cost\n", pos.Symbol, pos.Shares, pos.CostBasis)
	return subcommands.ExitSuccess
}

// removeCmd removes a position wholesale.
type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a position from the portfolio" }
func (*removeCmd) Usage() string {
	return `quantfolio remove <symbol>

  Removes the whole position for the symbol.
`
}
func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}

	st := openPortfolioStore()
	p, err := st.Load()
	if err != nil {
		return fail(err)
	}
	p, removed, err := ledger.Remove(p, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := st.Save(p); err != nil {
		return fail(err)
	}

	fmt.Printf("removed %s (%s shares at %s avg cost)\n", removed.Symbol, removed.Shares, removed.CostBasis)
	return subcommands.ExitSuccess
}

// listCmd prints the portfolio valued against current quotes.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list positions with current values" }
func (*listCmd) Usage() string {
	return `quantfolio list

  Prints every position valued against current quotes (or cost basis when
  no quote provider is configured), plus cash and totals.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st := openPortfolioStore()
	p, err := st.Load()
	if err != nil {
		return fail(err)
	}

	v := ledger.Value(p, fetchQuotes(ctx, quoteProvider(), p))

	fmt.Println("===== Portfolio =====")
	fmt.Printf("%-8s %12s %12s %12s %14s %10s\n", "Symbol", "Shares", "Avg Cost", "Price", "Market Value", "P&L %")
	for _, pv := range v.Positions {
		fmt.Printf("%-8s %12s %12s %12s %14s %9.2f%%\n",
			pv.Position.Symbol,
			pv.Position.Shares,
			pv.Position.CostBasis.StringFixed(2),
			pv.CurrentPrice.StringFixed(2),
			pv.MarketValue.StringFixed(2),
			pv.GainLossPercent,
		)
	}
	fmt.Printf("\nCash:        %s\n", v.Cash.StringFixed(2))
	fmt.Printf("Total Value: %s\n", v.TotalValue.StringFixed(2))
	fmt.Println("=====================")
	return subcommands.ExitSuccess
}
