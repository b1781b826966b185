// Package cli implements the command-line application around the analytics
// core. Commands load the persisted documents, fetch market data, call the
// core and print a report.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"quantfolio/internal/marketdata"
	"quantfolio/internal/store"
	"quantfolio/types"
)

// Register the subcommands.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "portfolio")
	c.Register(&removeCmd{}, "portfolio")
	c.Register(&listCmd{}, "portfolio")
	c.Register(&performanceCmd{}, "portfolio")

	c.Register(&riskCmd{}, "analytics")
	c.Register(&backtestCmd{}, "analytics")
	c.Register(&strategiesCmd{}, "analytics")

	c.Register(&paperStartCmd{}, "paper trading")
	c.Register(&paperStatusCmd{}, "paper trading")
	c.Register(&paperStopCmd{}, "paper trading")
}

// As a CLI application with a short-lived process, shared configuration
// lives in global flags.
var (
	portfolioFile = flag.String("portfolio-file", "", "Path to the portfolio JSON document. Defaults to $QUANTFOLIO_PORTFOLIO_FILE or ~/.quantfolio/portfolio.json")
	paperFile     = flag.String("paper-file", "", "Path to the paper trading JSON document. Defaults to $QUANTFOLIO_PAPER_FILE or ~/.quantfolio/paper_trading.json")
	dbURL         = flag.String("db-url", os.Getenv("QUANTFOLIO_DB_URL"), "Postgres URL of the price history database")
	quoteURL      = flag.String("quote-url", os.Getenv("QUANTFOLIO_QUOTE_URL"), "Quote provider URL template, e.g. https://host/quote?symbol=%s")
)

func openPortfolioStore() *store.PortfolioStore {
	return store.NewPortfolioStore(*portfolioFile)
}

func openSessionStore() *store.SessionStore {
	return store.NewSessionStore(*paperFile)
}

func openDatabase() (marketdata.Database, error) {
	if *dbURL == "" {
		return marketdata.Database{}, fmt.Errorf("no price database configured, set -db-url or QUANTFOLIO_DB_URL")
	}
	return marketdata.NewDatabase(*dbURL)
}

// quoteProvider returns the configured quote adapter, or nil when none is
// configured. Callers treat nil as "value positions at cost basis".
func quoteProvider() *marketdata.QuoteProvider {
	if *quoteURL == "" {
		return nil
	}
	return marketdata.NewQuoteProvider(*quoteURL)
}

// fetchQuotes collects quotes for the portfolio's symbols. Symbols whose
// quote cannot be fetched are simply absent from the map.
func fetchQuotes(ctx context.Context, provider *marketdata.QuoteProvider, p types.Portfolio) map[string]types.Quote {
	quotes := make(map[string]types.Quote)
	if provider == nil {
		return quotes
	}
	for _, pos := range p.Positions {
		q, err := provider.GetQuote(ctx, pos.Symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: no quote for %s: %v\n", pos.Symbol, err)
			continue
		}
		quotes[pos.Symbol] = q
	}
	return quotes
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
