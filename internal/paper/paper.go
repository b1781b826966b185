// Package paper implements the paper trading session state machine:
// Inactive -> Active -> Inactive, persisted as a single document that is
// overwritten on every transition.
package paper

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quantfolio/types"
)

var (
	ErrAlreadyActive   = errors.New("paper trading already active, stop current session first")
	ErrNoActiveSession = errors.New("no active paper trading session")
)

// QuoteProvider supplies current prices for open positions.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (types.Quote, error)
}

// Start transitions an inactive session to Active. The previous last-session
// summary is not carried over; the record describes one session at a time.
func Start(s types.PaperSession, strategy types.Strategy, symbols []string, capital float64, now time.Time) (types.PaperSession, error) {
	info, err := types.LookupStrategy(strategy)
	if err != nil {
		return s, err
	}
	if s.Active {
		return s, ErrAlreadyActive
	}

	upper := make([]string, len(symbols))
	for i, sym := range symbols {
		upper[i] = strings.ToUpper(sym)
	}

	started := now
	return types.PaperSession{
		Active:          true,
		Strategy:        info.ID,
		StrategyName:    info.Name,
		Symbols:         upper,
		StartingCapital: capital,
		Capital:         capital,
		Positions:       []types.PaperPosition{},
		Trades:          []types.PaperTrade{},
		StartedAt:       &started,
	}, nil
}

// Stop transitions an active session to Inactive, computing the final return
// and win rate and retaining the summary as the session's only history.
func Stop(s types.PaperSession, now time.Time) (types.PaperSession, types.SessionSummary, error) {
	if !s.Active {
		return s, types.SessionSummary{}, ErrNoActiveSession
	}

	totalReturn := 0.0
	if s.StartingCapital > 0 {
		totalReturn = (s.Capital - s.StartingCapital) / s.StartingCapital * 100
	}

	wins := 0
	for _, t := range s.Trades {
		if t.PnL.IsPositive() {
			wins++
		}
	}
	winRate := 0.0
	if len(s.Trades) > 0 {
		winRate = float64(wins) / float64(len(s.Trades)) * 100
	}

	stopped := now
	summary := types.SessionSummary{
		Strategy:           s.Strategy,
		StrategyName:       s.StrategyName,
		Symbols:            s.Symbols,
		StartingCapital:    s.StartingCapital,
		FinalCapital:       s.Capital,
		TotalReturnPercent: totalReturn,
		TotalTrades:        len(s.Trades),
		WinRatePercent:     winRate,
		StartedAt:          s.StartedAt,
		StoppedAt:          &stopped,
	}

	return types.PaperSession{
		Active:      false,
		Symbols:     []string{},
		Positions:   []types.PaperPosition{},
		Trades:      []types.PaperTrade{},
		LastSession: &summary,
	}, summary, nil
}

// PricedPosition is an open position repriced against a current quote.
type PricedPosition struct {
	types.PaperPosition
	CurrentPrice  decimal.Decimal
	MarketValue   decimal.Decimal
	UnrealizedPnL decimal.Decimal
	PnLPercent    float64
}

// Status is the session reported as of now.
type Status struct {
	Active             bool
	StrategyName       string
	Symbols            []string
	StartingCapital    float64
	Cash               float64
	PositionValue      float64
	TotalValue         float64
	TotalReturnPercent float64
	Positions          []PricedPosition
	TradeCount         int
	StartedAt          *time.Time
	LastSession        *types.SessionSummary
}

// GetStatus reports an active session with open positions repriced via the
// quote provider, or the last completed summary when inactive. A position
// whose quote cannot be fetched is valued at its entry price.
func GetStatus(ctx context.Context, s types.PaperSession, quotes QuoteProvider) Status {
	if !s.Active {
		return Status{Active: false, LastSession: s.LastSession}
	}

	status := Status{
		Active:          true,
		StrategyName:    s.StrategyName,
		Symbols:         s.Symbols,
		StartingCapital: s.StartingCapital,
		Cash:            s.Capital,
		TradeCount:      len(s.Trades),
		StartedAt:       s.StartedAt,
	}

	positionValue := decimal.Zero
	for _, pos := range s.Positions {
		price := pos.EntryPrice
		if quotes != nil {
			if q, err := quotes.GetQuote(ctx, pos.Symbol); err == nil && q.Price > 0 {
				price = decimal.NewFromFloat(q.Price)
			}
		}

		entryValue := pos.EntryPrice.Mul(pos.Shares)
		marketValue := price.Mul(pos.Shares)
		pnl := marketValue.Sub(entryValue)
		pnlPct := 0.0
		if entryValue.IsPositive() {
			pnlPct, _ = pnl.Div(entryValue).Mul(decimal.NewFromInt(100)).Float64()
		}

		status.Positions = append(status.Positions, PricedPosition{
			PaperPosition: pos,
			CurrentPrice:  price,
			MarketValue:   marketValue,
			UnrealizedPnL: pnl,
			PnLPercent:    pnlPct,
		})
		positionValue = positionValue.Add(marketValue)
	}

	status.PositionValue, _ = positionValue.Float64()
	status.TotalValue = status.Cash + status.PositionValue
	if s.StartingCapital > 0 {
		status.TotalReturnPercent = (status.TotalValue - s.StartingCapital) / s.StartingCapital * 100
	}
	return status
}
