// Package ledger implements the position ledger: add with cost-basis
// averaging, remove, and valuation against externally supplied quotes.
// Operations take a Portfolio value in and return the updated value out;
// persistence belongs to the store.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"quantfolio/types"
)

var (
	ErrPositionNotFound = errors.New("position not found")
	ErrNegativeAmount   = errors.New("shares and cost basis must be non-negative")
)

// Add creates a position for symbol or merges into an existing one. On a
// merge both shares and cost basis are updated, the cost basis by weighted
// average across old and new shares.
func Add(p types.Portfolio, symbol string, shares, costBasis decimal.Decimal) (types.Portfolio, types.Position, error) {
	if shares.IsNegative() || costBasis.IsNegative() {
		return p, types.Position{}, ErrNegativeAmount
	}
	symbol = strings.ToUpper(symbol)

	i := p.Find(symbol)
	if i < 0 {
		pos := types.Position{Symbol: symbol, Shares: shares, CostBasis: costBasis}
		p.Positions = append(append([]types.Position(nil), p.Positions...), pos)
		return p, pos, nil
	}

	old := p.Positions[i]
	totalShares := old.Shares.Add(shares)
	avgCost := decimal.Zero
	if totalShares.IsPositive() {
		avgCost = old.Shares.Mul(old.CostBasis).
			Add(shares.Mul(costBasis)).
			Div(totalShares)
	}

	pos := types.Position{Symbol: symbol, Shares: totalShares, CostBasis: avgCost}
	positions := append([]types.Position(nil), p.Positions...)
	positions[i] = pos
	p.Positions = positions
	return p, pos, nil
}

// Remove deletes the position for symbol wholesale and returns it.
func Remove(p types.Portfolio, symbol string) (types.Portfolio, types.Position, error) {
	symbol = strings.ToUpper(symbol)
	i := p.Find(symbol)
	if i < 0 {
		return p, types.Position{}, fmt.Errorf("%w: %s", ErrPositionNotFound, symbol)
	}
	removed := p.Positions[i]
	positions := append([]types.Position(nil), p.Positions[:i]...)
	positions = append(positions, p.Positions[i+1:]...)
	p.Positions = positions
	return p, removed, nil
}

// PositionValue is one holding priced against a current quote.
type PositionValue struct {
	Position        types.Position
	CurrentPrice    decimal.Decimal
	MarketValue     decimal.Decimal
	GainLoss        decimal.Decimal
	GainLossPercent float64
}

// Valuation is the portfolio repriced as of now.
type Valuation struct {
	Positions   []PositionValue
	Cash        decimal.Decimal
	MarketValue decimal.Decimal // positions only
	TotalCost   decimal.Decimal
	TotalValue  decimal.Decimal // positions plus cash
}

// Value reprices every position against quotes. A symbol without a usable
// quote is valued at its cost basis.
func Value(p types.Portfolio, quotes map[string]types.Quote) Valuation {
	v := Valuation{
		Positions:   make([]PositionValue, 0, len(p.Positions)),
		Cash:        p.Cash,
		MarketValue: decimal.Zero,
		TotalCost:   decimal.Zero,
	}
	for _, pos := range p.Positions {
		price := pos.CostBasis
		if q, ok := quotes[pos.Symbol]; ok && q.Price > 0 {
			price = decimal.NewFromFloat(q.Price)
		}

		cost := pos.Shares.Mul(pos.CostBasis)
		market := pos.Shares.Mul(price)
		gain := market.Sub(cost)

		gainPct := 0.0
		if cost.IsPositive() {
			gainPct, _ = gain.Div(cost).Mul(decimal.NewFromInt(100)).Float64()
		}

		v.Positions = append(v.Positions, PositionValue{
			Position:        pos,
			CurrentPrice:    price,
			MarketValue:     market,
			GainLoss:        gain,
			GainLossPercent: gainPct,
		})
		v.MarketValue = v.MarketValue.Add(market)
		v.TotalCost = v.TotalCost.Add(cost)
	}
	v.TotalValue = v.MarketValue.Add(v.Cash)
	return v
}

// Weights returns each position's market-value fraction of total portfolio
// value, in valuation order. The fractions sum to at most 1; any cash balance
// is the remainder and contributes zero return.
func Weights(v Valuation) []float64 {
	weights := make([]float64, len(v.Positions))
	if !v.TotalValue.IsPositive() {
		return weights
	}
	for i, pv := range v.Positions {
		weights[i], _ = pv.MarketValue.Div(v.TotalValue).Float64()
	}
	return weights
}
