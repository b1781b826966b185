package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a single equity holding. CostBasis is the average price paid
// per share, updated by weighted averaging on every additional purchase.
type Position struct {
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	CostBasis decimal.Decimal `json:"cost_basis"`
}

// Portfolio is the persisted source of truth for holdings. Positions are kept
// in insertion order, keyed by uppercased symbol.
type Portfolio struct {
	Positions []Position      `json:"positions"`
	Cash      decimal.Decimal `json:"cash"`
	CreatedAt *time.Time      `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
}

func NewPortfolio() Portfolio {
	return Portfolio{
		Positions: make([]Position, 0),
		Cash:      decimal.Zero,
	}
}

// Find returns the index of the position holding symbol, or -1.
func (p *Portfolio) Find(symbol string) int {
	for i := range p.Positions {
		if p.Positions[i].Symbol == symbol {
			return i
		}
	}
	return -1
}
