package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaperPosition is an open simulated holding inside a paper trading session.
type PaperPosition struct {
	Symbol     string          `json:"symbol"`
	Shares     decimal.Decimal `json:"shares"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	OpenedAt   *time.Time      `json:"opened_at,omitempty"`
}

// PaperTrade is a completed round trip recorded during a session.
type PaperTrade struct {
	Symbol   string          `json:"symbol"`
	Shares   decimal.Decimal `json:"shares"`
	Entry    decimal.Decimal `json:"entry_price"`
	Exit     decimal.Decimal `json:"exit_price"`
	PnL      decimal.Decimal `json:"pnl"`
	ClosedAt *time.Time      `json:"closed_at,omitempty"`
}

// SessionSummary is the retained result of the last completed session.
type SessionSummary struct {
	Strategy           Strategy   `json:"strategy"`
	StrategyName       string     `json:"strategy_name"`
	Symbols            []string   `json:"symbols"`
	StartingCapital    float64    `json:"starting_capital"`
	FinalCapital       float64    `json:"final_capital"`
	TotalReturnPercent float64    `json:"total_return_percent"`
	TotalTrades        int        `json:"total_trades"`
	WinRatePercent     float64    `json:"win_rate_percent"`
	StartedAt          *time.Time `json:"started_at"`
	StoppedAt          *time.Time `json:"stopped_at"`
}

// PaperSession is the persisted paper trading state machine. The whole record
// is overwritten on every transition; LastSession is the only history kept.
type PaperSession struct {
	Active          bool            `json:"active"`
	Strategy        Strategy        `json:"strategy,omitempty"`
	StrategyName    string          `json:"strategy_name,omitempty"`
	Symbols         []string        `json:"symbols"`
	StartingCapital float64         `json:"starting_capital"`
	Capital         float64         `json:"capital"`
	Positions       []PaperPosition `json:"positions"`
	Trades          []PaperTrade    `json:"trades"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	LastSession     *SessionSummary `json:"last_session,omitempty"`
}
