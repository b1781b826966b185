package types

// BacktestReport summarizes a single-pass strategy replay over daily closes.
type BacktestReport struct {
	Strategy           Strategy `json:"strategy"`
	StrategyName       string   `json:"strategy_name"`
	Symbols            []string `json:"symbols"`
	TotalReturnPercent float64  `json:"total_return_percent"`
	SharpeRatio        float64  `json:"sharpe_ratio"`
	MaxDrawdownPercent float64  `json:"max_drawdown_percent"`
	TotalTrades        int      `json:"total_trades"`
	WinRatePercent     float64  `json:"win_rate_percent"`
}
