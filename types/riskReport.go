package types

// RiskReport is the output of the parametric risk engine. VaR and CVaR are
// positive amounts for a loss at the given confidence level; drawdown is a
// negative percentage (or zero).
type RiskReport struct {
	Confidence             float64 `json:"confidence_level"`
	VaR                    float64 `json:"var"`
	VaRPercent             float64 `json:"var_percent"`
	CVaR                   float64 `json:"cvar"`
	CVaRPercent            float64 `json:"cvar_percent"`
	SharpeRatio            float64 `json:"sharpe_ratio"`
	SortinoRatio           float64 `json:"sortino_ratio"`
	MaxDrawdownPercent     float64 `json:"max_drawdown_percent"`
	VolatilityPercent      float64 `json:"volatility_percent"`
	DailyMeanReturnPercent float64 `json:"daily_mean_return_percent"`
	TotalPortfolioValue    float64 `json:"total_portfolio_value"`
}
