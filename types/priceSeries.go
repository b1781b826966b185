package types

// PriceSeries is a chronological sequence of daily closing prices for one
// symbol, supplied by a market-data collaborator. Read-only to the core.
type PriceSeries struct {
	Symbol string    `json:"symbol"`
	Closes []float64 `json:"closes"`
}

// Quote is the normalized shape of a provider's current price payload.
// Provider adapters map whatever they receive into this before it reaches
// the core.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}
