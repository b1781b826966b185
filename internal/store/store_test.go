package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"quantfolio/types"
)

func TestPortfolioStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "portfolio.json")
	s := NewPortfolioStore(path)

	p := types.NewPortfolio()
	p.Positions = []types.Position{
		{Symbol: "AAPL", Shares: decimal.RequireFromString("10.5"), CostBasis: decimal.RequireFromString("150.25")},
	}
	p.Cash = decimal.RequireFromString("5000")

	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Positions) != 1 {
		t.Fatalf("len(Positions) = %d, want 1", len(loaded.Positions))
	}
	got := loaded.Positions[0]
	if got.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", got.Symbol)
	}
	if !got.Shares.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("Shares = %s, want 10.5", got.Shares)
	}
	if !got.CostBasis.Equal(decimal.RequireFromString("150.25")) {
		t.Errorf("CostBasis = %s, want 150.25", got.CostBasis)
	}
	if !loaded.Cash.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("Cash = %s, want 5000", loaded.Cash)
	}
	if loaded.CreatedAt == nil || loaded.UpdatedAt == nil {
		t.Error("timestamps not stamped on save")
	}
}

func TestPortfolioStoreMissingFile(t *testing.T) {
	s := NewPortfolioStore(filepath.Join(t.TempDir(), "absent.json"))

	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Positions) != 0 {
		t.Errorf("len(Positions) = %d, want 0", len(p.Positions))
	}
	if !p.Cash.IsZero() {
		t.Errorf("Cash = %s, want 0", p.Cash)
	}
}

func TestPortfolioStoreLegacyListFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	legacy := `[
  {"symbol": "AAPL", "shares": "10", "cost_basis": "150.5"},
  {"symbol": "MSFT", "shares": "5", "cost_basis": "300"}
]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := NewPortfolioStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Positions) != 2 {
		t.Fatalf("len(Positions) = %d, want 2", len(p.Positions))
	}
	if p.Positions[1].Symbol != "MSFT" {
		t.Errorf("Symbol = %q, want MSFT", p.Positions[1].Symbol)
	}
	if !p.Positions[0].CostBasis.Equal(decimal.RequireFromString("150.5")) {
		t.Errorf("CostBasis = %s, want 150.5", p.Positions[0].CostBasis)
	}
	if !p.Cash.IsZero() {
		t.Errorf("Cash = %s, want 0 for legacy documents", p.Cash)
	}
}

func TestPortfolioStoreCreatedAtStable(t *testing.T) {
	s := NewPortfolioStore(filepath.Join(t.TempDir(), "portfolio.json"))

	if err := s.Save(types.NewPortfolio()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.Save(first); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second, err := s.Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}

	if !second.CreatedAt.Equal(*first.CreatedAt) {
		t.Errorf("CreatedAt changed across saves: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestPortfolioStoreEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "from-env.json")
	t.Setenv(portfolioFileEnv, path)

	s := NewPortfolioStore("")
	if err := s.Save(types.NewPortfolio()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("document not written to env path: %v", err)
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	s := NewSessionStore(filepath.Join(t.TempDir(), "paper.json"))

	sess := types.PaperSession{
		Active:          true,
		Strategy:        types.Momentum,
		StrategyName:    "Momentum",
		Symbols:         []string{"AAPL"},
		StartingCapital: 100000,
		Capital:         98000,
		Positions: []types.PaperPosition{
			{Symbol: "AAPL", Shares: decimal.RequireFromString("20"), EntryPrice: decimal.RequireFromString("100")},
		},
	}
	if err := s.Save(sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Active {
		t.Error("Active not persisted")
	}
	if loaded.Strategy != types.Momentum {
		t.Errorf("Strategy = %q, want %q", loaded.Strategy, types.Momentum)
	}
	if loaded.Capital != 98000 {
		t.Errorf("Capital = %v, want 98000", loaded.Capital)
	}
	if len(loaded.Positions) != 1 || !loaded.Positions[0].EntryPrice.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Positions = %+v, want entry at 100", loaded.Positions)
	}
	if loaded.UpdatedAt == nil {
		t.Error("UpdatedAt not stamped on save")
	}
}

func TestSessionStoreMissingFile(t *testing.T) {
	sess, err := NewSessionStore(filepath.Join(t.TempDir(), "absent.json")).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.Active {
		t.Error("missing document should load as inactive")
	}
}
