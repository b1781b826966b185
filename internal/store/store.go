// Package store persists the portfolio and paper-session documents as JSON
// files. It owns all file I/O at the boundary: core packages receive and
// return plain values.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"quantfolio/types"
)

const (
	portfolioFileEnv = "QUANTFOLIO_PORTFOLIO_FILE"
	paperFileEnv     = "QUANTFOLIO_PAPER_FILE"
)

func defaultPath(env, name string) string {
	if p := os.Getenv(env); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".quantfolio", name)
}

func writeDocument(path string, doc any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// PortfolioStore reads and writes the single portfolio document.
type PortfolioStore struct {
	path string
}

// NewPortfolioStore uses path when non-empty, otherwise the
// QUANTFOLIO_PORTFOLIO_FILE environment variable, otherwise
// ~/.quantfolio/portfolio.json.
func NewPortfolioStore(path string) *PortfolioStore {
	if path == "" {
		path = defaultPath(portfolioFileEnv, "portfolio.json")
	}
	return &PortfolioStore{path: path}
}

// Load returns the stored portfolio, or an empty one when no document
// exists yet. The legacy on-disk format, a bare list of positions, is still
// accepted and read as a portfolio with zero cash.
func (s *PortfolioStore) Load() (types.Portfolio, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.NewPortfolio(), nil
	}
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("read portfolio %q: %w", s.path, err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var positions []types.Position
		if err := json.Unmarshal(data, &positions); err != nil {
			return types.Portfolio{}, fmt.Errorf("decode legacy portfolio %q: %w", s.path, err)
		}
		p := types.NewPortfolio()
		p.Positions = positions
		return p, nil
	}

	var p types.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return types.Portfolio{}, fmt.Errorf("decode portfolio %q: %w", s.path, err)
	}
	return p, nil
}

// Save overwrites the document, stamping CreatedAt on the first write and
// UpdatedAt on every write.
func (s *PortfolioStore) Save(p types.Portfolio) error {
	now := time.Now()
	if p.CreatedAt == nil {
		p.CreatedAt = &now
	}
	p.UpdatedAt = &now
	return writeDocument(s.path, p)
}

// SessionStore reads and writes the paper trading session document.
type SessionStore struct {
	path string
}

// NewSessionStore uses path when non-empty, otherwise the
// QUANTFOLIO_PAPER_FILE environment variable, otherwise
// ~/.quantfolio/paper_trading.json.
func NewSessionStore(path string) *SessionStore {
	if path == "" {
		path = defaultPath(paperFileEnv, "paper_trading.json")
	}
	return &SessionStore{path: path}
}

// Load returns the stored session, or an inactive empty one when no
// document exists yet.
func (s *SessionStore) Load() (types.PaperSession, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.PaperSession{}, nil
	}
	if err != nil {
		return types.PaperSession{}, fmt.Errorf("read paper session %q: %w", s.path, err)
	}
	var sess types.PaperSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return types.PaperSession{}, fmt.Errorf("decode paper session %q: %w", s.path, err)
	}
	return sess, nil
}

// Save overwrites the session document, stamping UpdatedAt.
func (s *SessionStore) Save(sess types.PaperSession) error {
	now := time.Now()
	sess.UpdatedAt = &now
	return writeDocument(s.path, sess)
}
