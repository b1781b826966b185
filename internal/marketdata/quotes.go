package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"quantfolio/types"
)

// QuoteProvider fetches current quotes over HTTP and normalizes whatever
// shape the provider returns into types.Quote, so nothing downstream ever
// branches on provider-specific payloads. The JSONPath expressions are
// configurable per provider.
type QuoteProvider struct {
	Client *http.Client
	// URLTemplate receives the symbol, e.g. "https://host/quote?symbol=%s".
	URLTemplate string
	PricePath   string
	ChangePath  string
}

func NewQuoteProvider(urlTemplate string) *QuoteProvider {
	return &QuoteProvider{
		Client:      http.DefaultClient,
		URLTemplate: urlTemplate,
		PricePath:   "$.price",
		ChangePath:  "$.change_percent",
	}
}

// GetQuote fetches and normalizes the current quote for symbol.
func (p *QuoteProvider) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	symbol = strings.ToUpper(symbol)
	addr := fmt.Sprintf(p.URLTemplate, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return types.Quote{}, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return types.Quote{}, fmt.Errorf("error retrieving quote %q: %w", symbol, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return types.Quote{}, fmt.Errorf("quote %q: unexpected status %s", symbol, resp.Status)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return types.Quote{}, fmt.Errorf("quote %q: decode: %w", symbol, err)
	}

	price, err := extractNumber(jobj, p.PricePath)
	if err != nil {
		return types.Quote{}, fmt.Errorf("quote %q: %w", symbol, err)
	}
	// Change percent is optional in several provider payloads.
	change, err := extractNumber(jobj, p.ChangePath)
	if err != nil {
		log.Printf("quote %q: no change percent (%v), using 0", symbol, err)
		change = 0
	}

	return types.Quote{Symbol: symbol, Price: price, ChangePercent: change}, nil
}

// extractNumber evaluates a JSONPath expression and coerces the result to a
// float. Providers variously return numbers, stringified numbers, and
// single-element lists, so all three are accepted.
func extractNumber(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("path %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		v = strings.ReplaceAll(v, ",", ".")
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("path %q: not a number: %q", path, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("path %q: unexpected value %v", path, jval)
	}
}
