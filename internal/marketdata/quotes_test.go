package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol query = %q, want AAPL", got)
		}
		w.Write([]byte(`{"price": 187.5, "change_percent": -1.25}`))
	}))
	defer srv.Close()

	p := NewQuoteProvider(srv.URL + "/quote?symbol=%s")
	q, err := p.GetQuote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", q.Symbol)
	}
	if q.Price != 187.5 {
		t.Errorf("Price = %v, want 187.5", q.Price)
	}
	if q.ChangePercent != -1.25 {
		t.Errorf("ChangePercent = %v, want -1.25", q.ChangePercent)
	}
}

func TestGetQuoteStringPrice(t *testing.T) {
	// Some providers return stringified numbers with a comma decimal mark.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": "187,50", "change_percent": "0,85"}`))
	}))
	defer srv.Close()

	q, err := NewQuoteProvider(srv.URL + "/%s").GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 187.5 {
		t.Errorf("Price = %v, want 187.5", q.Price)
	}
	if q.ChangePercent != 0.85 {
		t.Errorf("ChangePercent = %v, want 0.85", q.ChangePercent)
	}
}

func TestGetQuoteCustomPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"last": [42.25], "delta": 0.4}}`))
	}))
	defer srv.Close()

	p := NewQuoteProvider(srv.URL + "/%s")
	p.PricePath = "$.data.last"
	p.ChangePath = "$.data.delta"

	q, err := p.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 42.25 {
		t.Errorf("Price = %v, want 42.25", q.Price)
	}
	if q.ChangePercent != 0.4 {
		t.Errorf("ChangePercent = %v, want 0.4", q.ChangePercent)
	}
}

func TestGetQuoteMissingChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": 10}`))
	}))
	defer srv.Close()

	q, err := NewQuoteProvider(srv.URL + "/%s").GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ChangePercent != 0 {
		t.Errorf("ChangePercent = %v, want 0 when absent", q.ChangePercent)
	}
}

func TestGetQuoteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewQuoteProvider(srv.URL + "/%s").GetQuote(context.Background(), "AAPL"); err == nil {
		t.Error("expected error on 404 response")
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"last": 10}`))
	}))
	defer bad.Close()

	if _, err := NewQuoteProvider(bad.URL + "/%s").GetQuote(context.Background(), "AAPL"); err == nil {
		t.Error("expected error when price path is missing")
	}
}
