package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tradesim/internal/market"
)

type fakeProvider struct {
	bars map[string][]market.Bar
	err  error
}

func (p *fakeProvider) History(_ context.Context, symbol string, _, _ time.Time, _ string) ([]market.Bar, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.bars[symbol], nil
}

func TestServiceHistoryMany_CollectsAllSymbols(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{
		bars: map[string][]market.Bar{
			"AAPL": {{Date: start, Close: 100}},
			"MSFT": {{Date: start, Close: 200}, {Date: start.AddDate(0, 0, 1), Close: 201}},
		},
	}

	service := NewService(provider, nil)
	results, err := service.HistoryMany(context.Background(), []string{"AAPL", "MSFT"}, start, start.AddDate(0, 0, 5), "1d")
	if err != nil {
		t.Fatalf("HistoryMany returned error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("unexpected result count: got %d want 2", len(results))
	}
	if len(results["AAPL"]) != 1 || len(results["MSFT"]) != 2 {
		t.Errorf("unexpected bar counts: AAPL=%d MSFT=%d", len(results["AAPL"]), len(results["MSFT"]))
	}
}

func TestServiceHistoryMany_PropagatesError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	service := NewService(provider, nil)

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.HistoryMany(context.Background(), []string{"AAPL"}, start, start, "1d")
	if err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestEstimateLimit(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := estimateLimit(start, start.AddDate(0, 0, 10), "1d"); got != 11 {
		t.Errorf("unexpected limit for 10 days of 1d: got %d want 11", got)
	}
	if got := estimateLimit(start, start, "1d"); got != 1 {
		t.Errorf("unexpected limit for zero span: got %d want 1", got)
	}
	if got := estimateLimit(start, start.AddDate(10, 0, 0), "1h"); got != maxCandlesPerRequest {
		t.Errorf("limit must be capped, got %d", got)
	}
	if got := estimateLimit(start, start.AddDate(0, 0, 1), "unknown"); got != maxCandlesPerRequest {
		t.Errorf("unknown interval falls back to cap, got %d", got)
	}
}
