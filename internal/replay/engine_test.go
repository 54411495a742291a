package replay

import (
	"context"
	"math"
	"testing"
	"time"

	"tradesim/internal/broker"
	"tradesim/internal/market"
	"tradesim/internal/order"
)

func makeBars() []market.Bar {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return []market.Bar{
		{Date: start, Open: 100, Close: 101, High: 102, Low: 99, Volume: 1000},                  // 阳线
		{Date: start.AddDate(0, 0, 1), Open: 101, Close: 100, High: 102, Low: 99, Volume: 900}, // 阴线
		{Date: start.AddDate(0, 0, 2), Open: 100, Close: 100, High: 101, Low: 99, Volume: 800}, // 十字星
	}
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	connector := broker.NewMockConnector(broker.MockOptions{}, nil)

	if _, err := NewEngine(Config{}, nil, Momentum("AAPL", 1), nil); err == nil {
		t.Errorf("expected error for nil connector")
	}
	if _, err := NewEngine(Config{}, connector, nil, nil); err == nil {
		t.Errorf("expected error for nil strategy")
	}
}

func TestEngineRun_MomentumThroughMockBroker(t *testing.T) {
	connector := broker.NewMockConnector(broker.MockOptions{}, nil)
	engine, err := NewEngine(Config{Symbol: "AAPL", Quantity: 10}, connector, Momentum("AAPL", 10), nil)
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}

	result, err := engine.Run(context.Background(), makeBars())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.BarsVisited != 3 {
		t.Errorf("unexpected bars visited: got %d want 3", result.BarsVisited)
	}
	if result.Submitted != 2 || result.Filled != 2 {
		t.Errorf("unexpected counts: submitted=%d filled=%d", result.Submitted, result.Filled)
	}
	// 买10股卖10股，价格固定为100，现金回到原点。
	if math.Abs(result.FinalCash-100000.0) > 1e-9 {
		t.Errorf("unexpected final cash: got %f want 100000.0", result.FinalCash)
	}
	if result.Positions["AAPL"] != 0 {
		t.Errorf("unexpected final position: got %g want 0", result.Positions["AAPL"])
	}
	if len(result.Receipts) != 2 {
		t.Errorf("unexpected receipt count: got %d want 2", len(result.Receipts))
	}
}

func TestEngineRun_UnfilledOrdersCountedAsSubmitted(t *testing.T) {
	connector := broker.NewMockConnector(broker.MockOptions{}, nil)

	strategy := StrategyFunc(func(bar market.Bar, _ broker.AccountInfo) *order.Order {
		// 限价远低于固定市场价，永远不会成交。
		return order.NewLimit("AAPL", "buy", 1, 10)
	})

	engine, err := NewEngine(Config{Symbol: "AAPL"}, connector, strategy, nil)
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}

	result, err := engine.Run(context.Background(), makeBars()[:1])
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Submitted != 1 || result.Filled != 0 {
		t.Errorf("unexpected counts: submitted=%d filled=%d", result.Submitted, result.Filled)
	}
	if result.FinalCash != 100000.0 {
		t.Errorf("ledger must be untouched, got %f", result.FinalCash)
	}
}

func TestEngineRun_CancelledContext(t *testing.T) {
	connector := broker.NewMockConnector(broker.MockOptions{}, nil)
	engine, err := NewEngine(Config{Symbol: "AAPL"}, connector, Momentum("AAPL", 1), nil)
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Run(ctx, makeBars()); err == nil {
		t.Fatalf("expected context error")
	}
}
