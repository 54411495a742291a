package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		App: AppConfig{Environment: "test"},
		Market: MarketConfig{
			Symbol:    "DEMO",
			TimeFrame: "D1",
			StartDate: "2023-01-01",
			EndDate:   "2023-01-31",
			Frequency: "1d",
			Source:    "test",
		},
		Feed: FeedConfig{
			Name:   "binance",
			Market: "BTC/USDT",
			Retry: RetryConfig{
				MaxAttempts: 3,
				MinDelay:    100 * time.Millisecond,
				MaxDelay:    time.Second,
			},
		},
		Broker:  BrokerConfig{InitialCash: 100000, MarketPrice: 100},
		Journal: JournalConfig{InMemory: true, MaxOpenConns: 1},
		Logging: LoggingConfig{
			Level:            "info",
			Encoding:         "console",
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		},
	}
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidate_RejectsIncompleteConfig(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = ""
	cfg.Broker.InitialCash = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "app.environment") {
		t.Errorf("error must mention app.environment, got %v", err)
	}
	if !strings.Contains(err.Error(), "broker.initial_cash") {
		t.Errorf("error must mention broker.initial_cash, got %v", err)
	}
}

func TestValidate_RetryOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Feed.Retry.MinDelay = 2 * time.Second
	cfg.Feed.Retry.MaxDelay = time.Second

	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "min_delay") {
		t.Fatalf("expected retry ordering error, got %v", err)
	}
}

func TestLoad_ReadsFileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  environment: test
market:
  symbol: AAPL
broker:
  initial_cash: 50000.0
journal:
  in_memory: true
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Market.Symbol != "AAPL" {
		t.Errorf("unexpected symbol: got %s want AAPL", cfg.Market.Symbol)
	}
	if cfg.Broker.InitialCash != 50000.0 {
		t.Errorf("unexpected initial cash: got %f", cfg.Broker.InitialCash)
	}
	// 未出现在文件中的键回落到默认值。
	if cfg.Market.Frequency != "1d" {
		t.Errorf("unexpected default frequency: got %s", cfg.Market.Frequency)
	}
	if cfg.Feed.Retry.MinDelay != 500*time.Millisecond {
		t.Errorf("unexpected default retry min delay: got %v", cfg.Feed.Retry.MinDelay)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
