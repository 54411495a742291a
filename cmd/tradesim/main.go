package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tradesim/internal/broker"
	"tradesim/internal/config"
	"tradesim/internal/feed"
	"tradesim/internal/indicator"
	"tradesim/internal/journal"
	"tradesim/internal/log"
	"tradesim/internal/market"
	"tradesim/internal/replay"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径，默认使用 configs/config.yaml")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("模拟运行异常", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("模拟运行结束")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	receiptJournal, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := receiptJournal.Close(); closeErr != nil {
			logger.Warn("关闭回执流水库失败", zap.Error(closeErr))
		}
	}()

	var provider market.HistoricalProvider
	if cfg.Market.Source == market.SourceYahoo {
		client, err := feed.NewClient(cfg.Feed, logger)
		if err != nil {
			return err
		}
		provider = client
	}

	query, err := market.NewQuery(
		cfg.Market.Symbol,
		cfg.Market.TimeFrame,
		cfg.Market.StartDate,
		cfg.Market.EndDate,
		market.QueryOptions{
			Frequency: cfg.Market.Frequency,
			Source:    cfg.Market.Source,
			Provider:  provider,
		},
	)
	if err != nil {
		return err
	}

	frame, err := query.Fetch(ctx)
	if err != nil {
		return err
	}
	logger.Info("历史数据获取完成",
		zap.String("symbol", query.Symbol()),
		zap.Int("rows", frame.Nrow()),
		zap.Strings("columns", frame.Names()),
	)

	connector := broker.NewMockConnector(broker.MockOptions{
		InitialCash: cfg.Broker.InitialCash,
		MarketPrice: cfg.Broker.MarketPrice,
		Recorder:    receiptJournal,
	}, logger)

	bars := demoBars(cfg.Market.StartDate, frame.Nrow())

	if summary, err := indicator.Compute(bars); err == nil {
		logger.Info("指标摘要",
			zap.Float64("sma20", summary.SMA20),
			zap.Float64("rsi14", summary.RSI14),
			zap.Float64("close", summary.Close),
		)
	}

	engine, err := replay.NewEngine(
		replay.Config{Symbol: cfg.Market.Symbol, Quantity: 10},
		connector,
		replay.Momentum(cfg.Market.Symbol, 10),
		logger,
	)
	if err != nil {
		return err
	}

	result, err := engine.Run(ctx, bars)
	if err != nil {
		return err
	}

	logger.Info("重放完成",
		zap.Int("bars", result.BarsVisited),
		zap.Int("submitted", result.Submitted),
		zap.Int("filled", result.Filled),
		zap.Float64("final_cash", result.FinalCash),
		zap.Any("positions", result.Positions),
	)

	receipts, err := receiptJournal.List()
	if err != nil {
		return err
	}
	logger.Info("回执流水", zap.Int("count", len(receipts)))

	return nil
}

// demoBars 基于合成价格序列构造交替涨跌的K线，供重放演示使用。
func demoBars(startDate string, count int) []market.Bar {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil || count <= 0 {
		return nil
	}

	bars := make([]market.Bar, count)
	for i := 0; i < count; i++ {
		price := 100 + float64(i)*0.5
		openDelta := 0.2
		if i%2 == 0 {
			openDelta = -0.2
		}
		bars[i] = market.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price + openDelta,
			High:   price + 0.5,
			Low:    price - 0.5,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars
}
