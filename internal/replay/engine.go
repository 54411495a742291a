package replay

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tradesim/internal/broker"
	"tradesim/internal/market"
	"tradesim/internal/order"
)

// Strategy 针对每根K线决定是否下单，返回 nil 表示观望。
type Strategy interface {
	Decide(bar market.Bar, account broker.AccountInfo) *order.Order
}

// StrategyFunc 允许使用函数作为策略。
type StrategyFunc func(bar market.Bar, account broker.AccountInfo) *order.Order

func (f StrategyFunc) Decide(bar market.Bar, account broker.AccountInfo) *order.Order {
	if f == nil {
		return nil
	}
	return f(bar, account)
}

// Momentum 返回最朴素的动量策略：阳线买入、阴线卖出、十字星
// 观望，始终以市价单提交固定数量。
func Momentum(symbol string, quantity float64) StrategyFunc {
	return func(bar market.Bar, _ broker.AccountInfo) *order.Order {
		switch {
		case bar.IsBullish():
			return order.NewMarket(symbol, "buy", quantity)
		case bar.IsBearish():
			return order.NewMarket(symbol, "sell", quantity)
		default:
			return nil
		}
	}
}

// Config 定义一次重放的参数。
type Config struct {
	Symbol   string
	Quantity float64
}

func (c *Config) normalize() Config {
	cfg := *c
	if cfg.Quantity <= 0 {
		cfg.Quantity = 1
	}
	return cfg
}

// Result 汇总重放结果。
type Result struct {
	Submitted   int
	Filled      int
	FinalCash   float64
	Positions   map[string]float64
	Receipts    []order.Receipt
	BarsVisited int
}

// Engine 将一段K线逐根喂给策略，并把产生的订单提交到券商。
type Engine struct {
	cfg       Config
	connector broker.Connector
	strategy  Strategy
	logger    *zap.Logger
}

// NewEngine 构建重放引擎。
func NewEngine(cfg Config, connector broker.Connector, strategy Strategy, logger *zap.Logger) (*Engine, error) {
	if connector == nil {
		return nil, errors.New("replay: connector 不能为空")
	}
	if strategy == nil {
		return nil, errors.New("replay: strategy 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		cfg:       cfg.normalize(),
		connector: connector,
		strategy:  strategy,
		logger:    logger,
	}, nil
}

// Run 按顺序重放K线。策略观望的K线不产生委托；提交失败立即
// 终止并返回错误。
func (e *Engine) Run(ctx context.Context, bars []market.Bar) (Result, error) {
	result := Result{}

	for _, bar := range bars {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.BarsVisited++

		o := e.strategy.Decide(bar, e.connector.GetAccountInfo())
		if o == nil {
			continue
		}

		receipt, err := e.connector.SubmitOrder(o)
		if err != nil {
			return result, fmt.Errorf("replay: 提交订单失败: %w", err)
		}

		result.Submitted++
		if receipt.Status == order.StatusFilled {
			result.Filled++
		}
		result.Receipts = append(result.Receipts, receipt)

		e.logger.Debug("重放提交订单",
			zap.Time("bar", bar.Date),
			zap.String("side", string(receipt.Side)),
			zap.String("status", string(receipt.Status)),
		)
	}

	account := e.connector.GetAccountInfo()
	result.FinalCash = account.CashBalance
	result.Positions = account.Positions

	return result, nil
}
