package broker

import (
	"context"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"tradesim/internal/order"
)

const (
	defaultInitialCash = 100000.0
	defaultMarketPrice = 100.0

	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// MockOptions 控制模拟券商的初始状态，零值回落到默认值。
type MockOptions struct {
	InitialCash float64
	MarketPrice float64
	Recorder    ReceiptRecorder
}

// MockConnector 是内存实现的模拟券商：维护现金、持仓与委托
// 历史，用固定的内部市场价格撮合全部订单。资金与持仓在同一
// 临界区内一起更新，保证多线程宿主下三项状态的一致性。
type MockConnector struct {
	mu           sync.Mutex
	cashBalance  float64
	positions    map[string]float64
	orderHistory []*order.Order
	currentPrice float64
	recorder     ReceiptRecorder
	logger       *zap.Logger
}

// NewMockConnector 创建模拟券商。
func NewMockConnector(opts MockOptions, logger *zap.Logger) *MockConnector {
	if logger == nil {
		logger = zap.NewNop()
	}
	cash := opts.InitialCash
	if cash <= 0 {
		cash = defaultInitialCash
	}
	price := opts.MarketPrice
	if price <= 0 {
		price = defaultMarketPrice
	}

	return &MockConnector{
		cashBalance:  cash,
		positions:    make(map[string]float64),
		currentPrice: price,
		recorder:     opts.Recorder,
		logger:       logger,
	}
}

// GetMarketData 生成日频合成行情：[start, end] 闭区间内每天
// 一行，列为 {date, symbol, price}，价格从100起每行递增0.5。
func (c *MockConnector) GetMarketData(ctx context.Context, symbol string, start, end time.Time) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	var dateCol []string
	var symbolCol []string
	var priceCol []float64
	i := 0
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		dateCol = append(dateCol, t.Format(dateLayout))
		symbolCol = append(symbolCol, symbol)
		priceCol = append(priceCol, 100+float64(i)*0.5)
		i++
	}

	return dataframe.New(
		series.New(dateCol, series.String, "date"),
		series.New(symbolCol, series.String, "symbol"),
		series.New(priceCol, series.Float, "price"),
	), nil
}

// SubmitOrder 按内部市场价格执行订单。无论成交与否订单都会
// 进入历史记录；只有转为 filled 的订单才会触动资金与持仓，
// 且两者在同一次加锁內一起更新。
func (c *MockConnector) SubmitOrder(o *order.Order) (order.Receipt, error) {
	c.mu.Lock()

	o.Execute(c.currentPrice)
	c.orderHistory = append(c.orderHistory, o)

	if o.Status == order.StatusFilled && o.Price != nil {
		notional := *o.Price * o.Quantity
		switch o.Side {
		case order.SideBuy:
			c.cashBalance -= notional
			c.positions[o.Symbol] += o.Quantity
		case order.SideSell:
			c.cashBalance += notional
			c.positions[o.Symbol] -= o.Quantity
		}
	}

	executedQuantity := 0.0
	var executedPrice *float64
	if o.Status == order.StatusFilled {
		executedQuantity = o.Quantity
		executedPrice = o.Price
	}
	receipt := order.NewReceipt(o, time.Now().Format(timestampLayout), executedPrice, executedQuantity, o.Status)

	c.mu.Unlock()

	c.logger.Debug("订单已提交",
		zap.String("order_id", receipt.OrderID),
		zap.String("symbol", receipt.Symbol),
		zap.String("side", string(receipt.Side)),
		zap.String("status", string(receipt.Status)),
		zap.Float64("executed_quantity", receipt.ExecutedQuantity),
	)

	if c.recorder != nil {
		if err := c.recorder.Record(receipt); err != nil {
			c.logger.Warn("记录回执失败", zap.Error(err))
		}
	}

	return receipt, nil
}

// GetAccountInfo 返回账户状态的防御性拷贝，调用方修改返回值
// 不会影响内部账本。
func (c *MockConnector) GetAccountInfo() AccountInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	positions := make(map[string]float64, len(c.positions))
	for symbol, quantity := range c.positions {
		positions[symbol] = quantity
	}
	history := make([]*order.Order, len(c.orderHistory))
	copy(history, c.orderHistory)

	return AccountInfo{
		CashBalance:  c.cashBalance,
		Positions:    positions,
		OrderHistory: history,
	}
}

var _ Connector = (*MockConnector)(nil)
