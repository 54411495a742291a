package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side 表示下单方向。
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Kind 区分订单的成交策略。
type Kind string

const (
	KindMarket Kind = "market"
	KindLimit  Kind = "limit"
)

// Status 描述订单状态机：pending 为初始态，filled 与
// cancelled 为终态。
type Status string

const (
	StatusPending   Status = "pending"
	StatusFilled    Status = "filled"
	StatusCancelled Status = "cancelled"
)

const timestampLayout = "2006-01-02 15:04:05"

// Order 是一次交易意图及其成交状态。市价单与限价单共用同一
// 结构，仅 Execute 的成交规则随 Kind 变化。数量与价格原样
// 保存，不做数值校验。
type Order struct {
	ID        string
	Symbol    string
	Side      Side
	Quantity  float64
	Kind      Kind
	Price     *float64
	CreatedAt string
	Status    Status
}

// NewMarket 创建市价单。价格在成交前为空。
func NewMarket(symbol, side string, quantity float64) *Order {
	return newOrder(symbol, side, quantity, KindMarket, nil)
}

// NewLimit 创建限价单，limitPrice 为成交约束价格。
func NewLimit(symbol, side string, quantity, limitPrice float64) *Order {
	return newOrder(symbol, side, quantity, KindLimit, &limitPrice)
}

func newOrder(symbol, side string, quantity float64, kind Kind, price *float64) *Order {
	return &Order{
		ID:        uuid.NewString(),
		Symbol:    strings.ToUpper(symbol),
		Side:      Side(strings.ToUpper(side)),
		Quantity:  quantity,
		Kind:      kind,
		Price:     price,
		CreatedAt: time.Now().Format(timestampLayout),
		Status:    StatusPending,
	}
}

// Execute 按照订单类型对给定市场价格尝试成交。
// 市价单无条件成交并记录最新价格，已成交的市价单再次执行会
// 以新价格重新成交，不设防护。
// 限价单仅在价格满足约束时转为 filled，否则状态保持不变；
// 未成交的限价单可以用新的价格反复尝试。
func (o *Order) Execute(marketPrice float64) {
	switch o.Kind {
	case KindMarket:
		price := marketPrice
		o.Price = &price
		o.Status = StatusFilled
	case KindLimit:
		if o.Price == nil {
			return
		}
		limit := *o.Price
		if (o.Side == SideBuy && marketPrice <= limit) || (o.Side == SideSell && marketPrice >= limit) {
			o.Status = StatusFilled
		}
	}
}

// Cancel 将 pending 订单转为 cancelled，其余状态下为空操作，
// 不返回错误。调用方通过检查 Status 而非捕获错误来判断结果。
func (o *Order) Cancel() {
	if o.Status == StatusPending {
		o.Status = StatusCancelled
	}
}

// String 输出订单摘要，便于日志排查。
func (o *Order) String() string {
	price := "nil"
	if o.Price != nil {
		price = fmt.Sprintf("%.4f", *o.Price)
	}
	return fmt.Sprintf("Order(symbol=%s, side=%s, quantity=%g, kind=%s, price=%s, status=%s)",
		o.Symbol, o.Side, o.Quantity, o.Kind, price, o.Status)
}
