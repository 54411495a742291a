package broker

import (
	"context"
	"time"

	"github.com/go-gota/gota/dataframe"

	"tradesim/internal/order"
)

// AccountInfo 汇总账户资金、持仓与历史委托。
type AccountInfo struct {
	CashBalance  float64
	Positions    map[string]float64
	OrderHistory []*order.Order
}

// Connector 定义任意券商适配器必须实现的能力面。新增真实
// 券商接入时不需要改动调用方。
type Connector interface {
	GetMarketData(ctx context.Context, symbol string, start, end time.Time) (dataframe.DataFrame, error)
	SubmitOrder(o *order.Order) (order.Receipt, error)
	GetAccountInfo() AccountInfo
}

// ReceiptRecorder 在订单提交后记录回执，供流水账之类的
// 旁路消费者使用。记录失败不影响提交结果。
type ReceiptRecorder interface {
	Record(r order.Receipt) error
}
