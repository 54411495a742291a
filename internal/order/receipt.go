package order

// Receipt 是订单提交结果的不可变快照。创建之后不再跟随原始
// 订单的状态变化。
type Receipt struct {
	OrderID          string
	Symbol           string
	Side             Side
	OriginalQuantity float64
	ExecutedQuantity float64
	ExecutedPrice    *float64
	Timestamp        string
	Status           Status
}

// NewReceipt 在提交时刻为订单生成回执。timestamp 由调用方
// 提供；executedPrice 会被复制，后续对订单价格的改动不影响
// 已生成的回执。
func NewReceipt(o *Order, timestamp string, executedPrice *float64, executedQuantity float64, status Status) Receipt {
	var price *float64
	if executedPrice != nil {
		p := *executedPrice
		price = &p
	}

	return Receipt{
		OrderID:          o.ID,
		Symbol:           o.Symbol,
		Side:             o.Side,
		OriginalQuantity: o.Quantity,
		ExecutedQuantity: executedQuantity,
		ExecutedPrice:    price,
		Timestamp:        timestamp,
		Status:           status,
	}
}
