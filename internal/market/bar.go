package market

import "time"

// Bar 代表单根OHLCV行情。字段之间不做关系校验，
// 上游数据给什么就存什么。
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// MidPrice 返回最高价与最低价的中点。
func (b Bar) MidPrice() float64 {
	return (b.High + b.Low) / 2
}

// IsBullish 判断是否为阳线（收盘高于开盘）。
func (b Bar) IsBullish() bool {
	return b.Open < b.Close
}

// IsBearish 判断是否为阴线（收盘低于开盘）。开平相等时
// IsBullish 与 IsBearish 同时为 false。
func (b Bar) IsBearish() bool {
	return b.Open > b.Close
}
