package indicator

import (
	"fmt"

	talib "github.com/markcheno/go-talib"

	"tradesim/internal/market"
)

// Summary 汇总一段K线的常用技术指标。
type Summary struct {
	SMA20         float64
	EMA12         float64
	EMA26         float64
	RSI14         float64
	ATR14         float64
	Close         float64
	PreviousClose float64
}

// Compute 对给定K线计算指标摘要。输入为空时返回错误，长度
// 不足的窗口由 talib 以零值填充前导区间。
func Compute(bars []market.Bar) (Summary, error) {
	if len(bars) == 0 {
		return Summary{}, fmt.Errorf("计算指标失败: 输入K线为空")
	}

	series := NewSeries(bars)
	closePrices := series.Close

	sma20 := talib.Sma(closePrices, 20)
	ema12 := talib.Ema(closePrices, 12)
	ema26 := talib.Ema(closePrices, 26)
	rsi14 := talib.Rsi(closePrices, 14)
	atr14 := talib.Atr(series.High, series.Low, closePrices, 14)

	return Summary{
		SMA20:         Last(sma20),
		EMA12:         Last(ema12),
		EMA26:         Last(ema26),
		RSI14:         Last(rsi14),
		ATR14:         Last(atr14),
		Close:         Last(closePrices),
		PreviousClose: Prev(closePrices),
	}, nil
}
