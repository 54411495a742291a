package market

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidDateRange 表示起始日期晚于结束日期。
	ErrInvalidDateRange = errors.New("start date after end date")
	// ErrInvalidFrequency 表示频率不在受支持集合内。
	ErrInvalidFrequency = errors.New("unsupported frequency")
	// ErrUnknownSource 表示数据源标识无法识别。
	ErrUnknownSource = errors.New("unknown data source")
	// ErrProviderUnavailable 表示远端数据源未注入，yahoo 路径无法使用。
	ErrProviderUnavailable = errors.New("historical data provider unavailable")
)

// HistoricalProvider 抽象外部历史行情源。注入与否是一种显式
// 配置状态：缺失时仅影响 yahoo 路径，其余组件照常工作。
type HistoricalProvider interface {
	History(ctx context.Context, symbol string, start, end time.Time, interval string) ([]Bar, error)
}
