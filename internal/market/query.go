package market

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	// SourceTest 生成确定性的合成序列，便于离线测试。
	SourceTest = "test"
	// SourceYahoo 委托注入的 HistoricalProvider 拉取真实行情。
	SourceYahoo = "yahoo"

	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"

	basePrice = 100.0
	priceStep = 0.5
)

var validFrequencies = []string{"1m", "2m", "5m", "15m", "30m", "60m", "90m", "1h", "1d", "5d", "1wk", "1mo", "3mo"}

// QueryOptions 控制查询的可选参数，零值回落到默认值。
type QueryOptions struct {
	Frequency string
	Source    string
	Provider  HistoricalProvider
}

// Query 描述一次经过校验的历史数据请求。构造时即完成全部
// 校验，Fetch 可安全地重复调用。
type Query struct {
	symbol    string
	timeFrame string
	start     time.Time
	end       time.Time
	frequency string
	source    string
	provider  HistoricalProvider
}

// NewQuery 解析并校验查询参数。日期格式为 YYYY-MM-DD，
// 解析失败与校验失败都立即返回错误。
func NewQuery(symbol, timeFrame, startDate, endDate string, opts QueryOptions) (*Query, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("解析起始日期失败: %w", err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("解析结束日期失败: %w", err)
	}

	frequency := opts.Frequency
	if frequency == "" {
		frequency = "1d"
	}
	source := opts.Source
	if source == "" {
		source = SourceYahoo
	}

	if start.After(end) {
		return nil, fmt.Errorf("起始日期 %s 不能晚于结束日期 %s: %w", startDate, endDate, ErrInvalidDateRange)
	}
	if !isValidFrequency(frequency) {
		return nil, fmt.Errorf("频率 %q 必须是 %v 之一: %w", frequency, validFrequencies, ErrInvalidFrequency)
	}

	return &Query{
		symbol:    symbol,
		timeFrame: timeFrame,
		start:     start,
		end:       end,
		frequency: frequency,
		source:    source,
		provider:  opts.Provider,
	}, nil
}

// Symbol 返回查询标的。
func (q *Query) Symbol() string {
	return q.symbol
}

// Fetch 依据数据源拉取行情表。调用之间互不影响，每次都重新
// 生成或重新请求。
func (q *Query) Fetch(ctx context.Context) (dataframe.DataFrame, error) {
	switch q.source {
	case SourceTest:
		return q.fetchSynthetic(), nil
	case SourceYahoo:
		return q.fetchRemote(ctx)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("数据源 %q 无法识别: %w", q.source, ErrUnknownSource)
	}
}

func (q *Query) fetchSynthetic() dataframe.DataFrame {
	dates := dateRange(q.start, q.end, q.frequency)
	if len(dates) == 0 && !q.start.After(q.end) {
		dates = []time.Time{q.start}
	}

	dateCol := make([]string, len(dates))
	priceCol := make([]float64, len(dates))
	for i, d := range dates {
		dateCol[i] = d.Format(datetimeLayout)
		priceCol[i] = basePrice + float64(i)*priceStep
	}

	return dataframe.New(
		series.New(dateCol, series.String, "date"),
		series.New(priceCol, series.Float, "price"),
	)
}

func (q *Query) fetchRemote(ctx context.Context) (dataframe.DataFrame, error) {
	if q.provider == nil {
		return dataframe.DataFrame{}, fmt.Errorf("数据源 %q 需要注入历史行情提供方: %w", q.source, ErrProviderUnavailable)
	}

	bars, err := q.provider.History(ctx, q.symbol, q.start, q.end, q.frequency)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("拉取远端行情失败: %w", err)
	}

	return BarsFrame(bars), nil
}

// BarsFrame 将K线序列转换为带命名列的数据表，行索引为默认的
// 顺序编号。
func BarsFrame(bars []Bar) dataframe.DataFrame {
	n := len(bars)
	dateCol := make([]string, n)
	openCol := make([]float64, n)
	highCol := make([]float64, n)
	lowCol := make([]float64, n)
	closeCol := make([]float64, n)
	volumeCol := make([]float64, n)

	for i, b := range bars {
		dateCol[i] = b.Date.Format(datetimeLayout)
		openCol[i] = b.Open
		highCol[i] = b.High
		lowCol[i] = b.Low
		closeCol[i] = b.Close
		volumeCol[i] = b.Volume
	}

	return dataframe.New(
		series.New(dateCol, series.String, "date"),
		series.New(openCol, series.Float, "open"),
		series.New(highCol, series.Float, "high"),
		series.New(lowCol, series.Float, "low"),
		series.New(closeCol, series.Float, "close"),
		series.New(volumeCol, series.Float, "volume"),
	)
}

func isValidFrequency(frequency string) bool {
	for _, f := range validFrequencies {
		if f == frequency {
			return true
		}
	}
	return false
}
