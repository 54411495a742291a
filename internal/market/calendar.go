package market

import "time"

// frequencyDurations 列出可以用固定时长步进的频率。
var frequencyDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"2m":  2 * time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"60m": 60 * time.Minute,
	"90m": 90 * time.Minute,
	"1h":  time.Hour,
}

// dateRange 生成 [start, end] 闭区间内按频率对齐的时间序列。
// 周频锚定在周日，月频锚定在每月一号，与合成数据的
// 既定日历语义保持一致。
func dateRange(start, end time.Time, frequency string) []time.Time {
	if start.After(end) {
		return nil
	}

	if d, ok := frequencyDurations[frequency]; ok {
		return stepByDuration(start, end, d)
	}

	switch frequency {
	case "1d":
		return stepByDate(start, end, 0, 1)
	case "5d":
		return stepByDate(start, end, 0, 5)
	case "1wk":
		return stepByDate(nextWeekday(start, time.Sunday), end, 0, 7)
	case "1mo":
		return stepByMonth(start, end, 1)
	case "3mo":
		return stepByMonth(start, end, 3)
	}

	return nil
}

func stepByDuration(start, end time.Time, d time.Duration) []time.Time {
	var dates []time.Time
	for t := start; !t.After(end); t = t.Add(d) {
		dates = append(dates, t)
	}
	return dates
}

func stepByDate(start, end time.Time, months, days int) []time.Time {
	var dates []time.Time
	for t := start; !t.After(end); t = t.AddDate(0, months, days) {
		dates = append(dates, t)
	}
	return dates
}

func stepByMonth(start, end time.Time, months int) []time.Time {
	anchor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	if anchor.Before(start) {
		anchor = anchor.AddDate(0, 1, 0)
	}
	return stepByDate(anchor, end, months, 0)
}

func nextWeekday(t time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}
