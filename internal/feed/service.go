package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tradesim/internal/market"
)

// Service 在 HistoricalProvider 之上提供批量拉取能力。
type Service struct {
	provider market.HistoricalProvider
	logger   *zap.Logger
}

// NewService 创建行情服务。
func NewService(provider market.HistoricalProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// History 拉取单个标的的历史K线。
func (s *Service) History(ctx context.Context, symbol string, start, end time.Time, interval string) ([]market.Bar, error) {
	return s.provider.History(ctx, symbol, start, end, interval)
}

// HistoryMany 并发拉取多个标的的历史K线，任一失败即整体失败。
func (s *Service) HistoryMany(ctx context.Context, symbols []string, start, end time.Time, interval string) (map[string][]market.Bar, error) {
	results := make(map[string][]market.Bar, len(symbols))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	for _, symbol := range symbols {
		group.Go(func() error {
			bars, err := s.provider.History(groupCtx, symbol, start, end, interval)
			if err != nil {
				return err
			}
			mu.Lock()
			results[symbol] = bars
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("批量历史行情拉取完成",
		zap.Int("symbols", len(symbols)),
		zap.String("interval", interval),
	)

	return results, nil
}
