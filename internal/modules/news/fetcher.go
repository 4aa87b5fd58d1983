package news

import (
	"context"

	"go.uber.org/zap"
)

// Fetcher turns every fetch failure into a warning so callers always get a list.
type Fetcher struct {
	source   Source
	minCount int
	maxCount int
	logger   *zap.Logger
}

func NewFetcher(source Source, minCount, maxCount int, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{source: source, minCount: minCount, maxCount: maxCount, logger: logger.Named("news")}
}

// Fetch returns the articles and a user-facing warning. A non-empty warning means the list is empty.
func (f *Fetcher) Fetch(ctx context.Context, count int) ([]Article, string) {
	count = ClampCount(count, f.minCount, f.maxCount)
	articles, err := f.source.Fetch(ctx, count)
	if err != nil {
		f.logger.Warn("fetch headlines failed", zap.Int("count", count), zap.Error(err))
		return []Article{}, "Error fetching news: " + err.Error()
	}
	if len(articles) > count {
		articles = articles[:count]
	}
	f.logger.Debug("fetched headlines", zap.Int("count", len(articles)))
	return articles, ""
}

// ClampCount bounds n to [min, max].
func ClampCount(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
