package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"scraper-api/internal/svc"
	"scraper-api/internal/types"
)

type StatsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStatsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StatsLogic {
	return &StatsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Stats returns the derived scrape statistics and a cache diagnostic
// snapshot. Read-only; cache maintenance stays a library concern.
func (l *StatsLogic) Stats() *types.StatsResponse {
	cache := l.svcCtx.Scraper.CacheStats()
	ages := make([]int64, 0, len(cache.Ages))
	for _, age := range cache.Ages {
		ages = append(ages, age.Milliseconds())
	}
	keys := cache.Keys
	if keys == nil {
		keys = []string{}
	}

	return &types.StatsResponse{
		Events: l.svcCtx.Events.Stats(),
		Cache: types.CacheStatsView{
			Size:   cache.Size,
			Keys:   keys,
			AgesMs: ages,
		},
	}
}
