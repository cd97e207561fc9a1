package logic

import (
	"context"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"scraper-api/internal/svc"
	"scraper-api/internal/types"
	"scraper-api/pkg/scraper"
)

// maxBatchSymbols caps one batch request.
const maxBatchSymbols = 50

type StockBatchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStockBatchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StockBatchLogic {
	return &StockBatchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// StockBatch fetches up to 50 symbols with settle-all semantics. Partial
// failure is not an error: failed symbols are reported alongside the
// successes.
func (l *StockBatchLogic) StockBatch(req *types.StockBatchRequest) (*types.StockBatchResponse, error) {
	if len(req.Symbols) == 0 {
		l.svcCtx.Events.Error("stocks-scraper", ErrEmptySymbols, nil)
		return nil, ErrEmptySymbols
	}
	if len(req.Symbols) > maxBatchSymbols {
		l.svcCtx.Events.Error("stocks-scraper", ErrTooManySymbols, map[string]any{"count": len(req.Symbols)})
		return nil, ErrTooManySymbols
	}

	anyValid := false
	for _, s := range req.Symbols {
		if scraper.ValidSymbol(strings.TrimSpace(s)) {
			anyValid = true
			break
		}
	}
	if !anyValid {
		l.svcCtx.Events.Error("stocks-scraper", ErrNoValidSymbols, nil)
		return nil, ErrNoValidSymbols
	}

	result := l.svcCtx.Scraper.Batch(l.ctx, req.Symbols)

	failed := result.Failed
	if failed == nil {
		failed = []string{}
	}
	return &types.StockBatchResponse{
		Data:      result.Succeeded,
		Count:     len(result.Succeeded),
		Failed:    failed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
