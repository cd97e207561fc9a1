package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"scraper-api/internal/svc"
	"scraper-api/internal/types"
	"scraper-api/pkg/quote"
	"scraper-api/pkg/scraper"
)

type StockLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStockLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StockLogic {
	return &StockLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Stock fetches one quote. Validation failures surface as 400-class
// sentinels; anything else is a terminal scrape failure for the handler to
// report as a 500.
func (l *StockLogic) Stock(req *types.StockRequest) (*quote.Quote, error) {
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		l.svcCtx.Events.Error("stock-scraper", ErrSymbolRequired, nil)
		return nil, ErrSymbolRequired
	}
	if !scraper.ValidSymbol(symbol) {
		l.svcCtx.Events.Error("stock-scraper", ErrInvalidSymbol, map[string]any{"symbol": symbol})
		return nil, ErrInvalidSymbol
	}

	return l.svcCtx.Scraper.Quote(l.ctx, symbol)
}
