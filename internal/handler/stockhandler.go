package handler

import (
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/rest/httpx"

	"scraper-api/internal/logic"
	"scraper-api/internal/svc"
	"scraper-api/internal/types"
)

// StockHandler serves GET /scrape/stock?symbol=SYM.
func StockHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		var req types.StockRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, types.ErrorResponse{Error: logic.ErrSymbolRequired.Error()})
			return
		}

		l := logic.NewStockLogic(r.Context(), svcCtx)
		q, err := l.Stock(&req)
		if err != nil {
			writeError(w, svcCtx, err, started)
			return
		}
		writeOK(w, q)
	}
}
