package handler

import (
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/rest/httpx"

	"scraper-api/internal/logic"
	"scraper-api/internal/svc"
	"scraper-api/internal/types"
)

// StockBatchHandler serves POST /scrape/stocks.
func StockBatchHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		var req types.StockBatchRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, types.ErrorResponse{Error: logic.ErrEmptySymbols.Error()})
			return
		}

		l := logic.NewStockBatchLogic(r.Context(), svcCtx)
		resp, err := l.StockBatch(&req)
		if err != nil {
			writeError(w, svcCtx, err, started)
			return
		}
		writeOK(w, resp)
	}
}
