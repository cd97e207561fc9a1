package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"scraper-api/internal/logic"
	"scraper-api/internal/svc"
)

// StatsHandler serves GET /scrape/stats.
func StatsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewStatsLogic(r.Context(), svcCtx)
		httpx.OkJson(w, l.Stats())
	}
}
