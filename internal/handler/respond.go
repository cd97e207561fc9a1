package handler

import (
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/rest/httpx"

	"scraper-api/internal/logic"
	"scraper-api/internal/svc"
	"scraper-api/internal/types"
)

// cacheControl matches the quote cache TTL so HTTP intermediaries and the
// in-process cache expire together.
const cacheControl = "public, max-age=300"

func writeOK(w http.ResponseWriter, v any) {
	w.Header().Set("Cache-Control", cacheControl)
	httpx.WriteJson(w, http.StatusOK, v)
}

// writeError maps a logic error onto the wire: request-validation sentinels
// become 400s carrying their own message; everything else is a terminal
// scrape failure reported as a 500 with the elapsed duration. Error detail
// is only exposed outside production mode.
func writeError(w http.ResponseWriter, svcCtx *svc.ServiceContext, err error, started time.Time) {
	if logic.IsBadRequest(err) {
		httpx.WriteJson(w, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	resp := types.ErrorResponse{
		Error:    "Failed to fetch stock data",
		Duration: time.Since(started).Milliseconds(),
	}
	if svcCtx.Settings.Get().DebugMode {
		resp.Message = err.Error()
	}
	httpx.WriteJson(w, http.StatusInternalServerError, resp)
}
