package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"scraper-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/scrape/stock",
				Handler: StockHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/scrape/stocks",
				Handler: StockBatchHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/scrape/stats",
				Handler: StatsHandler(serverCtx),
			},
		},
	)
}
