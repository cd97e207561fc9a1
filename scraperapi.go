package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"

	"scraper-api/internal/config"
	"scraper-api/internal/handler"
	"scraper-api/internal/svc"
)

var configFile = flag.String("f", "etc/scraperapi.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(cfg)
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
