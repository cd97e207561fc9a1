// Command fetch pulls quotes for a set of symbols from the command line,
// using the same engine as the HTTP service, and prints the settled batch
// along with the scrape statistics.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"scraper-api/internal/config"
	"scraper-api/internal/svc"
)

var (
	configFile = flag.String("f", "etc/scraperapi.yaml", "the config file")
	symbolsArg = flag.String("symbols", "AAPL,MSFT,GOOGL", "comma-separated ticker symbols")
	timeout    = flag.Duration("timeout", time.Minute, "overall batch deadline")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Printf("[fetch] Warning: failed to load config: %v", err)
		log.Printf("[fetch] Using default configuration")
		cfg = config.Default()
	}

	symbols := strings.Split(*symbolsArg, ",")
	for i := range symbols {
		symbols[i] = strings.TrimSpace(symbols[i])
	}

	svcCtx := svc.NewServiceContext(cfg)
	log.Printf("[fetch] provider=%s symbols=%v", svcCtx.Provider.Name(), symbols)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result := svcCtx.Scraper.Batch(ctx, symbols)
	for _, q := range result.Succeeded {
		log.Printf("[fetch] %-5s price=%.2f change=%+.2f (%+.2f%%) source=%s",
			q.Symbol, q.Price, q.Change, q.ChangePercent, q.Source)
	}
	for _, sym := range result.Failed {
		log.Printf("[fetch] %-5s FAILED", sym)
	}

	stats := svcCtx.Events.Stats()
	log.Printf("[fetch] events=%d success=%d errors=%d retries=%d avg=%s",
		stats.TotalEvents, stats.SuccessCount, stats.ErrorCount, stats.RetryCount, stats.AverageDuration)
}
