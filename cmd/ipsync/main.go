package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/edvin/edgeid/internal/cloudflare"
	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/db"
	"github.com/edvin/edgeid/internal/logging"
	"github.com/edvin/edgeid/internal/publicip"
)

func main() {
	hostsFlag := flag.String("hosts", "", "Comma-separated hosts to sync (default: stored ssl_hosts)")
	skipDNSFlag := flag.Bool("skip-dns", false, "Store the discovered IP without touching DNS")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("ipsync"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.NewCorePool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	ip, err := publicip.NewResolver().Resolve(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("public ip discovery failed")
	}
	logger.Info().Str("ip", ip).Msg("discovered public ip")

	settings := core.NewSettingsService(pool, cfg)
	if err := settings.Update(ctx, map[string]string{core.SettingPublicIP: ip}); err != nil {
		logger.Fatal().Err(err).Msg("failed to store public ip")
	}

	if *skipDNSFlag {
		logger.Info().Msg("dns sync skipped")
		return
	}

	var hosts []string
	if *hostsFlag != "" {
		for _, host := range strings.Split(*hostsFlag, ",") {
			if host = strings.TrimSpace(host); host != "" {
				hosts = append(hosts, host)
			}
		}
	}

	dns := core.NewDNSService(cloudflare.NewClient(cfg), settings, cfg)
	results, err := dns.Sync(ctx, ip, hosts, nil)
	for _, result := range results {
		logger.Info().Str("host", result.Host).Str("action", result.Action).Msg("record synced")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("dns sync failed")
	}

	logger.Info().Int("records", len(results)).Msg("dns sync complete")
}
