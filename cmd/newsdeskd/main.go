package main

import (
	"net/http"
	"time"

	"newsdesk-backend/lib/configutil"
	"newsdesk-backend/lib/kv"
	"newsdesk-backend/lib/serviceutil"
	"newsdesk-backend/services/digest"
)

type Config struct {
	Port     int    `json:"port"`
	Database string `json:"database"`
	// override for staging mirrors, empty means production
	UpstreamBaseUrl string `json:"upstream_baseurl"`
	// go duration string, defaults to 30m
	ScrapeInterval string `json:"scrape_interval"`
	Verbose        bool   `json:"verbose"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to load configuration", err)
	}

	initTelemetry(ctx, config.Verbose)

	store, err := kv.Open(config.Database)
	if err != nil {
		serviceutil.Fatal("failed to open kv store", err)
	}
	defer store.Close()

	service, err := digest.NewService(ctx, store, digest.Options{
		BaseUrl: config.UpstreamBaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize digest service", err)
	}

	interval := time.Minute * 30
	if config.ScrapeInterval != "" {
		interval, err = time.ParseDuration(config.ScrapeInterval)
		if err != nil {
			serviceutil.Fatal("invalid scrape_interval", err)
		}
	}
	go service.RunDaemon(ctx, interval)

	mux := http.NewServeMux()
	service.RegisterRoutes(mux)
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}
