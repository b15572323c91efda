package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"salesdw/internal/config"
	"salesdw/internal/metrics"
	"salesdw/internal/metrics/datadog"
	"salesdw/internal/metrics/prompush"
	"salesdw/internal/warehouse"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "salesdw/internal/storage/all"
)

// main is the entry point for the warehouse loader. It loads the run config,
// optionally initializes a metrics backend, and executes the full refresh.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		datadogAddrFlg    string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/dwload.json", "run config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, datadog, none; env METRICS_BACKEND when unset)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&datadogAddrFlg, "datadog-addr", "", "DogStatsD address (overrides env DD_AGENT_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg, err := config.ReadFile(cfgPath)
	if err != nil {
		fatalf("read config: %v", err)
	}

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}

	// If validate flag is set, only validate the configuration and exit
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → default.
	backendName := resolveMetricsBackend(metricsBackendFlg, os.Getenv("METRICS_BACKEND"))
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := cfg.Job
		if jobName == "" {
			jobName = "dwload"
		}

		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backendName, jobName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "datadog":
		addr := datadogAddrFlg
		if addr == "" {
			addr = os.Getenv("DD_AGENT_ADDR")
		}

		b, err := datadog.NewBackend(datadog.Config{
			Addr:       addr,
			GlobalTags: []string{"job:" + cfg.Job},
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: addr=%v, backend=%v", addr, backendName)
			metrics.SetBackend(b)
			defer func() {
				if err := b.Close(); err != nil {
					log.Printf("metrics: close error: %v", err)
				}
			}()
		}

	case "none":
		// metrics disabled; nop backend remains
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("run: job=%s storage=%s layout=%s batch=%d",
			cfg.Job, cfg.Storage.Kind, cfg.Dates.Layout, cfg.Runtime.BatchSize)
	}

	if _, err := warehouse.Run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// resolveMetricsBackend picks the backend name: the flag wins, then the
// METRICS_BACKEND environment variable, then "none".
func resolveMetricsBackend(flagValue, envValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue != "" {
		return envValue
	}
	return "none"
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
