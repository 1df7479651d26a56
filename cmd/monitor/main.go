// Command monitor is the pilot's live operations view: it ingests call
// events from the telephony layer, serves a minimal dashboard with a
// metrics API, and keeps probing the API server's health endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":3001", "dashboard listen address")
	apiURL := flag.String("api", "http://localhost:3000", "API server base URL to health-probe")
	probeEvery := flag.Duration("probe-interval", 30*time.Second, "health probe interval")
	flag.Parse()

	_ = godotenv.Load()

	log := logger.New(os.Getenv("APP_ENV"))
	slog.SetDefault(log)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := newMetrics(time.Now())

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	r.POST("/webhook/call", func(c *gin.Context) {
		var ev callEvent
		if err := c.ShouldBindJSON(&ev); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
			return
		}
		m.record(ev, time.Now())
		c.JSON(http.StatusOK, gin.H{"status": "received"})
	})
	r.GET("/api/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, m.snapshot(time.Now()))
	})
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
	})

	go probeHealth(rootCtx, log, m, *apiURL, *probeEvery)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("monitor listening", "addr", *addr, "api", *apiURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("monitor server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// probeHealth polls the API server's /healthz. Each round retries with
// exponential backoff before declaring the API unhealthy, so a single
// dropped request does not flip the dashboard.
func probeHealth(ctx context.Context, log *slog.Logger, m *metrics, apiURL string, every time.Duration) {
	client := &http.Client{Timeout: 5 * time.Second}

	probe := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/healthz", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("healthz returned %d", resp.StatusCode)
		}
		return nil
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = every / 2
		err := backoff.Retry(probe, backoff.WithContext(bo, ctx))
		healthy := err == nil
		m.setAPIHealthy(healthy)
		if !healthy && ctx.Err() == nil {
			log.Warn("api health probe failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// dashboardHTML polls /api/metrics once a second. Deliberately tiny; a
// real NOC view lives elsewhere.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Dealer Logic Monitor</title>
  <style>
    body { font-family: monospace; background: #111; color: #0f0; padding: 2em; }
    .card { border: 1px solid #0f0; padding: 1em; margin: 0.5em 0; }
    .bad { color: #f33; }
  </style>
</head>
<body>
  <h1>Dealer Logic Monitor</h1>
  <div class="card"><pre id="metrics">loading...</pre></div>
  <script>
    async function refresh() {
      const res = await fetch('/api/metrics');
      const data = await res.json();
      document.getElementById('metrics').textContent = JSON.stringify(data, null, 2);
    }
    setInterval(refresh, 1000);
    refresh();
  </script>
</body>
</html>
`
