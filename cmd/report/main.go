// Command report exports a call-activity summary workbook from the
// Postgres CRM store: totals, per-outcome and per-sentiment counts,
// and lead scoring for the reporting window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/config"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/report"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/logger"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/utils"
)

func main() {
	out := flag.String("out", "", "output path (default dealer-report-<date>.xlsx)")
	days := flag.Int("days", 7, "reporting window in days")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.CRM.Backend != config.CRMBackendPostgres {
		log.Error("report requires CRM_BACKEND=postgres; the memory backend has nothing to query")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := utils.OpenPostgres(ctx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -*days)
	source := report.NewPostgresSource(db)

	activities, err := source.Activities(ctx, since)
	if err != nil {
		log.Error("activity query failed", "err", err)
		os.Exit(1)
	}
	leads, err := source.Leads(ctx, since)
	if err != nil {
		log.Error("lead query failed", "err", err)
		os.Exit(1)
	}

	summary := report.Build(now, since, activities, leads)

	path := *out
	if path == "" {
		path = fmt.Sprintf("dealer-report-%s.xlsx", now.Format("2006-01-02"))
	}
	if err := report.WriteWorkbook(path, summary); err != nil {
		log.Error("workbook write failed", "err", err)
		os.Exit(1)
	}

	log.Info("report written",
		"path", path,
		"calls", summary.TotalCalls,
		"leads", summary.TotalLeads,
		"window_days", *days)
}
