package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/completion"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/config"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/dedupe"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/inventory"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/servicedesk"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/tradein"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/transfer"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/voiceagent"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/webhook"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/logger"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/utils"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	assigner := crm.NewRandomAssigner(cfg.Dealer.SalesAgents, nil)

	var crmClient crm.Client
	switch cfg.CRM.Backend {
	case config.CRMBackendPostgres:
		db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		crmClient = crm.NewPostgresClient(db, assigner)
	default:
		log.Warn("using in-memory CRM backend; records do not survive restarts")
		crmClient = crm.NewMemoryClient(assigner)
	}

	var guard dedupe.Guard = dedupe.Noop{}
	if addr := cfg.RedisAddr(); addr != "" {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: addr})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		guard = dedupe.NewRedisGuard(rdb, cfg.CRM.DedupTTL)
	} else {
		log.Warn("redis not configured; webhook re-deliveries are not deduplicated")
	}

	agent := voiceagent.NewClient(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.AgentID, cfg.ElevenLabs.WebhookBaseURL)

	deps := apiDeps{
		cfg:       cfg,
		crm:       crmClient,
		agent:     agent,
		guard:     guard,
		archive:   webhook.NewMemoryArchive(),
		inventory: inventory.NewService(inventory.NewMemoryRepo(inventory.DemoStock())),
		service:   servicedesk.NewService(servicedesk.NewMemoryRepo()),
		tradein:   tradein.NewEstimator(),
		transfer: transfer.NewRouter(map[string]string{
			transfer.DepartmentSales:   cfg.Dealer.SalesNumber,
			transfer.DepartmentService: cfg.Dealer.ServiceNumber,
			transfer.DepartmentGeneral: cfg.Dealer.MainNumber,
			"parts":                    cfg.Dealer.PartsNumber,
		}),
		completion: completion.NewService(crmClient),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "crm_backend", cfg.CRM.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
