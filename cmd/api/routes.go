package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/completion"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/config"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/dedupe"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/inventory"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/servicedesk"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/tradein"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/transfer"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/webhook"
)

type apiDeps struct {
	cfg        config.Config
	crm        crm.Client
	agent      webhook.AgentAPI
	guard      dedupe.Guard
	archive    *webhook.MemoryArchive
	inventory  *inventory.Service
	service    *servicedesk.Service
	tradein    *tradein.Estimator
	transfer   *transfer.Router
	completion *completion.Service
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, d apiDeps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Platform webhooks: tool calls mid-conversation plus post-call
	// deliveries, all behind the shared-secret signature check.
	hooks := r.Group("/api/webhooks/elevenlabs")
	hooks.Use(webhook.VerifySignature(d.cfg.ElevenLabs.WebhookSecret))
	{
		tools := webhook.ToolHandlers{
			Inventory: d.inventory,
			Service:   d.service,
			TradeIn:   d.tradein,
			Transfer:  d.transfer,
		}
		hooks.POST("/tools/inventory", tools.HandleInventory)
		hooks.POST("/tools/service", tools.HandleService)
		hooks.POST("/tools/trade", tools.HandleTradeIn)
		hooks.POST("/tools/transfer", tools.HandleTransfer)

		postcall := webhook.PostCallHandlers{Archive: d.archive, CRM: d.crm}
		hooks.POST("/transcription", postcall.HandleTranscription)
		hooks.POST("/audio", postcall.HandleAudio)
	}

	// Operator-facing conversation API.
	api := r.Group("/api")
	{
		conv := webhook.ConversationHandlers{
			Agent:      d.agent,
			CRM:        d.crm,
			Completion: d.completion,
			Dedupe:     d.guard,
			DealerName: d.cfg.Dealer.Name,
		}
		api.POST("/initialize", conv.HandleInitialize)
		api.POST("/conversation/start", conv.HandleStart)
		api.POST("/conversation/complete", conv.HandleComplete)
		api.GET("/conversation/:id/status", conv.HandleStatus)
	}
}
