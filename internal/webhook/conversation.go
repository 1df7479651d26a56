package webhook

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/calls"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/completion"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/dedupe"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/voiceagent"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/logger"
)

// AgentAPI is the slice of the voice platform client the conversation
// endpoints depend on. Tests fake it; production passes *voiceagent.Client.
type AgentAPI interface {
	SetupAgent(ctx context.Context, dealerName string) (voiceagent.Agent, error)
	StartConversation(ctx context.Context, metadata map[string]any) (voiceagent.Conversation, error)
	ConversationStatus(ctx context.Context, conversationID string) (voiceagent.Conversation, error)
}

// ConversationHandlers serves the operator-facing conversation API:
// agent registration, session start, completion, and status.
type ConversationHandlers struct {
	Agent      AgentAPI
	CRM        crm.Client
	Completion *completion.Service
	Dedupe     dedupe.Guard
	DealerName string
}

// HandleInitialize handles POST /api/initialize.
func (h ConversationHandlers) HandleInitialize(c *gin.Context) {
	log := logger.FromGin(c)

	agent, err := h.Agent.SetupAgent(c.Request.Context(), h.DealerName)
	if err != nil {
		log.Error("agent setup failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "agent setup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Voice agent initialized successfully",
		"agent_id": agent.AgentID,
		"status":   "ready",
	})
}

type startRequest struct {
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
	Context       string `json:"context"`
}

// HandleStart handles POST /api/conversation/start. A CRM lookup
// failure does not block the call; the session just starts without
// customer context.
func (h ConversationHandlers) HandleStart(c *gin.Context) {
	log := logger.FromGin(c)

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}

	var customerID string
	existing := false
	name := req.CustomerName
	if req.CustomerPhone != "" {
		customer, found, err := h.CRM.FindCustomerByPhone(c.Request.Context(), req.CustomerPhone)
		if err != nil {
			log.Warn("crm lookup failed", "phone", req.CustomerPhone, "err", err)
		} else if found {
			existing = true
			customerID = customer.ID
			if name == "" {
				name = customer.Name
			}
		}
	}

	conv, err := h.Agent.StartConversation(c.Request.Context(), map[string]any{
		"metadata": map[string]any{
			"customer_id":       customerID,
			"customer_name":     name,
			"customer_phone":    req.CustomerPhone,
			"context":           req.Context,
			"existing_customer": existing,
		},
	})
	if err != nil {
		log.Error("conversation start failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "conversation start failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"conversation_id": conv.ConversationID,
		"session_url":     conv.SessionURL,
		"customer_id":     customerID,
	})
}

type completeRequest struct {
	ConversationID string         `json:"conversation_id"`
	CallData       calls.CallData `json:"call_data"`
}

// HandleComplete handles POST /api/conversation/complete, the entry
// point of the post-call CRM pipeline.
//
// The dedupe guard fails open: if it errors, the delivery is processed
// anyway and the CRM's upsert semantics absorb the duplicate. When the
// pipeline itself fails, the delivery mark is released so the
// platform's retry is not swallowed as a duplicate.
func (h ConversationHandlers) HandleComplete(c *gin.Context) {
	log := logger.FromGin(c)

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}

	key := req.ConversationID
	if key == "" {
		key = req.CallData.CallID
	}
	if first, err := h.Dedupe.FirstDelivery(c.Request.Context(), key); err != nil {
		log.Warn("dedupe guard unavailable", "err", err)
	} else if !first {
		log.Info("duplicate completion delivery skipped", "conversation_id", key)
		c.JSON(http.StatusOK, gin.H{"success": true, "duplicate": true})
		return
	}

	res, err := h.Completion.Complete(c.Request.Context(), req.CallData)
	if err != nil {
		log.Error("completion pipeline failed", "conversation_id", key, "err", err)
		if relErr := h.Dedupe.Release(c.Request.Context(), key); relErr != nil {
			log.Warn("dedupe release failed; retry may be dropped until the window expires",
				"conversation_id", key, "err", relErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"customer_id":  res.CustomerID,
		"analytics":    res.Analytics,
		"crm_updated":  res.CRMUpdated,
		"lead_id":      res.LeadID,
		"follow_up_id": res.FollowUpID,
	})
}

// HandleStatus handles GET /api/conversation/:id/status.
func (h ConversationHandlers) HandleStatus(c *gin.Context) {
	log := logger.FromGin(c)

	conv, err := h.Agent.ConversationStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error("conversation status fetch failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "status fetch failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"conversation_id": conv.ConversationID,
		"status":          conv.Status,
	})
}
