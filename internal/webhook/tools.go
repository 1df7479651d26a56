package webhook

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/inventory"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/servicedesk"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/tradein"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/transfer"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/logger"
)

// ToolHandlers serves the real-time tool webhooks the agent calls
// mid-conversation. Handlers convert payloads, delegate to the domain
// services, and phrase the answer for the voice channel.
//
// No business logic here.
type ToolHandlers struct {
	Inventory *inventory.Service
	Service   *servicedesk.Service
	TradeIn   *tradein.Estimator
	Transfer  *transfer.Router
}

// Inventory handles POST /tools/inventory.
func (h ToolHandlers) HandleInventory(c *gin.Context) {
	log := logger.FromGin(c)

	var req toolRequest[inventory.SearchCriteria]
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("inventory tool payload rejected", "err", err)
		c.JSON(http.StatusOK, inventoryFallback())
		return
	}

	matches, err := h.Inventory.Search(c.Request.Context(), req.Parameters)
	if err != nil {
		log.Error("inventory search failed", "err", err)
		c.JSON(http.StatusOK, inventoryFallback())
		return
	}

	if len(matches) == 0 {
		c.JSON(http.StatusOK, ToolResponse{
			Success: true,
			Message: "I couldn't find any vehicles matching your criteria, but I can help you explore other options or place a custom order.",
			Data:    []inventory.Vehicle{},
		})
		return
	}

	top := matches
	if len(top) > 3 {
		top = top[:3]
	}
	descriptions := make([]string, len(top))
	for i, v := range top {
		descriptions[i] = fmt.Sprintf("A %d %s %s for $%s, with %s miles",
			v.Year, v.Make, v.Model, spokenNumber(v.Price), spokenNumber(v.Mileage))
	}

	c.JSON(http.StatusOK, ToolResponse{
		Success: true,
		Message: fmt.Sprintf("I found %d vehicles matching your search. Here are the top options: %s. Would you like more details on any of these?",
			len(matches), strings.Join(descriptions, "; ")),
		Data: top,
	})
}

func inventoryFallback() ToolResponse {
	return ToolResponse{
		Success:         false,
		Message:         "I'm having trouble searching our inventory right now. Let me connect you with someone who can help.",
		TransferToHuman: true,
	}
}

// HandleService handles POST /tools/service.
func (h ToolHandlers) HandleService(c *gin.Context) {
	log := logger.FromGin(c)

	var req toolRequest[servicedesk.BookingRequest]
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("service tool payload rejected", "err", err)
		c.JSON(http.StatusOK, serviceFallback())
		return
	}
	params := req.Parameters

	avail, err := h.Service.CheckAvailability(c.Request.Context(), params.PreferredDate, params.ServiceType)
	if err != nil {
		log.Error("service availability check failed", "err", err)
		c.JSON(http.StatusOK, serviceFallback())
		return
	}

	if !avail.Available {
		alternatives := h.Service.AlternativeDates(params.PreferredDate)
		c.JSON(http.StatusOK, ToolResponse{
			Success: true,
			Message: fmt.Sprintf("I don't have availability on %s, but I can offer you %s. Which would work better for you?",
				params.PreferredDate, strings.Join(alternatives, " or ")),
			Data: gin.H{"alternative_dates": alternatives},
		})
		return
	}

	apt, err := h.Service.Book(c.Request.Context(), params, avail.NextSlot)
	if err != nil {
		log.Error("service booking failed", "err", err)
		c.JSON(http.StatusOK, serviceFallback())
		return
	}

	c.JSON(http.StatusOK, ToolResponse{
		Success: true,
		Message: fmt.Sprintf("Perfect! I've scheduled your %s appointment for %s at %s. You'll receive a confirmation text at %s. Is there anything else I can help you with?",
			apt.ServiceType, apt.Date, apt.TimeSlot, params.Phone),
		Data: apt,
	})
}

func serviceFallback() ToolResponse {
	return ToolResponse{
		Success:         false,
		Message:         "I'm having trouble accessing our service calendar. Let me transfer you to our service department.",
		TransferToHuman: true,
		Department:      transfer.DepartmentService,
	}
}

// HandleTradeIn handles POST /tools/trade.
func (h ToolHandlers) HandleTradeIn(c *gin.Context) {
	log := logger.FromGin(c)

	var req toolRequest[tradein.Request]
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("trade tool payload rejected", "err", err)
		c.JSON(http.StatusOK, tradeFallback())
		return
	}
	params := req.Parameters

	valuation, err := h.TradeIn.Estimate(params)
	if err != nil {
		log.Warn("trade-in estimate failed", "err", err)
		c.JSON(http.StatusOK, tradeFallback())
		return
	}

	c.JSON(http.StatusOK, ToolResponse{
		Success: true,
		Message: fmt.Sprintf("Based on a %d %s %s with %s miles in %s condition, I can offer you an estimated trade-in value between $%s and $%s. The final value depends on our in-person inspection. Would you like to schedule an appraisal appointment?",
			params.Year, params.Make, params.Model, spokenNumber(params.Mileage),
			params.Condition, spokenNumber(valuation.Min), spokenNumber(valuation.Max)),
		Data: gin.H{
			"min_value":     valuation.Min,
			"max_value":     valuation.Max,
			"average_value": valuation.Average,
			"factors":       valuation.Factors,
		},
	})
}

func tradeFallback() ToolResponse {
	return ToolResponse{
		Success:         false,
		Message:         "I need a bit more information to provide an accurate trade-in value. Let me connect you with our appraisal team.",
		TransferToHuman: true,
		Department:      transfer.DepartmentAppraisal,
	}
}

// transferParams mirrors the transfer_to_human tool parameters.
type transferParams struct {
	Department   string         `json:"department"`
	Reason       string         `json:"reason"`
	CustomerInfo map[string]any `json:"customer_info"`
}

// HandleTransfer handles POST /tools/transfer. This handler never
// reports failure to the agent: a caller who asked for a human gets
// the general line even when queueing breaks.
func (h ToolHandlers) HandleTransfer(c *gin.Context) {
	log := logger.FromGin(c)

	var req toolRequest[transferParams]
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("transfer tool payload rejected", "err", err)
		handoff := h.Transfer.Route("")
		c.JSON(http.StatusOK, ToolResponse{
			Success:        true,
			Message:        "I'll get someone to help you right away. Please hold.",
			Action:         "transfer",
			TransferNumber: handoff.Number,
		})
		return
	}

	queued := h.Transfer.Queue(req.Parameters.Department)
	handoff := h.Transfer.Route(req.Parameters.Department)
	log.Info("caller queued for human agent",
		"department", queued.Department,
		"reason", req.Parameters.Reason,
		"conversation_id", req.ConversationID)

	c.JSON(http.StatusOK, ToolResponse{
		Success: true,
		Message: fmt.Sprintf("I'll transfer you to our %s team right away. If we get disconnected, you can reach them directly at %s. Please hold while I connect you.",
			queued.Department, handoff.Number),
		Action:         "transfer",
		TransferNumber: handoff.Number,
		Data:           queued,
	})
}
