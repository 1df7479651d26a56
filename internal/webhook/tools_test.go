package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/inventory"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/servicedesk"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/tradein"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/transfer"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/voiceagent"
)

func toolRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	estimator := tradein.NewEstimator()
	estimator.SetClock(func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	})

	h := ToolHandlers{
		Inventory: inventory.NewService(inventory.NewMemoryRepo(inventory.DemoStock())),
		Service:   servicedesk.NewService(servicedesk.NewMemoryRepo()),
		TradeIn:   estimator,
		Transfer:  transfer.NewRouter(nil),
	}

	r := gin.New()
	r.POST("/tools/inventory", h.HandleInventory)
	r.POST("/tools/service", h.HandleService)
	r.POST("/tools/trade", h.HandleTradeIn)
	r.POST("/tools/transfer", h.HandleTransfer)
	return r
}

func postTool(t *testing.T, r *gin.Engine, path string, payload any) ToolResponse {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from %s, got %d", path, w.Code)
	}
	var resp ToolResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestHandleInventory(t *testing.T) {
	r := toolRouter(t)

	resp := postTool(t, r, "/tools/inventory", gin.H{
		"conversation_id": "conv_1",
		"parameters":      gin.H{"make": "Toyota"},
	})
	if !resp.Success {
		t.Fatalf("expected success: %+v", resp)
	}
	if !strings.Contains(resp.Message, "I found 1 vehicles matching your search") {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "A 2024 Toyota RAV4 for $35,000, with 100 miles") {
		t.Fatalf("price not spoken with separators: %q", resp.Message)
	}

	empty := postTool(t, r, "/tools/inventory", gin.H{
		"parameters": gin.H{"make": "Ford"},
	})
	if !empty.Success || !strings.Contains(empty.Message, "couldn't find any vehicles") {
		t.Fatalf("unexpected no-match response: %+v", empty)
	}
}

func TestHandleService(t *testing.T) {
	r := toolRouter(t)

	resp := postTool(t, r, "/tools/service", gin.H{
		"parameters": gin.H{
			"service_type":   "oil_change",
			"preferred_date": "2025-06-02",
			"customer_name":  "Jane Doe",
			"phone":          "415-555-2671",
		},
	})
	if !resp.Success {
		t.Fatalf("expected success: %+v", resp)
	}
	if !strings.Contains(resp.Message, "scheduled your oil_change appointment for 2025-06-02 at 10:00 AM") {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "confirmation text at 415-555-2671") {
		t.Fatalf("phone missing from confirmation: %q", resp.Message)
	}
}

func TestHandleTradeIn(t *testing.T) {
	r := toolRouter(t)

	resp := postTool(t, r, "/tools/trade", gin.H{
		"parameters": gin.H{
			"year":      2022,
			"make":      "Toyota",
			"model":     "Camry",
			"mileage":   10000,
			"condition": "good",
		},
	})
	if !resp.Success {
		t.Fatalf("expected success: %+v", resp)
	}
	if !strings.Contains(resp.Message, "Based on a 2022 Toyota Camry") {
		t.Fatalf("vehicle fields did not bind: %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "between $15,300 and $18,700") {
		t.Fatalf("unexpected valuation range: %q", resp.Message)
	}

	bad := postTool(t, r, "/tools/trade", gin.H{
		"parameters": gin.H{"year": 2022, "condition": "pristine"},
	})
	if bad.Success || !bad.TransferToHuman || bad.Department != transfer.DepartmentAppraisal {
		t.Fatalf("expected appraisal fallback: %+v", bad)
	}
}

// TestToolSchemasBindToHandlers posts each tool a payload built from
// the parameter names the agent registration declares, so the schema
// and the handler bindings cannot drift apart.
func TestToolSchemasBindToHandlers(t *testing.T) {
	r := toolRouter(t)

	// Values some handlers validate; everything else gets a type default.
	samples := map[string]any{
		"condition":      "good",
		"preferred_date": "2025-06-02",
		"department":     "sales",
	}

	for _, tool := range voiceagent.DealershipTools("") {
		t.Run(tool.Name, func(t *testing.T) {
			params := gin.H{}
			for name, p := range tool.Parameters {
				if v, ok := samples[name]; ok {
					params[name] = v
					continue
				}
				switch p.Type {
				case "number":
					params[name] = 2022
				case "object":
					params[name] = gin.H{}
				default:
					params[name] = "test"
				}
			}

			resp := postTool(t, r, tool.WebhookURL, gin.H{
				"conversation_id": "conv_schema",
				"parameters":      params,
			})
			if !resp.Success {
				t.Fatalf("registered schema rejected by handler: %+v", resp)
			}
		})
	}
}

func TestHandleTransfer(t *testing.T) {
	r := toolRouter(t)

	resp := postTool(t, r, "/tools/transfer", gin.H{
		"conversation_id": "conv_1",
		"parameters": gin.H{
			"department": "finance",
			"reason":     "loan terms",
		},
	})
	if !resp.Success || resp.Action != "transfer" {
		t.Fatalf("expected transfer action: %+v", resp)
	}
	if resp.TransferNumber != "555-0103" {
		t.Fatalf("unexpected number: %q", resp.TransferNumber)
	}
	if !strings.Contains(resp.Message, "transfer you to our finance team") {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}
