package calls

import "testing"

func TestHasTool(t *testing.T) {
	c := CallData{ToolsTriggered: []string{ToolInventorySearch, ToolTransferToHuman}}
	if !c.HasTool(ToolInventorySearch) {
		t.Fatalf("expected inventory_search")
	}
	if c.HasTool(ToolScheduleService) {
		t.Fatalf("did not expect schedule_service")
	}
	if (CallData{}).HasTool(ToolInventorySearch) {
		t.Fatalf("empty call should have no tools")
	}
}

func TestToolParamsAccessors(t *testing.T) {
	p := ToolParams{"make": "Toyota", "year": float64(2024), "price_max": 35000}
	if p.String("make") != "Toyota" {
		t.Fatalf("string accessor failed")
	}
	if p.Int("year") != 2024 {
		t.Fatalf("float64 int accessor failed")
	}
	if p.Int("price_max") != 35000 {
		t.Fatalf("int accessor failed")
	}
	if p.String("missing") != "" || p.Int("missing") != 0 {
		t.Fatalf("missing keys must degrade to zero values")
	}

	var nilParams ToolParams
	if nilParams.String("x") != "" || nilParams.Int("x") != 0 {
		t.Fatalf("nil params must degrade to zero values")
	}
}
