package transfer

import (
	"strings"
	"testing"
)

func TestRoute(t *testing.T) {
	r := NewRouter(nil)

	tests := []struct {
		department string
		wantDept   string
		wantNumber string
	}{
		{"sales", DepartmentSales, "555-0101"},
		{"Service", DepartmentService, "555-0102"},
		{"finance", DepartmentFinance, "555-0103"},
		{"appraisal", DepartmentAppraisal, "555-0104"},
		{"", DepartmentGeneral, "555-0100"},
		{"parts", DepartmentGeneral, "555-0100"},
	}

	for _, tc := range tests {
		got := r.Route(tc.department)
		if got.Department != tc.wantDept || got.Number != tc.wantNumber {
			t.Fatalf("Route(%q) = %+v, want %s/%s", tc.department, got, tc.wantDept, tc.wantNumber)
		}
	}
}

func TestRouteOverrides(t *testing.T) {
	r := NewRouter(map[string]string{
		"Sales": "480-555-7001",
		"parts": "480-555-7002",
	})

	if got := r.Route("sales"); got.Number != "480-555-7001" {
		t.Fatalf("override not applied: %+v", got)
	}
	if got := r.Route("parts"); got.Department != "parts" || got.Number != "480-555-7002" {
		t.Fatalf("added department not routed: %+v", got)
	}
	if got := r.Route("service"); got.Number != "555-0102" {
		t.Fatalf("default clobbered: %+v", got)
	}
}

func TestQueue(t *testing.T) {
	r := NewRouter(nil)

	q := r.Queue("finance")
	if !strings.HasPrefix(q.QueueID, "Q_") {
		t.Fatalf("unexpected queue id: %q", q.QueueID)
	}
	if q.Department != DepartmentFinance || q.Position != 1 || q.EstimatedWait != "30 seconds" {
		t.Fatalf("unexpected queue entry: %+v", q)
	}
}
