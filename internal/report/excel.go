package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook renders the summary as a two-sheet .xlsx file: one
// overview sheet and one breakdown sheet with the per-outcome,
// per-sentiment, and per-timeline counts.
func WriteWorkbook(path string, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return fmt.Errorf("report: rename sheet: %w", err)
	}

	overviewRows := [][]any{
		{"Dealer Logic Call Report"},
		{"Generated", s.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{"Window start", s.Since.Format("2006-01-02")},
		{},
		{"Total calls", s.TotalCalls},
		{"Total talk time (seconds)", s.TotalDurationSecs},
		{"Calls needing follow-up", s.FollowUpsRequired},
		{},
		{"Leads created", s.TotalLeads},
		{"High-priority leads", s.HighPriorityLeads},
		{"Average lead score", s.AverageLeadScore},
	}
	if err := writeRows(f, overview, overviewRows); err != nil {
		return err
	}

	const breakdown = "Breakdown"
	if _, err := f.NewSheet(breakdown); err != nil {
		return fmt.Errorf("report: add sheet: %w", err)
	}

	var rows [][]any
	rows = append(rows, []any{"Calls by outcome"})
	rows = append(rows, countRows(s.ByOutcome)...)
	rows = append(rows, []any{})
	rows = append(rows, []any{"Calls by sentiment"})
	rows = append(rows, countRows(s.BySentiment)...)
	rows = append(rows, []any{})
	rows = append(rows, []any{"Leads by timeline"})
	rows = append(rows, countRows(s.ByTimeline)...)
	if err := writeRows(f, breakdown, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("report: write row: %w", err)
		}
	}
	return nil
}

// countRows renders a counter map in stable key order.
func countRows(counts map[string]int) [][]any {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, []any{k, counts[k]})
	}
	return out
}
