// Package extract normalizes claim results into flat report rows and orders
// them severity-first.
package extract

import (
	"encoding/json"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ansvu/certsuite-claim-spreadsheet/internal/claim"
)

// Recognized test states, in triage order.
const (
	StateFailed  = "failed"
	StateError   = "error"
	StateSkipped = "skipped"
	StatePassed  = "passed"
)

// Row is the flattened projection of one TestOutcome. CaptureOutput and
// BestPracticeLink are populated only when State != "passed".
type Row struct {
	TestID                 string
	TestText               string
	State                  string
	CaptureOutput          string
	CategoryClassification string
	ExceptionProcess       string
	Remediation            string
	BestPracticeLink       string
}

// Counts aggregates rows per state bucket. Total covers every emitted row,
// including states outside the four recognized values.
type Counts struct {
	Failed  int
	Error   int
	Skipped int
	Passed  int
	Other   int
	Total   int
}

// Extract normalizes every results entry into a Row, drops malformed entries
// with a warning, and returns the rows ordered failed, error, skipped,
// passed, then anything else. Within a bucket rows sort ascending by test id.
func Extract(rec *claim.Record, log *zap.Logger) ([]Row, Counts, error) {
	if rec == nil || len(rec.Claim.Results) == 0 {
		return nil, Counts{}, claim.ErrMissingResults
	}

	var failed, errored, skipped, passed, other []Row
	for key, raw := range rec.Claim.Results {
		var t claim.TestOutcome
		if err := json.Unmarshal(raw, &t); err != nil {
			log.Warn("skipping malformed result entry",
				zap.String("test", key), zap.Error(err))
			continue
		}
		row := newRow(t)
		switch row.State {
		case StateFailed:
			failed = append(failed, row)
		case StateError:
			errored = append(errored, row)
		case StateSkipped:
			skipped = append(skipped, row)
		case StatePassed:
			passed = append(passed, row)
		default:
			other = append(other, row)
		}
	}

	counts := Counts{
		Failed:  len(failed),
		Error:   len(errored),
		Skipped: len(skipped),
		Passed:  len(passed),
		Other:   len(other),
	}
	counts.Total = counts.Failed + counts.Error + counts.Skipped + counts.Passed + counts.Other

	rows := make([]Row, 0, counts.Total)
	for _, bucket := range [][]Row{failed, errored, skipped, passed, other} {
		sortByID(bucket)
		rows = append(rows, bucket...)
	}
	return rows, counts, nil
}

// newRow flattens a TestOutcome. This is the only place rows are built, so
// the passed-state field omission holds for every row in the report.
func newRow(t claim.TestOutcome) Row {
	row := Row{
		TestID:                 t.TestID.ID,
		TestText:               t.CatalogInfo.Description,
		State:                  t.State,
		CategoryClassification: joinClassification(t.CategoryClassification),
		ExceptionProcess:       t.CatalogInfo.ExceptionProcess,
		Remediation:            t.CatalogInfo.Remediation,
	}
	if t.State != StatePassed {
		row.CaptureOutput = FilterOutput(t.CapturedTestOutput)
		row.BestPracticeLink = t.CatalogInfo.BestPracticeReference
	}
	return row
}

// FilterOutput drops every line containing "INFO" from captured test output.
func FilterOutput(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !strings.Contains(line, "INFO") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// joinClassification renders a classification mapping as "k: v, k: v".
// Keys are joined in sorted order so the report is deterministic.
func joinClassification(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+m[k])
	}
	return strings.Join(parts, ", ")
}

func sortByID(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TestID < rows[j].TestID
	})
}
