// Package report renders extracted claim rows into a styled xlsx workbook.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ansvu/certsuite-claim-spreadsheet/internal/claim"
	"github.com/ansvu/certsuite-claim-spreadsheet/internal/extract"
)

// ErrReportWrite means the workbook could not be persisted to disk.
var ErrReportWrite = errors.New("cannot write report")

const (
	headerRow    = 10
	dataStartRow = 11

	jobURLBase = "https://www.distributed-ci.io/jobs/"

	dataRowHeight = 30.0
	wideColWidth  = 100.0
	stateColWidth = 11.0
)

var headers = []string{
	"Test_Id", "Test_Text", "State", "Capture_Output",
	"Category_Classification", "Exception_Process", "Remediation", "Best_Practice_Link",
}

// Classification tags flagged with a distinct font color wherever they appear
// inside row-table text.
var classificationKeywords = []string{"Extended:", "FarEdge:", "NonTelco:", "Telco:"}

// Write lays out the summary block, version block, header row and data rows
// into a single sheet named after the output file, then saves the workbook.
func Write(path string, rows []extract.Row, counts extract.Counts, versions claim.Versions, jobID string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := strings.TrimSpace(filepath.Base(path))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("register styles: %w", err)
	}

	writeSummary(f, sheet, counts, jobID, st)
	writeVersions(f, sheet, versions, st)
	writeRows(f, sheet, rows, st)
	sizeColumns(f, sheet, rows)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}
	return nil
}

// writeSummary fills rows 1-7 of columns A/B; rows 8-9 stay blank spacers.
func writeSummary(f *excelize.File, sheet string, counts extract.Counts, jobID string, st *styles) {
	labels := []struct {
		name  string
		value interface{}
	}{
		{"Total", counts.Total},
		{"Failed", counts.Failed},
		{"Error", counts.Error},
		{"Skipped", counts.Skipped},
		{"Passed", counts.Passed},
		{"Job-Id", jobURLBase + jobID},
	}

	_ = f.SetCellValue(sheet, "A1", "Summary")
	_ = f.SetCellStyle(sheet, "A1", "A1", st.title)
	for i, l := range labels {
		r := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), l.name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), l.value)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), st.summary[l.name])
		_ = f.SetCellStyle(sheet, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), st.labelValue)
	}
}

// writeVersions fills the component/version table in columns C/D, rows 1-7.
func writeVersions(f *excelize.File, sheet string, v claim.Versions, st *styles) {
	components := []struct {
		name, version string
	}{
		{"K8S", v.K8s},
		{"ocClient", v.OcClient},
		{"OCP", v.Ocp},
		{"CERTSUIT", v.CertSuite},
		{"claimF", v.ClaimFormat},
		{"certGitCom", v.CertSuiteGitCommit},
	}

	_ = f.SetCellValue(sheet, "C1", "Component")
	_ = f.SetCellValue(sheet, "D1", "Version")
	_ = f.SetCellStyle(sheet, "C1", "D1", st.versionHead)
	for i, c := range components {
		r := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), c.name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), orNA(c.version))
		_ = f.SetCellStyle(sheet, fmt.Sprintf("C%d", r), fmt.Sprintf("C%d", r), st.versionName)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("D%d", r), fmt.Sprintf("D%d", r), st.labelValue)
	}
}

// writeRows appends the header row and one row per extracted test, with state
// fills and classification keyword highlighting.
func writeRows(f *excelize.File, sheet string, rows []extract.Row, st *styles) {
	_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow), toCells(headers))
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("H%d", headerRow), st.headerWrap)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("C%d", headerRow), fmt.Sprintf("C%d", headerRow), st.headerState)

	lastRow := headerRow + len(rows)
	for i, row := range rows {
		r := dataStartRow + i
		vals := rowValues(row)
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", r), toCells(vals))
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", r), fmt.Sprintf("H%d", r), st.body)

		// State cell: bordered always, filled only for recognized states.
		stateStyle := st.state
		if id, ok := st.stateFill[row.State]; ok {
			stateStyle = id
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("C%d", r), fmt.Sprintf("C%d", r), stateStyle)

		// Keyword flag covers columns A-F of the row table.
		for col := 0; col < 6; col++ {
			if col == 2 || !containsKeyword(vals[col]) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			_ = f.SetCellStyle(sheet, cell, cell, st.bodyKeyword)
		}
	}

	for r := headerRow; r <= lastRow; r++ {
		_ = f.SetRowHeight(sheet, r, dataRowHeight)
	}
}

// sizeColumns auto-fits each column to its longest value, then pins the
// free-text columns wide and the state column narrow.
func sizeColumns(f *excelize.File, sheet string, rows []extract.Row) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, v := range rowValues(row) {
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, float64(w+2))
	}
	for _, col := range []string{"B", "D", "F", "G", "H"} {
		_ = f.SetColWidth(sheet, col, col, wideColWidth)
	}
	_ = f.SetColWidth(sheet, "C", "C", stateColWidth)
}

func rowValues(r extract.Row) []string {
	return []string{
		r.TestID, r.TestText, r.State, r.CaptureOutput,
		r.CategoryClassification, r.ExceptionProcess, r.Remediation, r.BestPracticeLink,
	}
}

func toCells(vals []string) *[]interface{} {
	cells := make([]interface{}, len(vals))
	for i, v := range vals {
		cells[i] = v
	}
	return &cells
}

func containsKeyword(s string) bool {
	for _, kw := range classificationKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
