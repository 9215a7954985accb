package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ansvu/certsuite-claim-spreadsheet/internal/claim"
	"github.com/ansvu/certsuite-claim-spreadsheet/internal/extract"
)

func testRows() ([]extract.Row, extract.Counts) {
	rows := []extract.Row{
		{
			TestID:                 "access-control-sys-admin",
			TestText:               "Checks for SYS_ADMIN",
			State:                  "failed",
			CaptureOutput:          "pod uses SYS_ADMIN",
			CategoryClassification: "Telco: Mandatory",
			Remediation:            "Remove the capability",
			BestPracticeLink:       "https://example.com/bp",
		},
		{
			TestID:                 "lifecycle-pod-owner",
			TestText:               "Pods owned by controllers",
			State:                  "skipped",
			CategoryClassification: "NonTelco: Optional",
		},
		{
			TestID:                 "networking-icmp",
			TestText:               "ICMP connectivity",
			State:                  "passed",
			CategoryClassification: "Telco: Mandatory",
		},
	}
	return rows, extract.Counts{Failed: 1, Skipped: 1, Passed: 1, Total: 3}
}

func writeAndOpen(t *testing.T, rows []extract.Row, counts extract.Counts, versions claim.Versions, jobID string) (*excelize.File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "result.xlsx")
	require.NoError(t, Write(path, rows, counts, versions, jobID))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f, "result.xlsx"
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestWriteSummaryBlock(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "8f2a")

	assert.Equal(t, "Summary", cell(t, f, sheet, "A1"))
	assert.Equal(t, "Total", cell(t, f, sheet, "A2"))
	assert.Equal(t, "3", cell(t, f, sheet, "B2"))
	assert.Equal(t, "1", cell(t, f, sheet, "B3")) // Failed
	assert.Equal(t, "0", cell(t, f, sheet, "B4")) // Error
	assert.Equal(t, "1", cell(t, f, sheet, "B5")) // Skipped
	assert.Equal(t, "1", cell(t, f, sheet, "B6")) // Passed
	assert.Equal(t, "Job-Id", cell(t, f, sheet, "A7"))
	assert.Equal(t, "https://www.distributed-ci.io/jobs/8f2a", cell(t, f, sheet, "B7"))

	// Rows 8-9 are blank spacers.
	assert.Empty(t, cell(t, f, sheet, "A8"))
	assert.Empty(t, cell(t, f, sheet, "A9"))
}

func TestWriteVersionBlock(t *testing.T) {
	rows, counts := testRows()
	versions := claim.Versions{
		K8s:       "v1.28.3",
		CertSuite: "v5.1.1",
	}
	f, sheet := writeAndOpen(t, rows, counts, versions, "1")

	assert.Equal(t, "Component", cell(t, f, sheet, "C1"))
	assert.Equal(t, "Version", cell(t, f, sheet, "D1"))

	wantNames := []string{"K8S", "ocClient", "OCP", "CERTSUIT", "claimF", "certGitCom"}
	wantValues := []string{"v1.28.3", "N/A", "N/A", "v5.1.1", "N/A", "N/A"}
	for i := range wantNames {
		r := i + 2
		assert.Equal(t, wantNames[i], cell(t, f, sheet, fmt.Sprintf("C%d", r)))
		assert.Equal(t, wantValues[i], cell(t, f, sheet, fmt.Sprintf("D%d", r)))
	}
}

func TestWriteAllVersionsMissing(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "1")
	for r := 2; r <= 7; r++ {
		assert.Equal(t, "N/A", cell(t, f, sheet, fmt.Sprintf("D%d", r)))
	}
}

func TestWriteRowTable(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "1")

	// Header row 10, all eight columns.
	want := []string{"Test_Id", "Test_Text", "State", "Capture_Output",
		"Category_Classification", "Exception_Process", "Remediation", "Best_Practice_Link"}
	for i, h := range want {
		col, _ := excelize.ColumnNumberToName(i + 1)
		assert.Equal(t, h, cell(t, f, sheet, col+"10"))
	}

	// Data rows in extractor order from row 11.
	assert.Equal(t, "access-control-sys-admin", cell(t, f, sheet, "A11"))
	assert.Equal(t, "failed", cell(t, f, sheet, "C11"))
	assert.Equal(t, "pod uses SYS_ADMIN", cell(t, f, sheet, "D11"))
	assert.Equal(t, "https://example.com/bp", cell(t, f, sheet, "H11"))

	assert.Equal(t, "lifecycle-pod-owner", cell(t, f, sheet, "A12"))
	assert.Equal(t, "skipped", cell(t, f, sheet, "C12"))

	// Passed row renders output/best-practice cells empty.
	assert.Equal(t, "networking-icmp", cell(t, f, sheet, "A13"))
	assert.Empty(t, cell(t, f, sheet, "D13"))
	assert.Empty(t, cell(t, f, sheet, "H13"))
}

func TestWriteSheetNameFromOutputPath(t *testing.T) {
	rows, counts := testRows()
	f, _ := writeAndOpen(t, rows, counts, claim.Versions{}, "1")
	idx, err := f.GetSheetIndex("result.xlsx")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 0)
}

func TestWriteColumnSizing(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "1")

	for _, col := range []string{"B", "D", "F", "G", "H"} {
		w, err := f.GetColWidth(sheet, col)
		require.NoError(t, err)
		assert.Equal(t, wideColWidth, w, "column %s", col)
	}
	w, err := f.GetColWidth(sheet, "C")
	require.NoError(t, err)
	assert.Equal(t, stateColWidth, w)

	// Column A auto-sizes to its longest value plus padding.
	w, err = f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(len("access-control-sys-admin")+2), w)
}

func TestWriteRowHeights(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "1")
	for r := 10; r <= 13; r++ {
		h, err := f.GetRowHeight(sheet, r)
		require.NoError(t, err)
		assert.Equal(t, dataRowHeight, h, "row %d", r)
	}
}

func TestWriteEmptyRowSet(t *testing.T) {
	f, sheet := writeAndOpen(t, nil, extract.Counts{}, claim.Versions{}, "1")
	assert.Equal(t, "0", cell(t, f, sheet, "B2"))
	assert.Equal(t, "Test_Id", cell(t, f, sheet, "A10"))
	assert.Empty(t, cell(t, f, sheet, "A11"))
}

func TestWriteBadDestination(t *testing.T) {
	rows, counts := testRows()
	path := filepath.Join(t.TempDir(), "missing-dir", "result.xlsx")
	err := Write(path, rows, counts, claim.Versions{}, "1")
	require.ErrorIs(t, err, ErrReportWrite)
}

func styleOf(t *testing.T, f *excelize.File, sheet, ref string) *excelize.Style {
	t.Helper()
	id, err := f.GetCellStyle(sheet, ref)
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	return st
}

// assertFill matches on the RGB suffix; excelize may round-trip colors with a
// leading alpha channel.
func assertFill(t *testing.T, st *excelize.Style, rgb, cell string) {
	t.Helper()
	require.NotEmpty(t, st.Fill.Color, "cell %s has no fill", cell)
	assert.True(t, strings.HasSuffix(strings.ToUpper(st.Fill.Color[0]), rgb),
		"cell %s fill = %v, want suffix %s", cell, st.Fill.Color, rgb)
}

func TestWriteStateCellFills(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "1")

	assertFill(t, styleOf(t, f, sheet, "C11"), "FF0000", "C11") // failed
	assertFill(t, styleOf(t, f, sheet, "C12"), "FFE599", "C12") // skipped
	assertFill(t, styleOf(t, f, sheet, "C13"), "90EE90", "C13") // passed
}

func TestWriteHeaderAndSummaryStyling(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "1")

	header := styleOf(t, f, sheet, "A10")
	require.NotNil(t, header.Font)
	assert.True(t, header.Font.Bold)
	assertFill(t, header, "AED6F1", "A10")
	assert.NotEmpty(t, header.Border)

	failedLabel := styleOf(t, f, sheet, "A3")
	require.NotNil(t, failedLabel.Font)
	assert.True(t, failedLabel.Font.Bold)
	assertFill(t, failedLabel, "FF0000", "A3")
}

func TestWriteClassificationKeywordFont(t *testing.T) {
	rows, counts := testRows()
	f, sheet := writeAndOpen(t, rows, counts, claim.Versions{}, "1")

	// E11 holds "Telco: Mandatory" and gets the flag color.
	kw := styleOf(t, f, sheet, "E11")
	require.NotNil(t, kw.Font)
	assert.True(t, strings.HasSuffix(strings.ToUpper(kw.Font.Color), "0000FF"),
		"keyword font color = %q", kw.Font.Color)

	// A11 ("access-control-sys-admin") carries no classification tag.
	plain := styleOf(t, f, sheet, "A11")
	require.NotNil(t, plain.Font)
	assert.False(t, strings.HasSuffix(strings.ToUpper(plain.Font.Color), "0000FF"))
}

func TestContainsKeyword(t *testing.T) {
	assert.True(t, containsKeyword("Telco: Mandatory"))
	assert.True(t, containsKeyword("Extended: Mandatory, FarEdge: Optional"))
	assert.False(t, containsKeyword("Telco Mandatory")) // no colon, no flag
	assert.False(t, containsKeyword(""))
}
