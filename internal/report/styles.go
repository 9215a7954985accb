package report

import "github.com/xuri/excelize/v2"

// Palette shared between the summary block and the state column.
const (
	colorHeaderBlue = "AED6F1"
	colorRed        = "FF0000"
	colorDarkRed    = "8B0000"
	colorOrange     = "FFE599"
	colorGreen      = "90EE90"
	colorYellow     = "FFFFCC"
	colorCyan       = "00FFFF"
	colorBorderGray = "D3D3D3"
	colorKeyword    = "0000FF"
)

// styles holds the style ids registered on one workbook.
type styles struct {
	title       int
	versionHead int
	versionName int
	summary     map[string]int // label -> style
	labelValue  int

	headerWrap  int
	headerState int
	body        int
	bodyKeyword int
	state       int
	stateFill   map[string]int // state -> style
}

func newStyles(f *excelize.File) (*styles, error) {
	var err error
	mk := func(s *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(s)
		return id
	}

	bold := &excelize.Font{Bold: true}
	arial := &excelize.Font{Family: "Arial"}
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	wrapped := &excelize.Alignment{WrapText: true}

	summaryLabel := func(color string) int {
		return mk(&excelize.Style{
			Font:      bold,
			Fill:      fill(color),
			Border:    border(1, colorBorderGray),
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		})
	}
	stateCell := func(color string) int {
		s := &excelize.Style{
			Font:      arial,
			Border:    border(1, colorBorderGray),
			Alignment: centered,
		}
		if color != "" {
			s.Fill = fill(color)
		}
		return mk(s)
	}

	st := &styles{
		title:       mk(&excelize.Style{Font: bold, Fill: fill(colorHeaderBlue), Alignment: centered}),
		versionHead: mk(&excelize.Style{Font: bold, Fill: fill(colorGreen), Alignment: centered}),
		versionName: mk(&excelize.Style{Font: bold, Fill: fill(colorYellow), Border: border(1, colorBorderGray)}),
		summary: map[string]int{
			"Total":   summaryLabel(colorCyan),
			"Failed":  summaryLabel(colorRed),
			"Error":   summaryLabel(colorDarkRed),
			"Skipped": summaryLabel(colorOrange),
			"Passed":  summaryLabel(colorGreen),
			"Job-Id":  summaryLabel(colorYellow),
		},
		labelValue: mk(&excelize.Style{Font: bold, Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"}}),

		headerWrap: mk(&excelize.Style{
			Font:      &excelize.Font{Family: "Arial", Bold: true},
			Fill:      fill(colorHeaderBlue),
			Border:    border(2, "000000"),
			Alignment: wrapped,
		}),
		headerState: mk(&excelize.Style{
			Font:      &excelize.Font{Family: "Arial", Bold: true},
			Fill:      fill(colorHeaderBlue),
			Border:    border(2, "000000"),
			Alignment: centered,
		}),
		body:        mk(&excelize.Style{Font: arial, Alignment: wrapped}),
		bodyKeyword: mk(&excelize.Style{Font: &excelize.Font{Family: "Arial", Color: colorKeyword}, Alignment: wrapped}),
		state:       stateCell(""),
		stateFill: map[string]int{
			"failed":  stateCell(colorRed),
			"error":   stateCell(colorDarkRed),
			"skipped": stateCell(colorOrange),
			"passed":  stateCell(colorGreen),
		},
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func fill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func border(style int, color string) []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	out := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		out = append(out, excelize.Border{Type: s, Style: style, Color: color})
	}
	return out
}
