package report

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"survey-insights-go/internal/pipeline"
	"survey-insights-go/internal/types"
)

const (
	ResponsesSheet = "Responses"
	// tableRow is the header row of each question's data table.
	tableRow = 3
)

var chartTypes = map[types.ChartShape]excelize.ChartType{
	types.ShapePie:           excelize.Pie,
	types.ShapeBarHorizontal: excelize.Bar,
	types.ShapeBarVertical:   excelize.Col,
}

// SheetName is the worksheet holding one question's table and chart.
func SheetName(questionID int) string {
	return fmt.Sprintf("Q%d", questionID)
}

// Write renders the dashboard as an xlsx workbook: the raw responses first,
// then one sheet per question with its table and a native chart.
func Write(w io.Writer, d pipeline.Dashboard, records []types.AnswerRecord) error {
	f, err := build(d, records)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile is Write to a path.
func WriteFile(path string, d pipeline.Dashboard, records []types.AnswerRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(out, d, records); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func build(d pipeline.Dashboard, records []types.AnswerRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ResponsesSheet); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := writeResponses(f, records, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("responses sheet: %w", err)
	}
	for _, q := range d.Questions {
		if err := writeQuestion(f, q.Chart, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("question %d: %w", q.Spec.ID, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeResponses(f *excelize.File, records []types.AnswerRecord, bold int) error {
	header := []any{"id", "userid", "useremail"}
	for q := 1; q <= types.QuestionCount; q++ {
		header = append(header, fmt.Sprintf("question%d", q))
	}
	if err := f.SetSheetRow(ResponsesSheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(ResponsesSheet, "A1", last, bold); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{r.ID, r.UserID, r.UserEmail}
		for _, a := range r.Answers {
			row = append(row, a)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ResponsesSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeQuestion(f *excelize.File, req types.ChartRequest, bold int) error {
	sheet := SheetName(req.QuestionID)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", req.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return err
	}

	if req.Empty() {
		return f.SetCellValue(sheet, fmt.Sprintf("A%d", tableRow), "No responses")
	}

	header := []any{"Category", "Count", "Percentage", "Label"}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", tableRow), &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("D%d", tableRow), bold); err != nil {
		return err
	}
	for i := range req.Categories {
		row := []any{req.Categories[i], req.Counts[i], req.Percentages[i], req.Labels[i]}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", tableRow+1+i), &row); err != nil {
			return err
		}
	}

	first, last := tableRow+1, tableRow+len(req.Categories)
	return f.AddChart(sheet, "F3", chartFor(req, sheet, first, last))
}

func chartFor(req types.ChartRequest, sheet string, first, last int) *excelize.Chart {
	c := &excelize.Chart{
		Type: chartTypes[req.Shape],
		Series: []excelize.ChartSeries{{
			Name:       "Count",
			Categories: fmt.Sprintf("%s!$A$%d:$A$%d", sheet, first, last),
			Values:     fmt.Sprintf("%s!$B$%d:$B$%d", sheet, first, last),
		}},
		Title:     []excelize.RichTextRun{{Text: req.Title}},
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
	}
	if req.Shape == types.ShapePie {
		c.Legend = excelize.ChartLegend{Position: "right"}
		c.PlotArea = excelize.ChartPlotArea{ShowPercent: true}
		return c
	}
	c.Legend = excelize.ChartLegend{Position: "none"}
	c.PlotArea = excelize.ChartPlotArea{ShowVal: true}
	// XAxis is the category axis for bars and columns alike.
	c.XAxis.Title = []excelize.RichTextRun{{Text: req.AxisTitle}}
	c.YAxis.Title = []excelize.RichTextRun{{Text: "Count"}}
	return c
}
