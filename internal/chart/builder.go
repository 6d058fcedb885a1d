package chart

import (
	"fmt"

	"survey-insights-go/internal/types"
)

// Build turns an aggregation into a renderer-neutral chart request.
//
// Horizontal bars are emitted in ascending order: renderers draw index 0 at
// the bottom, so the biggest category ends up on top.
func Build(res types.AggregationResult, spec types.QuestionSpec) types.ChartRequest {
	n := len(res.Rows)
	req := types.ChartRequest{
		QuestionID:  spec.ID,
		Title:       Title(spec.Title, res.TotalResponses),
		Shape:       spec.Shape,
		AxisTitle:   spec.AxisTitle,
		Categories:  make([]string, n),
		Counts:      make([]int, n),
		Percentages: make([]float64, n),
		Labels:      make([]string, n),
	}
	for i, row := range res.Rows {
		j := i
		if spec.Shape == types.ShapeBarHorizontal {
			j = n - 1 - i
		}
		req.Categories[j] = row.Category
		req.Counts[j] = row.Count
		req.Percentages[j] = row.Percentage
		req.Labels[j] = row.Label
	}
	return req
}

// Title appends the response count to a question title.
func Title(title string, responses int) string {
	return fmt.Sprintf("%s (%d responses)", title, responses)
}
