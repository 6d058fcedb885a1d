package types

// --------------------------------------------
// Tally and aggregation
// --------------------------------------------

type TallyRow struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type ResultRow struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// AggregationResult rows are always in canonical order: descending by
// count, ties in first-seen order.
type AggregationResult struct {
	QuestionID     int         `json:"question_id"`
	TotalResponses int         `json:"total_responses"`
	Rows           []ResultRow `json:"rows"`
}

// --------------------------------------------
// Chart requests handed to renderers
// --------------------------------------------

type ChartRequest struct {
	QuestionID  int        `json:"question_id"`
	Title       string     `json:"title"`
	Shape       ChartShape `json:"shape"`
	AxisTitle   string     `json:"axis_title,omitempty"`
	Categories  []string   `json:"categories"`
	Counts      []int      `json:"counts"`
	Percentages []float64  `json:"percentages"`
	Labels      []string   `json:"labels"`
}

// Empty reports whether there is nothing to draw.
func (c ChartRequest) Empty() bool {
	return len(c.Categories) == 0
}

// --------------------------------------------
// Dataset summary
// --------------------------------------------

type DatasetSummary struct {
	TotalResponses     int         `json:"total_responses"`
	UniqueRespondents  int         `json:"unique_respondents"`
	AnsweredByQuestion map[int]int `json:"answered_by_question"`
}
