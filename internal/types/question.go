package types

import "slices"

// OthersSentinel is the choice that signals accompanying free text.
const OthersSentinel = "Others"

type ChartShape string

const (
	ShapePie           ChartShape = "pie"
	ShapeBarHorizontal ChartShape = "bar_horizontal"
	ShapeBarVertical   ChartShape = "bar_vertical"
)

func (s ChartShape) Valid() bool {
	switch s {
	case ShapePie, ShapeBarHorizontal, ShapeBarVertical:
		return true
	}
	return false
}

// QuestionSpec is the static metadata for one survey question.
type QuestionSpec struct {
	ID          int        `json:"question_id"`
	Title       string     `json:"title"`
	MultiSelect bool       `json:"is_multi_select"`
	MergeOthers bool       `json:"merge_others"`
	CaseFold    bool       `json:"case_fold"`
	Excluded    []string   `json:"excluded_categories,omitempty"`
	Shape       ChartShape `json:"shape"`
	// AxisTitle labels the category axis of bar charts.
	AxisTitle string `json:"axis_title,omitempty"`
	// Options lists the known answer choices, when declared.
	Options []string `json:"options,omitempty"`
}

// IsExcluded reports whether category is dropped from the tally.
func (q QuestionSpec) IsExcluded(category string) bool {
	return slices.Contains(q.Excluded, category)
}
