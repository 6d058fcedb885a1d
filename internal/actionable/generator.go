package actionable

import (
	"fmt"
	"strings"

	"survey-insights-go/internal/types"
)

// Strength of the leading answer.
const (
	StrengthNone      = "none"
	StrengthTie       = "tie"
	StrengthPlurality = "plurality"
	StrengthMajority  = "majority"
)

// majorityShare is the percentage at which a single answer is called a majority.
const majorityShare = 50.0

// Highlight summarizes the leading answer of one question for the dashboard.
type Highlight struct {
	QuestionID int      `json:"question_id"`
	Insight    string   `json:"insight"`
	Leaders    []string `json:"leaders,omitempty"`
	Share      float64  `json:"share"`
	Strength   string   `json:"strength"`
}

// Generate reads the canonical row order, so ties on the top count are
// reported in first-seen order.
func Generate(res types.AggregationResult) Highlight {
	h := Highlight{QuestionID: res.QuestionID, Strength: StrengthNone}
	if len(res.Rows) == 0 {
		h.Insight = "No responses yet"
		return h
	}
	top := res.Rows[0]
	for _, row := range res.Rows {
		if row.Count != top.Count {
			break
		}
		h.Leaders = append(h.Leaders, row.Category)
	}
	h.Share = top.Percentage

	switch {
	case len(h.Leaders) > 1:
		h.Strength = StrengthTie
		h.Insight = fmt.Sprintf("Tied for most common: %s (%.1f%% each)", strings.Join(h.Leaders, ", "), top.Percentage)
	case top.Percentage > majorityShare:
		h.Strength = StrengthMajority
		h.Insight = fmt.Sprintf("Clear majority chose %s (%.1f%%)", top.Category, top.Percentage)
	default:
		h.Strength = StrengthPlurality
		h.Insight = fmt.Sprintf("Most common answer: %s (%.1f%%)", top.Category, top.Percentage)
	}
	return h
}
