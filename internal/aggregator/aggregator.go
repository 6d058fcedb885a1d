package aggregator

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"survey-insights-go/internal/normalizer"
	"survey-insights-go/internal/types"
)

// Tally counts every token across records. Rows come back by descending
// count; equal counts keep the order in which categories were first seen.
func Tally(tokensPerRecord [][]string) []types.TallyRow {
	index := map[string]int{}
	var rows []types.TallyRow
	for _, tokens := range tokensPerRecord {
		for _, t := range tokens {
			if i, ok := index[t]; ok {
				rows[i].Count++
				continue
			}
			index[t] = len(rows)
			rows = append(rows, types.TallyRow{Category: t, Count: 1})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows
}

// Aggregate normalizes and tallies one question column, drops the excluded
// categories and computes percentages over what is left.
func Aggregate(spec types.QuestionSpec, column []types.RawAnswer) types.AggregationResult {
	res := types.AggregationResult{QuestionID: spec.ID, Rows: []types.ResultRow{}}

	tokens := make([][]string, 0, len(column))
	for _, a := range column {
		if a.Answer != "" {
			res.TotalResponses++
		}
		tokens = append(tokens, normalizer.Normalize(a.Answer, a.OtherText, spec))
	}

	var kept []types.TallyRow
	sum := 0
	for _, row := range Tally(tokens) {
		if spec.IsExcluded(row.Category) {
			continue
		}
		kept = append(kept, row)
		sum += row.Count
	}
	if sum == 0 {
		return res
	}

	for _, row := range kept {
		pct := Percentage(row.Count, sum)
		res.Rows = append(res.Rows, types.ResultRow{
			Category:   row.Category,
			Count:      row.Count,
			Percentage: pct,
			Label:      Label(row.Count, pct),
		})
	}
	return res
}

// Column extracts one question's answers from the stored records.
func Column(records []types.AnswerRecord, questionID int) ([]types.RawAnswer, error) {
	column := make([]types.RawAnswer, 0, len(records))
	for _, r := range records {
		answer, err := r.Answer(questionID)
		if err != nil {
			return nil, err
		}
		column = append(column, types.RawAnswer{Answer: answer})
	}
	return column, nil
}

// Percentage is count/total as a percent rounded to one decimal.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// Label renders "count (pct%)".
func Label(count int, pct float64) string {
	return fmt.Sprintf("%d (%s%%)", count, strconv.FormatFloat(pct, 'f', 1, 64))
}
