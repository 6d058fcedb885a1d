package dataset

import "survey-insights-go/internal/types"

// Summarize counts records, distinct respondents and how many records
// answered each question.
func Summarize(records []types.AnswerRecord) types.DatasetSummary {
	ds := types.DatasetSummary{
		TotalResponses:     len(records),
		AnsweredByQuestion: make(map[int]int, types.QuestionCount),
	}
	respondents := map[string]struct{}{}
	for q := 1; q <= types.QuestionCount; q++ {
		ds.AnsweredByQuestion[q] = 0
	}
	for _, r := range records {
		key := r.UserID
		if key == "" {
			key = r.UserEmail
		}
		if key != "" {
			respondents[key] = struct{}{}
		}
		for q, a := range r.Answers {
			if a != "" {
				ds.AnsweredByQuestion[q+1]++
			}
		}
	}
	ds.UniqueRespondents = len(respondents)
	return ds
}
