package normalizer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"survey-insights-go/internal/types"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrTooManyChoices  = errors.New("single-select question has more than one choice")
)

// SpecLookup resolves a question id to its spec.
type SpecLookup interface {
	Get(id int) (types.QuestionSpec, bool)
}

// MergeOthers flattens the chosen options into the stored answer string. The
// free text is appended after the choices when "Others" was picked, which is
// the format Normalize splits back apart.
func MergeOthers(selected []string, other string, spec types.QuestionSpec) string {
	answer := strings.Join(selected, Delimiter)
	other = strings.TrimSpace(other)
	if spec.MergeOthers && other != "" && slices.Contains(selected, types.OthersSentinel) {
		answer += Delimiter + other
	}
	return answer
}

// Record turns a submitted form into the row that gets stored.
func Record(sub types.Submission, specs SpecLookup) (types.AnswerRecord, error) {
	rec := types.AnswerRecord{UserID: sub.UserID, UserEmail: sub.UserEmail}
	for id := range sub.Others {
		if _, ok := specs.Get(id); !ok {
			return types.AnswerRecord{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
		}
	}
	for id, selected := range sub.Answers {
		spec, ok := specs.Get(id)
		if !ok {
			return types.AnswerRecord{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
		}
		if !spec.MultiSelect && len(selected) > 1 {
			return types.AnswerRecord{}, fmt.Errorf("question %d: %w", id, ErrTooManyChoices)
		}
		rec.Answers[id-1] = MergeOthers(selected, sub.Others[id], spec)
	}
	return rec, nil
}
