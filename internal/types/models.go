package types

import "fmt"

// QuestionCount is the number of questions on the survey form.
const QuestionCount = 11

// AnswerRecord is one stored survey response. Answers[i] holds the raw
// stored value for question i+1.
type AnswerRecord struct {
	ID        int64                 `json:"id"`
	UserID    string                `json:"userid"`
	UserEmail string                `json:"useremail"`
	Answers   [QuestionCount]string `json:"answers"`
}

// Answer returns the raw answer for a 1-based question id.
func (r AnswerRecord) Answer(questionID int) (string, error) {
	if questionID < 1 || questionID > QuestionCount {
		return "", fmt.Errorf("question %d out of range", questionID)
	}
	return r.Answers[questionID-1], nil
}

// RawAnswer is one entry of a question column: the stored answer and, for
// sources that keep it apart, the free text typed next to "Others".
type RawAnswer struct {
	Answer    string `json:"answer"`
	OtherText string `json:"other_text,omitempty"`
}

// Submission is a survey form as posted by a respondent, before it is
// flattened into an AnswerRecord.
type Submission struct {
	UserID    string           `json:"userid"`
	UserEmail string           `json:"useremail"`
	Answers   map[int][]string `json:"answers"`
	Others    map[int]string   `json:"others,omitempty"`
}
