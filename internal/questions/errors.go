package questions

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid question configuration")

// ConfigurationError reports a question registry that cannot be used. It is a
// programmer error and should stop the process at startup.
type ConfigurationError struct {
	QuestionID int
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.QuestionID > 0 {
		return fmt.Sprintf("question %d: %s", e.QuestionID, e.Reason)
	}
	return e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErr(id int, format string, args ...any) error {
	return &ConfigurationError{QuestionID: id, Reason: fmt.Sprintf(format, args...)}
}
