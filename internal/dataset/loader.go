package dataset

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/types"
)

// columns maps header positions of an export sheet; -1 means absent.
type columns struct {
	id, userID, email int
	answers           [types.QuestionCount]int
}

// Load reads survey responses from the first sheet of an xlsx export. The
// header row names the columns (id, userid, useremail, question1..question11);
// matching ignores case, spaces and underscores.
func Load(path string) ([]types.AnswerRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	cols, err := detectColumns(rows[0])
	if err != nil {
		return nil, err
	}

	out := []types.AnswerRecord{}
	for i, r := range rows[1:] {
		rec := types.AnswerRecord{
			UserID:    cell(r, cols.userID),
			UserEmail: cell(r, cols.email),
		}
		answered := false
		for q, idx := range cols.answers {
			rec.Answers[q] = cell(r, idx)
			if rec.Answers[q] != "" {
				answered = true
			}
		}
		// skip blank rows quietly
		if !answered {
			continue
		}
		if raw := strings.TrimSpace(cell(r, cols.id)); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid id %q", i+2, raw)
			}
			rec.ID = id
		} else {
			rec.ID = int64(i + 1)
		}
		out = append(out, rec)
	}
	return out, nil
}

func detectColumns(header []string) (columns, error) {
	cols := columns{id: -1, userID: -1, email: -1}
	for q := range cols.answers {
		cols.answers[q] = -1
	}
	found := 0
	for i, h := range header {
		n := strings.NewReplacer(" ", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(h)))
		switch {
		case n == "id":
			cols.id = i
		case n == "userid":
			cols.userID = i
		case n == "useremail" || n == "email":
			cols.email = i
		case strings.HasPrefix(n, "question"):
			q, err := strconv.Atoi(strings.TrimPrefix(n, "question"))
			if err != nil || q < 1 || q > types.QuestionCount {
				continue
			}
			if cols.answers[q-1] == -1 {
				cols.answers[q-1] = i
				found++
			}
		}
	}
	if found == 0 {
		return columns{}, fmt.Errorf("no question columns in header")
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// FileSource serves responses from an xlsx export.
type FileSource struct {
	Path string
	log  *logger.Logger
}

// NewFileSource reads path on every fetch and logs through log.
func NewFileSource(path string, log *logger.Logger) FileSource {
	return FileSource{Path: path, log: log.Component("dataset")}
}

func (s FileSource) FetchAll(ctx context.Context) ([]types.AnswerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := s.log
	if log == nil {
		log = logger.NewWithOptions(logger.Options{Output: io.Discard})
	}
	entry := log.WithField("path", s.Path)
	records, err := Load(s.Path)
	if err != nil {
		entry.WithField("error", err.Error()).Error("load failed")
		return nil, err
	}
	entry.WithField("records", len(records)).Debug("dataset loaded")
	return records, nil
}
