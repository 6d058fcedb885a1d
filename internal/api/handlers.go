package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"survey-insights-go/internal/normalizer"
	"survey-insights-go/internal/report"
	"survey-insights-go/internal/store"
	"survey-insights-go/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxSubmissionBytes bounds a POSTed form; 11 answers fit well inside it.
const maxSubmissionBytes = 16 << 10

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ok")
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	d, _, err := s.pipeline.RunSource(r.Context(), s.source)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "dashboard_failed", err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) question(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid_question_id", fmt.Errorf("question id %q is not a number", raw))
		return
	}
	if _, ok := s.registry.Get(id); !ok {
		s.fail(w, r, http.StatusNotFound, "unknown_question", fmt.Errorf("no question %d", id))
		return
	}

	records, err := s.source.FetchAll(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "fetch_failed", err)
		return
	}
	rep, err := s.pipeline.Question(records, id)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "aggregation_failed", err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, rep)
}

func (s *Server) workbook(w http.ResponseWriter, r *http.Request) {
	d, records, err := s.pipeline.RunSource(r.Context(), s.source)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "dashboard_failed", err)
		return
	}
	// buffer so a render error can still become a 500
	var buf bytes.Buffer
	if err := report.Write(&buf, d, records); err != nil {
		s.fail(w, r, http.StatusInternalServerError, "report_failed", err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="survey-report.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.WithRequest(r).WithField("error", err.Error()).Error("failed to write workbook")
	}
}

func (s *Server) listResponses(w http.ResponseWriter, r *http.Request) {
	records, err := s.source.FetchAll(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "fetch_failed", err)
		return
	}
	if records == nil {
		records = []types.AnswerRecord{}
	}
	s.writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) createResponse(w http.ResponseWriter, r *http.Request) {
	if s.inserter == nil {
		s.fail(w, r, http.StatusServiceUnavailable, "read_only", errors.New("responses are loaded from a file and cannot be added"))
		return
	}

	var sub types.Submission
	body := http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := json.NewDecoder(body).Decode(&sub); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, "body_too_large", err)
			return
		}
		s.fail(w, r, http.StatusBadRequest, "invalid_json", err)
		return
	}
	rec, err := normalizer.Record(sub, s.registry)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid_submission", err)
		return
	}
	id, err := s.inserter.Insert(r.Context(), rec)
	switch {
	case errors.Is(err, store.ErrInvalidRecord):
		s.fail(w, r, http.StatusBadRequest, "invalid_submission", err)
		return
	case err != nil:
		s.fail(w, r, http.StatusInternalServerError, "insert_failed", err)
		return
	}

	s.log.WithRequest(r).WithField("response_id", id).Info("response stored")
	s.writeJSON(w, r, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.log.WithRequest(r).WithField("error", err.Error()).Error("failed to write response")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	entry := s.log.WithRequest(r).WithField("error", err.Error()).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error(code)
	} else {
		entry.Warn(code)
	}
	s.writeJSON(w, r, status, errorBody{Error: code, Message: err.Error()})
}
