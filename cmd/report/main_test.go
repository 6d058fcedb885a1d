package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/pipeline"
	"survey-insights-go/internal/questions"
	"survey-insights-go/internal/report"
	"survey-insights-go/internal/types"
)

func sampleRecords() []types.AnswerRecord {
	a := types.AnswerRecord{ID: 1, UserID: "UID001"}
	a.Answers[0] = "1-3 years"
	a.Answers[1] = "Dog, Cat"
	b := types.AnswerRecord{ID: 2, UserID: "UID002"}
	b.Answers[0] = "1-3 years"
	b.Answers[1] = "Dog"
	return []types.AnswerRecord{a, b}
}

func sampleDashboard(t *testing.T) pipeline.Dashboard {
	t.Helper()
	reg, err := questions.Default()
	require.NoError(t, err)
	p := pipeline.New(reg, false, logger.NewWithOptions(logger.Options{Output: io.Discard}))
	d, err := p.Run(context.Background(), sampleRecords())
	require.NoError(t, err)
	return d
}

// writeDataset produces an export that dataset.Load reads back.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "responses.xlsx")
	require.NoError(t, report.WriteFile(path, sampleDashboard(t), sampleRecords()))
	return path
}

func TestRenderTables(t *testing.T) {
	out := renderTables(sampleDashboard(t))

	assert.Contains(t, out, "2 responses from 2 respondents")
	assert.Contains(t, out, "Q2. What types of pets do you currently own? (2 responses)")
	assert.Contains(t, out, "2 (66.7%)")
	assert.Contains(t, out, "Clear majority chose Dog (66.7%)")
	assert.Contains(t, out, "No responses")
}

func TestRun_JSON(t *testing.T) {
	var stdout bytes.Buffer
	opts := options{datasetPath: writeDataset(t), format: "json", question: 2}
	require.NoError(t, run(context.Background(), opts, &stdout, io.Discard))

	var d pipeline.Dashboard
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &d))
	require.Len(t, d.Questions, 1)
	assert.Equal(t, 2, d.Questions[0].Spec.ID)
	assert.Equal(t, []string{"Cat", "Dog"}, d.Questions[0].Chart.Categories)
	assert.Equal(t, 2, d.Summary.TotalResponses)
}

func TestRun_JSONKeepsStdoutClean(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENVIRONMENT", "production")
	path := writeDataset(t)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	var out, logs bytes.Buffer
	runErr := run(context.Background(), options{datasetPath: path, format: "json"}, &out, &logs)
	os.Stdout = orig
	require.NoError(t, w.Close())
	leaked, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, runErr)
	assert.Empty(t, string(leaked))
	assert.True(t, json.Valid(out.Bytes()))
	assert.Contains(t, logs.String(), `"msg":"dataset loaded"`)
}

func TestRun_Table(t *testing.T) {
	var stdout bytes.Buffer
	opts := options{datasetPath: writeDataset(t), format: "TABLE"}
	require.NoError(t, run(context.Background(), opts, &stdout, io.Discard))

	assert.Contains(t, stdout.String(), "Q11.")
}

func TestRun_XLSX(t *testing.T) {
	var stdout bytes.Buffer
	out := filepath.Join(t.TempDir(), "out.xlsx")
	opts := options{datasetPath: writeDataset(t), format: "xlsx", out: out}
	require.NoError(t, run(context.Background(), opts, &stdout, io.Discard))
	assert.Equal(t, out+"\n", stdout.String())

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), types.QuestionCount+1)
}

func TestRun_Errors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx, options{format: "csv"}, io.Discard, io.Discard)
	assert.ErrorContains(t, err, "unknown format")

	err = run(ctx, options{datasetPath: "x.xlsx", format: "json", question: 12}, io.Discard, io.Discard)
	assert.ErrorContains(t, err, "no question 12")

	err = run(ctx, options{datasetPath: filepath.Join(t.TempDir(), "missing.xlsx"), format: "json"}, io.Discard, io.Discard)
	assert.Error(t, err)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dataset", "a.xlsx", "--db-url", "postgres://x"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.Error(t, cmd.Execute())
}
