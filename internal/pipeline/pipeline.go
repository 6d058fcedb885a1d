// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"survey-insights-go/internal/actionable"
	"survey-insights-go/internal/aggregator"
	"survey-insights-go/internal/chart"
	"survey-insights-go/internal/dataset"
	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/questions"
	"survey-insights-go/internal/types"
)

// Source supplies a point-in-time snapshot of every stored response.
type Source interface {
	FetchAll(ctx context.Context) ([]types.AnswerRecord, error)
}

// QuestionReport is everything the dashboard shows for one question.
type QuestionReport struct {
	Spec      types.QuestionSpec      `json:"spec"`
	Result    types.AggregationResult `json:"result"`
	Chart     types.ChartRequest      `json:"chart"`
	Highlight actionable.Highlight    `json:"highlight"`
}

type Dashboard struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Summary     types.DatasetSummary `json:"summary"`
	Questions   []QuestionReport     `json:"questions"`
}

// Question returns the report for a 1-based question id.
func (d Dashboard) Question(id int) (QuestionReport, bool) {
	for _, q := range d.Questions {
		if q.Spec.ID == id {
			return q, true
		}
	}
	return QuestionReport{}, false
}

type Pipeline struct {
	registry   *questions.Registry
	concurrent bool
	log        *logger.Logger
	now        func() time.Time
}

// New builds a pipeline over a validated registry. With concurrent set, the
// questions are computed in parallel; the output is identical either way.
func New(registry *questions.Registry, concurrent bool, log *logger.Logger) *Pipeline {
	return &Pipeline{
		registry:   registry,
		concurrent: concurrent,
		log:        log.Component("pipeline"),
		now:        time.Now,
	}
}

// RunSource fetches every record from src and runs the full pass.
func (p *Pipeline) RunSource(ctx context.Context, src Source) (Dashboard, []types.AnswerRecord, error) {
	records, err := src.FetchAll(ctx)
	if err != nil {
		return Dashboard{}, nil, fmt.Errorf("fetch responses: %w", err)
	}
	d, err := p.Run(ctx, records)
	return d, records, err
}

// Run aggregates all questions over records.
func (p *Pipeline) Run(ctx context.Context, records []types.AnswerRecord) (Dashboard, error) {
	start := p.now()
	reports := make([]QuestionReport, types.QuestionCount)

	g, gctx := errgroup.WithContext(ctx)
	if !p.concurrent {
		g.SetLimit(1)
	}
	for id := 1; id <= types.QuestionCount; id++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := p.question(records, id)
			if err != nil {
				return err
			}
			reports[id-1] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		GeneratedAt: start.UTC(),
		Summary:     dataset.Summarize(records),
		Questions:   reports,
	}
	p.log.WithField("records", len(records)).
		WithField("duration_ms", p.now().Sub(start).Milliseconds()).
		Info("dashboard computed")
	return d, nil
}

// Question aggregates a single question.
func (p *Pipeline) Question(records []types.AnswerRecord, id int) (QuestionReport, error) {
	return p.question(records, id)
}

func (p *Pipeline) question(records []types.AnswerRecord, id int) (QuestionReport, error) {
	spec, ok := p.registry.Get(id)
	if !ok {
		return QuestionReport{}, &questions.ConfigurationError{QuestionID: id, Reason: "question not registered"}
	}
	column, err := aggregator.Column(records, id)
	if err != nil {
		return QuestionReport{}, err
	}
	res := aggregator.Aggregate(spec, column)
	p.log.WithField("question_id", id).
		WithField("total_responses", res.TotalResponses).
		WithField("categories", len(res.Rows)).
		Debug("question aggregated")
	return QuestionReport{
		Spec:      spec,
		Result:    res,
		Chart:     chart.Build(res, spec),
		Highlight: actionable.Generate(res),
	}, nil
}
