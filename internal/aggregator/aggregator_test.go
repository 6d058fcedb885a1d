package aggregator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights-go/internal/types"
)

func column(answers ...string) []types.RawAnswer {
	out := make([]types.RawAnswer, len(answers))
	for i, a := range answers {
		out[i] = types.RawAnswer{Answer: a}
	}
	return out
}

func TestTally(t *testing.T) {
	t.Run("orders by count then first seen", func(t *testing.T) {
		rows := Tally([][]string{{"Fish", "Cat"}, {"Dog"}, {"Dog", "Cat"}, {"Bird"}})
		assert.Equal(t, []types.TallyRow{
			{Category: "Cat", Count: 2},
			{Category: "Dog", Count: 2},
			{Category: "Fish", Count: 1},
			{Category: "Bird", Count: 1},
		}, rows)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Tally(nil))
		assert.Empty(t, Tally([][]string{nil, {}}))
	})

	t.Run("conserves token count", func(t *testing.T) {
		in := [][]string{{"a", "b", "a"}, {"c"}, {}, {"b", "b"}}
		total := 0
		for _, row := range Tally(in) {
			require.GreaterOrEqual(t, row.Count, 1)
			total += row.Count
		}
		assert.Equal(t, 6, total)
	})
}

func TestAggregate_MultiSelectColumn(t *testing.T) {
	spec := types.QuestionSpec{ID: 2, MultiSelect: true, Shape: types.ShapeBarHorizontal}

	res := Aggregate(spec, column("Dog, Cat", "Dog", "", "Fish"))

	assert.Equal(t, 2, res.QuestionID)
	assert.Equal(t, 3, res.TotalResponses)
	assert.Equal(t, []types.ResultRow{
		{Category: "Dog", Count: 2, Percentage: 50.0, Label: "2 (50.0%)"},
		{Category: "Cat", Count: 1, Percentage: 25.0, Label: "1 (25.0%)"},
		{Category: "Fish", Count: 1, Percentage: 25.0, Label: "1 (25.0%)"},
	}, res.Rows)
}

func TestAggregate_OthersExcludedAfterMerge(t *testing.T) {
	spec := types.QuestionSpec{ID: 2, MultiSelect: true, MergeOthers: true, Excluded: []string{"Others"}, Shape: types.ShapeBarHorizontal}

	res := Aggregate(spec, column("Others, Snake", "Others, Snake", "Dog"))

	assert.Equal(t, 3, res.TotalResponses)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, types.ResultRow{Category: "Snake", Count: 2, Percentage: 66.7, Label: "2 (66.7%)"}, res.Rows[0])
	assert.Equal(t, types.ResultRow{Category: "Dog", Count: 1, Percentage: 33.3, Label: "1 (33.3%)"}, res.Rows[1])
}

func TestAggregate_SeparateOtherText(t *testing.T) {
	spec := types.QuestionSpec{ID: 4, MergeOthers: true, Excluded: []string{"Others"}, Shape: types.ShapePie}

	res := Aggregate(spec, []types.RawAnswer{
		{Answer: "Others", OtherText: "Threads"},
		{Answer: "Instagram"},
		{Answer: "Others"},
	})

	assert.Equal(t, 3, res.TotalResponses)
	assert.Equal(t, []string{"Threads", "Instagram"}, categories(res))
}

func TestAggregate_AllEmpty(t *testing.T) {
	res := Aggregate(types.QuestionSpec{ID: 1, Shape: types.ShapePie}, column("", "", ""))
	assert.Equal(t, 0, res.TotalResponses)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
}

func TestAggregate_EverythingExcluded(t *testing.T) {
	spec := types.QuestionSpec{ID: 11, MergeOthers: true, Excluded: []string{"Others"}, Shape: types.ShapePie}

	res := Aggregate(spec, column("Others", "Others"))

	assert.Equal(t, 2, res.TotalResponses)
	assert.Empty(t, res.Rows)
}

func TestAggregate_CaseFold(t *testing.T) {
	spec := types.QuestionSpec{ID: 8, CaseFold: true, Shape: types.ShapeBarVertical}

	res := Aggregate(spec, column("HAPPY", "happy", "Sad"))

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "happy", res.Rows[0].Category)
	assert.Equal(t, 2, res.Rows[0].Count)
	assert.Equal(t, "sad", res.Rows[1].Category)
	assert.Equal(t, 1, res.Rows[1].Count)
}

func TestAggregate_Idempotent(t *testing.T) {
	spec := types.QuestionSpec{ID: 5, MultiSelect: true, MergeOthers: true, Excluded: []string{"Others"}, Shape: types.ShapeBarHorizontal}
	col := column("A, B", "B, Others, x", "C", "", "A, C, B")

	assert.Equal(t, Aggregate(spec, col), Aggregate(spec, col))
}

func TestAggregate_PercentagesSumToHundred(t *testing.T) {
	spec := types.QuestionSpec{ID: 10, MultiSelect: true, Shape: types.ShapeBarHorizontal}
	cases := [][]types.RawAnswer{
		column("a", "b", "c"),
		column("a, b", "a", "c, d", "e"),
		column("a, b, c, d, e, f, g"),
		column("x", "x", "y"),
	}
	for _, col := range cases {
		res := Aggregate(spec, col)
		sum := 0.0
		for _, row := range res.Rows {
			sum += row.Percentage
		}
		assert.LessOrEqual(t, math.Abs(sum-100), 0.1+1e-9, "rows: %+v", res.Rows)
	}
}

func TestColumn(t *testing.T) {
	records := []types.AnswerRecord{{ID: 1}, {ID: 2}}
	records[0].Answers[2] = "Daily"
	records[1].Answers[2] = "Weekly"

	col, err := Column(records, 3)
	require.NoError(t, err)
	assert.Equal(t, column("Daily", "Weekly"), col)

	_, err = Column(records, 12)
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "3 (100.0%)", Label(3, 100))
	assert.Equal(t, "1 (12.5%)", Label(1, Percentage(1, 8)))
	assert.Equal(t, 0.0, Percentage(1, 0))
}

func categories(res types.AggregationResult) []string {
	out := make([]string, len(res.Rows))
	for i, r := range res.Rows {
		out[i] = r.Category
	}
	return out
}
