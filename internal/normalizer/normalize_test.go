package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights-go/internal/types"
)

var (
	singleSelect = types.QuestionSpec{ID: 1, Title: "single", Shape: types.ShapePie}
	multiSelect  = types.QuestionSpec{ID: 2, Title: "multi", MultiSelect: true, MergeOthers: true, Shape: types.ShapeBarHorizontal}
	folded       = types.QuestionSpec{ID: 8, Title: "folded", CaseFold: true, Shape: types.ShapeBarVertical}
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		other string
		spec  types.QuestionSpec
		want  []string
	}{
		{name: "empty answer", raw: "", spec: multiSelect, want: nil},
		{name: "single select", raw: "1-3 years", spec: singleSelect, want: []string{"1-3 years"}},
		{name: "multi select keeps order", raw: "Dog, Cat, Fish", spec: multiSelect, want: []string{"Dog", "Cat", "Fish"}},
		{name: "stored others suffix splits", raw: "Dog, Others, Snake", spec: multiSelect, want: []string{"Dog", "Others", "Snake"}},
		{name: "separate other text appended", raw: "Others", other: "Ferret", spec: multiSelect, want: []string{"Others", "Ferret"}},
		{name: "other text ignored without sentinel", raw: "Dog", other: "Ferret", spec: multiSelect, want: []string{"Dog"}},
		{name: "other text ignored when merge disabled", raw: "Others", other: "Ferret", spec: singleSelect, want: []string{"Others"}},
		{name: "case fold", raw: "HAPPY, Sad", spec: folded, want: []string{"happy", "sad"}},
		{name: "stray delimiters dropped", raw: "Dog, , Cat, ", spec: multiSelect, want: []string{"Dog", "Cat"}},
		{name: "whitespace kept literally", raw: " Dog ,Cat", spec: multiSelect, want: []string{" Dog ,Cat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.other, tt.spec))
		})
	}
}

func TestNormalize_JoinedTokensRoundTrip(t *testing.T) {
	inputs := [][]string{
		{"a"},
		{"Dog", "Cat"},
		{"Lack of reliable sources", "Too much conflicting advice", "Hard to find local vets"},
	}
	for _, tokens := range inputs {
		got := Normalize(strings.Join(tokens, Delimiter), "", multiSelect)
		require.Equal(t, tokens, got)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "straße", Fold("STRAßE"))
	assert.Equal(t, "happy", Fold("HaPpY"))
}
