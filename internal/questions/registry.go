package questions

import (
	"slices"

	"survey-insights-go/internal/normalizer"
	"survey-insights-go/internal/types"
)

// Registry is the validated, immutable set of question specs indexed by id.
type Registry struct {
	specs []types.QuestionSpec
}

// NewRegistry validates specs and returns a registry ordered by question id.
func NewRegistry(specs []types.QuestionSpec) (*Registry, error) {
	if len(specs) != types.QuestionCount {
		return nil, configErr(0, "expected %d question specs, got %d", types.QuestionCount, len(specs))
	}
	ordered := make([]types.QuestionSpec, types.QuestionCount)
	seen := make([]bool, types.QuestionCount)
	for _, s := range specs {
		if s.ID < 1 || s.ID > types.QuestionCount {
			return nil, configErr(s.ID, "id out of range 1..%d", types.QuestionCount)
		}
		if seen[s.ID-1] {
			return nil, configErr(s.ID, "declared more than once")
		}
		if err := validate(s); err != nil {
			return nil, err
		}
		seen[s.ID-1] = true
		ordered[s.ID-1] = clone(s)
	}
	return &Registry{specs: ordered}, nil
}

// Default returns the registry for the pet owner survey.
func Default() (*Registry, error) {
	return NewRegistry(defaultSpecs())
}

// Get returns the spec for a 1-based question id.
func (r *Registry) Get(id int) (types.QuestionSpec, bool) {
	if id < 1 || id > len(r.specs) {
		return types.QuestionSpec{}, false
	}
	return clone(r.specs[id-1]), true
}

// All returns every spec in question order.
func (r *Registry) All() []types.QuestionSpec {
	out := make([]types.QuestionSpec, len(r.specs))
	for i, s := range r.specs {
		out[i] = clone(s)
	}
	return out
}

func (r *Registry) Len() int { return len(r.specs) }

func validate(s types.QuestionSpec) error {
	if s.Title == "" {
		return configErr(s.ID, "empty title")
	}
	if !s.Shape.Valid() {
		return configErr(s.ID, "unknown chart shape %q", s.Shape)
	}
	if s.Shape == types.ShapePie && s.MultiSelect {
		return configErr(s.ID, "pie chart needs a single-select question")
	}
	for _, ex := range s.Excluded {
		if ex == "" {
			return configErr(s.ID, "empty excluded category")
		}
		// Tokens are folded before exclusion, so an unfolded entry never matches.
		if s.CaseFold && normalizer.Fold(ex) != ex {
			return configErr(s.ID, "excluded category %q can never occur after case folding", ex)
		}
		if len(s.Options) == 0 {
			continue
		}
		if !slices.Contains(s.Options, ex) && !(s.MergeOthers && ex == types.OthersSentinel) {
			return configErr(s.ID, "excluded category %q is not one of the declared options", ex)
		}
	}
	return nil
}

func clone(s types.QuestionSpec) types.QuestionSpec {
	s.Excluded = slices.Clone(s.Excluded)
	s.Options = slices.Clone(s.Options)
	return s
}
