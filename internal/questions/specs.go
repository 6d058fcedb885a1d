package questions

import "survey-insights-go/internal/types"

var othersOnly = []string{types.OthersSentinel}

// defaultSpecs mirrors the questions on the survey form. Question 9 reuses the
// wording of question 8 because the dashboard has always shown it that way.
func defaultSpecs() []types.QuestionSpec {
	adoptionBarrier := "Have you ever experienced difficulty in adopting a pet or finding trustworthy adoption listings? What was the biggest barrier?"
	return []types.QuestionSpec{
		{
			ID:    1,
			Title: "How long have you owned pets?",
			Shape: types.ShapePie,
		},
		{
			ID:          2,
			Title:       "What types of pets do you currently own?",
			MultiSelect: true,
			MergeOthers: true,
			Excluded:    othersOnly,
			Shape:       types.ShapeBarHorizontal,
			AxisTitle:   "Pet Type",
			Options:     []string{"Dog", "Cat", "Bird", "Fish", "Reptile", types.OthersSentinel},
		},
		{
			ID:    3,
			Title: "How often do you use social media to engage with other pet owners?",
			Shape: types.ShapePie,
		},
		{
			ID:          4,
			Title:       "Do you follow any pet-related accounts on social media?(If yes, please specify which platform you use most often)",
			MergeOthers: true,
			Excluded:    othersOnly,
			Shape:       types.ShapePie,
		},
		{
			ID:          5,
			Title:       "What challenges do you face when looking for pet care information online?(Select all that apply)",
			MultiSelect: true,
			MergeOthers: true,
			Excluded:    othersOnly,
			Shape:       types.ShapeBarHorizontal,
			AxisTitle:   "Challenge Type",
		},
		{
			ID:          6,
			Title:       "How do you currently find local services for your pets(e.g., vet clinics, groomers, pet-friendly cafes)?",
			MergeOthers: true,
			Excluded:    othersOnly,
			Shape:       types.ShapePie,
		},
		{
			ID:          7,
			Title:       "How do you currently find other pet owners for socializing or playdates?",
			MergeOthers: true,
			Excluded:    othersOnly,
			Shape:       types.ShapePie,
		},
		{
			ID:        8,
			Title:     adoptionBarrier,
			CaseFold:  true,
			Shape:     types.ShapeBarVertical,
			AxisTitle: "Responses",
		},
		{
			ID:        9,
			Title:     adoptionBarrier,
			CaseFold:  true,
			Shape:     types.ShapeBarVertical,
			AxisTitle: "Responses",
		},
		{
			ID:          10,
			Title:       "What features would you want most in a platform dedicated to pets? (Select top 3)",
			MultiSelect: true,
			Excluded:    othersOnly,
			Shape:       types.ShapeBarHorizontal,
			AxisTitle:   "Response",
		},
		{
			ID:          11,
			Title:       "Would you be willing to pay for premium features on a pet social platform?",
			MergeOthers: true,
			Excluded:    othersOnly,
			Shape:       types.ShapePie,
		},
	}
}
