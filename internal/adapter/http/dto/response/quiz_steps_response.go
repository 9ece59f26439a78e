package response

import "nutri_quiz/internal/domain/quiz"

type QuizStepsResponse struct {
	Variant string      `json:"variant"`
	Total   int         `json:"total"`
	Steps   []quiz.Step `json:"steps"`
}

func FromSteps(v quiz.Variant, steps []quiz.Step) QuizStepsResponse {
	if v == "" {
		v = quiz.VariantFull
	}
	return QuizStepsResponse{Variant: string(v), Total: len(steps), Steps: steps}
}
