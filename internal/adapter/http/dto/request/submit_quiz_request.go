package request

import "nutri_quiz/internal/domain/quiz"

// SubmitQuizRequest is the body of POST /submit-quiz: the full answer set
// accumulated by the quiz front end.

type SubmitQuizRequest struct {
	Answers quiz.Answers `json:"answers"`
}
