package entities

import (
	"time"

	"nutri_quiz/internal/domain/quiz"
)

// Patient is the lead captured by the quiz.
//
// Storage model:
//   - natural key: Email (normalised, unique)
//   - QuizResponses keeps the full answer document as sent by the front end
//   - GatewayCustomerID caches the payment gateway customer, at most one per patient
type Patient struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	CPF               string       `json:"cpf,omitempty"`
	Phone             string       `json:"phone"`
	QuizResponses     quiz.Answers `json:"quiz_responses"`
	GatewayCustomerID string       `json:"gateway_customer_id,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
