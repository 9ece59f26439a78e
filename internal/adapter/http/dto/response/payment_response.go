package response

import (
	"time"

	"nutri_quiz/internal/domain/entities"
)

type PaymentResponse struct {
	ID                string    `json:"id"`
	PatientID         string    `json:"patient_id"`
	Provider          string    `json:"provider"`
	GatewayPaymentID  string    `json:"gateway_payment_id"`
	GatewayCustomerID string    `json:"gateway_customer_id"`
	Amount            string    `json:"amount"`
	DueDate           string    `json:"due_date"`
	Status            string    `json:"status"`
	PaymentURL        string    `json:"payment_url"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		PatientID:         p.PatientID,
		Provider:          p.Provider,
		GatewayPaymentID:  p.GatewayPaymentID,
		GatewayCustomerID: p.GatewayCustomerID,
		Amount:            p.Amount.StringFixed(2),
		DueDate:           p.DueDate,
		Status:            p.Status,
		PaymentURL:        p.PaymentURL,
		CreatedAt:         p.CreatedAt,
	}
}

func FromPayments(items []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromPayment(p))
	}
	return out
}
