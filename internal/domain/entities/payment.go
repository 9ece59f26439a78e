package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one checkout attempt for a patient. Records are append-only:
// every submission that reaches invoice creation adds a new one.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (patient_id-index): patient_id
type Payment struct {
	ID                string          `json:"id"`
	PatientID         string          `json:"patient_id"`
	Provider          string          `json:"provider"`
	GatewayPaymentID  string          `json:"gateway_payment_id"`
	GatewayCustomerID string          `json:"gateway_customer_id"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           string          `json:"due_date"`
	Status            string          `json:"status"`
	PaymentURL        string          `json:"payment_url"`
	CreatedAt         time.Time       `json:"created_at"`
}
