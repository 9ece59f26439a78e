package interfaces

import (
	"context"

	"nutri_quiz/internal/domain/entities"
)

// IPaymentRepository abstracts the append-only "payments" table.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	ListByPatientID(ctx context.Context, patientID string) ([]entities.Payment, error)
}
