package interfaces

import (
	"context"
	"errors"

	"nutri_quiz/internal/domain/entities"
)

// ErrPatientEmailTaken is returned by Create when another patient already owns the email.
var ErrPatientEmailTaken = errors.New("patient email already registered")

// IPatientRepository abstracts persistence for Patient (the "patients" table).
//
// Lookups return a zero Patient (empty ID) and a nil error when nothing matches.

type IPatientRepository interface {
	GetByEmail(ctx context.Context, email string) (entities.Patient, error)
	GetByID(ctx context.Context, id string) (entities.Patient, error)
	Create(ctx context.Context, p entities.Patient) (entities.Patient, error)
	Update(ctx context.Context, p entities.Patient) (entities.Patient, error)
	SetGatewayCustomerID(ctx context.Context, patientID, customerID string) error
}
