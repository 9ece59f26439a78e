package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"
)

var (
	ErrInvalidPatientID = errors.New("invalid patient id")
	ErrPatientNotFound  = errors.New("patient not found")
)

// IPatientPaymentsUseCase lists the checkout attempts of a patient.

type IPatientPaymentsUseCase interface {
	ListByPatientID(ctx context.Context, patientID string) ([]entities.Payment, error)
}

type PatientPaymentsUseCase struct {
	patients interfaces.IPatientRepository
	payments interfaces.IPaymentRepository
	log      *logger.Logger
}

var _ IPatientPaymentsUseCase = (*PatientPaymentsUseCase)(nil)

func NewPatientPaymentsUseCase(patients interfaces.IPatientRepository, payments interfaces.IPaymentRepository, log *logger.Logger) *PatientPaymentsUseCase {
	return &PatientPaymentsUseCase{patients: patients, payments: payments, log: logger.OrNop(log)}
}

// ListByPatientID returns the patient's payments, latest first.
func (u *PatientPaymentsUseCase) ListByPatientID(ctx context.Context, patientID string) ([]entities.Payment, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, ErrInvalidPatientID
	}
	if u.patients == nil {
		return nil, ErrPatientRepositoryNotConfigured
	}
	if u.payments == nil {
		return nil, ErrPaymentRepositoryNotConfigured
	}

	patient, err := u.patients.GetByID(ctx, patientID)
	if err != nil {
		u.log.Errorw("[payment][usecase] patient lookup failed", "patient_id", patientID, "error", err)
		return nil, err
	}
	if patient.ID == "" {
		return nil, ErrPatientNotFound
	}

	items, err := u.payments.ListByPatientID(ctx, patientID)
	if err != nil {
		u.log.Errorw("[payment][usecase] list payments failed", "patient_id", patientID, "error", err)
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	u.log.Infow("[payment][usecase] list payments", "patient_id", patientID, "count", len(items))
	return items, nil
}
