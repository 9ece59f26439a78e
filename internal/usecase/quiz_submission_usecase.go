package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSubmission = errors.New("invalid quiz submission")

	ErrPatientRepositoryNotConfigured = errors.New("patient repository not configured")
	ErrPaymentRepositoryNotConfigured = errors.New("payment repository not configured")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
)

const (
	MsgIncompleteSubmission = "Dados incompletos. Nome, email e WhatsApp são obrigatórios."
	MsgInvalidEmail         = "Email inválido."
	MsgInvalidPhone         = "Telefone inválido. Deve conter DDD + número (mínimo de 10 dígitos)."
	MsgInvalidCPF           = "CPF inválido. Deve conter 11 dígitos."
)

const (
	DefaultPlanDescription = "Plano Alimentar Personalizado - 30 dias"
	DefaultDueInDays       = 3
)

var DefaultPlanAmount = decimal.RequireFromString("49.90")

// ValidationError is a malformed submission. It is the only failure the caller
// sees as an error; Message is already user-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSubmission }

// SubmissionSettings holds the commercial terms of the checkout.
type SubmissionSettings struct {
	Amount              decimal.Decimal
	Description         string
	DueInDays           int
	FallbackRedirectURL string
}

// SubmissionResult is either a checkout (PaymentURL set) or a fallback
// redirect (RedirectURL set).
type SubmissionResult struct {
	PatientID   string
	PaymentURL  string
	RedirectURL string
}

func (r SubmissionResult) Success() bool { return r.PaymentURL != "" }

// IQuizSubmissionUseCase turns a completed answer set into a checkout.
//
// Pipeline: validate -> upsert patient -> ensure gateway customer -> create invoice
// -> persist payment. Any failure after validation is reported to the error
// webhook and answered with the fallback redirect.

type IQuizSubmissionUseCase interface {
	Submit(ctx context.Context, answers quiz.Answers) (SubmissionResult, error)
}

type QuizSubmissionUseCase struct {
	patients interfaces.IPatientRepository
	payments interfaces.IPaymentRepository
	gateway  interfaces.IPaymentGateway
	notifier interfaces.IErrorNotifier
	settings SubmissionSettings
	log      *logger.Logger
	now      func() time.Time
}

var _ IQuizSubmissionUseCase = (*QuizSubmissionUseCase)(nil)

func NewQuizSubmissionUseCase(
	patients interfaces.IPatientRepository,
	payments interfaces.IPaymentRepository,
	gateway interfaces.IPaymentGateway,
	notifier interfaces.IErrorNotifier,
	settings SubmissionSettings,
	log *logger.Logger,
) *QuizSubmissionUseCase {
	if settings.Amount.IsZero() {
		settings.Amount = DefaultPlanAmount
	}
	if settings.Description == "" {
		settings.Description = DefaultPlanDescription
	}
	if settings.DueInDays <= 0 {
		settings.DueInDays = DefaultDueInDays
	}
	return &QuizSubmissionUseCase{
		patients: patients,
		payments: payments,
		gateway:  gateway,
		notifier: notifier,
		settings: settings,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

type submission struct {
	name  string
	email string
	phone string
	cpf   string
}

func (u *QuizSubmissionUseCase) Submit(ctx context.Context, answers quiz.Answers) (SubmissionResult, error) {
	in, err := validateSubmission(answers)
	if err != nil {
		u.log.Infow("[quiz][usecase] submission rejected", "error", err)
		return SubmissionResult{}, err
	}
	u.log.Infow("[quiz][usecase] submit start", "email", in.email, "answers", len(answers))

	if u.patients == nil {
		return u.fallback(ctx, entities.FailurePatientLookup, "", ErrPatientRepositoryNotConfigured, nil), nil
	}
	if u.payments == nil {
		return u.fallback(ctx, entities.FailurePaymentPersist, "", ErrPaymentRepositoryNotConfigured, nil), nil
	}
	if u.gateway == nil {
		return u.fallback(ctx, entities.FailureCustomerCreate, "", ErrPaymentGatewayNotConfigured, nil), nil
	}

	patient, kind, err := u.upsertPatient(ctx, in, answers)
	if err != nil {
		return u.fallback(ctx, kind, patient.ID, err, map[string]any{"email": in.email}), nil
	}

	customerID := patient.GatewayCustomerID
	if customerID == "" {
		u.log.Infow("[quiz][usecase] creating gateway customer", "patient_id", patient.ID, "provider", u.gateway.Name())
		customerID, err = u.gateway.CreateCustomer(ctx, interfaces.GatewayCustomer{
			Name:  in.name,
			Email: in.email,
			Phone: in.phone,
			CPF:   in.cpf,
		})
		if err == nil && strings.TrimSpace(customerID) == "" {
			err = errors.New("gateway returned an empty customer id")
		}
		if err != nil {
			return u.fallback(ctx, entities.FailureCustomerCreate, patient.ID, err, u.failureContext(in)), nil
		}
		if err := u.patients.SetGatewayCustomerID(ctx, patient.ID, customerID); err != nil {
			fctx := u.failureContext(in)
			fctx["gateway_customer_id"] = customerID
			return u.fallback(ctx, entities.FailureCustomerLink, patient.ID, err, fctx), nil
		}
	} else {
		u.log.Infow("[quiz][usecase] reusing gateway customer", "patient_id", patient.ID, "gateway_customer_id", customerID)
	}

	dueDate := u.now().UTC().AddDate(0, 0, u.settings.DueInDays).Format(time.DateOnly)
	invoice, err := u.gateway.CreatePayment(ctx, interfaces.GatewayCharge{
		CustomerID:        customerID,
		CustomerEmail:     in.email,
		Amount:            u.settings.Amount,
		DueDate:           dueDate,
		Description:       u.settings.Description,
		ExternalReference: patient.ID,
	})
	if err == nil && invoice.URL == "" {
		err = errors.New("gateway returned no checkout url")
	}
	if err != nil {
		fctx := u.failureContext(in)
		fctx["gateway_customer_id"] = customerID
		fctx["due_date"] = dueDate
		return u.fallback(ctx, entities.FailurePaymentCreate, patient.ID, err, fctx), nil
	}
	u.log.Infow("[quiz][usecase] invoice created", "patient_id", patient.ID, "gateway_payment_id", invoice.ID, "status", invoice.Status)

	payment := entities.Payment{
		ID:                uuid.NewString(),
		PatientID:         patient.ID,
		Provider:          u.gateway.Name(),
		GatewayPaymentID:  invoice.ID,
		GatewayCustomerID: customerID,
		Amount:            u.settings.Amount,
		DueDate:           dueDate,
		Status:            invoice.Status,
		PaymentURL:        invoice.URL,
		CreatedAt:         u.now().UTC(),
	}
	if _, err := u.payments.Create(ctx, payment); err != nil {
		fctx := u.failureContext(in)
		fctx["gateway_payment_id"] = invoice.ID
		return u.fallback(ctx, entities.FailurePaymentPersist, patient.ID, err, fctx), nil
	}

	u.log.Infow("[quiz][usecase] submit success", "patient_id", patient.ID, "payment_id", payment.ID)
	return SubmissionResult{PatientID: patient.ID, PaymentURL: invoice.URL}, nil
}

func validateSubmission(answers quiz.Answers) (submission, error) {
	in := submission{
		name:  strings.TrimSpace(answers.Text(quiz.KeyFullName)),
		email: strings.TrimSpace(answers.Text(quiz.KeyEmail)),
		phone: answers.Text(quiz.KeyPhone),
		cpf:   answers.Text(quiz.KeyCPF),
	}

	if in.name == "" || in.email == "" || strings.TrimSpace(in.phone) == "" {
		return submission{}, &ValidationError{Field: "answers", Message: MsgIncompleteSubmission}
	}
	if !quiz.IsValidEmail(in.email) {
		return submission{}, &ValidationError{Field: string(quiz.KeyEmail), Message: MsgInvalidEmail}
	}
	if !quiz.IsValidPhone(in.phone) {
		return submission{}, &ValidationError{Field: string(quiz.KeyPhone), Message: MsgInvalidPhone}
	}
	if strings.TrimSpace(in.cpf) != "" && !quiz.IsValidCPF(in.cpf) {
		return submission{}, &ValidationError{Field: string(quiz.KeyCPF), Message: MsgInvalidCPF}
	}

	in.email = quiz.NormalizeEmail(in.email)
	in.phone = quiz.Digits(in.phone)
	in.cpf = quiz.Digits(in.cpf)
	return in, nil
}

// upsertPatient finds the patient by email and refreshes it, or creates it.
// A concurrent insert of the same email is resolved by re-reading and updating.
func (u *QuizSubmissionUseCase) upsertPatient(ctx context.Context, in submission, answers quiz.Answers) (entities.Patient, entities.FailureKind, error) {
	existing, err := u.patients.GetByEmail(ctx, in.email)
	if err != nil {
		return entities.Patient{}, entities.FailurePatientLookup, err
	}

	now := u.now().UTC()
	if existing.ID == "" {
		created, err := u.patients.Create(ctx, entities.Patient{
			ID:            uuid.NewString(),
			Name:          in.name,
			Email:         in.email,
			CPF:           in.cpf,
			Phone:         in.phone,
			QuizResponses: answers,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err == nil {
			u.log.Infow("[quiz][usecase] patient created", "patient_id", created.ID)
			return created, "", nil
		}
		if !errors.Is(err, interfaces.ErrPatientEmailTaken) {
			return entities.Patient{}, entities.FailurePatientSave, err
		}

		u.log.Infow("[quiz][usecase] concurrent patient insert, updating existing", "email", in.email)
		existing, err = u.patients.GetByEmail(ctx, in.email)
		if err != nil {
			return entities.Patient{}, entities.FailurePatientLookup, err
		}
		if existing.ID == "" {
			return entities.Patient{}, entities.FailurePatientSave, interfaces.ErrPatientEmailTaken
		}
	}

	existing.Name = in.name
	existing.CPF = in.cpf
	existing.Phone = in.phone
	existing.QuizResponses = answers
	existing.UpdatedAt = now

	updated, err := u.patients.Update(ctx, existing)
	if err != nil {
		return existing, entities.FailurePatientSave, err
	}
	if updated.GatewayCustomerID == "" {
		updated.GatewayCustomerID = existing.GatewayCustomerID
	}
	u.log.Infow("[quiz][usecase] patient updated", "patient_id", updated.ID)
	return updated, "", nil
}

func (u *QuizSubmissionUseCase) failureContext(in submission) map[string]any {
	provider := ""
	if u.gateway != nil {
		provider = u.gateway.Name()
	}
	return map[string]any{"email": in.email, "provider": provider}
}

// fallback reports the failure and returns the funnel-preserving redirect.
// Notification errors are logged and never change the outcome.
func (u *QuizSubmissionUseCase) fallback(ctx context.Context, kind entities.FailureKind, patientID string, cause error, fctx map[string]any) SubmissionResult {
	u.log.Errorw("[quiz][usecase] integration failure", "kind", kind, "patient_id", patientID, "error", cause)

	if u.notifier != nil {
		err := u.notifier.Notify(ctx, entities.IntegrationFailure{
			PatientID:  patientID,
			Kind:       kind,
			Details:    cause.Error(),
			Context:    fctx,
			OccurredAt: u.now().UTC(),
		})
		if err != nil {
			u.log.Warnw("[quiz][usecase] error webhook failed", "kind", kind, "patient_id", patientID, "error", err)
		}
	}

	return SubmissionResult{PatientID: patientID, RedirectURL: u.settings.FallbackRedirectURL}
}
