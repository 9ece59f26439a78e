package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/internal/usecase/interfaces"
	mock_interfaces "nutri_quiz/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const fallbackURL = "https://example.com/obrigado"

type submissionMocks struct {
	patients *mock_interfaces.MockIPatientRepository
	payments *mock_interfaces.MockIPaymentRepository
	gateway  *mock_interfaces.MockIPaymentGateway
	notifier *mock_interfaces.MockIErrorNotifier
}

func newSubmissionUseCase(t *testing.T) (*QuizSubmissionUseCase, submissionMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := submissionMocks{
		patients: mock_interfaces.NewMockIPatientRepository(ctrl),
		payments: mock_interfaces.NewMockIPaymentRepository(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
		notifier: mock_interfaces.NewMockIErrorNotifier(ctrl),
	}
	m.gateway.EXPECT().Name().Return("asaas").AnyTimes()

	uc := NewQuizSubmissionUseCase(m.patients, m.payments, m.gateway, m.notifier, SubmissionSettings{FallbackRedirectURL: fallbackURL}, nil)
	uc.now = func() time.Time { return time.Date(2024, 1, 30, 23, 0, 0, 0, time.UTC) }
	return uc, m
}

func validAnswers() quiz.Answers {
	return quiz.Answers{
		quiz.KeyFullName: quiz.Text("Maria Silva"),
		quiz.KeyEmail:    quiz.Text("new@example.com"),
		quiz.KeyPhone:    quiz.Text("(11) 98765-4321"),
		quiz.KeyCPF:      quiz.Text("123.456.789-09"),
		quiz.KeySex:      quiz.Text("Feminino"),
	}
}

func TestQuizSubmissionUseCase_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(a quiz.Answers)
		field   string
		message string
	}{
		{"missing name", func(a quiz.Answers) { delete(a, quiz.KeyFullName) }, "answers", MsgIncompleteSubmission},
		{"blank email", func(a quiz.Answers) { a[quiz.KeyEmail] = quiz.Text("  ") }, "answers", MsgIncompleteSubmission},
		{"missing phone", func(a quiz.Answers) { delete(a, quiz.KeyPhone) }, "answers", MsgIncompleteSubmission},
		{"malformed email", func(a quiz.Answers) { a[quiz.KeyEmail] = quiz.Text("not-an-email") }, "email", MsgInvalidEmail},
		{"short phone", func(a quiz.Answers) { a[quiz.KeyPhone] = quiz.Text("119999999") }, "whatsapp", MsgInvalidPhone},
		{"ten digit cpf", func(a quiz.Answers) { a[quiz.KeyCPF] = quiz.Text("1234567890") }, "cpf", MsgInvalidCPF},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// no EXPECT on any collaborator: the gateway must never be contacted
			uc, _ := newSubmissionUseCase(t)
			a := validAnswers()
			tc.mutate(a)

			_, err := uc.Submit(context.Background(), a)
			if !errors.Is(err, ErrInvalidSubmission) {
				t.Fatalf("expected ErrInvalidSubmission, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Field != tc.field || ve.Message != tc.message {
				t.Fatalf("expected %s/%q, got %s/%q", tc.field, tc.message, ve.Field, ve.Message)
			}
		})
	}
}

func TestQuizSubmissionUseCase_Submit_NewPatient(t *testing.T) {
	uc, m := newSubmissionUseCase(t)

	var created entities.Patient
	m.patients.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(entities.Patient{}, nil)
	m.patients.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
		created = p
		return p, nil
	})
	m.gateway.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c interfaces.GatewayCustomer) (string, error) {
		if c.Phone != "11987654321" {
			t.Fatalf("expected normalized phone, got %q", c.Phone)
		}
		if c.CPF != "12345678909" {
			t.Fatalf("expected normalized cpf, got %q", c.CPF)
		}
		return "cus_1", nil
	})
	m.patients.EXPECT().SetGatewayCustomerID(gomock.Any(), gomock.Any(), "cus_1").Return(nil)
	m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c interfaces.GatewayCharge) (interfaces.GatewayInvoice, error) {
		if c.DueDate != "2024-02-02" {
			t.Fatalf("expected due date 2024-02-02, got %s", c.DueDate)
		}
		if !c.Amount.Equal(decimal.RequireFromString("49.90")) {
			t.Fatalf("expected amount 49.90, got %s", c.Amount)
		}
		if c.Description != DefaultPlanDescription {
			t.Fatalf("unexpected description %q", c.Description)
		}
		if c.ExternalReference != created.ID || c.CustomerID != "cus_1" {
			t.Fatalf("unexpected charge references %+v", c)
		}
		return interfaces.GatewayInvoice{ID: "pay_1", Status: "PENDING", URL: "https://pay/1"}, nil
	})
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		if p.PatientID != created.ID || p.GatewayPaymentID != "pay_1" || p.GatewayCustomerID != "cus_1" {
			t.Fatalf("unexpected payment %+v", p)
		}
		if p.Status != "PENDING" || p.PaymentURL != "https://pay/1" || p.Provider != "asaas" {
			t.Fatalf("unexpected payment %+v", p)
		}
		return p, nil
	})

	res, err := uc.Submit(context.Background(), validAnswers())
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if !res.Success() || res.PaymentURL != "https://pay/1" || res.PatientID != created.ID || res.RedirectURL != "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if created.Phone != "11987654321" || created.Email != "new@example.com" {
		t.Fatalf("unexpected stored patient %+v", created)
	}
	if created.QuizResponses.Text(quiz.KeySex) != "Feminino" {
		t.Fatalf("expected full answer document stored")
	}
}

func TestQuizSubmissionUseCase_Submit_ResubmissionReusesPatientAndCustomer(t *testing.T) {
	uc, m := newSubmissionUseCase(t)

	existing := entities.Patient{ID: "pat-1", Email: "new@example.com", GatewayCustomerID: "cus_1"}
	m.patients.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(existing, nil)
	m.patients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
		if p.ID != "pat-1" || p.Name != "Maria Silva" || p.Phone != "11987654321" {
			t.Fatalf("unexpected update %+v", p)
		}
		return p, nil
	})
	m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c interfaces.GatewayCharge) (interfaces.GatewayInvoice, error) {
		if c.CustomerID != "cus_1" || c.ExternalReference != "pat-1" {
			t.Fatalf("unexpected charge %+v", c)
		}
		return interfaces.GatewayInvoice{ID: "pay_2", Status: "PENDING", URL: "https://pay/2"}, nil
	})
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, nil)

	a := validAnswers()
	a[quiz.KeyEmail] = quiz.Text(" New@Example.com ")
	res, err := uc.Submit(context.Background(), a)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if res.PatientID != "pat-1" || res.PaymentURL != "https://pay/2" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestQuizSubmissionUseCase_Submit_ConcurrentInsert(t *testing.T) {
	uc, m := newSubmissionUseCase(t)

	gomock.InOrder(
		m.patients.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(entities.Patient{}, nil),
		m.patients.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Patient{}, interfaces.ErrPatientEmailTaken),
		m.patients.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(entities.Patient{ID: "pat-9", GatewayCustomerID: "cus_9"}, nil),
	)
	m.patients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
		return p, nil
	})
	m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(interfaces.GatewayInvoice{ID: "pay_9", URL: "https://pay/9"}, nil)
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, nil)

	res, err := uc.Submit(context.Background(), validAnswers())
	if err != nil || res.PatientID != "pat-9" {
		t.Fatalf("unexpected result %+v err=%v", res, err)
	}
}

func TestQuizSubmissionUseCase_Submit_Fallbacks(t *testing.T) {
	expectFallback := func(t *testing.T, m submissionMocks, kind entities.FailureKind, patientID string) {
		t.Helper()
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(func(_ context.Context, f entities.IntegrationFailure) error {
			if f.Kind != kind {
				t.Fatalf("expected kind %s, got %s", kind, f.Kind)
			}
			if f.PatientID != patientID {
				t.Fatalf("expected patient %q, got %q", patientID, f.PatientID)
			}
			if f.Details == "" {
				t.Fatalf("expected details")
			}
			return nil
		})
	}
	checkRedirect := func(t *testing.T, res SubmissionResult, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if res.Success() || res.RedirectURL != fallbackURL {
			t.Fatalf("expected fallback redirect, got %+v", res)
		}
	}

	t.Run("lookup fails", func(t *testing.T) {
		uc, m := newSubmissionUseCase(t)
		m.patients.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.Patient{}, errors.New("db down"))
		expectFallback(t, m, entities.FailurePatientLookup, "")

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
	})

	t.Run("create patient fails", func(t *testing.T) {
		uc, m := newSubmissionUseCase(t)
		m.patients.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.Patient{}, nil)
		m.patients.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Patient{}, errors.New("write"))
		expectFallback(t, m, entities.FailurePatientSave, "")

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
	})

	t.Run("customer creation fails", func(t *testing.T) {
		uc, m := newSubmissionUseCase(t)
		m.patients.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.Patient{ID: "pat-1"}, nil)
		m.patients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
			return p, nil
		})
		m.gateway.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return("", errors.New("asaas 400"))
		expectFallback(t, m, entities.FailureCustomerCreate, "pat-1")

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
		if res.PatientID != "pat-1" {
			t.Fatalf("expected patient id on fallback, got %q", res.PatientID)
		}
	})

	t.Run("customer link fails", func(t *testing.T) {
		uc, m := newSubmissionUseCase(t)
		m.patients.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.Patient{ID: "pat-1"}, nil)
		m.patients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
			return p, nil
		})
		m.gateway.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return("cus_1", nil)
		m.patients.EXPECT().SetGatewayCustomerID(gomock.Any(), "pat-1", "cus_1").Return(errors.New("write"))
		expectFallback(t, m, entities.FailureCustomerLink, "pat-1")

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
	})

	t.Run("payment creation fails", func(t *testing.T) {
		uc, m := newSubmissionUseCase(t)
		m.patients.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.Patient{ID: "pat-1", GatewayCustomerID: "cus_1"}, nil)
		m.patients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
			return p, nil
		})
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(interfaces.GatewayInvoice{}, errors.New("timeout"))
		expectFallback(t, m, entities.FailurePaymentCreate, "pat-1")

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
	})

	t.Run("payment without url", func(t *testing.T) {
		uc, m := newSubmissionUseCase(t)
		m.patients.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.Patient{ID: "pat-1", GatewayCustomerID: "cus_1"}, nil)
		m.patients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
			return p, nil
		})
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(interfaces.GatewayInvoice{ID: "pay_1"}, nil)
		expectFallback(t, m, entities.FailurePaymentCreate, "pat-1")

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
	})

	t.Run("payment persist fails and webhook fails too", func(t *testing.T) {
		uc, m := newSubmissionUseCase(t)
		m.patients.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.Patient{ID: "pat-1", GatewayCustomerID: "cus_1"}, nil)
		m.patients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Patient) (entities.Patient, error) {
			return p, nil
		})
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(interfaces.GatewayInvoice{ID: "pay_1", URL: "https://pay/1"}, nil)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, errors.New("write"))
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1).Return(errors.New("webhook down"))

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		patients := mock_interfaces.NewMockIPatientRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewQuizSubmissionUseCase(patients, payments, nil, nil, SubmissionSettings{FallbackRedirectURL: fallbackURL}, nil)

		res, err := uc.Submit(context.Background(), validAnswers())
		checkRedirect(t, res, err)
	})
}

func TestNewQuizSubmissionUseCase_Defaults(t *testing.T) {
	uc := NewQuizSubmissionUseCase(nil, nil, nil, nil, SubmissionSettings{}, nil)
	if !uc.settings.Amount.Equal(DefaultPlanAmount) {
		t.Fatalf("expected default amount, got %s", uc.settings.Amount)
	}
	if uc.settings.Description != DefaultPlanDescription || uc.settings.DueInDays != DefaultDueInDays {
		t.Fatalf("unexpected defaults %+v", uc.settings)
	}
}
