package repository

import (
	"context"
	"fmt"
	"time"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/usecase/interfaces"

	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
)

const paymentColumns = `id, patient_id, provider, gateway_payment_id, gateway_customer_id, amount::text, due_date, status, payment_url, created_at`

// PaymentPostgresRepository persists Payment entities in the "payments" table.
type PaymentPostgresRepository struct {
	db PgxAPI
}

var _ interfaces.IPaymentRepository = (*PaymentPostgresRepository)(nil)

func NewPaymentPostgresRepository(db PgxAPI) *PaymentPostgresRepository {
	return &PaymentPostgresRepository{db: db}
}

func (r *PaymentPostgresRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO payments (id, patient_id, provider, gateway_payment_id, gateway_customer_id, amount, due_date, status, payment_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10)
		RETURNING id`,
		p.ID, p.PatientID, p.Provider, p.GatewayPaymentID, p.GatewayCustomerID,
		p.Amount.StringFixed(2), p.DueDate, p.Status, p.PaymentURL, p.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentPostgresRepository) ListByPatientID(ctx context.Context, patientID string) ([]entities.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE patient_id = $1 ORDER BY created_at DESC`,
		patientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPayment(row pgx.Row) (entities.Payment, error) {
	var (
		p         entities.Payment
		amount    string
		createdAt time.Time
	)
	if err := row.Scan(&p.ID, &p.PatientID, &p.Provider, &p.GatewayPaymentID, &p.GatewayCustomerID,
		&amount, &p.DueDate, &p.Status, &p.PaymentURL, &createdAt); err != nil {
		return entities.Payment{}, err
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("payment %s amount: %w", p.ID, err)
	}
	p.Amount = d
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
