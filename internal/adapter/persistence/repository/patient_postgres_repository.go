package repository

import (
	"context"
	"errors"
	"time"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/usecase/interfaces"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PgxAPI is the subset of *pgxpool.Pool the Postgres repositories call.
type PgxAPI interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

var _ PgxAPI = (*pgxpool.Pool)(nil)

const patientColumns = `id, name, email, cpf, phone, quiz_responses::text, gateway_customer_id, created_at, updated_at`

// PatientPostgresRepository persists Patient entities in the "patients" table
// (see database.PostgresSchema). The UNIQUE email column guards concurrent inserts.
type PatientPostgresRepository struct {
	db PgxAPI
}

var _ interfaces.IPatientRepository = (*PatientPostgresRepository)(nil)

func NewPatientPostgresRepository(db PgxAPI) *PatientPostgresRepository {
	return &PatientPostgresRepository{db: db}
}

func (r *PatientPostgresRepository) GetByEmail(ctx context.Context, email string) (entities.Patient, error) {
	row := r.db.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE email = $1`, email)
	return scanPatient(row)
}

func (r *PatientPostgresRepository) GetByID(ctx context.Context, id string) (entities.Patient, error) {
	row := r.db.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	return scanPatient(row)
}

func (r *PatientPostgresRepository) Create(ctx context.Context, p entities.Patient) (entities.Patient, error) {
	answers, err := marshalAnswers(p.QuizResponses)
	if err != nil {
		return entities.Patient{}, err
	}

	var id string
	err = r.db.QueryRow(ctx, `
		INSERT INTO patients (id, name, email, cpf, phone, quiz_responses, gateway_customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`,
		p.ID, p.Name, p.Email, p.CPF, p.Phone, answers, p.GatewayCustomerID, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Patient{}, interfaces.ErrPatientEmailTaken
	}
	if err != nil {
		return entities.Patient{}, err
	}
	return p, nil
}

func (r *PatientPostgresRepository) Update(ctx context.Context, p entities.Patient) (entities.Patient, error) {
	answers, err := marshalAnswers(p.QuizResponses)
	if err != nil {
		return entities.Patient{}, err
	}

	row := r.db.QueryRow(ctx, `
		UPDATE patients
		SET name = $2, cpf = $3, phone = $4, quiz_responses = $5::jsonb, updated_at = $6
		WHERE id = $1
		RETURNING `+patientColumns,
		p.ID, p.Name, p.CPF, p.Phone, answers, p.UpdatedAt.UTC(),
	)
	updated, err := scanPatient(row)
	if err != nil {
		return entities.Patient{}, err
	}
	if updated.ID == "" {
		return entities.Patient{}, pgx.ErrNoRows
	}
	return updated, nil
}

func (r *PatientPostgresRepository) SetGatewayCustomerID(ctx context.Context, patientID, customerID string) error {
	var id string
	return r.db.QueryRow(ctx,
		`UPDATE patients SET gateway_customer_id = $2 WHERE id = $1 RETURNING id`,
		patientID, customerID,
	).Scan(&id)
}

func scanPatient(row pgx.Row) (entities.Patient, error) {
	var (
		p                    entities.Patient
		answers              string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.CPF, &p.Phone, &answers, &p.GatewayCustomerID, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Patient{}, nil
	}
	if err != nil {
		return entities.Patient{}, err
	}

	p.QuizResponses, err = unmarshalAnswers(answers)
	if err != nil {
		return entities.Patient{}, err
	}
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}
