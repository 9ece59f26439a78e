package entities

import "time"

// FailureKind names the step of the submission pipeline that failed after the
// request itself was accepted.
type FailureKind string

const (
	FailurePatientLookup  FailureKind = "patient_lookup_failed"
	FailurePatientSave    FailureKind = "patient_save_failed"
	FailureCustomerCreate FailureKind = "customer_creation_failed"
	FailureCustomerLink   FailureKind = "customer_link_failed"
	FailurePaymentCreate  FailureKind = "payment_creation_failed"
	FailurePaymentPersist FailureKind = "payment_save_failed"
)

// IntegrationFailure is reported to the operations webhook.
type IntegrationFailure struct {
	PatientID  string
	Kind       FailureKind
	Details    string
	Context    map[string]any
	OccurredAt time.Time
}
