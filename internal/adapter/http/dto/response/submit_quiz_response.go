package response

import "nutri_quiz/internal/usecase"

// SubmitQuizResponse is either a checkout (success=true, paymentUrl) or a
// fallback redirect (success=false, redirectUrl). Validation and internal
// failures use pkg.HTTPError instead.
type SubmitQuizResponse struct {
	Success     bool   `json:"success"`
	PaymentURL  string `json:"paymentUrl,omitempty"`
	PatientID   string `json:"patientId,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Error       string `json:"error,omitempty"`
}

func FromSubmissionResult(r usecase.SubmissionResult) SubmitQuizResponse {
	if r.Success() {
		return SubmitQuizResponse{Success: true, PaymentURL: r.PaymentURL, PatientID: r.PatientID}
	}
	return SubmitQuizResponse{Success: false, RedirectURL: r.RedirectURL}
}
