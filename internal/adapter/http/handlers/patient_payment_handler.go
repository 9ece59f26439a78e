package handlers

import (
	"errors"
	"net/http"

	response "nutri_quiz/internal/adapter/http/dto/response"
	"nutri_quiz/internal/usecase"
	"nutri_quiz/pkg"
	"nutri_quiz/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PatientPaymentHandler exposes the checkout attempts of a lead.

type PatientPaymentHandler struct {
	usecase usecase.IPatientPaymentsUseCase
	log     *logger.Logger
}

func NewPatientPaymentHandler(uc usecase.IPatientPaymentsUseCase, log *logger.Logger) *PatientPaymentHandler {
	return &PatientPaymentHandler{usecase: uc, log: logger.OrNop(log)}
}

// ListPayments godoc
// @Summary      Payment attempts of a patient, latest first
// @Tags         payments
// @Produce      json
// @Param        patient_id  path      string  true  "patient id"
// @Success      200         {array}   response.PaymentResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Failure      500         {object}  pkg.HTTPError
// @Router       /v1/patients/{patient_id}/payments [get]
func (h *PatientPaymentHandler) ListPayments(c *gin.Context) {
	patientID := c.Param("patient_id")
	h.log.Infow("[payment][handler] list start", "patient_id", patientID)

	items, err := h.usecase.ListByPatientID(c.Request.Context(), patientID)
	if err != nil {
		h.log.Errorw("[payment][handler] list failed", "patient_id", patientID, "error", err)
		appErr := mapPatientPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(items))
}

func mapPatientPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPatientID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPatientNotFound):
		return pkg.NewDomainErrorSimple("PATIENT_NOT_FOUND", "Patient not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
