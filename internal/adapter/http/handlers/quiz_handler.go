package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	request "nutri_quiz/internal/adapter/http/dto/request"
	response "nutri_quiz/internal/adapter/http/dto/response"
	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/internal/usecase"
	"nutri_quiz/pkg"
	"nutri_quiz/pkg/logger"

	"github.com/gin-gonic/gin"
)

const MsgInternalError = "Erro interno do servidor"

var (
	errInvalidQuizPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Requisição inválida.", http.StatusBadRequest)
	errIncompleteQuiz     = pkg.NewDomainErrorSimple("INVALID_SUBMISSION", usecase.MsgIncompleteSubmission, http.StatusBadRequest)
	errUnknownVariant     = pkg.NewDomainErrorSimple("UNKNOWN_VARIANT", "Variante de quiz desconhecida.", http.StatusBadRequest)
)

// QuizHandler serves the quiz catalog and receives finished quizzes.

type QuizHandler struct {
	usecase usecase.IQuizSubmissionUseCase
	log     *logger.Logger
}

func NewQuizHandler(uc usecase.IQuizSubmissionUseCase, log *logger.Logger) *QuizHandler {
	return &QuizHandler{usecase: uc, log: logger.OrNop(log)}
}

// SubmitQuiz godoc
// @Summary      Submit a finished quiz
// @Description  Upserts the lead, creates the gateway checkout and answers with its URL, or with a fallback redirect when an integration fails.
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        body  body      request.SubmitQuizRequest  true  "answer set"
// @Success      200   {object}  response.SubmitQuizResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /submit-quiz [post]
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var payload request.SubmitQuizRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Infow("[quiz][handler] invalid payload", "error", err)
		appErr := errInvalidQuizPayload
		// well-formed JSON whose answers are not an object
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			appErr = errIncompleteQuiz
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if payload.Answers == nil {
		payload.Answers = quiz.Answers{}
	}

	result, err := h.usecase.Submit(c.Request.Context(), payload.Answers)
	if err != nil {
		appErr := mapSubmissionError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			h.log.Errorw("[quiz][handler] submit failed", "error", err)
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.log.Infow("[quiz][handler] submit done", "patient_id", result.PatientID, "success", result.Success())
	c.JSON(http.StatusOK, response.FromSubmissionResult(result))
}

// GetSteps godoc
// @Summary      Quiz step catalog
// @Tags         quiz
// @Produce      json
// @Param        variant  query     string  false  "full (default) or compact"
// @Success      200      {object}  response.QuizStepsResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /v1/quiz/steps [get]
func (h *QuizHandler) GetSteps(c *gin.Context) {
	variant := quiz.Variant(c.DefaultQuery("variant", string(quiz.VariantFull)))
	steps, err := quiz.Steps(variant)
	if err != nil {
		c.JSON(errUnknownVariant.HTTPStatus, errUnknownVariant.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSteps(variant, steps))
}

func mapSubmissionError(err error) *pkg.AppError {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		return pkg.NewDomainError("INVALID_SUBMISSION", ve.Message, err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSubmission):
		return pkg.NewDomainError("INVALID_SUBMISSION", usecase.MsgIncompleteSubmission, err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", MsgInternalError, err, http.StatusInternalServerError)
	}
}

// Recovery turns a panic in any handler into the generic 500 body.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorw("[http] recovered from panic", "path", c.FullPath(), "panic", recovered)
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", MsgInternalError, http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	})
}
