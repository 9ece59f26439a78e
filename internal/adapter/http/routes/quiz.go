package routes

import (
	"nutri_quiz/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathSubmitQuiz      = "/submit-quiz"
	PathSubmitQuizAlias = "/api/submit-quiz"
	PathQuiz            = "/quiz"
	PathPatients        = "/patients"
)

// addSubmitRoutes mounts the submission endpoint at the root, where the quiz
// front end posts, plus the /api alias used by older deployments.
func addSubmitRoutes(router *gin.Engine, quizHandler *handlers.QuizHandler) {
	router.POST(PathSubmitQuiz, quizHandler.SubmitQuiz)
	router.POST(PathSubmitQuizAlias, quizHandler.SubmitQuiz)
}

func addQuizRoutes(rg *gin.RouterGroup, quizHandler *handlers.QuizHandler, paymentHandler *handlers.PatientPaymentHandler) {
	quiz := rg.Group(PathQuiz)
	{
		quiz.GET("/steps", quizHandler.GetSteps)
	}

	patients := rg.Group(PathPatients)
	{
		patients.GET("/:patient_id/payments", paymentHandler.ListPayments)
	}
}
