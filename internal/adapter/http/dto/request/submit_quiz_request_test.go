package request

import (
	"encoding/json"
	"testing"

	"nutri_quiz/internal/domain/quiz"
)

func TestSubmitQuizRequest_Decode(t *testing.T) {
	body := `{"answers":{"nome_completo":"Maria","breakfast_foods":["ovos","frutas"],"altura_cm":170,"imc":"24.22"}}`

	var req SubmitQuizRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if req.Answers.Text(quiz.KeyFullName) != "Maria" {
		t.Fatalf("unexpected name %q", req.Answers.Text(quiz.KeyFullName))
	}
	if items := req.Answers.Items(quiz.KeyBreakfastFoods); len(items) != 2 {
		t.Fatalf("expected 2 breakfast foods, got %v", items)
	}
	if h, ok := req.Answers.Float(quiz.KeyHeightCM); !ok || h != 170 {
		t.Fatalf("expected height 170, got %v %v", h, ok)
	}
}

func TestSubmitQuizRequest_MissingAnswers(t *testing.T) {
	var req SubmitQuizRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if req.Answers != nil {
		t.Fatalf("expected nil answers, got %v", req.Answers)
	}
}
