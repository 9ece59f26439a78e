package flow

import (
	"context"
	"time"

	"nutri_quiz/internal/domain/quiz"
)

// SubmitResponse is what the submission endpoint answered.
type SubmitResponse struct {
	StatusCode  int
	Success     bool
	PaymentURL  string
	PatientID   string
	RedirectURL string
	Error       string
}

// Submitter sends the full answer set to the submission endpoint.
type Submitter interface {
	Submit(ctx context.Context, answers quiz.Answers) (SubmitResponse, error)
}

// Navigator leaves the quiz for an external page (checkout or fallback).
type Navigator interface {
	Navigate(url string)
}

type NavigatorFunc func(url string)

func (f NavigatorFunc) Navigate(url string) { f(url) }

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }
