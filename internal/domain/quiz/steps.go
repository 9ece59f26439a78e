package quiz

import "strings"

type StepKind string

const (
	StepSingleChoice StepKind = "single_choice"
	StepMultiChoice  StepKind = "multi_choice"
	StepText         StepKind = "text"
	StepNumeric      StepKind = "numeric"
	StepInfo         StepKind = "info"
	StepProfile      StepKind = "profile"
	StepLoading      StepKind = "loading"
	StepSummary      StepKind = "summary"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Validator returns the message shown to the visitor when the step cannot be
// left yet, or "" when it can.
type Validator func(Answers) string

// Step describes one page of the quiz: what it asks, how it is validated and
// whether picking an answer moves on by itself.
type Step struct {
	ID          string    `json:"id"`
	Kind        StepKind  `json:"kind"`
	Key         Key       `json:"key,omitempty"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	AutoAdvance bool      `json:"auto_advance"`
	Default     string    `json:"default,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Min         float64   `json:"min,omitempty"`
	Max         float64   `json:"max,omitempty"`
	Validate    Validator `json:"-"`
}

// Check runs the step validator. Steps without one always pass.
func (s Step) Check(a Answers) string {
	if s.Validate == nil {
		return ""
	}
	return s.Validate(a)
}

func (s Step) HasOption(value string) bool {
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

const (
	MsgSelectOption   = "Por favor, selecione uma opção antes de continuar."
	MsgBreakfastFoods = "Por favor, selecione pelo menos uma opção para o seu café da manhã."
	MsgHabits         = "Por favor, selecione pelo menos uma opção de hábito alimentar."
	MsgHeight         = "Por favor, selecione sua altura antes de continuar."
	MsgWeight         = "Por favor, informe seu peso atual para continuar."
	MsgGoalWeight     = "Por favor, defina sua meta de peso para continuar."
	MsgEmailMissing   = "Por favor, informe seu e-mail para continuar."
	MsgEmailInvalid   = "Por favor, insira um e-mail válido (exemplo: seuemail@exemplo.com)"
	MsgPhoneMissing   = "Por favor, informe seu número de WhatsApp."
	MsgPhoneInvalid   = "Por favor, insira um telefone válido com DDD (exemplo: (11) 98765-4321)"
	MsgNameMissing    = "Por favor, informe seu nome completo para continuar."
	MsgCPFMissing     = "Por favor, informe seu CPF para continuar."
	MsgCPFInvalid     = "Por favor, insira um CPF válido com 11 dígitos."
)

func RequireAnswer(k Key, msg string) Validator {
	return func(a Answers) string {
		if !a.Has(k) {
			return msg
		}
		return ""
	}
}

// RequireNumber accepts a parseable value inside [min, max]. A zero bound is
// not enforced.
func RequireNumber(k Key, min, max float64, msg string) Validator {
	return func(a Answers) string {
		v, ok := a.Float(k)
		if !ok || (min > 0 && v < min) || (max > 0 && v > max) {
			return msg
		}
		return ""
	}
}

func RequireSelection(k Key, msg string) Validator {
	return func(a Answers) string {
		if len(a.Items(k)) == 0 {
			return msg
		}
		return ""
	}
}

func ValidateEmail(a Answers) string {
	email := strings.TrimSpace(a.Text(KeyEmail))
	switch {
	case email == "":
		return MsgEmailMissing
	case !IsValidEmail(email):
		return MsgEmailInvalid
	}
	return ""
}

func ValidatePhone(a Answers) string {
	phone := a.Text(KeyPhone)
	switch {
	case phone == "":
		return MsgPhoneMissing
	case !IsValidPhone(phone):
		return MsgPhoneInvalid
	}
	return ""
}

func ValidateFullName(a Answers) string {
	if strings.TrimSpace(a.Text(KeyFullName)) == "" {
		return MsgNameMissing
	}
	return ""
}

func ValidateCPF(a Answers) string {
	cpf := a.Text(KeyCPF)
	switch {
	case cpf == "":
		return MsgCPFMissing
	case !IsValidCPF(cpf):
		return MsgCPFInvalid
	}
	return ""
}
