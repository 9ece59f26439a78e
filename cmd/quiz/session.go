package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/internal/flow"
)

// queueScheduler holds delayed callbacks until the session drains them after
// each command, so a terminal run never waits on wall-clock timers.
type queueScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (q *queueScheduler) AfterFunc(_ time.Duration, f func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, f)
}

func (q *queueScheduler) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		f := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()
		f()
	}
}

type session struct {
	ctrl      *flow.Controller
	scheduler *queueScheduler
	in        *bufio.Scanner
	out       io.Writer
	exportTo  string

	target string
}

// Navigate ends the session on the checkout page or the fallback redirect.
func (s *session) Navigate(url string) { s.target = url }

func (s *session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// run prompts step by step until the controller navigates away, the input
// ends or the visitor types "q".
func (s *session) run(ctx context.Context) error {
	for s.target == "" {
		s.scheduler.drain()
		s.render()

		if !s.in.Scan() {
			break
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "q" {
			break
		}
		if err := s.handle(ctx, line); err != nil {
			return err
		}
	}

	if err := s.export(); err != nil {
		return err
	}
	if s.target != "" {
		s.printf("\nAbra o link para continuar: %s\n", s.target)
	}
	return s.in.Err()
}

func (s *session) render() {
	step := s.ctrl.Step()
	answers := s.ctrl.Answers()

	s.printf("\n[%d/%d] %d%%  %s\n", s.ctrl.Index()+1, s.ctrl.Total(), s.ctrl.Progress(), step.Title)
	if step.Subtitle != "" {
		s.printf("  %s\n", step.Subtitle)
	}

	switch step.Kind {
	case quiz.StepSingleChoice, quiz.StepMultiChoice:
		for i, o := range step.Options {
			mark := " "
			if answers.Get(step.Key).Contains(o.Value) || answers.Text(step.Key) == o.Value {
				mark = "x"
			}
			s.printf("  [%s] %d) %s\n", mark, i+1, o.Label)
		}
	case quiz.StepNumeric:
		s.printf("  (%s, atual: %s)\n", step.Unit, answers.Text(step.Key))
	case quiz.StepProfile, quiz.StepSummary:
		s.printProfile(answers)
	}

	if msg := s.ctrl.SubmitError(); msg != "" && step.Kind == quiz.StepSummary {
		s.printf("  ! %s (Enter para tentar novamente)\n", msg)
	}
	s.printf("> ")
}

func (s *session) printProfile(a quiz.Answers) {
	if bmi, ok := a.Float(quiz.KeyBMI); ok {
		s.printf("  IMC: %.2f (%s)\n", bmi, quiz.BMICategory(bmi))
	}
	for _, k := range []quiz.Key{quiz.KeyFullName, quiz.KeyAgeBracket, quiz.KeyHeightCM, quiz.KeyWeightKG, quiz.KeyGoalWeightKG, quiz.KeyEmail} {
		if v := a.Text(k); v != "" {
			s.printf("  %s: %s\n", k, v)
		}
	}
}

func (s *session) handle(ctx context.Context, line string) error {
	step := s.ctrl.Step()

	if line == "b" {
		if err := s.ctrl.Retreat(); err != nil {
			s.printf("  ! %v\n", err)
		}
		return nil
	}

	switch step.Kind {
	case quiz.StepSingleChoice:
		if line == "" {
			return s.advance()
		}
		value, ok := optionAt(step, line)
		if !ok {
			s.printf("  ! opção inválida\n")
			return nil
		}
		if err := s.ctrl.Choose(value); err != nil {
			return err
		}
		if !step.AutoAdvance {
			return s.advance()
		}
		return nil

	case quiz.StepMultiChoice:
		if line == "" {
			return s.advance()
		}
		for _, field := range strings.Fields(strings.ReplaceAll(line, ",", " ")) {
			value, ok := optionAt(step, field)
			if !ok {
				s.printf("  ! opção inválida: %s\n", field)
				continue
			}
			if _, err := s.ctrl.Toggle(value); err != nil {
				return err
			}
		}
		return nil

	case quiz.StepNumeric:
		if line != "" {
			s.ctrl.Record(step.Key, quiz.Number(strings.ReplaceAll(line, ",", ".")))
		}
		return s.advance()

	case quiz.StepText:
		if line != "" {
			s.ctrl.Record(step.Key, quiz.Text(line))
		}
		return s.advance()

	case quiz.StepSummary:
		err := s.ctrl.Submit(ctx)
		var se *flow.SubmissionError
		if errors.As(err, &se) {
			s.ctrl.DismissModal()
			return nil
		}
		return err

	default:
		return s.advance()
	}
}

// advance reports validation failures inline and keeps the session going.
func (s *session) advance() error {
	err := s.ctrl.Advance()
	var ve *flow.ValidationError
	if errors.As(err, &ve) {
		s.printf("  ! %s\n", ve.Message)
		s.ctrl.DismissModal()
		return nil
	}
	return err
}

func optionAt(step quiz.Step, field string) (string, bool) {
	n, err := strconv.Atoi(field)
	if err != nil {
		if step.HasOption(field) {
			return field, true
		}
		return "", false
	}
	if n < 1 || n > len(step.Options) {
		return "", false
	}
	return step.Options[n-1].Value, true
}

func (s *session) export() error {
	if s.exportTo == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.ctrl.Answers(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.exportTo, raw, 0o644); err != nil {
		return fmt.Errorf("export answers: %w", err)
	}
	s.printf("\nRespostas salvas em %s\n", s.exportTo)
	return nil
}
