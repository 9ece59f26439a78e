package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nutri_quiz/internal/domain/quiz"
)

type scheduled struct {
	delay time.Duration
	fn    func()
}

type manualScheduler struct {
	mu      sync.Mutex
	pending []scheduled
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, scheduled{delay: d, fn: f})
}

func (s *manualScheduler) fire() int {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, p := range pending {
		p.fn()
	}
	return len(pending)
}

func (s *manualScheduler) delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, p.delay)
	}
	return out
}

type stubSubmitter struct {
	responses []SubmitResponse
	errs      []error
	calls     int
	got       quiz.Answers
}

func (s *stubSubmitter) Submit(_ context.Context, answers quiz.Answers) (SubmitResponse, error) {
	i := s.calls
	s.calls++
	s.got = answers
	var resp SubmitResponse
	var err error
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return resp, err
}

type recordingNavigator struct {
	urls []string
}

func (n *recordingNavigator) Navigate(url string) { n.urls = append(n.urls, url) }

func newController(t *testing.T, steps []quiz.Step, sub Submitter) (*Controller, *manualScheduler, *recordingNavigator) {
	t.Helper()
	sched := &manualScheduler{}
	nav := &recordingNavigator{}
	c, err := New(steps, sub, nav, WithScheduler(sched))
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	return c, sched, nav
}

func fullSteps(t *testing.T) []quiz.Step {
	t.Helper()
	steps, err := quiz.Steps(quiz.VariantFull)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	return steps
}

var validText = map[quiz.Key]string{
	quiz.KeyEmail:    "maria@example.com",
	quiz.KeyPhone:    "(11) 98765-4321",
	quiz.KeyFullName: "Maria Silva",
	quiz.KeyCPF:      "123.456.789-09",
}

// answerStep gives the current step an answer its validator accepts.
func answerStep(t *testing.T, c *Controller) {
	t.Helper()
	step := c.Step()
	switch step.Kind {
	case quiz.StepSingleChoice:
		if err := c.Choose(step.Options[0].Value); err != nil {
			t.Fatalf("choose on %s: %v", step.ID, err)
		}
	case quiz.StepMultiChoice:
		if _, err := c.Toggle(step.Options[0].Value); err != nil {
			t.Fatalf("toggle on %s: %v", step.ID, err)
		}
	case quiz.StepText:
		c.Record(step.Key, quiz.Text(validText[step.Key]))
	}
}

func TestNew_NoSteps(t *testing.T) {
	_, err := New(nil, nil, nil)
	if !errors.Is(err, ErrNoSteps) {
		t.Fatalf("expected ErrNoSteps, got %v", err)
	}
}

func TestNew_RequiresPorts(t *testing.T) {
	if _, err := New(submitSteps(), nil, &recordingNavigator{}); !errors.Is(err, ErrNilSubmitter) {
		t.Fatalf("expected ErrNilSubmitter, got %v", err)
	}
	if _, err := New(submitSteps(), &stubSubmitter{}, nil); !errors.Is(err, ErrNilNavigator) {
		t.Fatalf("expected ErrNilNavigator, got %v", err)
	}
}

func TestController_AdvanceBlockedIffValidatorFails(t *testing.T) {
	c, _, _ := newController(t, fullSteps(t), &stubSubmitter{})

	for i := 0; i < c.Total()-1; i++ {
		if c.Index() != i {
			t.Fatalf("expected index %d, got %d", i, c.Index())
		}
		step := c.Step()
		msg := step.Check(c.Answers())

		err := c.Advance()
		if msg != "" {
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Message != msg || ve.StepID != step.ID {
				t.Fatalf("step %s: expected validation error %q, got %v", step.ID, msg, err)
			}
			if c.Index() != i {
				t.Fatalf("step %s: blocked advance moved index to %d", step.ID, c.Index())
			}
			if m := c.Modal(); !m.Open || m.Message != msg {
				t.Fatalf("step %s: expected modal %q, got %+v", step.ID, msg, m)
			}
			c.DismissModal()

			answerStep(t, c)
			if err := c.Advance(); err != nil {
				t.Fatalf("step %s: expected advance after answering, got %v", step.ID, err)
			}
		} else if err != nil {
			t.Fatalf("step %s: expected advance, got %v", step.ID, err)
		}
		if c.Index() != i+1 {
			t.Fatalf("step %s: expected index %d, got %d", step.ID, i+1, c.Index())
		}
	}

	last := c.Index()
	if err := c.Advance(); err != nil {
		t.Fatalf("expected no-op advance on last step, got %v", err)
	}
	if c.Index() != last {
		t.Fatalf("expected index clamped at %d, got %d", last, c.Index())
	}
}

func TestController_ValidationMessagesPerStep(t *testing.T) {
	steps := fullSteps(t)
	byID := map[string]quiz.Step{}
	for _, s := range steps {
		byID[s.ID] = s
	}

	cases := []struct {
		step    string
		answers quiz.Answers
		want    string
	}{
		{"email", quiz.Answers{}, quiz.MsgEmailMissing},
		{"email", quiz.Answers{quiz.KeyEmail: quiz.Text("not-an-email")}, quiz.MsgEmailInvalid},
		{"whatsapp", quiz.Answers{quiz.KeyPhone: quiz.Text("11 9999")}, quiz.MsgPhoneInvalid},
		{"whatsapp", quiz.Answers{quiz.KeyPhone: quiz.Text("1199999999")}, ""},
		{"nome", quiz.Answers{quiz.KeyFullName: quiz.Text("   ")}, quiz.MsgNameMissing},
		{"cpf", quiz.Answers{quiz.KeyCPF: quiz.Text("1234567890")}, quiz.MsgCPFInvalid},
		{"cpf", quiz.Answers{}, quiz.MsgCPFMissing},
	}
	for _, tc := range cases {
		t.Run(tc.step+"/"+tc.want, func(t *testing.T) {
			step, ok := byID[tc.step]
			if !ok {
				t.Fatalf("step %s not in catalog", tc.step)
			}
			if got := step.Check(tc.answers); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestController_Retreat(t *testing.T) {
	c, _, _ := newController(t, fullSteps(t), &stubSubmitter{})

	if c.CanGoBack() {
		t.Fatalf("expected no back on first step")
	}
	if err := c.Retreat(); err != nil || c.Index() != 0 {
		t.Fatalf("expected retreat at 0 to be a no-op, got idx=%d err=%v", c.Index(), err)
	}

	answerStep(t, c)
	if err := c.Advance(); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if !c.CanGoBack() {
		t.Fatalf("expected back enabled")
	}
	if err := c.Retreat(); err != nil || c.Index() != 0 {
		t.Fatalf("expected index 0, got idx=%d err=%v", c.Index(), err)
	}
}

func TestController_ChooseAutoAdvances(t *testing.T) {
	t.Run("fires after delay", func(t *testing.T) {
		c, sched, _ := newController(t, fullSteps(t), &stubSubmitter{})

		if err := c.Choose("25-34 anos"); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if c.Index() != 0 {
			t.Fatalf("expected no immediate advance")
		}
		if d := sched.delays(); len(d) != 1 || d[0] != DefaultAutoAdvanceDelay {
			t.Fatalf("expected one pending advance of %s, got %v", DefaultAutoAdvanceDelay, d)
		}
		sched.fire()
		if c.Index() != 1 {
			t.Fatalf("expected index 1, got %d", c.Index())
		}
		if got := c.Answers().Text(quiz.KeyAgeBracket); got != "25-34 anos" {
			t.Fatalf("expected recorded age bracket, got %q", got)
		}
	})

	t.Run("dropped when the visitor moved", func(t *testing.T) {
		c, sched, _ := newController(t, fullSteps(t), &stubSubmitter{})

		answerStep(t, c)
		sched.fire()
		if err := c.Choose(c.Step().Options[0].Value); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if err := c.Retreat(); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		sched.fire()
		if c.Index() != 0 {
			t.Fatalf("expected stale auto-advance to be dropped, got index %d", c.Index())
		}
	})

	t.Run("rejects unknown option and wrong kind", func(t *testing.T) {
		c, _, _ := newController(t, fullSteps(t), &stubSubmitter{})

		if err := c.Choose("99 anos"); !errors.Is(err, ErrUnknownOption) {
			t.Fatalf("expected ErrUnknownOption, got %v", err)
		}
		if _, err := c.Toggle("25-34 anos"); !errors.Is(err, ErrWrongStepKind) {
			t.Fatalf("expected ErrWrongStepKind, got %v", err)
		}
	})
}

func TestController_ToggleTwiceRestoresSelection(t *testing.T) {
	steps := []quiz.Step{
		{
			ID:   "habitos",
			Kind: quiz.StepMultiChoice,
			Key:  quiz.KeyHabits,
			Options: []quiz.Option{
				{Value: "doces", Label: "Doces"},
				{Value: "refrigerante", Label: "Refrigerante"},
			},
			Validate: quiz.RequireSelection(quiz.KeyHabits, quiz.MsgHabits),
		},
		{ID: "resumo", Kind: quiz.StepSummary},
	}
	c, _, _ := newController(t, steps, &stubSubmitter{})

	if _, err := c.Toggle("doces"); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	before := c.Answers().Items(quiz.KeyHabits)

	if got, _ := c.Toggle("refrigerante"); len(got) != 2 {
		t.Fatalf("expected 2 items, got %v", got)
	}
	got, _ := c.Toggle("refrigerante")
	if len(got) != len(before) || got[0] != before[0] {
		t.Fatalf("expected %v after toggling twice, got %v", before, got)
	}

	if _, err := c.Toggle("doces"); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	var ve *ValidationError
	if err := c.Advance(); !errors.As(err, &ve) || ve.Message != quiz.MsgHabits {
		t.Fatalf("expected habits validation error, got %v", err)
	}
}

func TestController_BMIEitherOrder(t *testing.T) {
	orders := map[string][]quiz.Key{
		"height first": {quiz.KeyHeightCM, quiz.KeyWeightKG},
		"weight first": {quiz.KeyWeightKG, quiz.KeyHeightCM},
	}
	values := map[quiz.Key]string{quiz.KeyHeightCM: "170", quiz.KeyWeightKG: "70"}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			c, _, _ := newController(t, fullSteps(t), &stubSubmitter{})
			c.Record(order[0], quiz.Number(values[order[0]]))
			if c.Answers().Has(quiz.KeyBMI) {
				t.Fatalf("expected no BMI with a single measurement")
			}
			c.Record(order[1], quiz.Number(values[order[1]]))
			if got := c.Answers().Text(quiz.KeyBMI); got != "24.22" {
				t.Fatalf("expected BMI 24.22, got %q", got)
			}
		})
	}
}

func TestController_NumericStepRejectsInvalidValues(t *testing.T) {
	byID := map[string]quiz.Step{}
	for _, s := range fullSteps(t) {
		byID[s.ID] = s
	}
	steps := []quiz.Step{byID["altura"], byID["peso"], {ID: "resumo", Kind: quiz.StepSummary}}
	c, _, _ := newController(t, steps, &stubSubmitter{})

	if err := c.Advance(); err != nil {
		t.Fatalf("expected seeded height to advance, got %v", err)
	}
	if got := c.Answers().Text(quiz.KeyBMI); got != "24.22" {
		t.Fatalf("expected BMI 24.22, got %q", got)
	}

	cases := []struct {
		name  string
		value string
	}{
		{"unparseable", "abc"},
		{"above max", "900"},
		{"below min", "10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c.Record(quiz.KeyWeightKG, quiz.Number(tc.value))
			var ve *ValidationError
			if err := c.Advance(); !errors.As(err, &ve) || ve.Message != quiz.MsgWeight {
				t.Fatalf("expected weight validation error, got %v", err)
			}
			if c.Index() != 1 {
				t.Fatalf("expected index 1, got %d", c.Index())
			}
			c.DismissModal()
		})
	}

	c.Record(quiz.KeyWeightKG, quiz.Number("abc"))
	if c.Answers().Has(quiz.KeyBMI) {
		t.Fatalf("expected stale BMI dropped, got %q", c.Answers().Text(quiz.KeyBMI))
	}

	c.Record(quiz.KeyWeightKG, quiz.Number("80"))
	if err := c.Advance(); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if got := c.Answers().Text(quiz.KeyBMI); got != "27.68" {
		t.Fatalf("expected BMI 27.68, got %q", got)
	}
}

func TestController_SeedsMeasurementDefaults(t *testing.T) {
	steps := []quiz.Step{
		{ID: "intro", Kind: quiz.StepInfo},
		{ID: "altura", Kind: quiz.StepNumeric, Key: quiz.KeyHeightCM, Default: "170", Validate: quiz.RequireAnswer(quiz.KeyHeightCM, quiz.MsgHeight)},
		{ID: "peso", Kind: quiz.StepNumeric, Key: quiz.KeyWeightKG, Default: "70", Validate: quiz.RequireAnswer(quiz.KeyWeightKG, quiz.MsgWeight)},
		{ID: "resumo", Kind: quiz.StepSummary},
	}
	c, _, _ := newController(t, steps, &stubSubmitter{})

	if c.Answers().Has(quiz.KeyHeightCM) {
		t.Fatalf("expected no height before reaching the step")
	}
	_ = c.Advance()
	if got := c.Answers().Text(quiz.KeyHeightCM); got != "170" {
		t.Fatalf("expected seeded height 170, got %q", got)
	}

	c.Record(quiz.KeyWeightKG, quiz.Number("80"))
	_ = c.Advance()
	if got := c.Answers().Text(quiz.KeyWeightKG); got != "80" {
		t.Fatalf("expected prior weight kept, got %q", got)
	}
	if got := c.Answers().Text(quiz.KeyBMI); got != "27.68" {
		t.Fatalf("expected BMI 27.68, got %q", got)
	}
}

func TestController_LoadingStepMovesOn(t *testing.T) {
	steps := []quiz.Step{
		{ID: "intro", Kind: quiz.StepInfo},
		{ID: "carregando", Kind: quiz.StepLoading, AutoAdvance: true},
		{ID: "resumo", Kind: quiz.StepSummary},
	}
	c, sched, _ := newController(t, steps, &stubSubmitter{})

	_ = c.Advance()
	if d := sched.delays(); len(d) != 1 || d[0] != DefaultLoadingDelay {
		t.Fatalf("expected loading timer, got %v", d)
	}
	sched.fire()
	if c.Index() != 2 {
		t.Fatalf("expected summary step, got %d", c.Index())
	}
}

func TestController_RetreatOntoLoadingMovesOnAgain(t *testing.T) {
	steps := []quiz.Step{
		{ID: "cpf", Kind: quiz.StepInfo},
		{ID: "carregando", Kind: quiz.StepLoading, AutoAdvance: true},
		{ID: "resumo", Kind: quiz.StepSummary},
	}
	c, sched, _ := newController(t, steps, &stubSubmitter{})

	_ = c.Advance()
	sched.fire()
	if c.Index() != 2 {
		t.Fatalf("expected summary step, got %d", c.Index())
	}

	if err := c.Retreat(); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if c.Index() != 1 {
		t.Fatalf("expected loading step, got %d", c.Index())
	}
	if d := sched.delays(); len(d) != 1 || d[0] != DefaultLoadingDelay {
		t.Fatalf("expected loading timer re-armed, got %v", d)
	}
	sched.fire()
	if c.Index() != 2 {
		t.Fatalf("expected summary step again, got %d", c.Index())
	}
}

func TestController_RetreatSeedsDefaults(t *testing.T) {
	steps := []quiz.Step{
		{ID: "altura", Kind: quiz.StepNumeric, Key: quiz.KeyHeightCM, Default: "170", Validate: quiz.RequireNumber(quiz.KeyHeightCM, 120, 220, quiz.MsgHeight)},
		{ID: "resumo", Kind: quiz.StepSummary},
	}
	c, _, _ := newController(t, steps, &stubSubmitter{})

	_ = c.Advance()
	c.Record(quiz.KeyHeightCM, quiz.Number(""))
	if err := c.Retreat(); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if got := c.Answers().Text(quiz.KeyHeightCM); got != "170" {
		t.Fatalf("expected seeded height 170, got %q", got)
	}
}

func submitSteps() []quiz.Step {
	return []quiz.Step{
		{ID: "intro", Kind: quiz.StepInfo},
		{ID: "resumo", Kind: quiz.StepSummary},
	}
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("only from the last step", func(t *testing.T) {
		sub := &stubSubmitter{}
		c, _, _ := newController(t, submitSteps(), sub)
		if err := c.Submit(ctx); !errors.Is(err, ErrNotAtSubmitStep) {
			t.Fatalf("expected ErrNotAtSubmitStep, got %v", err)
		}
		if sub.calls != 0 {
			t.Fatalf("expected no submission")
		}
	})

	t.Run("success navigates to checkout and locks navigation", func(t *testing.T) {
		sub := &stubSubmitter{responses: []SubmitResponse{{StatusCode: 200, Success: true, PaymentURL: "https://pay/1", PatientID: "pat-1"}}}
		c, _, nav := newController(t, submitSteps(), sub)
		c.Record(quiz.KeyEmail, quiz.Text("maria@example.com"))
		_ = c.Advance()

		if err := c.Submit(ctx); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(nav.urls) != 1 || nav.urls[0] != "https://pay/1" {
			t.Fatalf("expected checkout navigation, got %v", nav.urls)
		}
		if sub.got.Text(quiz.KeyEmail) != "maria@example.com" {
			t.Fatalf("expected full answer set submitted")
		}
		if c.Status() != StatusSubmitting {
			t.Fatalf("expected submitting, got %s", c.Status())
		}
		if err := c.Retreat(); !errors.Is(err, ErrSubmissionInFlight) {
			t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
		}
		if err := c.Advance(); !errors.Is(err, ErrSubmissionInFlight) {
			t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
		}
		if err := c.Submit(ctx); !errors.Is(err, ErrSubmissionInFlight) {
			t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
		}
		if c.CanGoBack() {
			t.Fatalf("expected back disabled while submitting")
		}
	})

	t.Run("redirect navigates and stays in flight", func(t *testing.T) {
		sub := &stubSubmitter{responses: []SubmitResponse{{StatusCode: 200, RedirectURL: "https://fallback"}}}
		c, _, nav := newController(t, submitSteps(), sub)
		_ = c.Advance()

		if err := c.Submit(ctx); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(nav.urls) != 1 || nav.urls[0] != "https://fallback" {
			t.Fatalf("expected fallback navigation, got %v", nav.urls)
		}
		if c.Status() != StatusSubmitting {
			t.Fatalf("expected submitting, got %s", c.Status())
		}
	})

	t.Run("failure is shown and retry works", func(t *testing.T) {
		sub := &stubSubmitter{responses: []SubmitResponse{
			{StatusCode: 400, Error: "Email inválido."},
			{StatusCode: 200, Success: true, PaymentURL: "https://pay/2"},
		}}
		c, _, nav := newController(t, submitSteps(), sub)
		_ = c.Advance()

		err := c.Submit(ctx)
		var se *SubmissionError
		if !errors.As(err, &se) || se.Message != "Email inválido." {
			t.Fatalf("expected SubmissionError with server message, got %v", err)
		}
		if c.Status() != StatusFailed || c.SubmitError() != "Email inválido." {
			t.Fatalf("expected failed status, got %s %q", c.Status(), c.SubmitError())
		}
		if !c.Modal().Open {
			t.Fatalf("expected modal")
		}
		if !c.CanGoBack() {
			t.Fatalf("expected navigation re-enabled")
		}

		if err := c.Submit(ctx); err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if c.SubmitError() != "" || len(nav.urls) != 1 || nav.urls[0] != "https://pay/2" {
			t.Fatalf("unexpected retry outcome err=%q urls=%v", c.SubmitError(), nav.urls)
		}
	})

	t.Run("transport error and missing url", func(t *testing.T) {
		cases := []struct {
			name string
			resp SubmitResponse
			err  error
			want string
		}{
			{"transport", SubmitResponse{}, errors.New("connection refused"), MsgSubmitFailed},
			{"server error without message", SubmitResponse{StatusCode: 500}, nil, MsgSubmitFailed},
			{"no payment url", SubmitResponse{StatusCode: 200, Success: true}, nil, MsgPaymentURLMissing},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				sub := &stubSubmitter{responses: []SubmitResponse{tc.resp}, errs: []error{tc.err}}
				c, _, nav := newController(t, submitSteps(), sub)
				_ = c.Advance()

				if err := c.Submit(ctx); err == nil {
					t.Fatalf("expected error")
				}
				if c.SubmitError() != tc.want {
					t.Fatalf("expected %q, got %q", tc.want, c.SubmitError())
				}
				if len(nav.urls) != 0 {
					t.Fatalf("expected no navigation, got %v", nav.urls)
				}
			})
		}
	})
}

func TestController_Progress(t *testing.T) {
	c, _, _ := newController(t, submitSteps(), &stubSubmitter{})
	if c.Progress() != 50 {
		t.Fatalf("expected 50, got %d", c.Progress())
	}
	_ = c.Advance()
	if c.Progress() != 100 {
		t.Fatalf("expected 100, got %d", c.Progress())
	}
}
