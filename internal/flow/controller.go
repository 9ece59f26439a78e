package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/pkg/logger"

	"github.com/looplab/fsm"
)

const (
	DefaultAutoAdvanceDelay = 300 * time.Millisecond
	DefaultLoadingDelay     = 3 * time.Second
)

var (
	ErrNoSteps            = errors.New("quiz has no steps")
	ErrNilSubmitter       = errors.New("quiz submitter is required")
	ErrNilNavigator       = errors.New("quiz navigator is required")
	ErrSubmissionInFlight = errors.New("submission in flight")
	ErrNotAtSubmitStep    = errors.New("submit is only available on the last step")
	ErrWrongStepKind      = errors.New("operation not supported by the current step")
	ErrUnknownOption      = errors.New("option not offered by the current step")
)

const (
	MsgSubmitFailed      = "Erro ao processar formulário"
	MsgPaymentURLMissing = "URL de pagamento não encontrada"
)

// Status is the lifecycle of the single submission a quiz session makes.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusFailed     Status = "failed"
)

const (
	eventSubmit = "submit"
	eventFail   = "fail"
)

// ValidationError blocks Advance. Message is shown to the visitor as is.
type ValidationError struct {
	StepID  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: %s", e.StepID, e.Message)
}

// SubmissionError is a failed submit that left the quiz in place so it can be retried.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Modal is the dismissible message the front end shows over the current step.
type Modal struct {
	Open    bool
	Message string
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option { return func(c *Controller) { c.scheduler = s } }

func WithLogger(l *logger.Logger) Option { return func(c *Controller) { c.log = logger.OrNop(l) } }

func WithAutoAdvanceDelay(d time.Duration) Option {
	return func(c *Controller) { c.autoAdvanceDelay = d }
}

func WithLoadingDelay(d time.Duration) Option { return func(c *Controller) { c.loadingDelay = d } }

// Controller walks a visitor through an ordered list of steps, gating every
// forward move on the current step's validator, and finally hands the
// accumulated answers to a Submitter.
//
// All methods are safe for concurrent use; scheduled auto-advances run on
// their own goroutine.
type Controller struct {
	mu sync.Mutex

	steps   []quiz.Step
	index   int
	answers quiz.Answers
	status  *fsm.FSM
	modal   Modal
	lastErr string

	submitter Submitter
	navigator Navigator
	scheduler Scheduler
	log       *logger.Logger

	autoAdvanceDelay time.Duration
	loadingDelay     time.Duration
}

func New(steps []quiz.Step, submitter Submitter, navigator Navigator, opts ...Option) (*Controller, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	if submitter == nil {
		return nil, ErrNilSubmitter
	}
	if navigator == nil {
		return nil, ErrNilNavigator
	}

	c := &Controller{
		steps:            steps,
		answers:          quiz.Answers{},
		submitter:        submitter,
		navigator:        navigator,
		scheduler:        timerScheduler{},
		log:              logger.Nop(),
		autoAdvanceDelay: DefaultAutoAdvanceDelay,
		loadingDelay:     DefaultLoadingDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.status = fsm.NewFSM(
		string(StatusIdle),
		fsm.Events{
			{Name: eventSubmit, Src: []string{string(StatusIdle), string(StatusFailed)}, Dst: string(StatusSubmitting)},
			{Name: eventFail, Src: []string{string(StatusSubmitting)}, Dst: string(StatusFailed)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.log.Debugw("[quiz][flow] submission status", "from", e.Src, "to", e.Dst)
			},
		},
	)

	c.enterLocked()
	return c, nil
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Total() int { return len(c.steps) }

func (c *Controller) Step() quiz.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.index]
}

// Answers returns a copy of the answer set.
func (c *Controller) Answers() quiz.Answers {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers.Clone()
}

func (c *Controller) Status() Status {
	return Status(c.status.Current())
}

func (c *Controller) Modal() Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

func (c *Controller) DismissModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = Modal{}
}

// SubmitError is the message of the last failed submission, "" otherwise.
func (c *Controller) SubmitError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) CanGoBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index > 0 && !c.submittingLocked()
}

// Progress is the completed share of the quiz in percent, counting the current step.
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.index + 1) * 100 / len(c.steps)
}

// Advance moves forward by one step when the current step validates. On
// failure the modal opens with the step's message and the index is unchanged.
// Advancing from the last step is a no-op.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advanceLocked()
}

func (c *Controller) advanceLocked() error {
	if c.submittingLocked() {
		return ErrSubmissionInFlight
	}

	step := c.steps[c.index]
	if msg := step.Check(c.answers); msg != "" {
		c.modal = Modal{Open: true, Message: msg}
		c.log.Debugw("[quiz][flow] advance blocked", "step", step.ID, "index", c.index)
		return &ValidationError{StepID: step.ID, Message: msg}
	}

	if c.index < len(c.steps)-1 {
		c.index++
		c.enterLocked()
	}
	return nil
}

// Retreat moves back by one step without validation and re-enters it, so a
// loading screen moves on again. It is refused while a submission is in flight.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submittingLocked() {
		return ErrSubmissionInFlight
	}
	if c.index > 0 {
		c.index--
		c.enterLocked()
	}
	return nil
}

// Record upserts one answer. Height and weight also refresh the derived BMI.
func (c *Controller) Record(k quiz.Key, v quiz.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.answers[k] = v
	if k == quiz.KeyHeightCM || k == quiz.KeyWeightKG {
		c.refreshBMILocked()
	}
}

// Toggle flips membership of item in the current multi-choice step and
// returns the resulting selection.
func (c *Controller) Toggle(item string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	step := c.steps[c.index]
	if step.Kind != quiz.StepMultiChoice {
		return nil, ErrWrongStepKind
	}
	if !step.HasOption(item) {
		return nil, ErrUnknownOption
	}
	return c.answers.Toggle(step.Key, item), nil
}

// Choose records a single-choice answer for the current step. Steps flagged
// AutoAdvance move on by themselves after a short delay, unless the visitor
// has navigated away in the meantime.
func (c *Controller) Choose(value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	step := c.steps[c.index]
	if step.Kind != quiz.StepSingleChoice {
		return ErrWrongStepKind
	}
	if !step.HasOption(value) {
		return ErrUnknownOption
	}

	c.answers[step.Key] = quiz.Text(value)
	if step.AutoAdvance {
		c.scheduleLocked(c.autoAdvanceDelay)
	}
	return nil
}

// Submit sends the answers from the last step. A redirect or a checkout URL
// navigates away and leaves the status submitting; anything else marks the
// submission failed so it can be retried.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.index != len(c.steps)-1 {
		c.mu.Unlock()
		return ErrNotAtSubmitStep
	}
	if !c.status.Can(eventSubmit) {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if err := c.status.Event(ctx, eventSubmit); err != nil {
		c.mu.Unlock()
		return err
	}
	c.lastErr = ""
	answers := c.answers.Clone()
	c.mu.Unlock()

	c.log.Infow("[quiz][flow] submitting", "answers", len(answers))
	resp, err := c.submitter.Submit(ctx, answers)

	target, msg := outcome(resp, err)
	if target != "" {
		c.log.Infow("[quiz][flow] navigating", "success", resp.Success)
		c.navigator.Navigate(target)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ferr := c.status.Event(ctx, eventFail); ferr != nil {
		c.log.Errorw("[quiz][flow] status transition failed", "error", ferr)
	}
	c.lastErr = msg
	c.modal = Modal{Open: true, Message: msg}
	c.log.Errorw("[quiz][flow] submission failed", "status_code", resp.StatusCode, "message", msg, "error", err)
	return &SubmissionError{Message: msg, Err: err}
}

// outcome returns the URL to navigate to, or the message to show.
func outcome(resp SubmitResponse, err error) (string, string) {
	if err != nil {
		return "", MsgSubmitFailed
	}
	if resp.RedirectURL != "" {
		return resp.RedirectURL, ""
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.Error != "" {
			return "", resp.Error
		}
		return "", MsgSubmitFailed
	}
	if resp.PaymentURL != "" {
		return resp.PaymentURL, ""
	}
	return "", MsgPaymentURLMissing
}

func (c *Controller) submittingLocked() bool {
	return c.status.Current() == string(StatusSubmitting)
}

// enterLocked prepares the step just landed on: numeric steps get their
// placeholder, the BMI is kept current, loading screens move on by themselves.
func (c *Controller) enterLocked() {
	step := c.steps[c.index]

	if step.Default != "" && step.Key != "" && !c.answers.Has(step.Key) {
		c.answers[step.Key] = quiz.Number(step.Default)
	}
	c.refreshBMILocked()

	if step.Kind == quiz.StepLoading {
		c.scheduleLocked(c.loadingDelay)
	}
}

// refreshBMILocked drops the BMI when the measurements no longer yield one.
func (c *Controller) refreshBMILocked() {
	if !quiz.DeriveBMI(c.answers) {
		delete(c.answers, quiz.KeyBMI)
	}
}

func (c *Controller) scheduleLocked(d time.Duration) {
	at := c.index
	c.scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.index != at {
			return
		}
		if err := c.advanceLocked(); err != nil {
			c.log.Debugw("[quiz][flow] auto-advance skipped", "index", at, "error", err)
		}
	})
}
