// Package engine implements the adaptive assessment engine: a navigation
// state machine over an immutable framework, AI-generated follow-up queues
// with a deterministic local fallback, snapshot persistence, and results
// compilation.
//
// An Engine is owned by one logical flow at a time. Its methods are not safe
// for concurrent use; callers serialize access per assessment (the service
// layer holds one mutex per live session).
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearcomply/internal/ai"
	"clearcomply/internal/model"
)

var (
	// ErrValidation wraps every answer rejection. Engine state is untouched
	// whenever it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrAssessmentIncomplete is returned by CalculateResults while
	// questions remain.
	ErrAssessmentIncomplete = errors.New("assessment is not complete")

	// ErrEngineDestroyed is returned by state-changing calls after Destroy.
	ErrEngineDestroyed = errors.New("engine has been destroyed")
)

// timeNow is swapped in tests.
var timeNow = time.Now

// TriggerPredicate decides whether a recorded answer warrants AI follow-up.
type TriggerPredicate func(q *model.Question, a model.Answer) bool

// DefaultTrigger fires on a question's declared trigger answers, or on a
// literal "no" for questions that declare none.
func DefaultTrigger(q *model.Question, a model.Answer) bool {
	if len(q.TriggerAnswers) > 0 {
		return a.Value.Matches(q.TriggerAnswers)
	}
	return a.Value.Matches([]string{"no"})
}

const (
	DefaultAITimeout    = 10 * time.Second
	DefaultMaxFollowUps = 3
)

// Config tunes one engine instance. Zero values fall back to defaults.
type Config struct {
	// Trigger decides which answers spawn AI follow-ups and which recorded
	// answers count as gaps. Nil means DefaultTrigger.
	Trigger TriggerPredicate

	// AITimeout bounds each gateway call; the fallback generator takes over
	// when it elapses. Zero means DefaultAITimeout.
	AITimeout time.Duration

	// MaxFollowUps caps how many questions one trigger may inject. Zero
	// means DefaultMaxFollowUps.
	MaxFollowUps int
}

// Engine drives one assessment session over an immutable framework.
// Construct with New; resume a persisted session with New followed by
// LoadProgress.
type Engine struct {
	framework  *model.Framework
	assessment model.AssessmentContext

	gateway  ai.Gateway
	fallback *FallbackGenerator
	store    ProgressStore

	cfg Config

	answers    *answerStore
	pos        model.Position
	aiInjected int // questions entered into taken AI queues, for progress and coverage

	// aiQuestions keeps every injected question addressable after its queue
	// is gone, so earlier AI answers can be overwritten and validated.
	aiQuestions map[string]model.Question

	destroyed bool
}

// New creates an engine positioned at the framework's first question. The
// gateway may be nil when AI is disabled; every trigger then takes the
// fallback path. The store may be nil for sessions that are never persisted.
func New(framework *model.Framework, assessment model.AssessmentContext, gateway ai.Gateway, store ProgressStore, cfg Config) (*Engine, error) {
	if framework == nil {
		return nil, fmt.Errorf("framework is required")
	}
	if err := framework.Validate(); err != nil {
		return nil, fmt.Errorf("invalid framework: %w", err)
	}
	if cfg.Trigger == nil {
		cfg.Trigger = DefaultTrigger
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = DefaultAITimeout
	}
	if cfg.MaxFollowUps <= 0 {
		cfg.MaxFollowUps = DefaultMaxFollowUps
	}

	e := &Engine{
		framework:   framework,
		assessment:  assessment,
		gateway:     gateway,
		fallback:    NewFallbackGenerator(),
		store:       store,
		cfg:         cfg,
		answers:     newAnswerStore(),
		aiQuestions: make(map[string]model.Question),
	}
	e.pos = e.firstPosition()
	return e, nil
}

// Context returns the identity the engine was constructed with.
func (e *Engine) Context() model.AssessmentContext {
	return e.assessment
}

// CurrentQuestion returns the question at the current position in either
// flow, or nil once the assessment is complete. Idempotent.
func (e *Engine) CurrentQuestion() *model.Question {
	switch e.pos.Mode {
	case model.NavMain:
		q, ok := e.framework.QuestionAt(e.pos.Section, e.pos.Question)
		if !ok {
			return nil
		}
		return q
	case model.NavAI:
		return e.CurrentAIQuestion()
	default:
		return nil
	}
}

// CurrentAIQuestion returns the pending injected question, or nil outside AI
// mode. Idempotent.
func (e *Engine) CurrentAIQuestion() *model.Question {
	if e.pos.Mode != model.NavAI {
		return nil
	}
	if e.pos.Cursor < 0 || e.pos.Cursor >= len(e.pos.Queue) {
		return nil
	}
	return &e.pos.Queue[e.pos.Cursor]
}

// InAIMode reports whether the engine is traversing an injected queue.
func (e *Engine) InAIMode() bool {
	return e.pos.Mode == model.NavAI
}

// Completed reports whether the main flow has been exhausted.
func (e *Engine) Completed() bool {
	return e.pos.Mode == model.NavCompleted
}

// PendingTrigger reports whether the next call to NextQuestion will consult
// the AI gateway, i.e. the current main-flow question has a recorded answer
// that satisfies the trigger predicate. Callers use this to signal that a
// potentially slow advance is about to start.
func (e *Engine) PendingTrigger() bool {
	if e.destroyed || e.pos.Mode != model.NavMain {
		return false
	}
	q, ok := e.framework.QuestionAt(e.pos.Section, e.pos.Question)
	if !ok {
		return false
	}
	a, answered := e.answers.get(q.ID)
	return answered && e.cfg.Trigger(q, a)
}

// Progress derives completion from the answer store and the injected
// question count. Never cached.
func (e *Engine) Progress() model.Progress {
	total := e.framework.QuestionCount() + e.aiInjected
	answered := e.answers.size()
	p := model.Progress{Answered: answered, Total: total}
	if total > 0 {
		p.Percent = float64(answered) / float64(total) * 100
	}
	if p.Percent > 100 {
		p.Percent = 100
	}
	return p
}

// Answers returns the recorded answers in submission order.
func (e *Engine) Answers() []model.Answer {
	return e.answers.list()
}

// AnswerQuestion validates and records an answer. The common case answers
// the question at the current position; any question seen before may be
// overwritten at any time. A validation failure leaves every part of the
// engine state untouched.
func (e *Engine) AnswerQuestion(questionID string, value model.AnswerValue) error {
	if e.destroyed {
		return ErrEngineDestroyed
	}

	q := e.lookupQuestion(questionID)
	if q == nil {
		// A restored session can hold answers to injected questions whose
		// definitions were not persisted; allow overwriting those.
		if prev, ok := e.answers.get(questionID); ok {
			if value.IsEmpty() {
				return fmt.Errorf("%w: question %q requires an answer", ErrValidation, questionID)
			}
			e.answers.put(questionID, value, prev.Source)
			return nil
		}
		return fmt.Errorf("%w: question %q is not part of this assessment", ErrValidation, questionID)
	}

	if err := q.ValidateAnswer(value); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	source := model.SourceFramework
	if q.IsAIGenerated() {
		source = model.SourceAI
	}
	e.answers.put(questionID, value, source)
	return nil
}

// NextQuestion advances the assessment. It returns true while a question
// remains and false once the assessment is complete. Gateway failures never
// surface here; the fallback generator keeps the flow moving.
func (e *Engine) NextQuestion(ctx context.Context) (bool, error) {
	if e.destroyed {
		return false, ErrEngineDestroyed
	}

	switch e.pos.Mode {
	case model.NavCompleted:
		return false, nil

	case model.NavAI:
		if e.pos.Cursor+1 < len(e.pos.Queue) {
			e.pos.Cursor++
			return true, nil
		}
		// Queue exhausted: resume the main flow at the successor of the
		// return point. The final injected answer is not itself checked for
		// triggers.
		next := e.successor(e.pos.ReturnSection, e.pos.ReturnQuestion)
		e.pos = next
		return next.Mode != model.NavCompleted, nil

	case model.NavMain:
		return e.advanceMain(ctx)
	}
	return false, fmt.Errorf("unknown navigation mode %q", e.pos.Mode)
}

func (e *Engine) advanceMain(ctx context.Context) (bool, error) {
	q, ok := e.framework.QuestionAt(e.pos.Section, e.pos.Question)
	if !ok {
		e.pos = model.CompletedPosition()
		return false, nil
	}

	if a, answered := e.answers.get(q.ID); answered && e.cfg.Trigger(q, a) {
		queue := e.followUps(ctx, q, a)
		if len(queue) > 0 {
			e.pos = e.pos.EnterAI(queue)
			e.aiInjected += len(queue)
			for _, fq := range queue {
				e.aiQuestions[fq.ID] = fq
			}
			return true, nil
		}
		// A successful empty generation means nothing to probe.
	}

	next := e.successor(e.pos.Section, e.pos.Question)
	e.pos = next
	return next.Mode != model.NavCompleted, nil
}

// followUps obtains the injected queue for a triggering answer: the gateway
// raced against the configured timeout, the deterministic fallback on any
// failure.
func (e *Engine) followUps(ctx context.Context, q *model.Question, a model.Answer) []model.Question {
	resp, err := e.askGateway(ctx, q, a)
	if err != nil {
		return e.fallback.FollowUps(q, a)
	}
	fu := resp.FollowUps
	if len(fu) > e.cfg.MaxFollowUps {
		fu = fu[:e.cfg.MaxFollowUps]
	}
	return fu
}

// askGateway runs one follow-up call under the engine's timeout. The result
// channel is buffered so a late response is absorbed and discarded instead
// of mutating anything after the timeout has already decided the outcome.
func (e *Engine) askGateway(ctx context.Context, q *model.Question, a model.Answer) (*ai.FollowUpResponse, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("no gateway configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.AITimeout)
	defer cancel()

	// The request is assembled here so the goroutine below never reads
	// engine state.
	req := &ai.FollowUpRequest{
		Context:  e.assessment,
		Question: *q,
		Answer:   a.Value,
		History:  e.answers.list(),
	}

	type outcome struct {
		resp *ai.FollowUpResponse
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		resp, err := e.gateway.GetFollowUpQuestions(callCtx, req)
		ch <- outcome{resp, err}
	}()

	timer := time.NewTimer(e.cfg.AITimeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if out.err != nil {
			return nil, out.err
		}
		if out.resp == nil {
			return nil, fmt.Errorf("gateway returned nil response")
		}
		return out.resp, nil
	case <-timer.C:
		return nil, context.DeadlineExceeded
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// lookupQuestion resolves an id against the pending queue, the framework,
// and every question injected in this session.
func (e *Engine) lookupQuestion(id string) *model.Question {
	if e.pos.Mode == model.NavAI {
		for i := range e.pos.Queue {
			if e.pos.Queue[i].ID == id {
				return &e.pos.Queue[i]
			}
		}
	}
	if q, ok := e.framework.FindQuestion(id); ok {
		return q
	}
	if q, ok := e.aiQuestions[id]; ok {
		return &q
	}
	return nil
}

// firstPosition returns the first answerable main position. Validate has
// already rejected frameworks without questions.
func (e *Engine) firstPosition() model.Position {
	for s := range e.framework.Sections {
		if len(e.framework.Sections[s].Questions) > 0 {
			return model.MainAt(s, 0)
		}
	}
	return model.CompletedPosition()
}

// successor returns the main position after (section, question), skipping
// empty sections, or Completed when none remain.
func (e *Engine) successor(section, question int) model.Position {
	s, q := section, question+1
	for s < len(e.framework.Sections) {
		if q < len(e.framework.Sections[s].Questions) {
			return model.MainAt(s, q)
		}
		s++
		q = 0
	}
	return model.CompletedPosition()
}
