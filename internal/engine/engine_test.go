package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clearcomply/internal/ai"
	"clearcomply/internal/model"
)

// fakeGateway is an injectable ai.Gateway for driving the engine through
// success, failure, and timeout paths.
type fakeGateway struct {
	followUps []model.Question
	reasoning string
	err       error
	delay     time.Duration

	recResp *ai.RecommendationResponse
	recErr  error

	calls int
}

func (f *fakeGateway) GetFollowUpQuestions(ctx context.Context, req *ai.FollowUpRequest) (*ai.FollowUpResponse, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ai.FollowUpResponse{FollowUps: f.followUps, Reasoning: f.reasoning}, nil
}

func (f *fakeGateway) GetPersonalizedRecommendations(ctx context.Context, req *ai.RecommendationRequest) (*ai.RecommendationResponse, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.recErr != nil {
		return nil, f.recErr
	}
	if f.recResp == nil {
		return nil, errors.New("no recommendations configured")
	}
	return f.recResp, nil
}

// lateGateway ignores context cancellation: it sleeps out its full delay and
// then reports success, like a hung upstream call that eventually returns.
// delivered closes once the losing response has been handed back.
type lateGateway struct {
	followUps []model.Question
	delay     time.Duration
	delivered chan struct{}
}

func (g *lateGateway) GetFollowUpQuestions(ctx context.Context, req *ai.FollowUpRequest) (*ai.FollowUpResponse, error) {
	time.Sleep(g.delay)
	defer close(g.delivered)
	return &ai.FollowUpResponse{FollowUps: g.followUps, Reasoning: "late but successful"}, nil
}

func (g *lateGateway) GetPersonalizedRecommendations(ctx context.Context, req *ai.RecommendationRequest) (*ai.RecommendationResponse, error) {
	return nil, errors.New("not used")
}

func testFramework() *model.Framework {
	return &model.Framework{
		ID:      "fw_test",
		Name:    "Test Framework",
		Version: "1.0",
		Sections: []model.Section{
			{
				ID:     "sec_access",
				Title:  "Access Control",
				Weight: 0.5,
				Questions: []model.Question{
					{
						ID:             "q1",
						Text:           "Do you enforce MFA for all admin accounts?",
						Type:           model.QuestionTypeSingleChoice,
						Options:        []string{"yes", "no"},
						Validation:     model.Validation{Required: true},
						TriggerAnswers: []string{"no"},
					},
					{
						ID:         "q2",
						Text:       "Which systems hold customer data?",
						Type:       model.QuestionTypeFreeText,
						Validation: model.Validation{Required: true},
					},
				},
			},
			{
				ID:     "sec_data",
				Title:  "Data Protection",
				Weight: 0.5,
				Questions: []model.Question{
					{
						ID:             "q3",
						Text:           "Is customer data encrypted at rest?",
						Type:           model.QuestionTypeSingleChoice,
						Options:        []string{"yes", "no"},
						Validation:     model.Validation{Required: true},
						TriggerAnswers: []string{"no"},
					},
				},
			},
		},
	}
}

func testContext() model.AssessmentContext {
	return model.AssessmentContext{
		AssessmentID:      "asmt_12345678",
		FrameworkID:       "fw_test",
		BusinessProfileID: "prof_12345678",
		Metadata:          map[string]string{"industry": "fintech"},
	}
}

func aiFollowUps(parentID string, n int) []model.Question {
	qs := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, model.Question{
			ID:         fmt.Sprintf("%s_fu%d", parentID, i),
			Text:       fmt.Sprintf("Follow-up %d for %s", i, parentID),
			Type:       model.QuestionTypeFreeText,
			Validation: model.Validation{Required: true},
			Meta: model.QuestionMeta{
				Source:        model.SourceAI,
				ParentID:      parentID,
				IsAIGenerated: true,
			},
		})
	}
	return qs
}

func newTestEngine(t *testing.T, gw ai.Gateway, store ProgressStore, cfg Config) *Engine {
	t.Helper()
	eng, err := New(testFramework(), testContext(), gw, store, cfg)
	require.NoError(t, err)
	return eng
}

// runToCompletion answers every presented question and advances until the
// main flow is exhausted. Questions absent from the answers map get a
// type-appropriate default.
func runToCompletion(t *testing.T, eng *Engine, answers map[string]model.AnswerValue) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		q := eng.CurrentQuestion()
		if q == nil {
			return
		}
		v, ok := answers[q.ID]
		if !ok {
			if len(q.Options) > 0 {
				v = model.AnswerValue{Choice: q.Options[0]}
			} else {
				v = model.AnswerValue{Text: "covered by our current policy"}
			}
		}
		require.NoError(t, eng.AnswerQuestion(q.ID, v))
		more, err := eng.NextQuestion(ctx)
		require.NoError(t, err)
		if !more {
			return
		}
	}
	t.Fatal("assessment did not complete within 50 steps")
}

func TestEngine_MainFlowWithoutTriggers(t *testing.T) {
	gw := &fakeGateway{}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	q := eng.CurrentQuestion()
	require.NotNil(t, q)
	assert.Equal(t, "q1", q.ID)
	assert.False(t, eng.InAIMode())

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "yes"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	assert.Equal(t, "q2", eng.CurrentQuestion().ID)

	require.NoError(t, eng.AnswerQuestion("q2", model.AnswerValue{Text: "CRM and billing"}))
	more, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	assert.Equal(t, "q3", eng.CurrentQuestion().ID)

	require.NoError(t, eng.AnswerQuestion("q3", model.AnswerValue{Choice: "yes"}))
	more, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	assert.False(t, more)
	assert.True(t, eng.Completed())
	assert.Nil(t, eng.CurrentQuestion())
	assert.Zero(t, gw.calls, "no trigger should mean no gateway calls")
}

func TestEngine_TriggerEntersAndExitsAIMode(t *testing.T) {
	gw := &fakeGateway{followUps: aiFollowUps("q1", 2)}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)

	require.True(t, eng.InAIMode())
	cur := eng.CurrentAIQuestion()
	require.NotNil(t, cur)
	assert.Equal(t, "q1_fu1", cur.ID)
	assert.Equal(t, cur, eng.CurrentQuestion(), "both reads agree in AI mode")
	assert.Equal(t, 1, gw.calls)

	// Second injected question.
	require.NoError(t, eng.AnswerQuestion("q1_fu1", model.AnswerValue{Text: "shared admin account"}))
	more, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	require.True(t, eng.InAIMode())
	assert.Equal(t, "q1_fu2", eng.CurrentAIQuestion().ID)

	// Exhausting the queue resumes the main flow after the trigger point,
	// whatever the final injected answer was.
	require.NoError(t, eng.AnswerQuestion("q1_fu2", model.AnswerValue{Text: "no"}))
	more, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	assert.False(t, eng.InAIMode())
	assert.Nil(t, eng.CurrentAIQuestion())
	assert.Equal(t, "q2", eng.CurrentQuestion().ID)
	assert.Equal(t, 1, gw.calls, "queue exhaustion must not re-consult the gateway")

	p := eng.Progress()
	assert.Equal(t, 3, p.Answered)
	assert.Equal(t, 5, p.Total, "three framework questions plus two injected")
	assert.InDelta(t, 60.0, p.Percent, 0.01)
}

func TestEngine_GatewayErrorFallsBack(t *testing.T) {
	gw := &fakeGateway{err: errors.New("quota exceeded")}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err, "gateway failures must not surface")
	require.True(t, more)

	require.True(t, eng.InAIMode())
	cur := eng.CurrentAIQuestion()
	require.NotNil(t, cur)
	assert.True(t, cur.IsAIGenerated())
	assert.Equal(t, "q1", cur.Meta.ParentID)
	assert.NotEmpty(t, cur.Meta.Reasoning)
}

func TestEngine_GatewayTimeoutFallsBack(t *testing.T) {
	gw := &fakeGateway{
		followUps: aiFollowUps("q1", 2),
		delay:     500 * time.Millisecond,
	}
	eng := newTestEngine(t, gw, nil, Config{AITimeout: 30 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))

	start := time.Now()
	more, err := eng.NextQuestion(ctx)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.True(t, more)
	assert.Less(t, elapsed, 300*time.Millisecond, "advance must be bounded by the configured timeout")

	require.True(t, eng.InAIMode())
	cur := eng.CurrentAIQuestion()
	require.NotNil(t, cur)
	assert.True(t, cur.IsAIGenerated())
	assert.Equal(t, "q1_fu1", cur.ID, "fallback ids derive from the parent")
}

func TestEngine_LateGatewayResponseDiscarded(t *testing.T) {
	gw := &lateGateway{
		followUps: aiFollowUps("q1_late", 2),
		delay:     200 * time.Millisecond,
		delivered: make(chan struct{}),
	}
	eng := newTestEngine(t, gw, nil, Config{AITimeout: 30 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)

	// The timer won: the fallback queue is active.
	require.True(t, eng.InAIMode())
	require.NotNil(t, eng.CurrentAIQuestion())
	assert.Equal(t, "q1_fu1", eng.CurrentAIQuestion().ID)
	answersBefore := eng.Answers()
	progressBefore := eng.Progress()

	// Let the losing response land, then confirm nothing moved.
	<-gw.delivered
	time.Sleep(20 * time.Millisecond)

	assert.True(t, eng.InAIMode())
	assert.Equal(t, "q1_fu1", eng.CurrentAIQuestion().ID)
	assert.Equal(t, answersBefore, eng.Answers())
	assert.Equal(t, progressBefore, eng.Progress())

	// Advancing still walks the fallback queue, not the late one.
	require.NoError(t, eng.AnswerQuestion("q1_fu1", model.AnswerValue{Text: "nothing in place today"}))
	more, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	require.True(t, eng.InAIMode())
	assert.Equal(t, "q1_fu2", eng.CurrentAIQuestion().ID)
}

func TestEngine_EmptyGatewayResponseAdvances(t *testing.T) {
	gw := &fakeGateway{followUps: nil}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)

	assert.False(t, eng.InAIMode(), "an empty generation means nothing to probe")
	assert.Equal(t, "q2", eng.CurrentQuestion().ID)
	assert.Equal(t, 1, gw.calls)
}

func TestEngine_NilGatewayUsesFallback(t *testing.T) {
	eng := newTestEngine(t, nil, nil, Config{})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	assert.True(t, eng.InAIMode())
}

func TestEngine_MaxFollowUpsCapsQueue(t *testing.T) {
	gw := &fakeGateway{followUps: aiFollowUps("q1", 5)}
	eng := newTestEngine(t, gw, nil, Config{MaxFollowUps: 2})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)

	assert.Equal(t, 5, eng.Progress().Total, "three framework questions plus the capped two")
}

func TestEngine_DefaultTriggerFiresOnNo(t *testing.T) {
	gw := &fakeGateway{followUps: aiFollowUps("q2", 1)}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "yes"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)

	// q2 declares no trigger answers, so a literal "no" uses the default.
	require.NoError(t, eng.AnswerQuestion("q2", model.AnswerValue{Text: "no"}))
	more, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	assert.True(t, eng.InAIMode())
}

func TestEngine_CustomTriggerPredicate(t *testing.T) {
	gw := &fakeGateway{followUps: aiFollowUps("q1", 1)}
	never := func(q *model.Question, a model.Answer) bool { return false }
	eng := newTestEngine(t, gw, nil, Config{Trigger: never})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	more, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, more)
	assert.False(t, eng.InAIMode())
	assert.Zero(t, gw.calls)
}

func TestEngine_CurrentQuestionIdempotent(t *testing.T) {
	eng := newTestEngine(t, &fakeGateway{}, nil, Config{})

	for i := 0; i < 5; i++ {
		q := eng.CurrentQuestion()
		require.NotNil(t, q)
		assert.Equal(t, "q1", q.ID)
	}
	assert.Empty(t, eng.Answers())
	assert.Equal(t, 0, eng.Progress().Answered)
}

func TestEngine_ValidationRejectsWithoutMutation(t *testing.T) {
	eng := newTestEngine(t, &fakeGateway{}, nil, Config{})

	err := eng.AnswerQuestion("q1", model.AnswerValue{Choice: "maybe"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	err = eng.AnswerQuestion("q1", model.AnswerValue{})
	require.Error(t, err, "q1 is required")
	assert.ErrorIs(t, err, ErrValidation)

	err = eng.AnswerQuestion("q99", model.AnswerValue{Text: "anything"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, eng.Answers())
	assert.Equal(t, "q1", eng.CurrentQuestion().ID)
	assert.False(t, eng.InAIMode())
}

func TestEngine_AnswerOverwriteKeepsOrder(t *testing.T) {
	eng := newTestEngine(t, &fakeGateway{}, nil, Config{})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "yes"}))
	_, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.NoError(t, eng.AnswerQuestion("q2", model.AnswerValue{Text: "billing only"}))

	// Overwrite q1 after moving on.
	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))

	answers := eng.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, "q1", answers[0].QuestionID)
	assert.Equal(t, "no", answers[0].Value.Choice)
	assert.Equal(t, "q2", answers[1].QuestionID)
	assert.Equal(t, 2, eng.Progress().Answered)
}

func TestEngine_OverwriteInjectedAnswerAfterExit(t *testing.T) {
	gw := &fakeGateway{followUps: aiFollowUps("q1", 1)}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	_, err := eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.NoError(t, eng.AnswerQuestion("q1_fu1", model.AnswerValue{Text: "first pass"}))
	_, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.False(t, eng.InAIMode())

	// The injected question's queue is gone, but its answer stays writable.
	require.NoError(t, eng.AnswerQuestion("q1_fu1", model.AnswerValue{Text: "second pass"}))

	answers := eng.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, "second pass", answers[1].Value.Text)
	assert.Equal(t, model.SourceAI, answers[1].Source)
}

func TestEngine_ProgressNeverCached(t *testing.T) {
	eng := newTestEngine(t, &fakeGateway{}, nil, Config{})

	assert.Equal(t, model.Progress{Answered: 0, Total: 3, Percent: 0}, eng.Progress())

	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "yes"}))
	p := eng.Progress()
	assert.Equal(t, 1, p.Answered)
	assert.Equal(t, 3, p.Total)
	assert.InDelta(t, 33.33, p.Percent, 0.01)
}
