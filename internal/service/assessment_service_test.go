package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clearcomply/internal/engine"
	"clearcomply/internal/model"
)

type memFrameworkRepo struct {
	frameworks map[string]*model.Framework
}

func (r *memFrameworkRepo) Create(ctx context.Context, f *model.Framework) error {
	r.frameworks[f.ID] = f
	return nil
}

func (r *memFrameworkRepo) GetByID(ctx context.Context, id string) (*model.Framework, error) {
	return r.frameworks[id], nil
}

func (r *memFrameworkRepo) List(ctx context.Context) ([]*model.Framework, error) {
	out := make([]*model.Framework, 0, len(r.frameworks))
	for _, f := range r.frameworks {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memFrameworkRepo) Delete(ctx context.Context, id string) error {
	delete(r.frameworks, id)
	return nil
}

type memProfileRepo struct {
	profiles map[string]*model.BusinessProfile
}

func (r *memProfileRepo) Create(ctx context.Context, p *model.BusinessProfile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *memProfileRepo) GetByID(ctx context.Context, id string) (*model.BusinessProfile, error) {
	return r.profiles[id], nil
}

func (r *memProfileRepo) List(ctx context.Context) ([]*model.BusinessProfile, error) {
	out := make([]*model.BusinessProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProfileRepo) Update(ctx context.Context, p *model.BusinessProfile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *memProfileRepo) Delete(ctx context.Context, id string) error {
	delete(r.profiles, id)
	return nil
}

type memResultRepo struct {
	results map[string]*model.Result
	saves   int
}

func (r *memResultRepo) Save(ctx context.Context, result *model.Result) error {
	r.results[result.AssessmentID] = result
	r.saves++
	return nil
}

func (r *memResultRepo) GetByAssessmentID(ctx context.Context, assessmentID string) (*model.Result, error) {
	return r.results[assessmentID], nil
}

func (r *memResultRepo) ListByFrameworkID(ctx context.Context, frameworkID string) ([]*model.Result, error) {
	var out []*model.Result
	for _, res := range r.results {
		if res.FrameworkID == frameworkID {
			out = append(out, res)
		}
	}
	return out, nil
}

type memAssessmentCache struct {
	metas map[string]*model.AssessmentMeta
	hosts map[string][]string
}

func (c *memAssessmentCache) SetMeta(ctx context.Context, meta *model.AssessmentMeta) error {
	cp := *meta
	if _, known := c.metas[meta.ID]; !known && meta.HostID != "" {
		c.hosts[meta.HostID] = append(c.hosts[meta.HostID], meta.ID)
	}
	c.metas[meta.ID] = &cp
	return nil
}

func (c *memAssessmentCache) GetMeta(ctx context.Context, assessmentID string) (*model.AssessmentMeta, error) {
	meta, ok := c.metas[assessmentID]
	if !ok {
		return nil, nil
	}
	cp := *meta
	return &cp, nil
}

func (c *memAssessmentCache) SetStatus(ctx context.Context, assessmentID string, status model.AssessmentStatus) error {
	meta, ok := c.metas[assessmentID]
	if !ok {
		return errors.New("assessment not found")
	}
	meta.Status = status
	if status == model.AssessmentCompleted && meta.CompletedAt == nil {
		now := time.Now().UTC()
		meta.CompletedAt = &now
	}
	return nil
}

func (c *memAssessmentCache) ListByHost(ctx context.Context, hostID string) ([]*model.AssessmentMeta, error) {
	var out []*model.AssessmentMeta
	for _, id := range c.hosts[hostID] {
		if meta, ok := c.metas[id]; ok {
			cp := *meta
			out = append(out, &cp)
		}
	}
	return out, nil
}

type broadcastEvent struct {
	target  string // "host" or "subject"
	id      string
	msgType string
}

type fakeBroadcaster struct {
	events       []broadcastEvent
	disconnected []string
}

func (b *fakeBroadcaster) BroadcastToHost(assessmentID string, msgType string, payload interface{}) {
	b.events = append(b.events, broadcastEvent{target: "host", id: assessmentID, msgType: msgType})
}

func (b *fakeBroadcaster) BroadcastToSubject(assessmentID string, msgType string, payload interface{}) {
	b.events = append(b.events, broadcastEvent{target: "subject", id: assessmentID, msgType: msgType})
}

func (b *fakeBroadcaster) DisconnectAssessment(assessmentID string) {
	b.disconnected = append(b.disconnected, assessmentID)
}

func (b *fakeBroadcaster) hostEvents() []string {
	var types []string
	for _, ev := range b.events {
		if ev.target == "host" {
			types = append(types, ev.msgType)
		}
	}
	return types
}

type serviceFixtures struct {
	frameworks  *memFrameworkRepo
	profiles    *memProfileRepo
	results     *memResultRepo
	assessments *memAssessmentCache
	snapshots   *engine.MemoryStore
	broadcaster *fakeBroadcaster
}

func serviceTestFramework() *model.Framework {
	return &model.Framework{
		ID:      "fw_svc",
		Name:    "Service Test Framework",
		Version: "1.0",
		Sections: []model.Section{
			{
				ID:     "sec_access",
				Title:  "Access Control",
				Weight: 0.6,
				Questions: []model.Question{
					{
						ID:             "q1",
						Text:           "Do you enforce MFA?",
						Type:           model.QuestionTypeSingleChoice,
						Options:        []string{"Yes", "No"},
						TriggerAnswers: []string{"No"},
						Validation:     model.Validation{Required: true},
					},
					{
						ID:         "q2",
						Text:       "Describe your offboarding process.",
						Type:       model.QuestionTypeFreeText,
						Validation: model.Validation{Required: true},
					},
				},
			},
			{
				ID:     "sec_data",
				Title:  "Data Handling",
				Weight: 0.4,
				Questions: []model.Question{
					{
						ID:             "q3",
						Text:           "Is customer data encrypted at rest?",
						Type:           model.QuestionTypeSingleChoice,
						Options:        []string{"Yes", "No"},
						TriggerAnswers: []string{"No"},
						Validation:     model.Validation{Required: true},
					},
				},
			},
		},
	}
}

func newTestService() (*AssessmentService, *serviceFixtures) {
	fx := &serviceFixtures{
		frameworks:  &memFrameworkRepo{frameworks: map[string]*model.Framework{}},
		profiles:    &memProfileRepo{profiles: map[string]*model.BusinessProfile{}},
		results:     &memResultRepo{results: map[string]*model.Result{}},
		assessments: &memAssessmentCache{metas: map[string]*model.AssessmentMeta{}, hosts: map[string][]string{}},
		snapshots:   engine.NewMemoryStore(),
		broadcaster: &fakeBroadcaster{},
	}
	fx.frameworks.frameworks["fw_svc"] = serviceTestFramework()

	svc := NewAssessmentService(fx.frameworks, fx.profiles, fx.results, fx.assessments, fx.snapshots, nil, NewAuthService(), engine.Config{})
	svc.SetBroadcaster(fx.broadcaster)
	return svc, fx
}

// answer answers the current question with a non-triggering value.
func answerCurrent(t *testing.T, svc *AssessmentService, assessmentID string) {
	t.Helper()
	ctx := context.Background()
	cur, err := svc.CurrentQuestion(ctx, assessmentID)
	require.NoError(t, err)
	require.NotNil(t, cur.Question)

	value := model.AnswerValue{Text: "documented and reviewed"}
	if len(cur.Question.Options) > 0 {
		value = model.AnswerValue{Choice: cur.Question.Options[0]}
	}
	_, err = svc.SubmitAnswer(ctx, assessmentID, &model.SubmitAnswerRequest{
		QuestionID: cur.Question.ID,
		Value:      value,
	})
	require.NoError(t, err)
}

func TestAssessmentService_FullLifecycle(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)
	assert.NotEmpty(t, start.AssessmentID)
	assert.NotEmpty(t, start.Token)
	assert.False(t, start.Resumed)
	require.NotNil(t, start.FirstQuestion)
	assert.Equal(t, "q1", start.FirstQuestion.ID)

	for i := 0; i < 3; i++ {
		answerCurrent(t, svc, start.AssessmentID)
		_, err := svc.NextQuestion(ctx, start.AssessmentID)
		require.NoError(t, err)
	}

	cur, err := svc.CurrentQuestion(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.True(t, cur.Done)
	assert.Equal(t, 100.0, cur.Progress.Percent)

	meta, err := svc.GetMeta(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentCompleted, meta.Status)
	require.NotNil(t, meta.CompletedAt)

	result, err := svc.Results(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, start.AssessmentID, result.AssessmentID)
	assert.Equal(t, 100.0, result.OverallScore)
	assert.Empty(t, result.Gaps)

	events := fx.broadcaster.hostEvents()
	assert.Contains(t, events, "question_ready")
	assert.Contains(t, events, "answer_recorded")
	assert.Contains(t, events, "assessment_completed")
	assert.Contains(t, events, "results_ready")
	assert.NotContains(t, events, "ai_thinking")
}

func TestAssessmentService_StartUnknownFramework(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Start(context.Background(), "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_nope"})
	assert.ErrorIs(t, err, ErrFrameworkNotFound)
}

func TestAssessmentService_StartWithProfileBuildsMetadata(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()
	fx.profiles.profiles["prof_1"] = &model.BusinessProfile{
		ID:            "prof_1",
		Name:          "Acme Health",
		Industry:      "healthcare",
		EmployeeCount: 42,
		DataTypes:     []string{"PHI", "PII"},
	}

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{
		FrameworkID:       "fw_svc",
		BusinessProfileID: "prof_1",
		Metadata:          map[string]string{"region": "eu-west"},
	})
	require.NoError(t, err)

	meta, err := svc.GetMeta(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, "prof_1", meta.BusinessProfileID)

	_, err = svc.Start(ctx, "host_1", &model.StartAssessmentRequest{
		FrameworkID:       "fw_svc",
		BusinessProfileID: "prof_missing",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAssessmentService_TriggerBroadcastsAIThinking(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)

	// "No" on q1 triggers the AI flow; with no gateway the fallback queue
	// is injected.
	_, err = svc.SubmitAnswer(ctx, start.AssessmentID, &model.SubmitAnswerRequest{
		QuestionID: "q1",
		Value:      model.AnswerValue{Choice: "No"},
	})
	require.NoError(t, err)

	next, err := svc.NextQuestion(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.True(t, next.InAIMode)
	require.NotNil(t, next.Question)
	assert.True(t, next.Question.IsAIGenerated())

	// ai_thinking goes out before the injected question is announced.
	events := fx.broadcaster.hostEvents()
	thinkingAt := -1
	for i, ev := range events {
		if ev == "ai_thinking" {
			thinkingAt = i
			break
		}
	}
	require.NotEqual(t, -1, thinkingAt, "ai_thinking was never broadcast")
	require.Less(t, thinkingAt+1, len(events))
	assert.Equal(t, "question_ready", events[thinkingAt+1])
}

func TestAssessmentService_ValidationErrorsPassThrough(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, start.AssessmentID, &model.SubmitAnswerRequest{
		QuestionID: "q1",
		Value:      model.AnswerValue{},
	})
	assert.ErrorIs(t, err, engine.ErrValidation)

	_, err = svc.SubmitAnswer(ctx, start.AssessmentID, &model.SubmitAnswerRequest{
		QuestionID: "q_unknown",
		Value:      model.AnswerValue{Choice: "Yes"},
	})
	assert.ErrorIs(t, err, engine.ErrValidation)
}

func TestAssessmentService_ResumeAfterRestart(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)

	answerCurrent(t, svc, start.AssessmentID)
	_, err = svc.NextQuestion(ctx, start.AssessmentID)
	require.NoError(t, err)

	// A new service over the same stores plays the role of a restarted
	// process: no live sessions, only Redis state.
	restarted := NewAssessmentService(fx.frameworks, fx.profiles, fx.results, fx.assessments, fx.snapshots, nil, NewAuthService(), engine.Config{})

	resumed, err := restarted.Resume(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.True(t, resumed.Resumed)
	assert.Equal(t, 1, resumed.Progress.Answered)
	require.NotNil(t, resumed.FirstQuestion)
	assert.Equal(t, "q2", resumed.FirstQuestion.ID)
}

func TestAssessmentService_ResumeUnknownAssessment(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Resume(context.Background(), "asmt_nope")
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestAssessmentService_LazyRestoreOnAnyCall(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)
	answerCurrent(t, svc, start.AssessmentID)

	restarted := NewAssessmentService(fx.frameworks, fx.profiles, fx.results, fx.assessments, fx.snapshots, nil, NewAuthService(), engine.Config{})

	// No explicit Resume; the snapshot is picked up on first touch.
	prog, err := restarted.Progress(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, 1, prog.Answered)
}

func TestAssessmentService_DestroyMarksAbandoned(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)
	answerCurrent(t, svc, start.AssessmentID)

	require.NoError(t, svc.Destroy(ctx, start.AssessmentID))

	meta, err := svc.GetMeta(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentAbandoned, meta.Status)
	assert.Contains(t, fx.broadcaster.disconnected, start.AssessmentID)

	// The final snapshot survives Destroy; resuming reopens the session.
	resumed, err := svc.Resume(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, 1, resumed.Progress.Answered)

	meta, err = svc.GetMeta(ctx, start.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentInProgress, meta.Status)
}

func TestAssessmentService_DestroyUnknownAssessment(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Destroy(context.Background(), "asmt_nope")
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestAssessmentService_ResultsStoredOnce(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		answerCurrent(t, svc, start.AssessmentID)
		_, err := svc.NextQuestion(ctx, start.AssessmentID)
		require.NoError(t, err)
	}

	first, err := svc.Results(ctx, start.AssessmentID)
	require.NoError(t, err)
	second, err := svc.Results(ctx, start.AssessmentID)
	require.NoError(t, err)

	assert.Equal(t, 1, fx.results.saves)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestAssessmentService_ResultsByFramework(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		answerCurrent(t, svc, start.AssessmentID)
		_, err := svc.NextQuestion(ctx, start.AssessmentID)
		require.NoError(t, err)
	}
	_, err = svc.Results(ctx, start.AssessmentID)
	require.NoError(t, err)

	results, err := svc.ResultsByFramework(ctx, "fw_svc")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, start.AssessmentID, results[0].AssessmentID)

	none, err := svc.ResultsByFramework(ctx, "fw_other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAssessmentService_ResultsBeforeCompletion(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)

	_, err = svc.Results(ctx, start.AssessmentID)
	assert.ErrorIs(t, err, engine.ErrAssessmentIncomplete)
}

func TestAssessmentService_ListByHostNewestFirst(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	a, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)
	b, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)

	// Force distinct StartedAt values; two Starts inside the same clock
	// tick would make the order arbitrary.
	fx.assessments.metas[a.AssessmentID].StartedAt = time.Now().UTC().Add(-time.Minute)

	metas, err := svc.ListByHost(ctx, "host_1")
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, b.AssessmentID, metas[0].ID)
	assert.Equal(t, a.AssessmentID, metas[1].ID)

	other, err := svc.ListByHost(ctx, "host_2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAssessmentService_SaveOnDemand(t *testing.T) {
	svc, fx := newTestService()
	ctx := context.Background()

	start, err := svc.Start(ctx, "host_1", &model.StartAssessmentRequest{FrameworkID: "fw_svc"})
	require.NoError(t, err)
	answerCurrent(t, svc, start.AssessmentID)

	require.NoError(t, svc.Save(ctx, start.AssessmentID))

	snap, err := fx.snapshots.Load(ctx, start.AssessmentID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Answers, 1)
}
