package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clearcomply/internal/ai"
	"clearcomply/internal/cache"
	"clearcomply/internal/engine"
	"clearcomply/internal/model"
	"clearcomply/internal/repository"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

// session pairs a live engine with the mutex that serializes access to it.
// The engine performs no internal locking; every call below the registry
// happens while holding sess.mu.
type session struct {
	mu     sync.Mutex
	engine *engine.Engine
}

// AssessmentService owns the live assessment sessions. It is the single
// entry point for the adaptive flow: it creates engines, serializes calls
// per assessment, autosaves after mutations and restores sessions from
// their snapshots after a restart.
type AssessmentService struct {
	mu       sync.Mutex // guards sessions only; never held across I/O
	sessions map[string]*session

	frameworkRepo repository.FrameworkRepo
	profileRepo   repository.ProfileRepo
	resultRepo    repository.ResultRepo
	assessCache   cache.AssessmentCache
	snapshots     engine.ProgressStore
	gateway       ai.Gateway
	authSvc       *AuthService
	engineCfg     engine.Config
	broadcaster   Broadcaster
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	frameworkRepo repository.FrameworkRepo,
	profileRepo repository.ProfileRepo,
	resultRepo repository.ResultRepo,
	assessCache cache.AssessmentCache,
	snapshots engine.ProgressStore,
	gateway ai.Gateway,
	authSvc *AuthService,
	engineCfg engine.Config,
) *AssessmentService {
	return &AssessmentService{
		sessions:      make(map[string]*session),
		frameworkRepo: frameworkRepo,
		profileRepo:   profileRepo,
		resultRepo:    resultRepo,
		assessCache:   assessCache,
		snapshots:     snapshots,
		gateway:       gateway,
		authSvc:       authSvc,
		engineCfg:     engineCfg,
	}
}

// SetBroadcaster sets the WebSocket broadcaster (avoids import cycle)
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start creates a new assessment session for a framework and, optionally, a
// business profile whose facts personalize the AI follow-ups.
func (s *AssessmentService) Start(ctx context.Context, hostID string, req *model.StartAssessmentRequest) (*model.StartAssessmentResponse, error) {
	framework, err := s.frameworkRepo.GetByID(ctx, req.FrameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get framework: %w", err)
	}
	if framework == nil {
		return nil, ErrFrameworkNotFound
	}

	var profile *model.BusinessProfile
	if req.BusinessProfileID != "" {
		profile, err = s.profileRepo.GetByID(ctx, req.BusinessProfileID)
		if err != nil {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		if profile == nil {
			return nil, ErrProfileNotFound
		}
	}

	assessmentID := "asmt_" + uuid.New().String()[:8]
	subjectID := "subj_" + uuid.New().String()[:8]

	assessment := model.AssessmentContext{
		AssessmentID:      assessmentID,
		FrameworkID:       framework.ID,
		BusinessProfileID: req.BusinessProfileID,
		Metadata:          buildMetadata(profile, req.Metadata),
	}

	eng, err := engine.New(framework, assessment, s.gateway, s.snapshots, s.engineCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	meta := &model.AssessmentMeta{
		ID:                assessmentID,
		FrameworkID:       framework.ID,
		BusinessProfileID: req.BusinessProfileID,
		HostID:            hostID,
		Status:            model.AssessmentInProgress,
		StartedAt:         time.Now().UTC(),
	}
	if err := s.assessCache.SetMeta(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to cache assessment: %w", err)
	}

	// The first snapshot makes the session resumable from the start. Losing
	// it only costs a fresh restart, so it is not fatal.
	if err := eng.SaveProgress(ctx); err != nil {
		log.Printf("failed to save initial snapshot for %s: %v", assessmentID, err)
	}

	token, err := s.authSvc.GenerateAssessmentToken(assessmentID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.mu.Lock()
	s.sessions[assessmentID] = &session{engine: eng}
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToHost(assessmentID, "question_ready", map[string]interface{}{
			"assessmentId": assessmentID,
			"question":     eng.CurrentQuestion(),
			"inAIMode":     false,
		})
	}

	return &model.StartAssessmentResponse{
		AssessmentID:  assessmentID,
		Token:         token,
		Resumed:       false,
		FirstQuestion: eng.CurrentQuestion(),
		Progress:      eng.Progress(),
	}, nil
}

// Resume reopens an assessment after a disconnect or server restart, issuing
// a fresh subject token. The session continues from its last snapshot.
func (s *AssessmentService) Resume(ctx context.Context, assessmentID string) (*model.StartAssessmentResponse, error) {
	sess, err := s.session(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	subjectID := "subj_" + uuid.New().String()[:8]
	token, err := s.authSvc.GenerateAssessmentToken(assessmentID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return &model.StartAssessmentResponse{
		AssessmentID:  assessmentID,
		Token:         token,
		Resumed:       true,
		FirstQuestion: sess.engine.CurrentQuestion(),
		Progress:      sess.engine.Progress(),
	}, nil
}

// CurrentQuestion returns the question at the session's current position
// without advancing anything.
func (s *AssessmentService) CurrentQuestion(ctx context.Context, assessmentID string) (*model.NextQuestionResponse, error) {
	sess, err := s.session(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return &model.NextQuestionResponse{
		Done:     sess.engine.Completed(),
		InAIMode: sess.engine.InAIMode(),
		Question: sess.engine.CurrentQuestion(),
		Progress: sess.engine.Progress(),
	}, nil
}

// SubmitAnswer validates and records an answer, then autosaves.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, assessmentID string, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	sess, err := s.session(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.engine.AnswerQuestion(req.QuestionID, req.Value); err != nil {
		return nil, err
	}
	s.autosave(ctx, assessmentID, sess.engine)

	progress := sess.engine.Progress()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToHost(assessmentID, "answer_recorded", map[string]interface{}{
			"assessmentId": assessmentID,
			"questionId":   req.QuestionID,
			"progress":     progress,
		})
	}

	return &model.SubmitAnswerResponse{
		QuestionID: req.QuestionID,
		Recorded:   true,
		Progress:   progress,
	}, nil
}

// NextQuestion advances the session. When the recorded answer is about to
// trigger the AI gateway it broadcasts ai_thinking first, so clients can
// show the wait state before the slow call starts.
func (s *AssessmentService) NextQuestion(ctx context.Context, assessmentID string) (*model.NextQuestionResponse, error) {
	sess, err := s.session(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if s.broadcaster != nil && sess.engine.PendingTrigger() {
		current := sess.engine.CurrentQuestion()
		payload := map[string]interface{}{"assessmentId": assessmentID}
		if current != nil {
			payload["questionId"] = current.ID
		}
		s.broadcaster.BroadcastToHost(assessmentID, "ai_thinking", payload)
		s.broadcaster.BroadcastToSubject(assessmentID, "ai_thinking", payload)
	}

	more, err := sess.engine.NextQuestion(ctx)
	if err != nil {
		return nil, err
	}
	s.autosave(ctx, assessmentID, sess.engine)

	resp := &model.NextQuestionResponse{
		Done:     !more,
		InAIMode: sess.engine.InAIMode(),
		Question: sess.engine.CurrentQuestion(),
		Progress: sess.engine.Progress(),
	}

	if s.broadcaster != nil {
		if resp.Done {
			payload := map[string]interface{}{
				"assessmentId": assessmentID,
				"progress":     resp.Progress,
			}
			s.broadcaster.BroadcastToHost(assessmentID, "assessment_completed", payload)
			s.broadcaster.BroadcastToSubject(assessmentID, "assessment_completed", payload)
		} else {
			s.broadcaster.BroadcastToHost(assessmentID, "question_ready", map[string]interface{}{
				"assessmentId": assessmentID,
				"question":     resp.Question,
				"inAIMode":     resp.InAIMode,
			})
		}
	}

	if resp.Done {
		if err := s.assessCache.SetStatus(ctx, assessmentID, model.AssessmentCompleted); err != nil {
			log.Printf("failed to mark assessment %s completed: %v", assessmentID, err)
		}
	}

	return resp, nil
}

// Progress returns the derived completion state.
func (s *AssessmentService) Progress(ctx context.Context, assessmentID string) (*model.Progress, error) {
	sess, err := s.session(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	p := sess.engine.Progress()
	return &p, nil
}

// Save snapshots the session on demand. Unlike the autosaves, a failure here
// is surfaced; the caller asked for durability explicitly.
func (s *AssessmentService) Save(ctx context.Context, assessmentID string) error {
	sess, err := s.session(ctx, assessmentID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.SaveProgress(ctx)
}

// Results compiles and stores the final report. Once stored, the same report
// is returned on every later call.
func (s *AssessmentService) Results(ctx context.Context, assessmentID string) (*model.Result, error) {
	stored, err := s.resultRepo.GetByAssessmentID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if stored != nil {
		return stored, nil
	}

	sess, err := s.session(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.CalculateResults(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.resultRepo.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to store result: %w", err)
	}

	if s.broadcaster != nil {
		payload := map[string]interface{}{
			"assessmentId": assessmentID,
			"overallScore": result.OverallScore,
			"gapCount":     len(result.Gaps),
		}
		s.broadcaster.BroadcastToHost(assessmentID, "results_ready", payload)
		s.broadcaster.BroadcastToSubject(assessmentID, "results_ready", payload)
	}

	return result, nil
}

// Destroy ends a live session: a final snapshot is taken, the engine is
// released and its WebSocket connections are closed. The snapshot stays in
// Redis for its TTL, so an ended session can still be resumed later.
func (s *AssessmentService) Destroy(ctx context.Context, assessmentID string) error {
	s.mu.Lock()
	sess, live := s.sessions[assessmentID]
	delete(s.sessions, assessmentID)
	s.mu.Unlock()

	var destroyErr error
	completed := false
	if live {
		sess.mu.Lock()
		completed = sess.engine.Completed()
		destroyErr = sess.engine.Destroy(ctx)
		sess.mu.Unlock()
	}

	meta, err := s.assessCache.GetMeta(ctx, assessmentID)
	if err != nil {
		log.Printf("failed to get assessment %s meta: %v", assessmentID, err)
	}
	if !live && meta == nil {
		return ErrAssessmentNotFound
	}

	if meta != nil && meta.Status == model.AssessmentInProgress {
		status := model.AssessmentAbandoned
		if completed {
			status = model.AssessmentCompleted
		}
		if err := s.assessCache.SetStatus(ctx, assessmentID, status); err != nil {
			log.Printf("failed to update assessment %s status: %v", assessmentID, err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.DisconnectAssessment(assessmentID)
	}

	return destroyErr
}

// ResultsByFramework returns every stored report for a framework, for
// comparing assessments run against the same questionnaire.
func (s *AssessmentService) ResultsByFramework(ctx context.Context, frameworkID string) ([]*model.Result, error) {
	results, err := s.resultRepo.ListByFrameworkID(ctx, frameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// GetMeta returns the cached lifecycle record for an assessment.
func (s *AssessmentService) GetMeta(ctx context.Context, assessmentID string) (*model.AssessmentMeta, error) {
	meta, err := s.assessCache.GetMeta(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrAssessmentNotFound
	}
	return meta, nil
}

// ListByHost returns the assessments a host has started, newest first. The
// cache's host index is an unordered set, so ordering happens here.
func (s *AssessmentService) ListByHost(ctx context.Context, hostID string) ([]*model.AssessmentMeta, error) {
	metas, err := s.assessCache.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].StartedAt.After(metas[j].StartedAt)
	})
	return metas, nil
}

// session returns the live session for an assessment, lazily restoring it
// from its snapshot when the registry has no entry (server restart, expired
// idle session). The restore happens outside the registry lock; when two
// requests race, the loser's engine is discarded before anyone uses it.
func (s *AssessmentService) session(ctx context.Context, assessmentID string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[assessmentID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	restored, err := s.restore(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.sessions[assessmentID]; ok {
		return current, nil
	}
	s.sessions[assessmentID] = restored
	return restored, nil
}

// restore rebuilds an engine from the cached meta and the Redis snapshot. A
// missing or unusable snapshot starts the engine fresh rather than failing;
// the answers are gone either way and a fresh start is the recoverable path.
func (s *AssessmentService) restore(ctx context.Context, assessmentID string) (*session, error) {
	meta, err := s.assessCache.GetMeta(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment meta: %w", err)
	}
	if meta == nil {
		return nil, ErrAssessmentNotFound
	}

	framework, err := s.frameworkRepo.GetByID(ctx, meta.FrameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get framework: %w", err)
	}
	if framework == nil {
		return nil, fmt.Errorf("framework %s for assessment %s no longer exists", meta.FrameworkID, assessmentID)
	}

	var profile *model.BusinessProfile
	if meta.BusinessProfileID != "" {
		profile, err = s.profileRepo.GetByID(ctx, meta.BusinessProfileID)
		if err != nil {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
	}

	assessment := model.AssessmentContext{
		AssessmentID:      assessmentID,
		FrameworkID:       meta.FrameworkID,
		BusinessProfileID: meta.BusinessProfileID,
		Metadata:          buildMetadata(profile, nil),
	}

	eng, err := engine.New(framework, assessment, s.gateway, s.snapshots, s.engineCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	if _, err := eng.LoadProgress(ctx); err != nil {
		log.Printf("starting assessment %s fresh, snapshot unusable: %v", assessmentID, err)
	}

	if meta.Status == model.AssessmentAbandoned {
		if err := s.assessCache.SetStatus(ctx, assessmentID, model.AssessmentInProgress); err != nil {
			log.Printf("failed to reopen assessment %s: %v", assessmentID, err)
		}
	}

	return &session{engine: eng}, nil
}

// autosave persists a snapshot after a mutation. Failures are logged and the
// request continues; the next mutation or explicit save retries.
func (s *AssessmentService) autosave(ctx context.Context, assessmentID string, eng *engine.Engine) {
	if err := eng.SaveProgress(ctx); err != nil {
		log.Printf("failed to autosave assessment %s: %v", assessmentID, err)
	}
}

// buildMetadata folds business profile facts into the free-form metadata the
// AI gateway sees. Request-level entries win over profile-derived ones.
func buildMetadata(profile *model.BusinessProfile, extra map[string]string) map[string]string {
	md := make(map[string]string)
	if profile != nil {
		md["businessName"] = profile.Name
		md["industry"] = profile.Industry
		md["employeeCount"] = fmt.Sprintf("%d", profile.EmployeeCount)
		if len(profile.DataTypes) > 0 {
			md["dataTypes"] = strings.Join(profile.DataTypes, ", ")
		}
	}
	for k, v := range extra {
		md[k] = v
	}
	if len(md) == 0 {
		return nil
	}
	return md
}
