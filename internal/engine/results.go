package engine

import (
	"context"
	"fmt"
	"time"

	"clearcomply/internal/ai"
	"clearcomply/internal/model"
)

// CalculateResults compiles gaps, scores, and recommendations for a
// finished assessment. It refuses with ErrAssessmentIncomplete while main
// flow questions remain. Gaps and scores are fully deterministic; the
// recommendation set comes from the gateway under the engine's timeout, or
// from the deterministic fallback template when the gateway cannot deliver.
func (e *Engine) CalculateResults(ctx context.Context) (*model.Result, error) {
	if e.pos.Mode != model.NavCompleted {
		return nil, ErrAssessmentIncomplete
	}

	gaps := e.compileGaps()
	scores, overall := e.compileScores()
	now := timeNow().UTC()

	res := &model.Result{
		AssessmentID:  e.assessment.AssessmentID,
		FrameworkID:   e.framework.ID,
		Gaps:          gaps,
		SectionScores: scores,
		OverallScore:  overall,
		CreatedAt:     now,
	}

	recs, plan, metrics, fromAI := e.recommendations(ctx, gaps)
	res.Recommendations = recs
	res.Plan = plan
	res.SuccessMetrics = metrics

	total := e.framework.QuestionCount() + e.aiInjected
	coverage := 0.0
	if total > 0 {
		coverage = float64(e.answers.size()) / float64(total)
		if coverage > 1 {
			coverage = 1
		}
	}
	res.Confidence = model.Confidence{
		Coverage:          coverage,
		AIRecommendations: fromAI,
		GeneratedAt:       now,
	}
	return res, nil
}

// compileGaps walks the framework in order and opens a gap for every
// required question left unanswered and every recorded answer the trigger
// predicate flags as deficient. Injected questions never open gaps on their
// own; they exist to qualify gaps already opened.
func (e *Engine) compileGaps() []model.Gap {
	var gaps []model.Gap
	for si := range e.framework.Sections {
		sec := &e.framework.Sections[si]
		sev := e.sectionSeverity(sec)
		for qi := range sec.Questions {
			q := &sec.Questions[qi]
			a, answered := e.answers.get(q.ID)
			switch {
			case !answered && q.Validation.Required:
				gaps = append(gaps, model.Gap{
					QuestionID:   q.ID,
					SectionID:    sec.ID,
					SectionTitle: sec.Title,
					Description:  fmt.Sprintf("%q was not answered", q.Text),
					Severity:     sev,
					Answered:     false,
				})
			case answered && e.cfg.Trigger(q, a):
				gaps = append(gaps, model.Gap{
					QuestionID:   q.ID,
					SectionID:    sec.ID,
					SectionTitle: sec.Title,
					Description:  fmt.Sprintf("Answered %q to %q", a.Value.Primary(), q.Text),
					Severity:     sev,
					Answered:     true,
				})
			}
		}
	}
	return gaps
}

// sectionSeverity maps a section's share of the total framework weight onto
// a severity band.
func (e *Engine) sectionSeverity(sec *model.Section) model.GapSeverity {
	var sum float64
	for _, s := range e.framework.Sections {
		sum += s.Weight
	}
	if sum <= 0 {
		return model.GapSeverityMedium
	}
	switch share := sec.Weight / sum; {
	case share >= 0.25:
		return model.GapSeverityHigh
	case share >= 0.10:
		return model.GapSeverityMedium
	default:
		return model.GapSeverityLow
	}
}

// compileScores rolls per-question compliance into weighted section scores
// and an overall 0-100 score. Unanswered questions score as non-compliant.
func (e *Engine) compileScores() ([]model.SectionScore, float64) {
	var (
		scores    []model.SectionScore
		weightSum float64
		weighted  float64
	)
	for si := range e.framework.Sections {
		sec := &e.framework.Sections[si]
		if len(sec.Questions) == 0 {
			continue
		}
		var compliant, answered int
		for qi := range sec.Questions {
			q := &sec.Questions[qi]
			a, ok := e.answers.get(q.ID)
			if !ok {
				continue
			}
			answered++
			if !e.cfg.Trigger(q, a) {
				compliant++
			}
		}
		score := float64(compliant) / float64(len(sec.Questions)) * 100
		scores = append(scores, model.SectionScore{
			SectionID: sec.ID,
			Title:     sec.Title,
			Score:     score,
			Answered:  answered,
			Total:     len(sec.Questions),
		})
		w := sec.Weight
		if w <= 0 {
			w = 1
		}
		weightSum += w
		weighted += score * w
	}
	overall := 0.0
	if weightSum > 0 {
		overall = weighted / weightSum
	}
	return scores, overall
}

// recommendations obtains the AI recommendation set under the same timeout
// discipline as follow-up generation, degrading to the template when the
// gateway cannot deliver. The boolean reports whether the result is
// AI-derived.
func (e *Engine) recommendations(ctx context.Context, gaps []model.Gap) ([]model.Recommendation, model.ImplementationPlan, []string, bool) {
	resp, err := e.askRecommendations(ctx, gaps)
	if err != nil || len(resp.Recommendations) == 0 {
		recs, plan, metrics := e.fallback.Recommendations(gaps)
		return recs, plan, metrics, false
	}
	return resp.Recommendations, resp.Plan, resp.SuccessMetrics, true
}

// askRecommendations mirrors askGateway for the recommendations call.
func (e *Engine) askRecommendations(ctx context.Context, gaps []model.Gap) (*ai.RecommendationResponse, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("no gateway configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.AITimeout)
	defer cancel()

	req := &ai.RecommendationRequest{
		Context: e.assessment,
		Answers: e.answers.list(),
		Gaps:    gaps,
	}

	type outcome struct {
		resp *ai.RecommendationResponse
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		resp, err := e.gateway.GetPersonalizedRecommendations(callCtx, req)
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
