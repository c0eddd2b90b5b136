package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clearcomply/internal/ai"
	"clearcomply/internal/model"
)

func TestEngine_CalculateResultsRequiresCompletion(t *testing.T) {
	gw := &fakeGateway{err: errors.New("down"), recErr: errors.New("down")}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	_, err := eng.CalculateResults(ctx)
	assert.ErrorIs(t, err, ErrAssessmentIncomplete)

	// Still refused while inside an injected queue.
	require.NoError(t, eng.AnswerQuestion("q1", model.AnswerValue{Choice: "no"}))
	_, err = eng.NextQuestion(ctx)
	require.NoError(t, err)
	require.True(t, eng.InAIMode())

	_, err = eng.CalculateResults(ctx)
	assert.ErrorIs(t, err, ErrAssessmentIncomplete)
}

func TestEngine_CalculateResultsWithFallbackRecommendations(t *testing.T) {
	gw := &fakeGateway{err: errors.New("down"), recErr: errors.New("down")}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	runToCompletion(t, eng, map[string]model.AnswerValue{
		"q1": {Choice: "no"},
		"q2": {Text: "CRM and billing"},
		"q3": {Choice: "yes"},
	})
	require.True(t, eng.Completed())

	res, err := eng.CalculateResults(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "asmt_12345678", res.AssessmentID)
	assert.Equal(t, "fw_test", res.FrameworkID)

	// One gap: the non-compliant q1 answer. Both sections carry half the
	// weight, so the gap lands in the high band.
	require.Len(t, res.Gaps, 1)
	assert.Equal(t, "q1", res.Gaps[0].QuestionID)
	assert.Equal(t, "sec_access", res.Gaps[0].SectionID)
	assert.Equal(t, model.GapSeverityHigh, res.Gaps[0].Severity)
	assert.True(t, res.Gaps[0].Answered)

	require.Len(t, res.SectionScores, 2)
	assert.InDelta(t, 50.0, res.SectionScores[0].Score, 0.01)
	assert.InDelta(t, 100.0, res.SectionScores[1].Score, 0.01)
	assert.InDelta(t, 75.0, res.OverallScore, 0.01)

	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, model.RecommendationSourceFallback, res.Recommendations[0].Source)
	assert.Equal(t, 1, res.Recommendations[0].Priority)
	assert.Equal(t, []string{"q1"}, res.Recommendations[0].GapRefs)
	assert.Len(t, res.Plan.Phases, 3)
	assert.NotEmpty(t, res.SuccessMetrics)

	assert.False(t, res.Confidence.AIRecommendations)
	assert.InDelta(t, 1.0, res.Confidence.Coverage, 0.01, "every question incl. injected was answered")
}

func TestEngine_CalculateResultsWithAIRecommendations(t *testing.T) {
	gw := &fakeGateway{
		followUps: aiFollowUps("q1", 2),
		recResp: &ai.RecommendationResponse{
			Recommendations: []model.Recommendation{{
				Title:    "Enable MFA for all admin accounts",
				Detail:   "Roll out TOTP-based MFA and disable shared logins.",
				Priority: 1,
				GapRefs:  []string{"q1"},
				Source:   model.RecommendationSourceAI,
			}},
			Plan: model.ImplementationPlan{Phases: []model.ImplementationPhase{
				{Name: "Now", Timeframe: "0-30 days", Items: []string{"Enable MFA"}},
			}},
			SuccessMetrics: []string{"100% of admin logins behind MFA"},
		},
	}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	runToCompletion(t, eng, map[string]model.AnswerValue{
		"q1": {Choice: "no"},
		"q2": {Text: "CRM and billing"},
		"q3": {Choice: "yes"},
	})

	res, err := eng.CalculateResults(ctx)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "Enable MFA for all admin accounts", res.Recommendations[0].Title)
	assert.Equal(t, model.RecommendationSourceAI, res.Recommendations[0].Source)
	assert.True(t, res.Confidence.AIRecommendations)
	require.Len(t, res.Plan.Phases, 1)
}

func TestEngine_CalculateResultsFlagsMissingRequiredAnswers(t *testing.T) {
	gw := &fakeGateway{recErr: errors.New("down")}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	// Skip every question: advance without answering.
	for {
		more, err := eng.NextQuestion(ctx)
		require.NoError(t, err)
		if !more {
			break
		}
	}
	require.True(t, eng.Completed())

	res, err := eng.CalculateResults(ctx)
	require.NoError(t, err)

	require.Len(t, res.Gaps, 3, "every required question left unanswered is a gap")
	for _, gap := range res.Gaps {
		assert.False(t, gap.Answered)
	}
	assert.InDelta(t, 0.0, res.OverallScore, 0.01)
	assert.InDelta(t, 0.0, res.Confidence.Coverage, 0.01)
}

func TestEngine_CalculateResultsIsRepeatable(t *testing.T) {
	gw := &fakeGateway{err: errors.New("down"), recErr: errors.New("down")}
	eng := newTestEngine(t, gw, nil, Config{})
	ctx := context.Background()

	runToCompletion(t, eng, map[string]model.AnswerValue{
		"q1": {Choice: "no"},
		"q2": {Text: "CRM"},
		"q3": {Choice: "yes"},
	})

	first, err := eng.CalculateResults(ctx)
	require.NoError(t, err)
	second, err := eng.CalculateResults(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Gaps, second.Gaps)
	assert.Equal(t, first.SectionScores, second.SectionScores)
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}
