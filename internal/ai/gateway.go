package ai

import (
	"context"

	"clearcomply/internal/model"
)

// FollowUpRequest carries one deficient answer plus enough assessment context
// for the model to generate targeted follow-up questions.
type FollowUpRequest struct {
	Context  model.AssessmentContext
	Question model.Question    // the question whose answer triggered the probe
	Answer   model.AnswerValue // the triggering answer
	History  []model.Answer    // answers recorded so far, in submission order
}

// FollowUpResponse is the gateway's follow-up generation output. An empty
// FollowUps slice is a valid outcome: the model judged the answer needs no
// probing.
type FollowUpResponse struct {
	FollowUps []model.Question
	Reasoning string
}

// RecommendationRequest carries a completed assessment for remediation
// planning.
type RecommendationRequest struct {
	Context model.AssessmentContext
	Answers []model.Answer
	Gaps    []model.Gap
}

// RecommendationResponse is the gateway's remediation output.
type RecommendationResponse struct {
	Recommendations []model.Recommendation
	Plan            model.ImplementationPlan
	SuccessMetrics  []string
}

// Gateway generates adaptive assessment content. Implementations report
// failures as errors and never degrade to canned output themselves; fallback
// behavior belongs to the caller.
type Gateway interface {
	GetFollowUpQuestions(ctx context.Context, req *FollowUpRequest) (*FollowUpResponse, error)
	GetPersonalizedRecommendations(ctx context.Context, req *RecommendationRequest) (*RecommendationResponse, error)
}
