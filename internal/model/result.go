package model

import "time"

// GapSeverity ranks how badly a deficiency needs attention
type GapSeverity string

const (
	GapSeverityLow    GapSeverity = "low"
	GapSeverityMedium GapSeverity = "medium"
	GapSeverityHigh   GapSeverity = "high"
)

// Gap is a deterministic, rule-derived compliance deficiency: a required
// question left unanswered, or an answer the framework flags as
// non-compliant.
type Gap struct {
	QuestionID   string      `json:"questionId" bson:"questionId"`
	SectionID    string      `json:"sectionId" bson:"sectionId"`
	SectionTitle string      `json:"sectionTitle" bson:"sectionTitle"`
	Description  string      `json:"description" bson:"description"`
	Severity     GapSeverity `json:"severity" bson:"severity"`
	Answered     bool        `json:"answered" bson:"answered"` // False when the gap is a missing required answer
}

// RecommendationSource tags whether a recommendation came from the AI
// gateway or the local fallback template.
type RecommendationSource string

const (
	RecommendationSourceAI       RecommendationSource = "ai"
	RecommendationSourceFallback RecommendationSource = "fallback"
)

// Recommendation is a remediation suggestion tied to one or more gaps.
type Recommendation struct {
	Title    string               `json:"title" bson:"title"`
	Detail   string               `json:"detail" bson:"detail"`
	Priority int                  `json:"priority" bson:"priority"` // 1 is most urgent
	GapRefs  []string             `json:"gapRefs,omitempty" bson:"gapRefs,omitempty"`
	Source   RecommendationSource `json:"source" bson:"source"`
}

// ImplementationPhase is one stage of the remediation plan
type ImplementationPhase struct {
	Name      string   `json:"name" bson:"name"`
	Timeframe string   `json:"timeframe" bson:"timeframe"` // e.g. "0-30 days"
	Items     []string `json:"items" bson:"items"`
}

// ImplementationPlan sequences remediation work
type ImplementationPlan struct {
	Phases []ImplementationPhase `json:"phases" bson:"phases"`
}

// SectionScore is the weighted compliance score for one framework section
type SectionScore struct {
	SectionID string  `json:"sectionId" bson:"sectionId"`
	Title     string  `json:"title" bson:"title"`
	Score     float64 `json:"score" bson:"score"` // 0-100
	Answered  int     `json:"answered" bson:"answered"`
	Total     int     `json:"total" bson:"total"`
}

// Confidence describes how much to trust the result: how much of the
// questionnaire was covered and whether the recommendations are AI-derived
// or the deterministic fallback.
type Confidence struct {
	Coverage          float64   `json:"coverage" bson:"coverage"` // 0-1, answered / total incl. injected
	AIRecommendations bool      `json:"aiRecommendations" bson:"aiRecommendations"`
	GeneratedAt       time.Time `json:"generatedAt" bson:"generatedAt"`
}

// Result is the final output of a completed assessment.
type Result struct {
	AssessmentID    string             `json:"assessmentId" bson:"assessmentId"`
	FrameworkID     string             `json:"frameworkId" bson:"frameworkId"`
	Gaps            []Gap              `json:"gaps" bson:"gaps"`
	Recommendations []Recommendation   `json:"recommendations" bson:"recommendations"`
	Plan            ImplementationPlan `json:"implementationPlan" bson:"implementationPlan"`
	SuccessMetrics  []string           `json:"successMetrics,omitempty" bson:"successMetrics,omitempty"`
	SectionScores   []SectionScore     `json:"sectionScores" bson:"sectionScores"`
	OverallScore    float64            `json:"overallScore" bson:"overallScore"` // 0-100
	Confidence      Confidence         `json:"confidence" bson:"confidence"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}
