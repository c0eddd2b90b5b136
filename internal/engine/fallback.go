package engine

import (
	"fmt"

	"clearcomply/internal/model"
)

// FallbackGenerator synthesizes follow-up questions and recommendation
// templates locally when the AI gateway fails or times out. Output is
// deterministic for a given input and needs no network.
type FallbackGenerator struct{}

// NewFallbackGenerator creates a fallback generator.
func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// FollowUps produces two minimal probes for a triggering answer. Every
// question carries the AI-generated flag so clients render it exactly like
// gateway output.
func (f *FallbackGenerator) FollowUps(q *model.Question, a model.Answer) []model.Question {
	reason := fmt.Sprintf("Locally generated follow-up for %q", q.ID)
	return []model.Question{
		{
			ID:         q.ID + "_fu1",
			Text:       fmt.Sprintf("You answered %q to %q. What is currently in place in this area, if anything?", a.Value.Primary(), q.Text),
			Type:       model.QuestionTypeFreeText,
			Validation: model.Validation{Required: true},
			Meta: model.QuestionMeta{
				Source:        model.SourceAI,
				ParentID:      q.ID,
				Reasoning:     reason,
				IsAIGenerated: true,
			},
		},
		{
			ID:         q.ID + "_fu2",
			Text:       "Is addressing this planned within the next 12 months?",
			Type:       model.QuestionTypeSingleChoice,
			Options:    []string{"Yes, within 3 months", "Yes, within 12 months", "Not planned"},
			Validation: model.Validation{Required: true},
			Meta: model.QuestionMeta{
				Source:        model.SourceAI,
				ParentID:      q.ID,
				Reasoning:     reason,
				IsAIGenerated: true,
			},
		},
	}
}

// Recommendations produces the deterministic template used when the gateway
// cannot deliver: one recommendation per gap ordered by severity, a generic
// three-phase plan, and baseline success metrics.
func (f *FallbackGenerator) Recommendations(gaps []model.Gap) ([]model.Recommendation, model.ImplementationPlan, []string) {
	recs := make([]model.Recommendation, 0, len(gaps))
	for _, band := range []model.GapSeverity{model.GapSeverityHigh, model.GapSeverityMedium, model.GapSeverityLow} {
		for _, gap := range gaps {
			if gap.Severity != band {
				continue
			}
			recs = append(recs, model.Recommendation{
				Title:    fmt.Sprintf("Address gap in %s", gap.SectionTitle),
				Detail:   fmt.Sprintf("Remediate the deficiency behind %s: %s", gap.QuestionID, gap.Description),
				Priority: len(recs) + 1,
				GapRefs:  []string{gap.QuestionID},
				Source:   model.RecommendationSourceFallback,
			})
		}
	}
	if len(recs) == 0 {
		recs = append(recs, model.Recommendation{
			Title:    "Maintain current controls",
			Detail:   "No gaps were identified. Re-assess after any material change to systems or processes.",
			Priority: 1,
			Source:   model.RecommendationSourceFallback,
		})
	}

	plan := model.ImplementationPlan{Phases: []model.ImplementationPhase{
		{
			Name:      "Stabilize",
			Timeframe: "0-30 days",
			Items: []string{
				"Assign an owner to each high severity gap",
				"Document the current state of every flagged area",
			},
		},
		{
			Name:      "Remediate",
			Timeframe: "30-90 days",
			Items: []string{
				"Close high and medium severity gaps",
				"Roll out missing policies and controls",
			},
		},
		{
			Name:      "Sustain",
			Timeframe: "90+ days",
			Items: []string{
				"Schedule recurring control reviews",
				"Re-run the assessment to confirm closure",
			},
		},
	}}

	metrics := []string{
		"All high severity gaps closed within 90 days",
		"Assessment score above 80 on the next run",
	}
	return recs, plan, metrics
}
