package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"clearcomply/internal/config"
	"clearcomply/internal/model"
)

// ErrDisabled is returned when no Gemini API key is configured.
var ErrDisabled = errors.New("gemini gateway is not configured")

// GeminiGateway implements Gateway against the Gemini generateContent API
// with per-task models.
type GeminiGateway struct {
	config *config.AIConfig
	client *http.Client
}

// NewGeminiGateway creates a gateway from the given AI configuration.
func NewGeminiGateway(cfg *config.AIConfig) *GeminiGateway {
	return &GeminiGateway{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Wire shapes the prompts instruct the model to emit.

type followUpWire struct {
	Text      string   `json:"text"`
	Type      string   `json:"type"`
	Options   []string `json:"options"`
	Reasoning string   `json:"reasoning"`
}

type followUpGeneration struct {
	FollowUps []followUpWire `json:"followUps"`
	Reasoning string         `json:"reasoning"`
}

type recommendationWire struct {
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Priority int      `json:"priority"`
	GapRefs  []string `json:"gapRefs"`
}

type phaseWire struct {
	Name      string   `json:"name"`
	Timeframe string   `json:"timeframe"`
	Items     []string `json:"items"`
}

type recommendationGeneration struct {
	Recommendations []recommendationWire `json:"recommendations"`
	Plan            []phaseWire          `json:"implementationPlan"`
	SuccessMetrics  []string             `json:"successMetrics"`
}

// GetFollowUpQuestions asks the fast model for follow-up questions probing a
// deficient answer.
func (g *GeminiGateway) GetFollowUpQuestions(ctx context.Context, req *FollowUpRequest) (*FollowUpResponse, error) {
	if !g.config.IsEnabled() {
		return nil, ErrDisabled
	}

	prompt := g.buildFollowUpPrompt(req)
	raw, err := g.callGemini(ctx, g.config.Models.FollowUp, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate follow-ups: %w", err)
	}

	var gen followUpGeneration
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return nil, fmt.Errorf("decode follow-ups: %w", err)
	}

	resp := &FollowUpResponse{Reasoning: gen.Reasoning}
	for _, fu := range gen.FollowUps {
		if strings.TrimSpace(fu.Text) == "" {
			continue
		}
		resp.FollowUps = append(resp.FollowUps, model.Question{
			ID:         fmt.Sprintf("%s_fu%d", req.Question.ID, len(resp.FollowUps)+1),
			Text:       fu.Text,
			Type:       followUpType(fu.Type, fu.Options),
			Options:    fu.Options,
			Validation: model.Validation{Required: true},
			Meta: model.QuestionMeta{
				Source:        model.SourceAI,
				ParentID:      req.Question.ID,
				Reasoning:     fu.Reasoning,
				IsAIGenerated: true,
			},
		})
	}
	return resp, nil
}

// GetPersonalizedRecommendations asks the quality model for a remediation
// plan over the identified gaps.
func (g *GeminiGateway) GetPersonalizedRecommendations(ctx context.Context, req *RecommendationRequest) (*RecommendationResponse, error) {
	if !g.config.IsEnabled() {
		return nil, ErrDisabled
	}

	prompt := g.buildRecommendationPrompt(req)
	raw, err := g.callGemini(ctx, g.config.Models.Recommend, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	var gen recommendationGeneration
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	if len(gen.Recommendations) == 0 {
		return nil, fmt.Errorf("gemini returned no recommendations")
	}

	resp := &RecommendationResponse{SuccessMetrics: gen.SuccessMetrics}
	for i, r := range gen.Recommendations {
		priority := r.Priority
		if priority <= 0 {
			priority = i + 1
		}
		resp.Recommendations = append(resp.Recommendations, model.Recommendation{
			Title:    r.Title,
			Detail:   r.Detail,
			Priority: priority,
			GapRefs:  r.GapRefs,
			Source:   model.RecommendationSourceAI,
		})
	}
	for _, p := range gen.Plan {
		resp.Plan.Phases = append(resp.Plan.Phases, model.ImplementationPhase{
			Name:      p.Name,
			Timeframe: p.Timeframe,
			Items:     p.Items,
		})
	}
	return resp, nil
}

// followUpType maps the model's declared type onto one the engine can
// validate. Choice types without options degrade to free text.
func followUpType(t string, options []string) model.QuestionType {
	switch model.QuestionType(t) {
	case model.QuestionTypeSingleChoice, model.QuestionTypeMultiChoice:
		if len(options) > 0 {
			return model.QuestionType(t)
		}
	}
	return model.QuestionTypeFreeText
}

// callGemini makes a request to the Gemini API
func (g *GeminiGateway) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", g.config.ModelEndpoint(modelName), g.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// Prompt builders

func (g *GeminiGateway) buildFollowUpPrompt(req *FollowUpRequest) string {
	businessCtx := ""
	if len(req.Context.Metadata) > 0 {
		var sb strings.Builder
		sb.WriteString("\nBusiness context:\n")
		for k, v := range req.Context.Metadata {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", k, v))
		}
		businessCtx = sb.String()
	}

	historyStr := ""
	if len(req.History) > 0 {
		var sb strings.Builder
		sb.WriteString("\nAnswers so far:\n")
		for _, ans := range req.History {
			sb.WriteString(fmt.Sprintf("- %s: %q\n", ans.QuestionID, ans.Value.Primary()))
		}
		historyStr = sb.String()
	}

	return fmt.Sprintf(`You are a compliance assessment expert. A business gave an answer that may indicate a compliance deficiency. Generate follow-up questions that pinpoint the gap. Return ONLY valid JSON:
{
  "followUps": [{
    "text": "follow-up question text",
    "type": "free_text" or "single_choice",
    "options": ["only for choice types"],
    "reasoning": "why this follow-up matters"
  }],
  "reasoning": "overall assessment of the deficiency"
}

Question: %s
Answer: %q
%s%s
Instructions:
1. Generate 1 to 3 follow-ups that narrow down the severity and scope of the deficiency.
2. Ask about what exists today, not what should exist.
3. Do NOT repeat anything already answered above.
4. If the answer needs no probing, return an empty followUps array.`,
		req.Question.Text, req.Answer.Primary(), businessCtx, historyStr)
}

func (g *GeminiGateway) buildRecommendationPrompt(req *RecommendationRequest) string {
	var gaps strings.Builder
	for _, gap := range req.Gaps {
		gaps.WriteString(fmt.Sprintf("- [%s] %s (%s)\n", gap.Severity, gap.Description, gap.QuestionID))
	}

	var answers strings.Builder
	for _, ans := range req.Answers {
		answers.WriteString(fmt.Sprintf("- %s: %q\n", ans.QuestionID, ans.Value.Primary()))
	}

	businessCtx := ""
	for k, v := range req.Context.Metadata {
		businessCtx += fmt.Sprintf("- %s: %s\n", k, v)
	}

	return fmt.Sprintf(`You are a compliance consultant. A business has completed an assessment; produce a remediation plan. Return ONLY valid JSON:
{
  "recommendations": [{"title": "...", "detail": "...", "priority": 1, "gapRefs": ["question ids this addresses"]}],
  "implementationPlan": [{"name": "phase name", "timeframe": "0-30 days", "items": ["concrete action"]}],
  "successMetrics": ["measurable outcome"]
}

Business context:
%s
Identified gaps:
%s
Answers:
%s
Instructions:
1. One recommendation per gap where possible; merge closely related gaps.
2. Priority 1 is most urgent. Order phases now, then next, then later.
3. Keep recommendations specific to this business rather than generic advice.`,
		businessCtx, gaps.String(), answers.String())
}
