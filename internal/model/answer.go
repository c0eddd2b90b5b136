package model

import (
	"strings"
	"time"
)

// AnswerValue carries a subject's response in the shape its question expects.
type AnswerValue struct {
	Choice  string   `json:"choice,omitempty" bson:"choice,omitempty"`   // single-choice
	Choices []string `json:"choices,omitempty" bson:"choices,omitempty"` // multi-choice
	Text    string   `json:"text,omitempty" bson:"text,omitempty"`       // free-text
}

// IsEmpty reports whether no response was given in any shape.
func (v AnswerValue) IsEmpty() bool {
	return v.Choice == "" && len(v.Choices) == 0 && v.Text == ""
}

// Primary returns the value used for trigger and gap matching: the selected
// choice for choice questions, otherwise the text.
func (v AnswerValue) Primary() string {
	if v.Choice != "" {
		return v.Choice
	}
	return v.Text
}

// Matches reports whether any of the recorded values equals one of the given
// candidates (case-insensitive). Multi-choice answers match on any selection.
func (v AnswerValue) Matches(candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(v.Choice, c) || strings.EqualFold(v.Text, c) {
			return true
		}
		for _, sel := range v.Choices {
			if strings.EqualFold(sel, c) {
				return true
			}
		}
	}
	return false
}

// Answer is one recorded response. There is exactly one Answer per question
// id in a session; later writes overwrite in place.
type Answer struct {
	QuestionID string         `json:"questionId" bson:"questionId"`
	Value      AnswerValue    `json:"value" bson:"value"`
	Source     QuestionSource `json:"source" bson:"source"`
	AnsweredAt time.Time      `json:"answeredAt" bson:"answeredAt"`
}

// SubmitAnswerRequest is the request body for answering the active question
type SubmitAnswerRequest struct {
	QuestionID string      `json:"questionId"`
	Value      AnswerValue `json:"value"`
}

// SubmitAnswerResponse acknowledges a recorded answer
type SubmitAnswerResponse struct {
	QuestionID string   `json:"questionId"`
	Recorded   bool     `json:"recorded"`
	Progress   Progress `json:"progress"`
}

// NextQuestionResponse is returned after advancing the assessment
type NextQuestionResponse struct {
	Done     bool      `json:"done"`
	InAIMode bool      `json:"inAIMode"`
	Question *Question `json:"question,omitempty"`
	Progress Progress  `json:"progress"`
}
