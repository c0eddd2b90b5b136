package model

import (
	"fmt"
	"regexp"
	"time"
)

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice" // One option from a fixed set
	QuestionTypeMultiChoice  QuestionType = "multi_choice"  // Any subset of a fixed set
	QuestionTypeFreeText     QuestionType = "free_text"     // Open text, optionally pattern-checked
)

// QuestionSource tags where a question came from
type QuestionSource string

const (
	SourceFramework QuestionSource = "framework"
	SourceAI        QuestionSource = "ai"
)

// Validation holds the answer rules for a question
type Validation struct {
	Required bool   `json:"required" bson:"required"`
	Pattern  string `json:"pattern,omitempty" bson:"pattern,omitempty"` // regexp for free-text values
}

// QuestionMeta carries provenance for a question. For AI-sourced questions it
// includes the gateway's reasoning (or a synthetic one from the fallback
// generator) and the IsAIGenerated flag the UI keys off.
type QuestionMeta struct {
	Source        QuestionSource `json:"source,omitempty" bson:"source,omitempty"`
	ParentID      string         `json:"parentId,omitempty" bson:"parentId,omitempty"` // Question that triggered this follow-up
	Reasoning     string         `json:"reasoning,omitempty" bson:"reasoning,omitempty"`
	IsAIGenerated bool           `json:"isAIGenerated,omitempty" bson:"isAIGenerated,omitempty"`
}

// Question is a single assessment question, either defined by a framework or
// injected at run time by the AI gateway / fallback generator.
type Question struct {
	ID         string       `json:"id" bson:"id"`
	Text       string       `json:"text" bson:"text"`
	Type       QuestionType `json:"type" bson:"type"`
	Options    []string     `json:"options,omitempty" bson:"options,omitempty"` // Choice types only
	Validation Validation   `json:"validation" bson:"validation"`
	// TriggerAnswers lists answer values that indicate a compliance
	// deficiency: they open a Gap in the results and trigger the AI
	// follow-up flow mid-assessment. Empty means the engine default applies.
	TriggerAnswers []string     `json:"triggerAnswers,omitempty" bson:"triggerAnswers,omitempty"`
	Meta           QuestionMeta `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Section groups questions under a weighted compliance domain
type Section struct {
	ID        string     `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title"`
	Weight    float64    `json:"weight" bson:"weight"` // Relative weight in the overall score
	Questions []Question `json:"questions" bson:"questions"`
}

// Framework is an immutable, versioned compliance questionnaire definition.
// Once loaded into an engine it is never mutated.
type Framework struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Version   string    `json:"version" bson:"version"`
	Sections  []Section `json:"sections" bson:"sections"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// QuestionCount returns the number of questions defined by the framework.
func (f *Framework) QuestionCount() int {
	n := 0
	for _, s := range f.Sections {
		n += len(s.Questions)
	}
	return n
}

// QuestionAt returns the question at (section, index), or false when the
// coordinates fall outside the framework.
func (f *Framework) QuestionAt(section, index int) (*Question, bool) {
	if section < 0 || section >= len(f.Sections) {
		return nil, false
	}
	s := &f.Sections[section]
	if index < 0 || index >= len(s.Questions) {
		return nil, false
	}
	return &s.Questions[index], true
}

// FindQuestion locates a framework question by id.
func (f *Framework) FindQuestion(id string) (*Question, bool) {
	for si := range f.Sections {
		for qi := range f.Sections[si].Questions {
			if f.Sections[si].Questions[qi].ID == id {
				return &f.Sections[si].Questions[qi], true
			}
		}
	}
	return nil, false
}

// Validate checks structural integrity: at least one question, unique
// question ids, choice questions with options. Used at load/seed time.
func (f *Framework) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("framework name is required")
	}
	if f.QuestionCount() == 0 {
		return fmt.Errorf("framework %q has no questions", f.Name)
	}
	seen := make(map[string]bool)
	for _, s := range f.Sections {
		if s.ID == "" {
			return fmt.Errorf("framework %q has a section without an id", f.Name)
		}
		for _, q := range s.Questions {
			if q.ID == "" {
				return fmt.Errorf("section %q has a question without an id", s.ID)
			}
			if seen[q.ID] {
				return fmt.Errorf("duplicate question id %q", q.ID)
			}
			seen[q.ID] = true
			switch q.Type {
			case QuestionTypeSingleChoice, QuestionTypeMultiChoice:
				if len(q.Options) == 0 {
					return fmt.Errorf("choice question %q has no options", q.ID)
				}
			case QuestionTypeFreeText:
				if q.Validation.Pattern != "" {
					if _, err := regexp.Compile(q.Validation.Pattern); err != nil {
						return fmt.Errorf("question %q has an invalid pattern: %w", q.ID, err)
					}
				}
			default:
				return fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
			}
		}
	}
	return nil
}

// ValidateAnswer checks a value against this question's rules. A nil error
// means the value may be recorded.
func (q *Question) ValidateAnswer(v AnswerValue) error {
	if v.IsEmpty() {
		if q.Validation.Required {
			return fmt.Errorf("question %q requires an answer", q.ID)
		}
		return nil
	}

	switch q.Type {
	case QuestionTypeSingleChoice:
		if v.Choice == "" {
			return fmt.Errorf("question %q expects a single choice", q.ID)
		}
		if !containsOption(q.Options, v.Choice) {
			return fmt.Errorf("%q is not an option for question %q", v.Choice, q.ID)
		}
	case QuestionTypeMultiChoice:
		if len(v.Choices) == 0 {
			return fmt.Errorf("question %q expects one or more choices", q.ID)
		}
		for _, c := range v.Choices {
			if !containsOption(q.Options, c) {
				return fmt.Errorf("%q is not an option for question %q", c, q.ID)
			}
		}
	case QuestionTypeFreeText:
		if v.Text == "" {
			return fmt.Errorf("question %q expects a text answer", q.ID)
		}
		if q.Validation.Pattern != "" {
			re, err := regexp.Compile(q.Validation.Pattern)
			if err != nil {
				return fmt.Errorf("question %q has an invalid pattern: %w", q.ID, err)
			}
			if !re.MatchString(v.Text) {
				return fmt.Errorf("answer to question %q does not match the expected format", q.ID)
			}
		}
	}
	return nil
}

// IsAIGenerated reports whether the question was injected by the AI flow
// (gateway or fallback generator).
func (q *Question) IsAIGenerated() bool {
	return q.Meta.IsAIGenerated || q.Meta.Source == SourceAI
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
