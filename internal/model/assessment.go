package model

import "time"

// AssessmentStatus is the lifecycle state of an assessment session
type AssessmentStatus string

const (
	AssessmentInProgress AssessmentStatus = "in_progress"
	AssessmentCompleted  AssessmentStatus = "completed"
	AssessmentAbandoned  AssessmentStatus = "abandoned"
)

// AssessmentContext identifies one assessment run. The engine reads the
// identity fields and never mutates them; the answer store it manages lives
// inside the engine and is reachable through its accessors.
type AssessmentContext struct {
	AssessmentID      string            `json:"assessmentId" bson:"assessmentId"`
	FrameworkID       string            `json:"frameworkId" bson:"frameworkId"`
	BusinessProfileID string            `json:"businessProfileId" bson:"businessProfileId"`
	Metadata          map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// AssessmentMeta is the API-facing record of a session, cached in Redis for
// the lifetime of the assessment.
type AssessmentMeta struct {
	ID                string           `json:"id" bson:"id"`
	FrameworkID       string           `json:"frameworkId" bson:"frameworkId"`
	BusinessProfileID string           `json:"businessProfileId" bson:"businessProfileId"`
	HostID            string           `json:"hostId" bson:"hostId"`
	Status            AssessmentStatus `json:"status" bson:"status"`
	StartedAt         time.Time        `json:"startedAt" bson:"startedAt"`
	CompletedAt       *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Progress is derived state: the total grows as AI questions are injected,
// so it is computed on demand, never cached.
type Progress struct {
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// BusinessProfile describes the organization under assessment. The AI
// gateway uses it to personalize follow-ups and recommendations.
type BusinessProfile struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Industry      string    `json:"industry" bson:"industry"`
	EmployeeCount int       `json:"employeeCount" bson:"employeeCount"`
	DataTypes     []string  `json:"dataTypes,omitempty" bson:"dataTypes,omitempty"` // e.g. PII, PHI, payment data
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// StartAssessmentRequest is the request body for starting an assessment
type StartAssessmentRequest struct {
	FrameworkID       string            `json:"frameworkId"`
	BusinessProfileID string            `json:"businessProfileId"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// StartAssessmentResponse is returned when an assessment session begins
type StartAssessmentResponse struct {
	AssessmentID  string    `json:"assessmentId"`
	Token         string    `json:"token"`
	Resumed       bool      `json:"resumed"` // True when a saved session was restored
	FirstQuestion *Question `json:"firstQuestion,omitempty"`
	Progress      Progress  `json:"progress"`
}
