package model

import "time"

// SnapshotSchemaVersion marks the wire format of persisted engine state.
// Bump it when Snapshot or Position change shape; loads of older versions
// degrade to a fresh start.
const SnapshotSchemaVersion = 1

// NavigationMode tags which shape of Position is active
type NavigationMode string

const (
	NavMain      NavigationMode = "main"      // In the framework's main flow
	NavAI        NavigationMode = "ai"        // Traversing an injected follow-up queue
	NavCompleted NavigationMode = "completed" // Terminal: no main-flow questions remain
)

// Position is the engine's navigation state as a tagged variant: exactly one
// of the main-flow coordinates or the AI sub-flow fields is meaningful at a
// time, selected by Mode. The return point always names a main-flow position
// that existed before the sub-flow was entered.
type Position struct {
	Mode NavigationMode `json:"mode" bson:"mode"`

	// Main flow (Mode == NavMain)
	Section  int `json:"section" bson:"section"`
	Question int `json:"question" bson:"question"`

	// AI sub-flow (Mode == NavAI)
	Queue          []Question `json:"queue,omitempty" bson:"queue,omitempty"`
	Cursor         int        `json:"cursor" bson:"cursor"`
	ReturnSection  int        `json:"returnSection" bson:"returnSection"`
	ReturnQuestion int        `json:"returnQuestion" bson:"returnQuestion"`
}

// MainAt returns a main-flow position.
func MainAt(section, question int) Position {
	return Position{Mode: NavMain, Section: section, Question: question}
}

// CompletedPosition returns the terminal position.
func CompletedPosition() Position {
	return Position{Mode: NavCompleted}
}

// EnterAI returns an AI sub-flow position with the given queue and the
// current main coordinates recorded as the return point.
func (p Position) EnterAI(queue []Question) Position {
	return Position{
		Mode:           NavAI,
		Queue:          queue,
		Cursor:         0,
		ReturnSection:  p.Section,
		ReturnQuestion: p.Question,
	}
}

// Clone deep-copies the position so snapshots cannot alias engine state.
func (p Position) Clone() Position {
	out := p
	if p.Queue != nil {
		out.Queue = make([]Question, len(p.Queue))
		copy(out.Queue, p.Queue)
	}
	return out
}

// Snapshot is the durable serialization of engine state, keyed by assessment
// id in the progress store.
type Snapshot struct {
	SchemaVersion int       `json:"schemaVersion" bson:"schemaVersion"`
	AssessmentID  string    `json:"assessmentId" bson:"assessmentId"`
	FrameworkID   string    `json:"frameworkId" bson:"frameworkId"`
	Answers       []Answer  `json:"answers" bson:"answers"`
	Position      Position  `json:"position" bson:"position"`
	AIInjected    int       `json:"aiInjected" bson:"aiInjected"` // Questions added by AI queues actually taken
	SavedAt       time.Time `json:"savedAt" bson:"savedAt"`
}
