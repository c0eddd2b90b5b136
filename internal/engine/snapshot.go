package engine

import (
	"context"
	"fmt"

	"clearcomply/internal/model"
)

// ProgressStore persists engine snapshots keyed by assessment id.
// Load returns (nil, nil) when no snapshot exists for the id.
type ProgressStore interface {
	Save(ctx context.Context, snap *model.Snapshot) error
	Load(ctx context.Context, assessmentID string) (*model.Snapshot, error)
}

// Snapshot returns a deep copy of the engine's durable state.
func (e *Engine) Snapshot() *model.Snapshot {
	return &model.Snapshot{
		SchemaVersion: model.SnapshotSchemaVersion,
		AssessmentID:  e.assessment.AssessmentID,
		FrameworkID:   e.framework.ID,
		Answers:       e.answers.list(),
		Position:      e.pos.Clone(),
		AIInjected:    e.aiInjected,
		SavedAt:       timeNow().UTC(),
	}
}

// SaveProgress writes the current snapshot through the progress store. It is
// a no-op for engines constructed without a store.
func (e *Engine) SaveProgress(ctx context.Context) error {
	if e.destroyed {
		return ErrEngineDestroyed
	}
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(ctx, e.Snapshot()); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// LoadProgress restores engine state from the store. It returns false when
// no usable snapshot exists: missing keys and superseded schema versions
// degrade silently to a fresh start, store failures and corrupt snapshots
// are reported. In every non-true outcome the engine is left exactly as it
// was; a snapshot is applied whole or not at all.
func (e *Engine) LoadProgress(ctx context.Context) (bool, error) {
	if e.destroyed {
		return false, ErrEngineDestroyed
	}
	if e.store == nil {
		return false, nil
	}

	snap, err := e.store.Load(ctx, e.assessment.AssessmentID)
	if err != nil {
		return false, fmt.Errorf("load progress: %w", err)
	}
	if snap == nil {
		return false, nil
	}
	if snap.SchemaVersion != model.SnapshotSchemaVersion {
		return false, nil
	}

	if err := e.restore(snap); err != nil {
		return false, fmt.Errorf("snapshot for %s is unusable: %w", e.assessment.AssessmentID, err)
	}
	return true, nil
}

// restore validates a snapshot completely, then swaps it in. Nothing is
// mutated until every check has passed.
func (e *Engine) restore(snap *model.Snapshot) error {
	if snap.FrameworkID != e.framework.ID {
		return fmt.Errorf("snapshot belongs to framework %q, engine runs %q", snap.FrameworkID, e.framework.ID)
	}
	if snap.AIInjected < 0 {
		return fmt.Errorf("negative injected count %d", snap.AIInjected)
	}

	seen := make(map[string]bool, len(snap.Answers))
	for _, a := range snap.Answers {
		if a.QuestionID == "" {
			return fmt.Errorf("answer without a question id")
		}
		if seen[a.QuestionID] {
			return fmt.Errorf("duplicate answer for question %q", a.QuestionID)
		}
		seen[a.QuestionID] = true
	}

	pos := snap.Position.Clone()
	if err := e.checkPosition(pos); err != nil {
		return err
	}

	answers := newAnswerStore()
	answers.replace(snap.Answers)

	aiQuestions := make(map[string]model.Question)
	if pos.Mode == model.NavAI {
		for _, q := range pos.Queue {
			aiQuestions[q.ID] = q
		}
	}

	e.answers = answers
	e.pos = pos
	e.aiInjected = snap.AIInjected
	e.aiQuestions = aiQuestions
	return nil
}

// checkPosition verifies a restored position refers to real coordinates.
func (e *Engine) checkPosition(p model.Position) error {
	switch p.Mode {
	case model.NavCompleted:
		return nil
	case model.NavMain:
		if _, ok := e.framework.QuestionAt(p.Section, p.Question); !ok {
			return fmt.Errorf("main position %d/%d is out of bounds", p.Section, p.Question)
		}
		return nil
	case model.NavAI:
		if len(p.Queue) == 0 {
			return fmt.Errorf("ai position with an empty queue")
		}
		if p.Cursor < 0 || p.Cursor >= len(p.Queue) {
			return fmt.Errorf("ai cursor %d out of bounds for queue of %d", p.Cursor, len(p.Queue))
		}
		if _, ok := e.framework.QuestionAt(p.ReturnSection, p.ReturnQuestion); !ok {
			return fmt.Errorf("ai return point %d/%d is out of bounds", p.ReturnSection, p.ReturnQuestion)
		}
		return nil
	default:
		return fmt.Errorf("unknown navigation mode %q", p.Mode)
	}
}

// Destroy writes a final snapshot and retires the engine. A failed final
// save is returned to the caller. After Destroy every state-changing call
// returns ErrEngineDestroyed; Destroy itself is idempotent.
func (e *Engine) Destroy(ctx context.Context) error {
	if e.destroyed {
		return nil
	}
	err := e.SaveProgress(ctx)
	e.destroyed = true
	if err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return nil
}

// Destroyed reports whether Destroy has run.
func (e *Engine) Destroyed() bool {
	return e.destroyed
}
