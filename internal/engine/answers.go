package engine

import "clearcomply/internal/model"

// answerStore keeps recorded answers in first-submission order with O(1)
// lookup by question id. Overwrites keep the original slot.
type answerStore struct {
	ordered []model.Answer
	index   map[string]int
}

func newAnswerStore() *answerStore {
	return &answerStore{index: make(map[string]int)}
}

// put records an answer, overwriting in place when the question was answered
// before.
func (s *answerStore) put(questionID string, value model.AnswerValue, source model.QuestionSource) {
	a := model.Answer{
		QuestionID: questionID,
		Value:      value,
		Source:     source,
		AnsweredAt: timeNow().UTC(),
	}
	if i, ok := s.index[questionID]; ok {
		s.ordered[i] = a
		return
	}
	s.index[questionID] = len(s.ordered)
	s.ordered = append(s.ordered, a)
}

// get returns the recorded answer for a question id.
func (s *answerStore) get(questionID string) (model.Answer, bool) {
	i, ok := s.index[questionID]
	if !ok {
		return model.Answer{}, false
	}
	return s.ordered[i], true
}

// size returns the number of distinct questions answered.
func (s *answerStore) size() int {
	return len(s.ordered)
}

// list returns a copy of the answers in submission order.
func (s *answerStore) list() []model.Answer {
	out := make([]model.Answer, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// replace swaps the store contents for the given answers, keeping their
// order. Used by snapshot restore; the caller has already checked for
// duplicate ids.
func (s *answerStore) replace(answers []model.Answer) {
	s.ordered = make([]model.Answer, len(answers))
	copy(s.ordered, answers)
	s.index = make(map[string]int, len(answers))
	for i, a := range s.ordered {
		s.index[a.QuestionID] = i
	}
}
