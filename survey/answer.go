package survey

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Answer is a tagged variant: either a single scalar value (single/text
// questions) or a set of selected options (multiple questions). The zero
// value is invalid and fails validation.
type Answer struct {
	QuestionID int

	kind     answerKind
	value    string
	selected []string
}

type answerKind int

const (
	kindNone answerKind = iota
	kindScalar
	kindMulti
)

func ScalarAnswer(questionID int, value string) Answer {
	return Answer{QuestionID: questionID, kind: kindScalar, value: value}
}

func MultiAnswer(questionID int, options ...string) Answer {
	return Answer{QuestionID: questionID, kind: kindMulti, selected: options}
}

// Value returns the scalar answer value, if this is a scalar answer.
func (a Answer) Value() (string, bool) {
	return a.value, a.kind == kindScalar
}

// SelectedOptions returns the selected option set, if this is a
// multi-select answer.
func (a Answer) SelectedOptions() ([]string, bool) {
	return a.selected, a.kind == kindMulti
}

func (a Answer) valid() bool {
	return a.QuestionID > 0 && a.kind != kindNone
}

type answerJSON struct {
	QuestionID      int      `json:"questionId"`
	AnswerValue     *string  `json:"answerValue,omitempty"`
	SelectedOptions []string `json:"selectedOptions,omitempty"`
}

func (a Answer) MarshalJSON() ([]byte, error) {
	out := answerJSON{QuestionID: a.QuestionID}
	switch a.kind {
	case kindScalar:
		v := a.value
		out.AnswerValue = &v
	case kindMulti:
		out.SelectedOptions = a.selected
		if out.SelectedOptions == nil {
			out.SelectedOptions = []string{}
		}
	}
	return json.Marshal(out)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var in answerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch {
	case in.AnswerValue != nil && in.SelectedOptions != nil:
		return errors.Wrapf(ErrValidation, "question %d: both answerValue and selectedOptions set", in.QuestionID)
	case in.AnswerValue != nil:
		*a = ScalarAnswer(in.QuestionID, *in.AnswerValue)
	case in.SelectedOptions != nil:
		*a = MultiAnswer(in.QuestionID, in.SelectedOptions...)
	default:
		return errors.Wrapf(ErrValidation, "question %d: no answer value", in.QuestionID)
	}
	return nil
}
