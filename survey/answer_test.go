package survey

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerMarshal(t *testing.T) {
	data, err := json.Marshal(ScalarAnswer(7, "Yes"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"questionId":7,"answerValue":"Yes"}`, string(data))

	data, err = json.Marshal(MultiAnswer(8, "A", "B"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"questionId":8,"selectedOptions":["A","B"]}`, string(data))

	data, err = json.Marshal(MultiAnswer(9))
	require.NoError(t, err)
	assert.JSONEq(t, `{"questionId":9,"selectedOptions":[]}`, string(data))
}

func TestAnswerUnmarshal(t *testing.T) {
	var a Answer
	require.NoError(t, json.Unmarshal([]byte(`{"questionId":7,"answerValue":"Yes"}`), &a))
	value, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, "Yes", value)
	_, ok = a.SelectedOptions()
	assert.False(t, ok)

	require.NoError(t, json.Unmarshal([]byte(`{"questionId":8,"selectedOptions":["A","B"]}`), &a))
	selected, ok := a.SelectedOptions()
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, selected)
	_, ok = a.Value()
	assert.False(t, ok)
}

func TestAnswerUnmarshalRejectsAmbiguous(t *testing.T) {
	var a Answer
	err := json.Unmarshal([]byte(`{"questionId":7,"answerValue":"Yes","selectedOptions":["A"]}`), &a)
	assert.True(t, errors.Is(err, ErrValidation))

	err = json.Unmarshal([]byte(`{"questionId":7}`), &a)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAnswerEmptyScalarIsScalar(t *testing.T) {
	// an explicit empty string still counts as an answered scalar
	var a Answer
	require.NoError(t, json.Unmarshal([]byte(`{"questionId":7,"answerValue":""}`), &a))
	value, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, "", value)
	assert.True(t, a.valid())
}

func TestAnswerZeroValueInvalid(t *testing.T) {
	assert.False(t, Answer{}.valid())
	assert.False(t, Answer{QuestionID: 1}.valid())
	assert.True(t, ScalarAnswer(1, "x").valid())
	assert.True(t, MultiAnswer(1).valid())
}
