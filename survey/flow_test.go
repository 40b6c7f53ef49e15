package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branchingQuestions() []Question {
	return []Question{
		{ID: 1},
		conditional(2, 1, "Yes"),
		{ID: 3},
	}
}

func TestFlowWalkthrough(t *testing.T) {
	f := NewFlow(branchingQuestions())
	assert.Equal(t, InProgress, f.Phase())

	q, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)

	f.Record(ScalarAnswer(1, "Yes"))
	f.Next()
	q, ok = f.Current()
	require.True(t, ok)
	assert.Equal(t, 2, q.ID)

	f.Record(ScalarAnswer(2, "Sometimes"))
	f.Next()
	q, ok = f.Current()
	require.True(t, ok)
	assert.Equal(t, 3, q.ID)

	f.Record(ScalarAnswer(3, "Done"))
	f.Next()
	assert.Equal(t, Submitting, f.Phase())
	_, ok = f.Current()
	assert.False(t, ok)

	answers := f.Answers()
	require.Len(t, answers, 3)
	assert.Equal(t, 1, answers[0].QuestionID)
	assert.Equal(t, 2, answers[1].QuestionID)
	assert.Equal(t, 3, answers[2].QuestionID)
}

func TestFlowStartsAtFirstVisibleQuestion(t *testing.T) {
	// the first question is conditional, so a fresh pass begins at the
	// first unconditional one
	f := NewFlow([]Question{
		conditional(1, 2, "A"),
		{ID: 2},
	})

	q, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 2, q.ID)

	f.Record(ScalarAnswer(2, "B"))
	f.Next()
	f.Complete()
	f.Restart()

	q, ok = f.Current()
	require.True(t, ok)
	assert.Equal(t, 2, q.ID)
}

func TestFlowAllQuestionsHidden(t *testing.T) {
	f := NewFlow([]Question{conditional(1, 2, "A")})

	_, ok := f.Current()
	assert.False(t, ok)
	f.Next()
	assert.Equal(t, Submitting, f.Phase())
	assert.Empty(t, f.Answers())
}

func TestFlowSkipsHiddenQuestion(t *testing.T) {
	f := NewFlow(branchingQuestions())

	f.Record(ScalarAnswer(1, "No"))
	f.Next()
	q, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 3, q.ID)
}

func TestFlowAnswersDropsAbandonedBranch(t *testing.T) {
	f := NewFlow(branchingQuestions())

	f.Record(ScalarAnswer(1, "Yes"))
	f.Next()
	f.Record(ScalarAnswer(2, "Sometimes"))

	// going back and changing the branching answer orphans answer 2
	f.Prev()
	f.Record(ScalarAnswer(1, "No"))

	answers := f.Answers()
	require.Len(t, answers, 1)
	assert.Equal(t, 1, answers[0].QuestionID)
}

func TestFlowPrevClampsAtFirstQuestion(t *testing.T) {
	f := NewFlow(branchingQuestions())
	f.Prev()
	q, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
}

func TestFlowRecordRejectsInvalidAnswer(t *testing.T) {
	f := NewFlow(branchingQuestions())
	f.Record(Answer{QuestionID: 1})
	assert.Empty(t, f.Answers())
}

func TestFlowFailReturnsToInProgress(t *testing.T) {
	f := NewFlow([]Question{{ID: 1}})
	f.Record(ScalarAnswer(1, "Yes"))
	f.Next()
	require.Equal(t, Submitting, f.Phase())

	// submission rejected, e.g. the user was not logged in
	f.Fail()
	assert.Equal(t, InProgress, f.Phase())
	assert.Len(t, f.Answers(), 1)
}

func TestFlowCompleteAndViewResults(t *testing.T) {
	f := NewFlow([]Question{{ID: 1}})

	// Complete and ViewResults only act in their expected phases
	f.Complete()
	assert.Equal(t, InProgress, f.Phase())
	f.ViewResults()
	assert.Equal(t, InProgress, f.Phase())

	f.Record(ScalarAnswer(1, "Yes"))
	f.Next()
	f.Complete()
	assert.Equal(t, Completed, f.Phase())
	f.ViewResults()
	assert.Equal(t, ViewingResults, f.Phase())
}

func TestFlowRestart(t *testing.T) {
	f := NewFlow([]Question{{ID: 1}})
	f.Record(ScalarAnswer(1, "Yes"))
	f.Next()
	f.Complete()

	f.Restart()
	assert.Equal(t, InProgress, f.Phase())
	assert.Empty(t, f.Answers())
	q, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "in_progress", InProgress.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "viewing_results", ViewingResults.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
