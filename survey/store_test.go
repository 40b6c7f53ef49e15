package survey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveSurveyNone(t *testing.T) {
	s := testService(t)
	_, err := s.ActiveSurvey(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActiveSurveyWithQuestions(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	sv := createTestSurvey(t, s, "교통 정책 설문", true)
	first := createTestQuestion(t, s, Question{
		SurveyID:   sv.ID,
		Text:       "대중교통을 이용하십니까?",
		Type:       Single,
		Options:    []string{"예", "아니오"},
		OrderIndex: 1,
		IsRequired: true,
	})
	createTestQuestion(t, s, Question{
		SurveyID:   sv.ID,
		Text:       "어떤 수단을 주로 이용하십니까?",
		Type:       Multiple,
		Options:    []string{"버스", "택시"},
		OrderIndex: 2,
		Conditions: &Conditions{ShowIf: &Condition{QuestionID: first.ID, Answer: "예"}},
	})

	active, err := s.ActiveSurvey(ctx)
	require.NoError(t, err)
	assert.Equal(t, sv.ID, active.ID)
	assert.Equal(t, "교통 정책 설문", active.Title)
	require.Len(t, active.Questions, 2)

	q1, q2 := active.Questions[0], active.Questions[1]
	assert.Equal(t, []string{"예", "아니오"}, q1.Options)
	assert.True(t, q1.IsRequired)
	assert.Nil(t, q1.Conditions)
	require.NotNil(t, q2.Conditions)
	require.NotNil(t, q2.Conditions.ShowIf)
	assert.Equal(t, first.ID, q2.Conditions.ShowIf.QuestionID)
	assert.Equal(t, "예", q2.Conditions.ShowIf.Answer)
}

func TestActiveSurveyWithoutQuestions(t *testing.T) {
	s := testService(t)

	sv := createTestSurvey(t, s, "빈 설문", true)
	active, err := s.ActiveSurvey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sv.ID, active.ID)
	assert.Empty(t, active.Questions)
}

func TestQuestionsOrdering(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	sv := createTestSurvey(t, s, "순서 테스트", false)
	createTestQuestion(t, s, Question{SurveyID: sv.ID, Text: "second", Type: Text, OrderIndex: 2})
	createTestQuestion(t, s, Question{SurveyID: sv.ID, Text: "first", Type: Text, OrderIndex: 1})

	questions, err := s.Questions(ctx, sv.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "first", questions[0].Text)
	assert.Equal(t, "second", questions[1].Text)
}

func TestSetActiveDeactivatesOthers(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	first := createTestSurvey(t, s, "1차 설문", true)
	second := createTestSurvey(t, s, "2차 설문", false)

	require.NoError(t, s.SetActive(ctx, second.ID))

	surveys, err := s.Surveys(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, sv := range surveys {
		if sv.IsActive {
			activeCount++
			assert.Equal(t, second.ID, sv.ID)
		}
	}
	assert.Equal(t, 1, activeCount)

	active, err := s.ActiveSurvey(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.NotEqual(t, first.ID, active.ID)
}

func TestSetActiveUnknownSurvey(t *testing.T) {
	s := testService(t)
	err := s.SetActive(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedIdempotent(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	seeded, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded.IsActive)
	require.Len(t, seeded.Questions, len(seedQuestions))

	// conditional questions reference the real id of the first question
	firstID := seeded.Questions[0].ID
	for i, q := range seeded.Questions {
		if seedQuestions[i].showIfFirst == "" {
			assert.Nil(t, q.Conditions, "question %d", i+1)
			continue
		}
		require.NotNil(t, q.Conditions, "question %d", i+1)
		require.NotNil(t, q.Conditions.ShowIf, "question %d", i+1)
		assert.Equal(t, firstID, q.Conditions.ShowIf.QuestionID)
		assert.Equal(t, seedQuestions[i].showIfFirst, q.Conditions.ShowIf.Answer)
	}

	again, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, again.ID)

	surveys, err := s.Surveys(ctx)
	require.NoError(t, err)
	assert.Len(t, surveys, 1)
}
