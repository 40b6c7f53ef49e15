package survey

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsUnknownSurvey(t *testing.T) {
	s := testService(t)
	_, err := s.Results(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResultsWithoutResponses(t *testing.T) {
	s := testService(t)
	sv := createTestSurvey(t, s, "결과 테스트", true)
	createTestQuestion(t, s, Question{
		SurveyID:   sv.ID,
		Text:       "찬성하십니까?",
		Type:       Single,
		Options:    []string{"예", "아니오"},
		OrderIndex: 1,
	})

	results, err := s.Results(context.Background(), sv.ID)
	require.NoError(t, err)

	assert.Equal(t, sv.ID, results.SurveyID)
	assert.Equal(t, "결과 테스트", results.Title)
	assert.Zero(t, results.TotalResponses)
	// no registered users either, so the rate must not divide by zero
	assert.Zero(t, results.ParticipationRate)
	assert.Equal(t, averageTimeMinutes, results.AverageTime)

	require.Len(t, results.QuestionResults, 1)
	qr := results.QuestionResults[0]
	assert.Zero(t, qr.TotalAnswers)
	// defined options always appear, even with no answers
	require.Len(t, qr.Buckets, 2)
	assert.Equal(t, Bucket{Value: "예"}, qr.Buckets[0])
	assert.Equal(t, Bucket{Value: "아니오"}, qr.Buckets[1])
}

func TestResultsAggregation(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	sv, single, multi := submissionSurvey(t, s)

	alice := createUser(t, s, "김민수", "010-1111-1111")
	bob := createUser(t, s, "이영희", "010-2222-2222")
	createUser(t, s, "박철수", "010-3333-3333")
	createUser(t, s, "최지우", "010-4444-4444")

	_, err := s.Submit(ctx, sv.ID, Submission{
		UserID: alice,
		Answers: []Answer{
			ScalarAnswer(single.ID, "예"),
			MultiAnswer(multi.ID, "앱", "웹"),
		},
	})
	require.NoError(t, err)
	_, err = s.Submit(ctx, sv.ID, Submission{
		UserID: bob,
		Answers: []Answer{
			ScalarAnswer(single.ID, "기권"),
			MultiAnswer(multi.ID, "앱"),
		},
	})
	require.NoError(t, err)

	results, err := s.Results(ctx, sv.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, results.TotalResponses)
	// 2 responses out of 4 registered users
	assert.Equal(t, 50, results.ParticipationRate)

	require.Len(t, results.QuestionResults, 2)

	// single-choice: defined options first in definition order, then the
	// observed write-in
	sr := results.QuestionResults[0]
	assert.Equal(t, single.ID, sr.QuestionID)
	assert.Equal(t, 2, sr.TotalAnswers)
	require.Len(t, sr.Buckets, 3)
	assert.Equal(t, Bucket{Value: "예", Count: 1, Percentage: 50}, sr.Buckets[0])
	assert.Equal(t, Bucket{Value: "아니오", Count: 0, Percentage: 0}, sr.Buckets[1])
	assert.Equal(t, Bucket{Value: "기권", Count: 1, Percentage: 50}, sr.Buckets[2])

	// multi-select: each selected option counts once per respondent, so
	// bucket counts sum past the response total
	mr := results.QuestionResults[1]
	assert.Equal(t, multi.ID, mr.QuestionID)
	assert.Equal(t, 2, mr.TotalAnswers)
	require.Len(t, mr.Buckets, 3)
	assert.Equal(t, Bucket{Value: "앱", Count: 2, Percentage: 100}, mr.Buckets[0])
	assert.Equal(t, Bucket{Value: "웹", Count: 1, Percentage: 50}, mr.Buckets[1])
	assert.Equal(t, Bucket{Value: "키오스크", Count: 0, Percentage: 0}, mr.Buckets[2])
}

func TestResultsExtraValueOrdering(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	sv := createTestSurvey(t, s, "기타 값 정렬", true)
	q := createTestQuestion(t, s, Question{
		SurveyID:   sv.ID,
		Text:       "자유 의견",
		Type:       Text,
		OrderIndex: 1,
	})

	values := []string{"나", "가", "나", "다"}
	for i, v := range values {
		userID := createUser(t, s, "응답자", fmt.Sprintf("010-0000-%04d", i+1))
		_, err := s.Submit(ctx, sv.ID, Submission{
			UserID:  userID,
			Answers: []Answer{ScalarAnswer(q.ID, v)},
		})
		require.NoError(t, err)
	}

	results, err := s.Results(ctx, sv.ID)
	require.NoError(t, err)
	require.Len(t, results.QuestionResults, 1)

	// no defined options: observed values ordered by count, ties by value
	buckets := results.QuestionResults[0].Buckets
	require.Len(t, buckets, 3)
	assert.Equal(t, "나", buckets[0].Value)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, "가", buckets[1].Value)
	assert.Equal(t, "다", buckets[2].Value)
}

func TestResultsBranchedResubmission(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	sv := createTestSurvey(t, s, "분기 재제출", true)
	q1 := createTestQuestion(t, s, Question{
		SurveyID:   sv.ID,
		Text:       "찬성하십니까?",
		Type:       Single,
		Options:    []string{"예", "아니오"},
		OrderIndex: 1,
	})
	q2 := createTestQuestion(t, s, Question{
		SurveyID:   sv.ID,
		Text:       "어느 쪽입니까?",
		Type:       Single,
		Options:    []string{"A", "B"},
		OrderIndex: 2,
		Conditions: &Conditions{ShowIf: &Condition{QuestionID: q1.ID, Answer: "예"}},
	})
	userID := createUser(t, s, "김민수", "010-1234-5678")

	_, err := s.Submit(ctx, sv.ID, Submission{
		UserID: userID,
		Answers: []Answer{
			ScalarAnswer(q1.ID, "예"),
			ScalarAnswer(q2.ID, "A"),
		},
	})
	require.NoError(t, err)

	submitted, err := s.HasSubmitted(ctx, sv.ID, userID)
	require.NoError(t, err)
	assert.True(t, submitted)

	results, err := s.Results(ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, Bucket{Value: "예", Count: 1, Percentage: 100}, results.QuestionResults[0].Buckets[0])
	assert.Equal(t, Bucket{Value: "A", Count: 1, Percentage: 100}, results.QuestionResults[1].Buckets[0])

	// resubmission down the other branch omits the conditional question
	_, err = s.Submit(ctx, sv.ID, Submission{
		UserID:  userID,
		Answers: []Answer{ScalarAnswer(q1.ID, "아니오")},
	})
	require.NoError(t, err)

	results, err = s.Results(ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, results.TotalResponses)

	r1 := results.QuestionResults[0]
	assert.Equal(t, Bucket{Value: "예", Count: 0, Percentage: 0}, r1.Buckets[0])
	assert.Equal(t, Bucket{Value: "아니오", Count: 1, Percentage: 100}, r1.Buckets[1])

	r2 := results.QuestionResults[1]
	assert.Zero(t, r2.TotalAnswers)
	assert.Equal(t, Bucket{Value: "A"}, r2.Buckets[0])
	assert.Equal(t, Bucket{Value: "B"}, r2.Buckets[1])
}

func TestResultsReflectsReplacedResponse(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	sv, single, _ := submissionSurvey(t, s)
	userID := createUser(t, s, "김민수", "010-1234-5678")

	_, err := s.Submit(ctx, sv.ID, Submission{
		UserID:  userID,
		Answers: []Answer{ScalarAnswer(single.ID, "예")},
	})
	require.NoError(t, err)
	_, err = s.Submit(ctx, sv.ID, Submission{
		UserID:  userID,
		Answers: []Answer{ScalarAnswer(single.ID, "아니오")},
	})
	require.NoError(t, err)

	results, err := s.Results(ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, results.TotalResponses)

	sr := results.QuestionResults[0]
	assert.Equal(t, Bucket{Value: "예", Count: 0, Percentage: 0}, sr.Buckets[0])
	assert.Equal(t, Bucket{Value: "아니오", Count: 1, Percentage: 100}, sr.Buckets[1])
}
