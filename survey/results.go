package survey

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// averageTimeMinutes is the figure shown next to the results. Submission
// duration is not captured anywhere in the data model, so there is nothing
// to compute it from; making it real would need start/submit timestamps on
// survey_response.
const averageTimeMinutes = 3

type Results struct {
	SurveyID          int              `json:"surveyId"`
	Title             string           `json:"title"`
	TotalResponses    int              `json:"totalResponses"`
	ParticipationRate int              `json:"participationRate"`
	AverageTime       int              `json:"averageTime"`
	QuestionResults   []QuestionResult `json:"questionResults"`
}

type QuestionResult struct {
	QuestionID   int          `json:"questionId"`
	QuestionText string       `json:"questionText"`
	QuestionType QuestionType `json:"questionType"`
	TotalAnswers int          `json:"totalAnswers"`
	Buckets      []Bucket     `json:"buckets"`
}

// Bucket is one answer value's frequency. Percentage is relative to the
// survey's total response count, so a multi-select question's buckets may
// sum past 100: each selected option counts once per respondent.
type Bucket struct {
	Value      string `json:"value"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Results computes the survey's statistics from the committed state at call
// time. Nothing is cached or maintained incrementally.
func (s *Service) Results(ctx context.Context, surveyID int) (Results, error) {
	var title string
	err := s.db.QueryRowContext(ctx, "SELECT title FROM survey WHERE id = ?", surveyID).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return Results{}, ErrNotFound
	}
	if err != nil {
		return Results{}, errors.Wrap(err, "get survey")
	}

	results := Results{
		SurveyID:    surveyID,
		Title:       title,
		AverageTime: averageTimeMinutes,
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM survey_response WHERE survey_id = ?", surveyID,
	).Scan(&results.TotalResponses)
	if err != nil {
		return Results{}, errors.Wrap(err, "count responses")
	}

	var userCount int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user").Scan(&userCount)
	if err != nil {
		return Results{}, errors.Wrap(err, "count users")
	}
	results.ParticipationRate = percentage(results.TotalResponses, userCount)

	questions, err := s.Questions(ctx, surveyID)
	if err != nil {
		return Results{}, err
	}

	counts, totals, err := s.answerCounts(ctx, surveyID)
	if err != nil {
		return Results{}, err
	}

	for _, q := range questions {
		qr := QuestionResult{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			QuestionType: q.Type,
			TotalAnswers: totals[q.ID],
		}

		observed := counts[q.ID]
		// Defined options come first, in definition order, including
		// zero-count buckets. Anything else observed follows.
		inOptions := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			inOptions[opt] = true
			qr.Buckets = append(qr.Buckets, Bucket{
				Value:      opt,
				Count:      observed[opt],
				Percentage: percentage(observed[opt], results.TotalResponses),
			})
		}

		extras := []string{}
		for value := range observed {
			if !inOptions[value] {
				extras = append(extras, value)
			}
		}
		sort.Slice(extras, func(i, j int) bool {
			if observed[extras[i]] != observed[extras[j]] {
				return observed[extras[i]] > observed[extras[j]]
			}
			return extras[i] < extras[j]
		})
		for _, value := range extras {
			qr.Buckets = append(qr.Buckets, Bucket{
				Value:      value,
				Count:      observed[value],
				Percentage: percentage(observed[value], results.TotalResponses),
			})
		}

		results.QuestionResults = append(results.QuestionResults, qr)
	}

	return results, nil
}

// answerCounts walks every stored answer of the survey and merges the two
// answer representations into per-question frequency tables: a scalar value
// counts once, a multi-select counts once per selected option.
func (s *Service) answerCounts(ctx context.Context, surveyID int) (counts map[int]map[string]int, totals map[int]int, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.question_id, a.answer_value, a.selected_options
		FROM survey_answer a
		JOIN survey_response r ON (a.response_id = r.id)
		WHERE r.survey_id = ?`,
		surveyID,
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "get survey answers")
	}
	defer rows.Close()

	counts = map[int]map[string]int{}
	totals = map[int]int{}
	for rows.Next() {
		var questionID int
		var value, selected sql.NullString
		err = rows.Scan(&questionID, &value, &selected)
		if err != nil {
			return nil, nil, errors.Wrap(err, "scan survey answer")
		}

		if counts[questionID] == nil {
			counts[questionID] = map[string]int{}
		}
		totals[questionID]++

		if value.Valid {
			counts[questionID][value.String]++
			continue
		}
		if selected.Valid && selected.String != "" {
			var options []string
			err = json.Unmarshal([]byte(selected.String), &options)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "parse selected options of question %d", questionID)
			}
			for _, opt := range options {
				counts[questionID][opt]++
			}
		}
	}
	return counts, totals, rows.Err()
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
