package survey

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// Service exposes the survey subsystem: definition store, response engine
// and results aggregation, all backed by the shared database.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db}
}

// ActiveSurvey returns the currently active survey with its ordered question
// list, or ErrNotFound when no survey is active. A survey with zero
// questions is a valid result.
func (s *Service) ActiveSurvey(ctx context.Context) (Survey, error) {
	survey := Survey{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, is_active, start_date, end_date, created_at
		FROM survey
		WHERE is_active
		ORDER BY created_at DESC
		LIMIT 1`,
	).Scan(
		&survey.ID, &survey.Title, &survey.Description, &survey.IsActive,
		&survey.StartDate, &survey.EndDate, &survey.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Survey{}, ErrNotFound
	}
	if err != nil {
		return Survey{}, errors.Wrap(err, "get active survey")
	}

	survey.Questions, err = s.Questions(ctx, survey.ID)
	if err != nil {
		return Survey{}, err
	}
	return survey, nil
}

// Questions returns the survey's questions ordered by their order index.
// A survey without questions yields an empty slice, not an error.
func (s *Service) Questions(ctx context.Context, surveyID int) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_id, question_text, question_type, options, order_index, is_required, conditions
		FROM survey_question
		WHERE survey_id = ?
		ORDER BY order_index ASC`,
		surveyID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get survey questions")
	}
	defer rows.Close()

	questions := []Question{}
	for rows.Next() {
		q := Question{}
		var opts, conds sql.NullString
		err = rows.Scan(&q.ID, &q.SurveyID, &q.Text, &q.Type, &opts, &q.OrderIndex, &q.IsRequired, &conds)
		if err != nil {
			return nil, errors.Wrap(err, "scan survey question")
		}

		if opts.String != "" {
			err = json.Unmarshal([]byte(opts.String), &q.Options)
			if err != nil {
				return nil, errors.Wrapf(err, "parse options of question %d", q.ID)
			}
		}
		if conds.String != "" {
			err = json.Unmarshal([]byte(conds.String), &q.Conditions)
			if err != nil {
				return nil, errors.Wrapf(err, "parse conditions of question %d", q.ID)
			}
		}

		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Surveys lists all surveys without their questions, newest first.
func (s *Service) Surveys(ctx context.Context) ([]Survey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, is_active, start_date, end_date, created_at
		FROM survey
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "get surveys")
	}
	defer rows.Close()

	surveys := []Survey{}
	for rows.Next() {
		sv := Survey{}
		err = rows.Scan(&sv.ID, &sv.Title, &sv.Description, &sv.IsActive, &sv.StartDate, &sv.EndDate, &sv.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan survey")
		}
		surveys = append(surveys, sv)
	}
	return surveys, rows.Err()
}

func (s *Service) CreateSurvey(ctx context.Context, survey Survey) (Survey, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO survey (title, description, is_active, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		survey.Title,
		survey.Description,
		survey.IsActive,
		survey.StartDate,
		survey.EndDate,
	).Scan(&survey.ID, &survey.CreatedAt)
	if err != nil {
		return Survey{}, errors.Wrap(err, "insert survey")
	}
	return survey, nil
}

func (s *Service) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	var opts, conds any
	if q.Options != nil {
		optsJson, err := json.Marshal(q.Options)
		if err != nil {
			return Question{}, errors.Wrap(err, "marshal question options")
		}
		opts = string(optsJson)
	}
	if q.Conditions != nil {
		condsJson, err := json.Marshal(q.Conditions)
		if err != nil {
			return Question{}, errors.Wrap(err, "marshal question conditions")
		}
		conds = string(condsJson)
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO survey_question (survey_id, question_text, question_type, options, order_index, is_required, conditions)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		q.SurveyID,
		q.Text,
		q.Type,
		opts,
		q.OrderIndex,
		q.IsRequired,
		conds,
	).Scan(&q.ID)
	if err != nil {
		return Question{}, errors.Wrap(err, "insert survey question")
	}
	return q, nil
}

// SetActive activates the given survey and deactivates every other one in
// the same transaction, so at most one survey is active at a time.
func (s *Service) SetActive(ctx context.Context, surveyID int) error {
	ok, err := s.exists(ctx, surveyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	_, err = s.db.ExecContext(ctx, "UPDATE survey SET is_active = (id = ?)", surveyID)
	return errors.Wrap(err, "activate survey")
}

func (s *Service) exists(ctx context.Context, surveyID int) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM survey WHERE id = ?", surveyID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "check survey exists")
	}
	return true, nil
}
