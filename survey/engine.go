package survey

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Submission is one user's complete answer set, plus the request metadata
// stamped onto the stored response. District is the user's district at
// submission time; it is kept verbatim so historical responses are not
// rewritten when the user later moves.
type Submission struct {
	UserID    int
	IPAddress string
	UserAgent string
	District  string
	Answers   []Answer
}

// Submit stores the user's response to a survey, replacing any previous
// response by the same user. The delete of the old response and the insert
// of the new one happen in a single transaction: readers observe either the
// fully-old or the fully-new answer set, never a mix.
//
// The engine checks submission shape and survey existence only. Required
// flags, option membership and condition consistency are the presentation
// layer's concern.
func (s *Service) Submit(ctx context.Context, surveyID int, sub Submission) (responseID string, err error) {
	if sub.UserID <= 0 {
		return "", ErrAuthRequired
	}
	if err := validateAnswers(surveyID, sub.Answers); err != nil {
		return "", err
	}

	ok, err := s.exists(ctx, surveyID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "begin submit tx")
	}
	defer tx.Rollback()

	// Latest submission wins: drop the previous response and its answers
	// before writing the new ones.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM survey_answer
		WHERE response_id IN (
			SELECT id FROM survey_response
			WHERE survey_id = ? AND user_id = ?
		)`,
		surveyID, sub.UserID,
	)
	if err != nil {
		return "", errors.Wrap(err, "delete previous answers")
	}
	_, err = tx.ExecContext(ctx, `
		DELETE FROM survey_response
		WHERE survey_id = ? AND user_id = ?`,
		surveyID, sub.UserID,
	)
	if err != nil {
		return "", errors.Wrap(err, "delete previous response")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "generate response id")
	}
	responseID = id.String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO survey_response (id, survey_id, user_id, ip_address, user_agent, district)
		VALUES (?, ?, ?, ?, ?, ?)`,
		responseID,
		surveyID,
		sub.UserID,
		sub.IPAddress,
		sub.UserAgent,
		sub.District,
	)
	if err != nil {
		return "", errors.Wrap(err, "insert response")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_answer (response_id, question_id, answer_value, selected_options)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", errors.Wrap(err, "prepare answer insert")
	}
	defer stmt.Close()

	for _, a := range sub.Answers {
		var value, selected any
		if v, ok := a.Value(); ok {
			value = v
		}
		if opts, ok := a.SelectedOptions(); ok {
			optsJson, err := json.Marshal(opts)
			if err != nil {
				return "", errors.Wrapf(err, "marshal selected options of question %d", a.QuestionID)
			}
			selected = string(optsJson)
		}

		_, err = stmt.ExecContext(ctx, responseID, a.QuestionID, value, selected)
		if err != nil {
			return "", errors.Wrapf(err, "insert answer to question %d", a.QuestionID)
		}
	}

	err = tx.Commit()
	if err != nil {
		return "", errors.Wrap(err, "commit submit tx")
	}
	return responseID, nil
}

// HasSubmitted reports whether the user already has a stored response for
// the survey.
func (s *Service) HasSubmitted(ctx context.Context, surveyID, userID int) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM survey_response
		WHERE survey_id = ? AND user_id = ?`,
		surveyID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "check survey response")
	}
	return true, nil
}

func validateAnswers(surveyID int, answers []Answer) error {
	if surveyID <= 0 {
		return errors.Wrap(ErrValidation, "missing survey id")
	}
	if answers == nil {
		return errors.Wrap(ErrValidation, "missing answer set")
	}

	var errs *multierror.Error
	seen := make(map[int]bool, len(answers))
	for i, a := range answers {
		if !a.valid() {
			errs = multierror.Append(errs, errors.Wrapf(ErrValidation, "answer %d is malformed", i))
			continue
		}
		if seen[a.QuestionID] {
			errs = multierror.Append(errs, errors.Wrapf(ErrValidation, "duplicate answer to question %d", a.QuestionID))
		}
		seen[a.QuestionID] = true
	}
	return errs.ErrorOrNil()
}
