package survey

import "time"

type QuestionType string

const (
	Single   QuestionType = "single"
	Multiple QuestionType = "multiple"
	Text     QuestionType = "text"
)

type Survey struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
}

type Question struct {
	ID         int          `json:"id"`
	SurveyID   int          `json:"surveyId,omitempty"`
	Text       string       `json:"questionText"`
	Type       QuestionType `json:"questionType"`
	Options    []string     `json:"options,omitempty"`
	OrderIndex int          `json:"orderIndex"`
	IsRequired bool         `json:"isRequired"`
	Conditions *Conditions  `json:"conditions,omitempty"`
}

// Conditions controls when a question is presented. A nil Conditions (or nil
// ShowIf) means the question is always visible.
type Conditions struct {
	ShowIf *Condition `json:"showIf,omitempty"`
}

// Condition makes a question visible only when the referenced earlier
// question's in-progress answer equals Answer exactly.
type Condition struct {
	QuestionID int    `json:"questionId"`
	Answer     string `json:"answer"`
}

func (q Question) showIf() *Condition {
	if q.Conditions == nil {
		return nil
	}
	return q.Conditions.ShowIf
}
