package survey

// Visible reports whether a question should be presented, given the full
// ordered question list and the answers collected so far in the current
// session. A question without a condition is always visible; a conditional
// question is visible only when the referenced question's recorded answer is
// a scalar exactly equal to the required value. An absent answer, or a
// multi-select one, never matches.
//
// Visibility is evaluated through the answer path: a question whose
// condition target is itself hidden stays hidden, whatever value may linger
// in the answer map for the target.
func Visible(questions []Question, q Question, answers map[int]Answer) bool {
	return visible(questions, q, answers, map[int]bool{})
}

func visible(questions []Question, q Question, answers map[int]Answer, visiting map[int]bool) bool {
	cond := q.showIf()
	if cond == nil {
		return true
	}
	if visiting[q.ID] {
		// condition cycle: hide rather than recurse forever
		return false
	}
	visiting[q.ID] = true

	if target, ok := findQuestion(questions, cond.QuestionID); ok {
		if !visible(questions, target, answers, visiting) {
			return false
		}
	}

	recorded, ok := answers[cond.QuestionID]
	if !ok {
		return false
	}
	value, ok := recorded.Value()
	return ok && value == cond.Answer
}

func findQuestion(questions []Question, id int) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// NextVisible scans forward from the question after index from and returns
// the index of the first visible question, or len(questions) when none
// remain (the end-of-survey sentinel).
func NextVisible(questions []Question, answers map[int]Answer, from int) int {
	for i := from + 1; i < len(questions); i++ {
		if Visible(questions, questions[i], answers) {
			return i
		}
	}
	return len(questions)
}

// PrevVisible scans backward from the question before index from and returns
// the index of the first visible question, clamped to the first question.
func PrevVisible(questions []Question, answers map[int]Answer, from int) int {
	for i := from - 1; i >= 0; i-- {
		if Visible(questions, questions[i], answers) {
			return i
		}
	}
	return 0
}
