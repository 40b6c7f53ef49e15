package survey

// Phase is the client-side progress through a survey session.
type Phase int

const (
	InProgress Phase = iota
	Submitting
	Completed
	ViewingResults
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in_progress"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	case ViewingResults:
		return "viewing_results"
	}
	return "unknown"
}

// Flow is an explicit state machine over one survey session: the current
// question index, the answers recorded so far and the session phase. It
// holds no reference to storage; navigation re-evaluates visibility on every
// step.
type Flow struct {
	questions []Question
	answers   map[int]Answer
	index     int
	phase     Phase
}

func NewFlow(questions []Question) *Flow {
	f := &Flow{questions: questions}
	f.reset()
	return f
}

// reset starts a fresh pass, placing the cursor on the first visible
// question; a conditional first question is skipped like any other.
func (f *Flow) reset() {
	f.answers = map[int]Answer{}
	f.index = NextVisible(f.questions, f.answers, -1)
	f.phase = InProgress
}

func (f *Flow) Phase() Phase { return f.phase }

// Current returns the question at the cursor, or false past the end of the
// survey or when the session is no longer in progress.
func (f *Flow) Current() (Question, bool) {
	if f.phase != InProgress || f.index >= len(f.questions) {
		return Question{}, false
	}
	return f.questions[f.index], true
}

// Record stores an answer for its question, overwriting any earlier one.
// Recording is only possible while the session is in progress.
func (f *Flow) Record(a Answer) {
	if f.phase != InProgress || !a.valid() {
		return
	}
	f.answers[a.QuestionID] = a
}

// Next advances to the next visible question. Reaching the end-of-survey
// sentinel moves the session to Submitting; the caller is expected to build
// the submission from Answers and call Submit.
func (f *Flow) Next() {
	if f.phase != InProgress {
		return
	}
	next := NextVisible(f.questions, f.answers, f.index)
	if next >= len(f.questions) {
		f.phase = Submitting
		return
	}
	f.index = next
}

// Prev steps back to the previous visible question, clamped to the first.
func (f *Flow) Prev() {
	if f.phase != InProgress {
		return
	}
	f.index = PrevVisible(f.questions, f.answers, f.index)
}

// Answers returns the recorded answers for the questions visible on the
// current answer path, in question order. Answers to questions hidden by
// branching are left out, so changing an early answer retroactively drops
// what was answered down an abandoned branch.
func (f *Flow) Answers() []Answer {
	visible := []Answer{}
	for _, q := range f.questions {
		if !Visible(f.questions, q, f.answers) {
			continue
		}
		if a, ok := f.answers[q.ID]; ok {
			visible = append(visible, a)
		}
	}
	return visible
}

// Fail returns a Submitting session to InProgress with its answers intact,
// so the same submission can be retried after the user authenticates.
func (f *Flow) Fail() {
	if f.phase == Submitting {
		f.phase = InProgress
	}
}

// Complete marks a successful submission.
func (f *Flow) Complete() {
	if f.phase == Submitting {
		f.phase = Completed
	}
}

// ViewResults switches a completed session to the results view.
func (f *Flow) ViewResults() {
	if f.phase == Completed {
		f.phase = ViewingResults
	}
}

// Restart begins a fresh pass over the survey, clearing answers. Used by the
// "participate again" action; the engine's replace semantics make the new
// submission supersede the old one.
func (f *Flow) Restart() {
	f.reset()
}
