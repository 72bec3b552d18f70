// Package quiz implements the scoring state machine for playing a
// generated quiz. It is pure: once constructed with a question list it
// has no network or store dependencies.
package quiz

import "github.com/dmitrijs2005/docstudy/internal/client/models"

// Phase is the state of the runtime for the current question.
type Phase string

const (
	// PhaseAnswering: an option may be selected and submitted.
	PhaseAnswering Phase = "answering"
	// PhaseSubmitted: the answer is locked in; Advance moves on.
	PhaseSubmitted Phase = "submitted"
	// PhaseCompleted: the last answer was submitted and advanced past.
	PhaseCompleted Phase = "completed"
)

// Runtime walks an ordered question list: select an option, submit it,
// advance, repeat; after the last question it completes. Out-of-order
// calls (advancing before submitting, submitting without a selection,
// re-submitting) are ignored rather than treated as errors, matching
// defensive UI behavior.
//
// Runtime is not safe for concurrent use; it is driven by a single
// interactive loop.
type Runtime struct {
	questions []models.QuizQuestion

	index     int
	selected  string
	picked    bool
	submitted bool
	completed bool

	score     int
	correct   int
	incorrect int
}

// New builds a runtime over the given questions. The slice is not copied;
// callers must not mutate it afterwards.
func New(questions []models.QuizQuestion) *Runtime {
	return &Runtime{questions: questions}
}

// Phase returns the current phase.
func (r *Runtime) Phase() Phase {
	switch {
	case r.completed:
		return PhaseCompleted
	case r.submitted:
		return PhaseSubmitted
	default:
		return PhaseAnswering
	}
}

// Select picks an option for the current question. Ignored once the
// answer is submitted, after completion, or when the option is not one of
// the question's options.
func (r *Runtime) Select(option string) {
	if r.submitted || r.completed {
		return
	}
	q, ok := r.Question()
	if !ok {
		return
	}
	for _, o := range q.Options {
		if o == option {
			r.selected = option
			r.picked = true
			return
		}
	}
}

// Submit locks in the selected option and updates the score and the
// correct/incorrect counters. A submit without a selection, a repeated
// submit, or a submit after completion is a no-op, so an answer can never
// be counted twice.
func (r *Runtime) Submit() {
	if !r.picked || r.submitted || r.completed {
		return
	}
	q, ok := r.Question()
	if !ok {
		return
	}
	r.submitted = true
	if r.selected == q.CorrectAnswer {
		r.score++
		r.correct++
	} else {
		r.incorrect++
	}
}

// Advance moves to the next question, or completes the quiz when the
// current question was the last. Ignored unless the current answer has
// been submitted.
func (r *Runtime) Advance() {
	if !r.submitted || r.completed {
		return
	}
	if r.index == len(r.questions)-1 {
		r.completed = true
		return
	}
	r.index++
	r.selected = ""
	r.picked = false
	r.submitted = false
}

// Restart returns to the first question with all counters reset.
func (r *Runtime) Restart() {
	r.index = 0
	r.selected = ""
	r.picked = false
	r.submitted = false
	r.completed = false
	r.score = 0
	r.correct = 0
	r.incorrect = 0
}

// Question returns the current question, or ok=false for an empty quiz.
func (r *Runtime) Question() (models.QuizQuestion, bool) {
	if len(r.questions) == 0 {
		return models.QuizQuestion{}, false
	}
	return r.questions[r.index], true
}

// Index returns the zero-based index of the current question.
func (r *Runtime) Index() int { return r.index }

// Len returns the number of questions.
func (r *Runtime) Len() int { return len(r.questions) }

// Selected returns the currently selected option, or "".
func (r *Runtime) Selected() string { return r.selected }

// Score returns the number of correctly answered questions.
func (r *Runtime) Score() int { return r.score }

// Correct returns the running correct-answer counter.
func (r *Runtime) Correct() int { return r.correct }

// Incorrect returns the running incorrect-answer counter.
func (r *Runtime) Incorrect() int { return r.incorrect }

// Completed reports whether the quiz has finished.
func (r *Runtime) Completed() bool { return r.completed }
