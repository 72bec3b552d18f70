package models

import "time"

// DocumentStatus reflects the server-side processing state of a document.
type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// GenerationKind identifies one of the independent AI-derived artifacts
// that can be attached to a document.
type GenerationKind string

const (
	KindSummary GenerationKind = "summary"
	KindQA      GenerationKind = "qa"
	KindQuiz    GenerationKind = "quiz"
)

// Kinds lists all generation kinds in a stable order.
func Kinds() []GenerationKind {
	return []GenerationKind{KindSummary, KindQA, KindQuiz}
}

// QAPair is a single generated question/answer item.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is a single multiple-choice quiz item. CorrectAnswer is
// always one of Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Document is an uploaded document together with whatever artifacts have
// been generated for it so far. Field names follow the backend JSON.
type Document struct {
	ID               string         `json:"_id"`
	OriginalFilename string         `json:"originalFilename"`
	FileType         string         `json:"fileType"`
	Status           DocumentStatus `json:"status"`
	Summary          string         `json:"summary,omitempty"`
	QA               []QAPair       `json:"generatedQuestions,omitempty"`
	Quiz             []QuizQuestion `json:"generatedQuiz,omitempty"`
	UploadedAt       time.Time      `json:"uploadedAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// MergeGenerated folds a generation response into the currently held value
// of the same document and reports whether it was applied.
//
// The response is a complete document as the server saw it when the
// generation for kind finished, but two generations requested back to back
// may resolve out of order. Only the field group owned by kind (plus status
// and updatedAt) overwrites the held value; artifacts of other kinds are
// taken from the response only when the held value does not have them yet,
// so a slightly older snapshot can never erase a newer artifact.
//
// A response older than the held value (by updatedAt) is stale and is not
// applied at all. Equal timestamps are applied.
func (d Document) MergeGenerated(kind GenerationKind, resp Document) (Document, bool) {
	if resp.UpdatedAt.Before(d.UpdatedAt) {
		return d, false
	}

	out := d
	out.Status = resp.Status
	out.UpdatedAt = resp.UpdatedAt

	switch kind {
	case KindSummary:
		out.Summary = resp.Summary
	case KindQA:
		out.QA = resp.QA
	case KindQuiz:
		out.Quiz = resp.Quiz
	}

	// Fill in artifacts this response happens to carry but does not own.
	if out.Summary == "" && resp.Summary != "" {
		out.Summary = resp.Summary
	}
	if len(out.QA) == 0 && len(resp.QA) > 0 {
		out.QA = resp.QA
	}
	if len(out.Quiz) == 0 && len(resp.Quiz) > 0 {
		out.Quiz = resp.Quiz
	}

	return out, true
}

// HasArtifact reports whether the artifact of the given kind is present.
func (d Document) HasArtifact(kind GenerationKind) bool {
	switch kind {
	case KindSummary:
		return d.Summary != ""
	case KindQA:
		return len(d.QA) > 0
	case KindQuiz:
		return len(d.Quiz) > 0
	}
	return false
}
