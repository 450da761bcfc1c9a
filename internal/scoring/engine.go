package scoring

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrMissingQuestionContext is returned when a submission references a question
// that was not resolved from the store. The whole submission is rejected: silently
// skipping the question would understate the quiz's true max points.
var ErrMissingQuestionContext = errors.New("submission references an unknown question")

// QuestionType is the closed set of grading rules. It is fixed once a question
// is authored.
type QuestionType string

const (
	OneAnswer      QuestionType = "OneAnswer"
	MultipleAnswer QuestionType = "MultipleAnswer"
	TrueOrFalse    QuestionType = "TrueOrFalse"
	FillInTheBlank QuestionType = "FillInTheBlank"
)

// MultipleAnswerSeparator joins the selected option texts of a MultipleAnswer
// submission into one body string. Option text must not contain it.
const MultipleAnswerSeparator = "|"

// CandidateAnswer is one authored option for a question.
type CandidateAnswer struct {
	ID      uuid.UUID
	Body    string
	Correct bool
}

// QuestionContext is the read-only bundle the engine needs to grade one
// question, resolved from storage before scoring.
type QuestionContext struct {
	QuestionID uuid.UUID
	QuizID     uuid.UUID
	Type       QuestionType
	Points     float64
	Answers    []CandidateAnswer
}

// SubmittedAnswer is one entry of a quiz submission. For MultipleAnswer
// questions Body carries the selected option texts joined by "|".
type SubmittedAnswer struct {
	QuestionID uuid.UUID
	Body       string
}

// AnswerOutcome is the engine's judgement for one submitted option or text,
// destined to become a persisted user-answer audit row.
type AnswerOutcome struct {
	QuestionID uuid.UUID
	Body       string
	Correct    bool
}

// Result aggregates one scored submission. It is immutable once returned;
// persistence assigns it a durable identity.
type Result struct {
	QuizID     uuid.UUID
	Points     float64
	MaxPoints  float64
	Outcomes   []AnswerOutcome
	DateOfPlay time.Time
}

// Score grades a submission against the resolved question contexts.
//
// It is a pure function: no I/O, no shared state, and the only error it can
// return is ErrMissingQuestionContext. Malformed answer bodies never fail,
// they just don't match. Outcomes preserve submission order, one per question
// for single-valued types and one per selected option for MultipleAnswer.
func Score(submission []SubmittedAnswer, contexts map[uuid.UUID]QuestionContext) (Result, error) {
	res := Result{DateOfPlay: time.Now().UTC()}

	for _, ans := range submission {
		qc, ok := contexts[ans.QuestionID]
		if !ok {
			return Result{}, ErrMissingQuestionContext
		}
		if res.QuizID == uuid.Nil {
			res.QuizID = qc.QuizID
		}

		res.MaxPoints += qc.Points

		switch qc.Type {
		case MultipleAnswer:
			outcomes, earned := scoreMultipleAnswer(qc, ans.Body)
			res.Outcomes = append(res.Outcomes, outcomes...)
			res.Points += earned
		case FillInTheBlank:
			correct := matchesCorrect(qc.Answers, ans.Body, strings.EqualFold)
			res.Outcomes = append(res.Outcomes, AnswerOutcome{
				QuestionID: qc.QuestionID,
				Body:       ans.Body,
				Correct:    correct,
			})
			if correct {
				res.Points += qc.Points
			}
		default: // OneAnswer, TrueOrFalse
			correct := matchesCorrect(qc.Answers, ans.Body, func(a, b string) bool { return a == b })
			res.Outcomes = append(res.Outcomes, AnswerOutcome{
				QuestionID: qc.QuestionID,
				Body:       ans.Body,
				Correct:    correct,
			})
			if correct {
				res.Points += qc.Points
			}
		}
	}

	return res, nil
}

// matchesCorrect reports whether body matches any candidate flagged correct.
// Zero correct candidates means nothing can match, which grades as zero
// credit rather than an error.
func matchesCorrect(answers []CandidateAnswer, body string, eq func(a, b string) bool) bool {
	for _, a := range answers {
		if a.Correct && eq(a.Body, body) {
			return true
		}
	}
	return false
}

// scoreMultipleAnswer grades an exact-set selection: full points only when the
// submitted tokens cover every correct candidate and nothing else. Partial
// credit is not supported.
func scoreMultipleAnswer(qc QuestionContext, body string) ([]AnswerOutcome, float64) {
	correctBodies := make(map[string]bool)
	for _, a := range qc.Answers {
		if a.Correct {
			correctBodies[a.Body] = true
		}
	}

	var tokens []string
	if body != "" {
		tokens = strings.Split(body, MultipleAnswerSeparator)
	}

	outcomes := make([]AnswerOutcome, 0, len(tokens))
	matched := make(map[string]bool)
	wrong := 0
	for _, tok := range tokens {
		ok := correctBodies[tok]
		outcomes = append(outcomes, AnswerOutcome{
			QuestionID: qc.QuestionID,
			Body:       tok,
			Correct:    ok,
		})
		if ok {
			matched[tok] = true
		} else {
			wrong++
		}
	}

	if wrong == 0 && len(matched) == len(correctBodies) && len(tokens) == len(matched) {
		return outcomes, qc.Points
	}
	return outcomes, 0
}

// Percentage derives the display score for a result. A zero max is defined as
// zero percent so an empty quiz never divides by zero.
func Percentage(points, maxPoints float64) float64 {
	if maxPoints <= 0 {
		return 0
	}
	return math.Round(points / maxPoints * 100)
}
