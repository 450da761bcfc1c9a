package scoring

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

var quizID = uuid.New()

func question(t *testing.T, qType QuestionType, points float64, answers map[string]bool) QuestionContext {
	t.Helper()
	qc := QuestionContext{
		QuestionID: uuid.New(),
		QuizID:     quizID,
		Type:       qType,
		Points:     points,
	}
	for body, correct := range answers {
		qc.Answers = append(qc.Answers, CandidateAnswer{ID: uuid.New(), Body: body, Correct: correct})
	}
	return qc
}

func contextMap(qcs ...QuestionContext) map[uuid.UUID]QuestionContext {
	m := make(map[uuid.UUID]QuestionContext, len(qcs))
	for _, qc := range qcs {
		m[qc.QuestionID] = qc
	}
	return m
}

func TestScore_EmptySubmission(t *testing.T) {
	res, err := Score(nil, map[uuid.UUID]QuestionContext{})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Points != 0 || res.MaxPoints != 0 {
		t.Errorf("Expected 0/0, got %v/%v", res.Points, res.MaxPoints)
	}
	if len(res.Outcomes) != 0 {
		t.Errorf("Expected no outcomes, got %d", len(res.Outcomes))
	}
}

func TestScore_OneAnswer(t *testing.T) {
	q1 := question(t, OneAnswer, 2, map[string]bool{"Paris": true, "London": false})

	tests := []struct {
		name    string
		body    string
		points  float64
		correct bool
	}{
		{"exact match", "Paris", 2, true},
		{"wrong option", "London", 0, false},
		{"case differs", "paris", 0, false},
		{"surrounding whitespace", " Paris", 0, false},
		{"empty body", "", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Score([]SubmittedAnswer{{QuestionID: q1.QuestionID, Body: tc.body}}, contextMap(q1))
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if res.Points != tc.points {
				t.Errorf("Expected %v points, got %v", tc.points, res.Points)
			}
			if res.MaxPoints != 2 {
				t.Errorf("Expected max points 2, got %v", res.MaxPoints)
			}
			if len(res.Outcomes) != 1 {
				t.Fatalf("Expected 1 outcome, got %d", len(res.Outcomes))
			}
			out := res.Outcomes[0]
			if out.QuestionID != q1.QuestionID || out.Body != tc.body || out.Correct != tc.correct {
				t.Errorf("Unexpected outcome %+v", out)
			}
		})
	}
}

func TestScore_TrueOrFalse(t *testing.T) {
	q := question(t, TrueOrFalse, 1, map[string]bool{"True": true, "False": false})

	res, err := Score([]SubmittedAnswer{{QuestionID: q.QuestionID, Body: "True"}}, contextMap(q))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Points != 1 || !res.Outcomes[0].Correct {
		t.Errorf("Expected full credit for exact literal, got %v points", res.Points)
	}

	res, _ = Score([]SubmittedAnswer{{QuestionID: q.QuestionID, Body: "true"}}, contextMap(q))
	if res.Points != 0 || res.Outcomes[0].Correct {
		t.Errorf("TrueOrFalse match must be case-sensitive, got %v points", res.Points)
	}
}

func TestScore_FillInTheBlank_CaseInsensitive(t *testing.T) {
	q := question(t, FillInTheBlank, 1, map[string]bool{"Einstein": true})

	for _, body := range []string{"Einstein", "einstein", "EINSTEIN", "eInStEiN"} {
		res, err := Score([]SubmittedAnswer{{QuestionID: q.QuestionID, Body: body}}, contextMap(q))
		if err != nil {
			t.Fatalf("Score returned error: %v", err)
		}
		if res.Points != 1 || !res.Outcomes[0].Correct {
			t.Errorf("Expected full credit for %q, got %v points", body, res.Points)
		}
		if res.Outcomes[0].Body != body {
			t.Errorf("Outcome must keep the submitted casing, got %q", res.Outcomes[0].Body)
		}
	}

	res, _ := Score([]SubmittedAnswer{{QuestionID: q.QuestionID, Body: " einstein "}}, contextMap(q))
	if res.Points != 0 {
		t.Errorf("Whitespace is not trimmed, expected 0 points, got %v", res.Points)
	}
}

func TestScore_NoCorrectCandidate(t *testing.T) {
	q := question(t, OneAnswer, 3, map[string]bool{"A": false, "B": false})

	res, err := Score([]SubmittedAnswer{{QuestionID: q.QuestionID, Body: "A"}}, contextMap(q))
	if err != nil {
		t.Fatalf("Zero correct candidates is not an error: %v", err)
	}
	if res.Points != 0 || res.MaxPoints != 3 {
		t.Errorf("Expected 0/3, got %v/%v", res.Points, res.MaxPoints)
	}
}

func TestScore_MultipleAnswer(t *testing.T) {
	q := question(t, MultipleAnswer, 3, map[string]bool{"A": true, "B": true, "C": false})

	tests := []struct {
		name     string
		body     string
		points   float64
		outcomes int
	}{
		{"exact set", "A|B", 3, 2},
		{"exact set reordered", "B|A", 3, 2},
		{"missing one correct", "A", 0, 1},
		{"extra wrong option", "A|B|C", 0, 3},
		{"wrong replaces correct", "A|C", 0, 2},
		{"duplicate correct token", "A|A", 0, 2},
		{"empty body", "", 0, 0},
		{"unknown token", "A|B|bogus", 0, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Score([]SubmittedAnswer{{QuestionID: q.QuestionID, Body: tc.body}}, contextMap(q))
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if res.Points != tc.points {
				t.Errorf("Expected %v points, got %v", tc.points, res.Points)
			}
			if res.MaxPoints != 3 {
				t.Errorf("Expected max points 3, got %v", res.MaxPoints)
			}
			if len(res.Outcomes) != tc.outcomes {
				t.Errorf("Expected %d outcomes, got %d", tc.outcomes, len(res.Outcomes))
			}
		})
	}
}

func TestScore_MultipleAnswer_PerTokenFlags(t *testing.T) {
	q := question(t, MultipleAnswer, 3, map[string]bool{"A": true, "B": true, "C": false})

	res, err := Score([]SubmittedAnswer{{QuestionID: q.QuestionID, Body: "A|C"}}, contextMap(q))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Points != 0 {
		t.Errorf("Expected 0 points, got %v", res.Points)
	}
	want := []struct {
		body    string
		correct bool
	}{{"A", true}, {"C", false}}
	if len(res.Outcomes) != len(want) {
		t.Fatalf("Expected %d outcomes, got %d", len(want), len(res.Outcomes))
	}
	for i, w := range want {
		if res.Outcomes[i].Body != w.body || res.Outcomes[i].Correct != w.correct {
			t.Errorf("Outcome %d: expected {%s %v}, got {%s %v}",
				i, w.body, w.correct, res.Outcomes[i].Body, res.Outcomes[i].Correct)
		}
	}
}

func TestScore_MixedSubmission(t *testing.T) {
	q1 := question(t, OneAnswer, 2, map[string]bool{"Paris": true, "London": false})
	q2 := question(t, MultipleAnswer, 3, map[string]bool{"A": true, "B": true, "C": false})
	q3 := question(t, FillInTheBlank, 1, map[string]bool{"Einstein": true})

	submission := []SubmittedAnswer{
		{QuestionID: q1.QuestionID, Body: "Paris"},
		{QuestionID: q2.QuestionID, Body: "A|C"},
		{QuestionID: q3.QuestionID, Body: "einstein"},
	}

	res, err := Score(submission, contextMap(q1, q2, q3))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.Points != 3 {
		t.Errorf("Expected 3 points, got %v", res.Points)
	}
	if res.MaxPoints != 6 {
		t.Errorf("Expected max points 6, got %v", res.MaxPoints)
	}
	if res.QuizID != quizID {
		t.Errorf("Expected quiz ID %v, got %v", quizID, res.QuizID)
	}
	// One outcome for Q1, two for Q2's tokens, one for Q3, in submission order.
	if len(res.Outcomes) != 4 {
		t.Fatalf("Expected 4 outcomes, got %d", len(res.Outcomes))
	}
	wantQuestions := []uuid.UUID{q1.QuestionID, q2.QuestionID, q2.QuestionID, q3.QuestionID}
	for i, qid := range wantQuestions {
		if res.Outcomes[i].QuestionID != qid {
			t.Errorf("Outcome %d attributed to wrong question", i)
		}
	}
	if pct := Percentage(res.Points, res.MaxPoints); pct != 50 {
		t.Errorf("Expected 50%%, got %v", pct)
	}
}

func TestScore_MissingQuestionContext(t *testing.T) {
	q := question(t, OneAnswer, 2, map[string]bool{"Paris": true})

	submission := []SubmittedAnswer{
		{QuestionID: q.QuestionID, Body: "Paris"},
		{QuestionID: uuid.New(), Body: "anything"},
	}

	res, err := Score(submission, contextMap(q))
	if !errors.Is(err, ErrMissingQuestionContext) {
		t.Fatalf("Expected ErrMissingQuestionContext, got %v", err)
	}
	if res.Points != 0 || res.MaxPoints != 0 || len(res.Outcomes) != 0 {
		t.Errorf("No partial result may be returned, got %+v", res)
	}
}

func TestScore_Bounds(t *testing.T) {
	q1 := question(t, OneAnswer, 2, map[string]bool{"Paris": true})
	q2 := question(t, TrueOrFalse, 1.5, map[string]bool{"True": true, "False": false})

	submissions := [][]SubmittedAnswer{
		{{QuestionID: q1.QuestionID, Body: "Paris"}, {QuestionID: q2.QuestionID, Body: "True"}},
		{{QuestionID: q1.QuestionID, Body: "x"}, {QuestionID: q2.QuestionID, Body: "False"}},
		{{QuestionID: q1.QuestionID, Body: ""}},
	}

	for _, sub := range submissions {
		res, err := Score(sub, contextMap(q1, q2))
		if err != nil {
			t.Fatalf("Score returned error: %v", err)
		}
		if res.Points < 0 || res.Points > res.MaxPoints {
			t.Errorf("Invariant violated: points %v, max %v", res.Points, res.MaxPoints)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	q1 := question(t, OneAnswer, 2, map[string]bool{"Paris": true, "London": false})
	q2 := question(t, MultipleAnswer, 3, map[string]bool{"A": true, "B": true, "C": false})
	submission := []SubmittedAnswer{
		{QuestionID: q1.QuestionID, Body: "Paris"},
		{QuestionID: q2.QuestionID, Body: "B|A"},
	}
	contexts := contextMap(q1, q2)

	first, err := Score(submission, contexts)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	second, err := Score(submission, contexts)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if first.Points != second.Points || first.MaxPoints != second.MaxPoints {
		t.Errorf("Scoring is not deterministic: %v/%v vs %v/%v",
			first.Points, first.MaxPoints, second.Points, second.MaxPoints)
	}
	if len(first.Outcomes) != len(second.Outcomes) {
		t.Fatalf("Outcome counts differ: %d vs %d", len(first.Outcomes), len(second.Outcomes))
	}
	for i := range first.Outcomes {
		if first.Outcomes[i] != second.Outcomes[i] {
			t.Errorf("Outcome %d differs between runs", i)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name      string
		points    float64
		maxPoints float64
		want      float64
	}{
		{"half", 3, 6, 50},
		{"full", 6, 6, 100},
		{"zero score", 0, 6, 0},
		{"zero max", 0, 0, 0},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.points, tc.maxPoints); got != tc.want {
				t.Errorf("Percentage(%v, %v) = %v, want %v", tc.points, tc.maxPoints, got, tc.want)
			}
		})
	}
}
