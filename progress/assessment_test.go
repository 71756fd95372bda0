package progress

import "testing"

func tenQuestions() AssessmentDef {
	def := AssessmentDef{PassingScore: 70}
	keys := []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10"}
	for _, k := range keys {
		def.Questions = append(def.Questions, QuestionDef{Key: k, CorrectAnswer: 2})
	}
	return def
}

func TestScoreAssessment_InclusiveThreshold(t *testing.T) {
	def := tenQuestions()
	answers := map[string]int{}
	for i, q := range def.Questions {
		if i < 7 {
			answers[q.Key] = 2
		} else {
			answers[q.Key] = 0
		}
	}

	res, err := ScoreAssessment(def, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 70 {
		t.Fatalf("expected score=70, got %v", res.Score)
	}
	if !res.Passed {
		t.Fatalf("exactly the passing score must pass")
	}
}

func TestScoreAssessment_JustBelowThresholdFails(t *testing.T) {
	def := tenQuestions()
	answers := map[string]int{}
	for i, q := range def.Questions {
		if i < 6 {
			answers[q.Key] = 2
		}
	}

	res, err := ScoreAssessment(def, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 60 || res.Passed {
		t.Fatalf("expected 60/failed, got %v passed=%v", res.Score, res.Passed)
	}
}

func TestScoreAssessment_UnansweredCountAsWrong(t *testing.T) {
	def := AssessmentDef{
		PassingScore: 50,
		Questions: []QuestionDef{
			{Key: "q1", CorrectAnswer: 1},
			{Key: "q2", CorrectAnswer: 3},
		},
	}

	res, err := ScoreAssessment(def, map[string]int{"q1": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 50 || !res.Passed || res.Correct != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestScoreAssessment_IgnoresUnknownKeys(t *testing.T) {
	def := AssessmentDef{
		PassingScore: 100,
		Questions:    []QuestionDef{{Key: "q1", CorrectAnswer: 0}},
	}

	res, err := ScoreAssessment(def, map[string]int{"q1": 0, "ghost": 0, "other": 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 100 || res.Total != 1 {
		t.Fatalf("stray keys altered the score: %+v", res)
	}
}

func TestScoreAssessment_NoQuestions(t *testing.T) {
	if _, err := ScoreAssessment(AssessmentDef{PassingScore: 70}, nil); err != ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}
