package progress

// AssessmentResult is the outcome of scoring one submission
type AssessmentResult struct {
	Score   float64 `json:"score"` // 0-100
	Passed  bool    `json:"passed"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
}

// ScoreAssessment grades a submission against a module's question set.
// answers maps question keys to selected option indexes. Unanswered
// questions count as incorrect; keys that match no question are ignored.
// The defined question count is the denominator, so stray keys can never
// inflate the score. Hitting the passing score exactly counts as a pass.
func ScoreAssessment(def AssessmentDef, answers map[string]int) (AssessmentResult, error) {
	if len(def.Questions) == 0 {
		return AssessmentResult{}, ErrNoQuestions
	}

	correct := 0
	for _, q := range def.Questions {
		if selected, ok := answers[q.Key]; ok && selected == q.CorrectAnswer {
			correct++
		}
	}

	score := float64(correct) / float64(len(def.Questions)) * 100
	return AssessmentResult{
		Score:   score,
		Passed:  score >= float64(def.PassingScore),
		Correct: correct,
		Total:   len(def.Questions),
	}, nil
}
