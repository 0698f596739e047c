package models

// CriterionResult is the outcome of a single quality sub-criterion.
type CriterionResult struct {
	Passed  bool   `json:"passed"`
	Score   int    `json:"score"`
	Message string `json:"message"`
}

// VerificationFeedback groups the four sub-criterion results of the
// automated quiz quality check.
type VerificationFeedback struct {
	ConceptualCorrectness CriterionResult `json:"conceptual_correctness"`
	QuestionClarity       CriterionResult `json:"question_clarity"`
	PlagiarismCheck       CriterionResult `json:"plagiarism_check"`
	SubjectAlignment      CriterionResult `json:"subject_alignment"`
}

// VerificationResult is the overall verdict of the automated quality
// check. Passed holds exactly when Score >= the passing threshold.
type VerificationResult struct {
	Passed      bool                 `json:"passed"`
	Score       int                  `json:"score"`
	Feedback    VerificationFeedback `json:"feedback"`
	Suggestions []string             `json:"suggestions"`
}

// PublishingInfo packages the authorization verdict for a publish attempt.
type PublishingInfo struct {
	CanPublish           bool           `json:"can_publish"`
	RequiresVerification bool           `json:"requires_verification"`
	Reason               string         `json:"reason"`
	AuthorType           QuizAuthorType `json:"author_type"`
}
