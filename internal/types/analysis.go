package types

// ATSAnalysis is the structured result of an AI review of a CV: an ATS-style
// score plus keyword and company-fit feedback.
type ATSAnalysis struct {
	Score           int      `json:"score"`
	MissingKeywords []string `json:"missingKeywords"`
	Feedback        string   `json:"feedback"`
	CompanyFit      string   `json:"companyFit"`
}

// NeutralAnalysis is the safe default substituted when the analysis call
// fails; callers must never see an error from analysis.
func NeutralAnalysis() *ATSAnalysis {
	return &ATSAnalysis{
		Score:           75,
		MissingKeywords: []string{"Leadership", "Communication", "English"},
		Feedback:        "Could not complete analysis at this time.",
		CompanyFit:      "Check company values.",
	}
}
