package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masar-app/masar/internal/types"
)

// stubClient returns canned responses for each call, in order.
type stubClient struct {
	textResponses []string
	jsonResponses []string
	textErr       error
	jsonErr       error
	prompts       []string
}

func (c *stubClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.textErr != nil {
		return "", c.textErr
	}
	resp := c.textResponses[0]
	c.textResponses = c.textResponses[1:]
	return resp, nil
}

func (c *stubClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.jsonErr != nil {
		return "", c.jsonErr
	}
	resp := c.jsonResponses[0]
	c.jsonResponses = c.jsonResponses[1:]
	return resp, nil
}

func (c *stubClient) Close() error { return nil }

func TestSummarySuccess(t *testing.T) {
	stub := &stubClient{textResponses: []string{"  A sharper summary.  "}}
	svc := NewService(stub)

	result, err := svc.Summary(context.Background(), "old summary", "Engineer", types.TargetCompanyNone, types.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, "A sharper summary.", result)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Engineer")
	assert.Contains(t, stub.prompts[0], "in English")
	assert.Contains(t, stub.prompts[0], "old summary")
}

func TestSummaryFailureKeepsOriginal(t *testing.T) {
	stub := &stubClient{textErr: errors.New("quota exceeded")}
	svc := NewService(stub)

	result, err := svc.Summary(context.Background(), "original text", "Engineer", types.TargetCompanyNone, types.LanguageArabic)

	assert.Error(t, err)
	assert.Equal(t, "original text", result)
}

func TestSummaryTargetCompanyClause(t *testing.T) {
	tests := []struct {
		name       string
		target     types.TargetCompany
		wantClause bool
	}{
		{"named company mentioned", types.TargetCompanyAramco, true},
		{"unset company omitted", types.TargetCompanyNone, false},
		{"empty company omitted", types.TargetCompany(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{textResponses: []string{"done"}}
			svc := NewService(stub)

			_, err := svc.Summary(context.Background(), "s", "Engineer", tt.target, types.LanguageArabic)
			require.NoError(t, err)

			require.Len(t, stub.prompts, 1)
			if tt.wantClause {
				assert.Contains(t, stub.prompts[0], string(tt.target))
			} else {
				assert.NotContains(t, stub.prompts[0], "TargetCompany")
			}
		})
	}
}

func TestBulletsFailureKeepsOriginal(t *testing.T) {
	stub := &stubClient{textErr: errors.New("unreachable")}
	svc := NewService(stub)

	result, err := svc.Bullets(context.Background(), "Engineer", "Acme", "built things", types.LanguageEnglish)

	assert.Error(t, err)
	assert.Equal(t, "built things", result)
}

func TestBulletsSuccess(t *testing.T) {
	stub := &stubClient{textResponses: []string{"- Shipped the thing\n- Cut costs"}}
	svc := NewService(stub)

	result, err := svc.Bullets(context.Background(), "Engineer", "Acme", "built things", types.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, "- Shipped the thing\n- Cut costs", result)
	assert.Contains(t, stub.prompts[0], "Acme")
}

func TestSkillsSuccess(t *testing.T) {
	stub := &stubClient{textResponses: []string{"Go, SQL, - Docker\nKubernetes"}}
	svc := NewService(stub)

	skills, err := svc.Skills(context.Background(), "Backend Engineer", types.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "Docker", "Kubernetes"}, skills)
}

func TestSkillsFailureReturnsEmptyList(t *testing.T) {
	stub := &stubClient{textErr: errors.New("timeout")}
	svc := NewService(stub)

	skills, err := svc.Skills(context.Background(), "Backend Engineer", types.LanguageArabic)

	assert.Error(t, err)
	require.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestAnalyzeSuccess(t *testing.T) {
	stub := &stubClient{jsonResponses: []string{"```json\n" +
		`{"score": 88, "missingKeywords": ["CI/CD"], "feedback": "Solid.", "companyFit": "Good match."}` +
		"\n```"}}
	svc := NewService(stub)

	cv := types.NewCVRecord()
	cv.JobTitle = "Engineer"
	cv.Experience = []types.ExperienceEntry{{Title: "Dev", Company: "Acme", Description: "work"}}

	analysis, err := svc.Analyze(context.Background(), cv)

	require.NoError(t, err)
	assert.Equal(t, 88, analysis.Score)
	assert.Equal(t, []string{"CI/CD"}, analysis.MissingKeywords)
	assert.Contains(t, stub.prompts[0], "Dev at Acme: work")
}

func TestAnalyzeFailureReturnsNeutral(t *testing.T) {
	tests := []struct {
		name string
		stub *stubClient
	}{
		{"client error", &stubClient{jsonErr: errors.New("down")}},
		{"schema violation", &stubClient{jsonResponses: []string{`{"score": 150}`}}},
		{"not json", &stubClient{jsonResponses: []string{"sorry, I cannot help"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.stub)

			analysis, err := svc.Analyze(context.Background(), types.NewCVRecord())

			assert.Error(t, err)
			require.NotNil(t, analysis)
			assert.Equal(t, types.NeutralAnalysis(), analysis)
		})
	}
}

func TestFromFreeTextSuccess(t *testing.T) {
	stub := &stubClient{jsonResponses: []string{`{
		"fullName": "Sara Ali",
		"jobTitle": "Data Analyst",
		"email": "sara@example.com",
		"skills": ["SQL", "Python"],
		"experience": [{"title": "Analyst", "company": "Beta", "startDate": "2021", "endDate": "2023", "description": "dashboards"}],
		"education": [{"degree": "BSc", "school": "KSU", "year": "2020"}]
	}`}}
	svc := NewService(stub)

	cv, err := svc.FromFreeText(context.Background(), "free text here", types.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, "Sara Ali", cv.FullName)
	assert.Equal(t, "Data Analyst", cv.JobTitle)
	assert.Equal(t, types.LanguageEnglish, cv.Language)
	assert.Equal(t, []string{"SQL", "Python"}, cv.Skills)
	require.Len(t, cv.Experience, 1)
	assert.Equal(t, "Analyst", cv.Experience[0].Title)
	assert.NotEmpty(t, cv.Experience[0].ID)
	require.Len(t, cv.Education, 1)
	assert.NotEmpty(t, cv.Education[0].ID)
}

func TestFromFreeTextFailurePropagates(t *testing.T) {
	stub := &stubClient{jsonErr: errors.New("overloaded")}
	svc := NewService(stub)

	cv, err := svc.FromFreeText(context.Background(), "whatever", types.LanguageArabic)

	assert.Nil(t, cv)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestFromFreeTextSchemaViolationPropagates(t *testing.T) {
	stub := &stubClient{jsonResponses: []string{`{"skills": "not a list"}`}}
	svc := NewService(stub)

	cv, err := svc.FromFreeText(context.Background(), "whatever", types.LanguageArabic)

	assert.Nil(t, cv)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.True(t, strings.Contains(err.Error(), "schema"))
}
