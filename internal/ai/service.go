package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/masar-app/masar/internal/prompts"
	"github.com/masar-app/masar/internal/schemas"
	"github.com/masar-app/masar/internal/types"
)

// Service exposes the CV content-generation operations on top of a Client.
// The service is stateless and safe for concurrent use; single-flight per
// editing control is the caller's concern.
type Service struct {
	client Client
}

// NewService creates a Service backed by the given client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// langInstruction phrases the output-language constraint used by prompts.
func langInstruction(lang types.Language) string {
	if lang == types.LanguageEnglish {
		return "in English"
	}
	return "in Arabic"
}

// Summary rewrites a professional summary to be ATS-friendly. On any
// failure the original summary is returned unchanged alongside the error;
// the returned value is always usable.
func (s *Service) Summary(ctx context.Context, current, jobTitle string, target types.TargetCompany, lang types.Language) (string, error) {
	companyClause := ""
	if target != types.TargetCompanyNone && target != "" {
		companyClause = prompts.Format(prompts.MustGet("generation.json", "summary_company_clause"), map[string]string{
			"TargetCompany": string(target),
		})
	}

	prompt := prompts.Format(prompts.MustGet("generation.json", "summary"), map[string]string{
		"LangInstruction": langInstruction(lang),
		"JobTitle":        jobTitle,
		"CompanyClause":   companyClause,
		"Summary":         current,
	})

	text, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[AI] summary generation failed, keeping original: %v", err)
		return current, err
	}
	if strings.TrimSpace(text) == "" {
		return current, nil
	}
	return strings.TrimSpace(text), nil
}

// Bullets rewrites an experience description into punchy bullet points. On
// failure the original description is returned unchanged.
func (s *Service) Bullets(ctx context.Context, title, company, description string, lang types.Language) (string, error) {
	prompt := prompts.Format(prompts.MustGet("generation.json", "bullets"), map[string]string{
		"LangInstruction": langInstruction(lang),
		"Title":           title,
		"Company":         company,
		"Description":     description,
	})

	text, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[AI] bullet generation failed, keeping original: %v", err)
		return description, err
	}
	if strings.TrimSpace(text) == "" {
		return description, nil
	}
	return strings.TrimSpace(text), nil
}

// Skills suggests skills for a job title. On failure an empty list is
// returned, never nil and never an error-only result.
func (s *Service) Skills(ctx context.Context, jobTitle string, lang types.Language) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet("generation.json", "skills"), map[string]string{
		"LangInstruction": langInstruction(lang),
		"JobTitle":        jobTitle,
	})

	text, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[AI] skill generation failed: %v", err)
		return []string{}, err
	}
	return SplitSkillList(text), nil
}

// Analyze scores a CV for ATS fit. The structured response is checked
// against the embedded schema; any failure substitutes the neutral default
// analysis so callers never crash on a bad model response.
func (s *Service) Analyze(ctx context.Context, cv *types.CVRecord) (*types.ATSAnalysis, error) {
	experience := make([]string, 0, len(cv.Experience))
	for _, exp := range cv.Experience {
		experience = append(experience, fmt.Sprintf("%s at %s: %s", exp.Title, exp.Company, exp.Description))
	}

	prompt := prompts.Format(prompts.MustGet("analysis.json", "analyze"), map[string]string{
		"JobTitle":        cv.JobTitle,
		"TargetCompany":   string(cv.TargetCompany),
		"Language":        string(cv.Language),
		"Summary":         cv.Summary,
		"Skills":          strings.Join(cv.Skills, ", "),
		"Experience":      strings.Join(experience, "; "),
		"LangInstruction": langInstruction(cv.Language),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("[AI] analysis failed, using neutral result: %v", err)
		return types.NeutralAnalysis(), err
	}

	payload := []byte(CleanJSONBlock(raw))
	if err := schemas.ValidateBytes(schemas.ATSAnalysis, payload); err != nil {
		log.Printf("[AI] analysis response failed schema validation: %v", err)
		return types.NeutralAnalysis(), err
	}

	var analysis types.ATSAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		log.Printf("[AI] analysis response unmarshal failed: %v", err)
		return types.NeutralAnalysis(), err
	}
	if analysis.MissingKeywords == nil {
		analysis.MissingKeywords = []string{}
	}
	return &analysis, nil
}

// extractedCV mirrors the JSON shape the extraction prompt requests.
type extractedCV struct {
	FullName   string   `json:"fullName"`
	JobTitle   string   `json:"jobTitle"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Location   string   `json:"location"`
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Description string `json:"description"`
	} `json:"experience"`
	Education []struct {
		Degree string `json:"degree"`
		School string `json:"school"`
		Year   string `json:"year"`
	} `json:"education"`
}

// FromFreeText extracts a structured CV from free-form text. Unlike the
// other operations this surfaces failures to the caller: there is no
// sensible partial fallback for a full extraction.
func (s *Service) FromFreeText(ctx context.Context, text string, lang types.Language) (*types.CVRecord, error) {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "from_text"), map[string]string{
		"LangInstruction": langInstruction(lang),
		"Text":            text,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Message: "free-text extraction failed", Cause: err}
	}

	payload := []byte(CleanJSONBlock(raw))
	if err := schemas.ValidateBytes(schemas.CVExtract, payload); err != nil {
		return nil, &GenerationError{Message: "extraction response failed schema validation", Cause: err}
	}

	var extracted extractedCV
	if err := json.Unmarshal(payload, &extracted); err != nil {
		return nil, &GenerationError{Message: "failed to parse extraction response", Cause: err}
	}

	cv := types.NewCVRecord()
	cv.FullName = extracted.FullName
	cv.JobTitle = extracted.JobTitle
	cv.Email = extracted.Email
	cv.Phone = extracted.Phone
	cv.Location = extracted.Location
	cv.Summary = extracted.Summary
	cv.Language = lang
	if extracted.Skills != nil {
		cv.Skills = extracted.Skills
	}
	for _, exp := range extracted.Experience {
		cv.Experience = append(cv.Experience, types.ExperienceEntry{
			ID:          types.NewEntryID(),
			Title:       exp.Title,
			Company:     exp.Company,
			StartDate:   exp.StartDate,
			EndDate:     exp.EndDate,
			Description: exp.Description,
		})
	}
	for _, edu := range extracted.Education {
		cv.Education = append(cv.Education, types.EducationEntry{
			ID:     types.NewEntryID(),
			Degree: edu.Degree,
			School: edu.School,
			Year:   edu.Year,
		})
	}

	return cv, nil
}
