// Package validation gates the transition from editing to preview by
// checking a fixed set of required-field rules on a CV record.
package validation

import (
	"strings"

	"github.com/masar-app/masar/internal/types"
)

// Field keys reported by ValidateCV. Keys are stable; the editor maps them
// to inline form errors.
const (
	FieldFullName   = "fullName"
	FieldJobTitle   = "jobTitle"
	FieldSummary    = "summary"
	FieldExperience = "experience"
	FieldSkills     = "skills"
	FieldEducation  = "education"
)

// MinSkills is the minimum number of skills required before preview.
const MinSkills = 3

// messages is the bilingual error message table, keyed by field then
// language.
var messages = map[string]map[types.Language]string{
	FieldFullName: {
		types.LanguageArabic:  "الاسم الكامل مطلوب",
		types.LanguageEnglish: "Full name is required",
	},
	FieldJobTitle: {
		types.LanguageArabic:  "المسمى الوظيفي مطلوب",
		types.LanguageEnglish: "Job title is required",
	},
	FieldSummary: {
		types.LanguageArabic:  "الملخص المهني مطلوب",
		types.LanguageEnglish: "Professional summary is required",
	},
	FieldExperience: {
		types.LanguageArabic:  "يجب إضافة خبرة واحدة على الأقل",
		types.LanguageEnglish: "At least one experience entry is required",
	},
	FieldSkills: {
		types.LanguageArabic:  "يجب إضافة 3 مهارات على الأقل",
		types.LanguageEnglish: "At least 3 skills are required",
	},
	FieldEducation: {
		types.LanguageArabic:  "يجب إضافة مؤهل تعليمي واحد على الأقل",
		types.LanguageEnglish: "At least one education entry is required",
	},
}

func message(field string, lang types.Language) string {
	byLang := messages[field]
	if msg, ok := byLang[lang]; ok {
		return msg
	}
	return byLang[types.LanguageArabic]
}

// ValidateCV checks the record against every rule and returns the complete
// error set keyed by field name; an empty map means the record is valid.
// All rules are always evaluated; there is no fail-fast.
func ValidateCV(cv *types.CVRecord) map[string]string {
	errs := make(map[string]string)
	lang := cv.Language

	if strings.TrimSpace(cv.FullName) == "" {
		errs[FieldFullName] = message(FieldFullName, lang)
	}
	if strings.TrimSpace(cv.JobTitle) == "" {
		errs[FieldJobTitle] = message(FieldJobTitle, lang)
	}
	if strings.TrimSpace(cv.Summary) == "" {
		errs[FieldSummary] = message(FieldSummary, lang)
	}
	if len(cv.Experience) == 0 {
		errs[FieldExperience] = message(FieldExperience, lang)
	}
	if len(cv.Skills) < MinSkills {
		errs[FieldSkills] = message(FieldSkills, lang)
	}
	if len(cv.Education) == 0 {
		errs[FieldEducation] = message(FieldEducation, lang)
	}

	return errs
}
