// Package types provides type definitions for structured data used throughout the masar system.
package types

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Language identifies the language a CV is written in.
type Language string

const (
	// LanguageArabic renders right-to-left with an Arabic font stack.
	LanguageArabic Language = "ar"
	// LanguageEnglish renders left-to-right with a Latin font stack.
	LanguageEnglish Language = "en"
)

// Valid reports whether the language is one of the supported values.
func (l Language) Valid() bool {
	return l == LanguageArabic || l == LanguageEnglish
}

// TemplateID identifies a visual template in the catalog.
type TemplateID string

// Arabic templates.
const (
	TemplateARATS          TemplateID = "ar_ats"
	TemplateARClassic      TemplateID = "ar_classic"
	TemplateARCorporate    TemplateID = "ar_corporate"
	TemplateARTech         TemplateID = "ar_tech"
	TemplateARDesigner     TemplateID = "ar_designer"
	TemplateARBusiness     TemplateID = "ar_business"
	TemplateARFunctional   TemplateID = "ar_functional"
	TemplateARModernPurple TemplateID = "ar_modern_purple"
	TemplateARMinimalClean TemplateID = "ar_minimal_clean"
	TemplateARMedical      TemplateID = "ar_medical"
)

// English templates.
const (
	TemplateENModernPro    TemplateID = "en_modern_pro"
	TemplateENMinimalATS   TemplateID = "en_minimal_ats"
	TemplateENExecutive    TemplateID = "en_executive"
	TemplateENTech         TemplateID = "en_tech"
	TemplateENProduct      TemplateID = "en_product"
	TemplateENCreative     TemplateID = "en_creative"
	TemplateENBusiness     TemplateID = "en_business"
	TemplateENMedical      TemplateID = "en_medical"
	TemplateENTwoColumn    TemplateID = "en_two_column"
	TemplateENSidebarColor TemplateID = "en_sidebar_color"
)

// TargetCompany is the company a candidate is tailoring their CV toward.
// Values are the display strings used in prompts and the UI; the zero-like
// sentinel is TargetCompanyNone.
type TargetCompany string

const (
	TargetCompanyNone    TargetCompany = "غير محدد"
	TargetCompanyAramco  TargetCompany = "أرامكو السعودية"
	TargetCompanySabic   TargetCompany = "سابك"
	TargetCompanyAlRajhi TargetCompany = "مصرف الراجحي"
	TargetCompanySTC     TargetCompany = "stc"
	TargetCompanyNeom    TargetCompany = "نيوم"
	TargetCompanySaudia  TargetCompany = "الخطوط السعودية"
)

// ExperienceEntry is a single work experience item. ID is a client-generated
// quasi-unique identifier; dates are free-text and never parsed. Description
// may contain embedded line breaks which the renderer preserves verbatim.
type ExperienceEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// EducationEntry is a single education item. Year is free-text, not numeric.
type EducationEntry struct {
	ID     string `json:"id"`
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// ProjectEntry is a portfolio project. Currently stored but not rendered.
type ProjectEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// CVRecord is the single source of truth for a user's résumé content.
// It is mutated field-by-field by the editor and serialized to durable
// storage after every mutation; list order is display order.
type CVRecord struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`

	Summary  string `json:"summary"`
	FreeText string `json:"freeText,omitempty"` // raw notes, used only as AI input

	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []string          `json:"certifications"`

	TargetCompany TargetCompany `json:"targetCompany"`
	TemplateID    TemplateID    `json:"templateId"`
	Language      Language      `json:"language"`
}

// NewCVRecord returns a record with all-empty defaults, as created when the
// editor is first opened.
func NewCVRecord() *CVRecord {
	return &CVRecord{
		Skills:         []string{},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Projects:       []ProjectEntry{},
		Certifications: []string{},
		TargetCompany:  TargetCompanyNone,
		TemplateID:     TemplateARATS,
		Language:       LanguageArabic,
	}
}

const idSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewEntryID generates a quasi-unique identifier for a list entry:
// millisecond timestamp plus a 9-character base36 suffix. Uniqueness is only
// required within a single record's list, not globally; rapid programmatic
// insertion within the same millisecond can collide on the suffix alone.
func NewEntryID() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	for i := 0; i < 9; i++ {
		sb.WriteByte(idSuffixAlphabet[rand.Intn(len(idSuffixAlphabet))])
	}
	return sb.String()
}
