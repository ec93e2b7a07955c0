// Package catalog provides the closed registry of CV templates: each entry
// maps a template identifier to a layout archetype and its visual
// configuration. The registry is immutable and safe for concurrent lookup.
package catalog

import (
	"github.com/masar-app/masar/internal/types"
)

// Layout selects one of the three structural arrangements shared by all
// templates.
type Layout string

const (
	// LayoutSidebar splits the page into a narrow colored sidebar and a
	// wide main column.
	LayoutSidebar Layout = "sidebar"
	// LayoutLinear is a single top-to-bottom column with a centered header.
	LayoutLinear Layout = "linear"
	// LayoutHeaderAccent places a full-width colored band above an 8:4
	// two-region body.
	LayoutHeaderAccent Layout = "headerAccent"
)

// SidebarTone selects light-on-dark or dark-on-light sidebar styling.
type SidebarTone string

const (
	SidebarDark  SidebarTone = "dark"
	SidebarLight SidebarTone = "light"
)

// Style is the per-template visual configuration bundle fed into an
// archetype's rendering function. Zero values mean "archetype default".
type Style struct {
	AccentColor  string      `json:"accentColor"`            // CSS color for headings and rules
	SidebarColor string      `json:"sidebarColor,omitempty"` // sidebar fill (sidebar layout only)
	SidebarTone  SidebarTone `json:"sidebarTone,omitempty"`  // sidebar layout only
	FontType     string      `json:"fontType,omitempty"`     // "serif" switches Latin templates to a serif stack
	HeaderStyle  string      `json:"headerStyle,omitempty"`  // "border" draws a rule under the linear header
	SkillsFirst  bool        `json:"skillsFirst,omitempty"`  // linear layout: skills before experience
}

// TemplateDescriptor is one immutable catalog entry.
type TemplateDescriptor struct {
	ID       types.TemplateID `json:"id"`
	Name     string           `json:"name"`
	Language types.Language   `json:"language"`
	Layout   Layout           `json:"layout"`
	Style    Style            `json:"style"`
}

// registry holds every template in declaration order; this order is the UI
// tab order and must stay stable.
var registry = []TemplateDescriptor{
	// Arabic
	{ID: types.TemplateARATS, Name: "ATS قياسي", Language: types.LanguageArabic, Layout: LayoutLinear,
		Style: Style{AccentColor: "#000"}},
	{ID: types.TemplateARClassic, Name: "كلاسيكي رسمي", Language: types.LanguageArabic, Layout: LayoutLinear,
		Style: Style{AccentColor: "#1F2937", FontType: "serif", HeaderStyle: "border"}},
	{ID: types.TemplateARCorporate, Name: "شركات كبرى", Language: types.LanguageArabic, Layout: LayoutHeaderAccent,
		Style: Style{AccentColor: "#1e3a8a"}},
	{ID: types.TemplateARTech, Name: "تقني/مبرمج", Language: types.LanguageArabic, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#10B981", SidebarColor: "#111827", SidebarTone: SidebarDark}},
	{ID: types.TemplateARDesigner, Name: "مصمم مبدع", Language: types.LanguageArabic, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#DB2777", SidebarColor: "#FDF2F8", SidebarTone: SidebarLight}},
	{ID: types.TemplateARBusiness, Name: "إداري/أعمال", Language: types.LanguageArabic, Layout: LayoutHeaderAccent,
		Style: Style{AccentColor: "#7C2D12"}},
	{ID: types.TemplateARFunctional, Name: "وظيفي (مهارات)", Language: types.LanguageArabic, Layout: LayoutLinear,
		Style: Style{AccentColor: "#4B5563", SkillsFirst: true}},
	{ID: types.TemplateARModernPurple, Name: "سكور الحديث", Language: types.LanguageArabic, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#7C3AED", SidebarColor: "#F3E8FF", SidebarTone: SidebarLight}},
	{ID: types.TemplateARMinimalClean, Name: "بسيط ونظيف", Language: types.LanguageArabic, Layout: LayoutLinear,
		Style: Style{AccentColor: "#000", HeaderStyle: "simple"}},
	{ID: types.TemplateARMedical, Name: "طبي/صحي", Language: types.LanguageArabic, Layout: LayoutHeaderAccent,
		Style: Style{AccentColor: "#0F766E"}},

	// English
	{ID: types.TemplateENModernPro, Name: "Modern Pro", Language: types.LanguageEnglish, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#3b82f6", SidebarColor: "#1e293b", SidebarTone: SidebarDark}},
	{ID: types.TemplateENMinimalATS, Name: "Minimal ATS", Language: types.LanguageEnglish, Layout: LayoutLinear,
		Style: Style{AccentColor: "#000", FontType: "serif"}},
	{ID: types.TemplateENExecutive, Name: "Executive", Language: types.LanguageEnglish, Layout: LayoutHeaderAccent,
		Style: Style{AccentColor: "#0f172a"}},
	{ID: types.TemplateENTech, Name: "Tech Lead", Language: types.LanguageEnglish, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#22c55e", SidebarColor: "#000", SidebarTone: SidebarDark}},
	{ID: types.TemplateENProduct, Name: "Product Manager", Language: types.LanguageEnglish, Layout: LayoutLinear,
		Style: Style{AccentColor: "#2563eb", HeaderStyle: "border"}},
	{ID: types.TemplateENCreative, Name: "Creative Rose", Language: types.LanguageEnglish, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#e11d48", SidebarColor: "#fff1f2", SidebarTone: SidebarLight}},
	{ID: types.TemplateENBusiness, Name: "Business Consultant", Language: types.LanguageEnglish, Layout: LayoutHeaderAccent,
		Style: Style{AccentColor: "#1d4ed8"}},
	{ID: types.TemplateENMedical, Name: "Medical Pro", Language: types.LanguageEnglish, Layout: LayoutHeaderAccent,
		Style: Style{AccentColor: "#0891b2"}},
	{ID: types.TemplateENTwoColumn, Name: "Classic Split", Language: types.LanguageEnglish, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#374151", SidebarColor: "#f3f4f6", SidebarTone: SidebarLight}},
	{ID: types.TemplateENSidebarColor, Name: "Bold Sidebar", Language: types.LanguageEnglish, Layout: LayoutSidebar,
		Style: Style{AccentColor: "#4f46e5", SidebarColor: "#4f46e5", SidebarTone: SidebarDark}},
}

// byID is built once at init for O(1) lookup.
var byID = func() map[types.TemplateID]TemplateDescriptor {
	m := make(map[types.TemplateID]TemplateDescriptor, len(registry))
	for _, d := range registry {
		if _, dup := m[d.ID]; dup {
			panic("catalog: duplicate template id " + string(d.ID))
		}
		m[d.ID] = d
	}
	return m
}()

// List returns the catalog in declaration order. If language is non-empty,
// only templates declared for that language are returned.
func List(language types.Language) []TemplateDescriptor {
	out := make([]TemplateDescriptor, 0, len(registry))
	for _, d := range registry {
		if language != "" && d.Language != language {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Resolve returns the descriptor for the given template id. Unknown ids
// return an *UnknownTemplateError; fallback policy belongs to the caller.
func Resolve(id types.TemplateID) (TemplateDescriptor, error) {
	d, ok := byID[id]
	if !ok {
		return TemplateDescriptor{}, &UnknownTemplateError{ID: id}
	}
	return d, nil
}

// Apply sets a record's template and snaps its language to the template's
// declared language, keeping the two in agreement. Unknown ids leave the
// record untouched and return the lookup error.
func Apply(cv *types.CVRecord, id types.TemplateID) error {
	d, err := Resolve(id)
	if err != nil {
		return err
	}
	cv.TemplateID = d.ID
	cv.Language = d.Language
	return nil
}
