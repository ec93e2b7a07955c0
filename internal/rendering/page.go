package rendering

import (
	"fmt"
	"html/template"

	"github.com/masar-app/masar/internal/catalog"
	"github.com/masar-app/masar/internal/types"
)

// sectionLabels is the bilingual label table for section headings. Labels
// are derived from the record language only, never hard-coded per template.
type sectionLabels struct {
	Experience string
	Education  string
	Skills     string
	Summary    string
	Contact    string
	Projects   string
}

var labelTable = map[types.Language]sectionLabels{
	types.LanguageArabic: {
		Experience: "الخبرات العملية",
		Education:  "التعليم والمؤهلات",
		Skills:     "المهارات",
		Summary:    "الملخص المهني",
		Contact:    "معلومات التواصل",
		Projects:   "المشاريع",
	},
	types.LanguageEnglish: {
		Experience: "Work Experience",
		Education:  "Education",
		Skills:     "Skills",
		Summary:    "Professional Summary",
		Contact:    "Contact Info",
		Projects:   "Projects",
	},
}

// labelsFor returns the label set for a language, defaulting to English for
// anything unrecognized.
func labelsFor(lang types.Language) sectionLabels {
	if labels, ok := labelTable[lang]; ok {
		return labels
	}
	return labelTable[types.LanguageEnglish]
}

// Font stacks. Arabic always uses its own sans stack; Latin templates use
// sans unless the style bundle selects serif.
const (
	fontArabic     = "'Tajawal', 'Segoe UI', Tahoma, sans-serif"
	fontLatinSans  = "'Inter', 'Helvetica Neue', Arial, sans-serif"
	fontLatinSerif = "Georgia, 'Times New Roman', serif"
)

// pageData is the data bundle handed to the archetype templates. All derived
// values are computed here so the templates stay declarative.
type pageData struct {
	CV     *types.CVRecord
	Style  catalog.Style
	Labels sectionLabels

	Anchor      string
	Dir         string // "rtl" | "ltr"
	ContactLine []string
	DarkSidebar bool
	ThemeCSS    template.CSS
}

func buildPageData(cv *types.CVRecord, desc catalog.TemplateDescriptor) *pageData {
	dir := "ltr"
	if cv.Language == types.LanguageArabic {
		dir = "rtl"
	}

	data := &pageData{
		CV:          cv,
		Style:       desc.Style,
		Labels:      labelsFor(cv.Language),
		Anchor:      AnchorID,
		Dir:         dir,
		ContactLine: contactLine(cv),
		DarkSidebar: desc.Style.SidebarTone == catalog.SidebarDark,
	}
	data.ThemeCSS = themeCSS(cv, desc, dir)
	return data
}

// contactLine collects the non-empty contact fields in display order; empty
// fields produce no element at all.
func contactLine(cv *types.CVRecord) []string {
	parts := make([]string, 0, 3)
	for _, v := range []string{cv.Email, cv.Phone, cv.Location} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

func fontFamily(cv *types.CVRecord, style catalog.Style) string {
	if cv.Language == types.LanguageArabic {
		return fontArabic
	}
	if style.FontType == "serif" {
		return fontLatinSerif
	}
	return fontLatinSans
}

// baseCSS is shared by all archetypes: A4 canvas, typography reset and the
// verbatim line-break rule for experience descriptions.
const baseCSS = `
*{margin:0;padding:0;box-sizing:border-box}
.page{width:210mm;min-height:297mm;background:#fff;color:#1f2937;font-size:10pt;line-height:1.5}
h1,h2,h3,h4,p{margin:0}
.section-title{font-weight:700;text-transform:uppercase;letter-spacing:.06em;margin-bottom:8pt}
.pre-line{white-space:pre-line}
.muted{color:#6b7280}
`

// themeCSS builds the per-template stylesheet. Colors and fonts come from
// the catalog's style bundle, never from CV content.
func themeCSS(cv *types.CVRecord, desc catalog.TemplateDescriptor, dir string) template.CSS {
	accent := desc.Style.AccentColor
	if accent == "" {
		accent = "#000"
	}
	font := fontFamily(cv, desc.Style)

	css := baseCSS + fmt.Sprintf(".page{font-family:%s;direction:%s}\n", font, dir)

	switch desc.Layout {
	case catalog.LayoutSidebar:
		css += sidebarCSS(desc.Style, accent, dir)
	case catalog.LayoutHeaderAccent:
		css += headerAccentCSS(accent)
	default:
		css += linearCSS(desc.Style, accent)
	}

	return template.CSS(css)
}

func sidebarCSS(style catalog.Style, accent, dir string) string {
	// The sidebar is the first child; mirroring the flex direction on text
	// direction keeps it on the same visual side in both languages.
	flexDir := "row-reverse"
	if dir == "rtl" {
		flexDir = "row"
	}

	text, mutedText, faintText, border, chipBG, chipBorder := "#111827", "#4b5563", "#9ca3af", "#d1d5db", "#ffffff", "1px solid #d1d5db"
	if style.SidebarTone == catalog.SidebarDark {
		text, mutedText, faintText, border, chipBG, chipBorder = "#ffffff", "rgba(255,255,255,.75)", "rgba(255,255,255,.45)", "rgba(255,255,255,.2)", "rgba(255,255,255,.1)", "none"
	}

	return fmt.Sprintf(`
.page{display:flex;flex-direction:%s}
.sidebar{width:32%%;flex-shrink:0;min-height:297mm;padding:18pt;display:flex;flex-direction:column;gap:16pt;background-color:%s;color:%s}
.sidebar .section-title{font-size:8.5pt;border-bottom:1px solid %s;padding-bottom:5pt}
.sidebar .muted{color:%s}
.initial{width:56pt;height:56pt;margin:0 auto 6pt;border-radius:50%%;display:flex;align-items:center;justify-content:center;font-size:18pt;font-weight:700;border:3pt solid %s}
.contact-item{font-size:10pt;color:%s;margin-bottom:6pt}
.chips{display:flex;flex-wrap:wrap;gap:4pt}
.chip{font-size:9pt;padding:3pt 6pt;border-radius:3pt;background:%s;border:%s}
.edu-item{font-size:10pt;margin-bottom:9pt}
.edu-item .school{color:%s}
.edu-item .year{font-size:9pt;color:%s}
.main{width:68%%;padding:24pt;display:flex;flex-direction:column;gap:16pt}
.header{border-bottom:2pt solid %s;padding-bottom:12pt}
.header h1{font-size:22pt;font-weight:900;text-transform:uppercase;color:%s;line-height:1.2}
.header .job-title{font-size:13pt;font-weight:500;color:#6b7280;letter-spacing:.03em}
.exp-item{border-inline-start:2pt solid #f3f4f6;padding-inline-start:9pt;margin-bottom:14pt}
.exp-head{display:flex;justify-content:space-between;align-items:baseline;margin-bottom:2pt}
.exp-title{font-weight:700;font-size:11pt}
.dates{font-size:9pt;font-weight:700;padding:1pt 4pt;border-radius:3pt;background:#f3f4f6;color:#4b5563;white-space:nowrap}
.company{font-size:10pt;font-weight:600;color:%s;margin-bottom:4pt}
`, flexDir, style.SidebarColor, text, border, mutedText, border, mutedText, chipBG, chipBorder, mutedText, faintText, accent, accent, accent)
}

func linearCSS(style catalog.Style, accent string) string {
	headerBorder := "none"
	if style.HeaderStyle == "border" {
		headerBorder = "2pt solid #1f2937"
	}

	return fmt.Sprintf(`
.page{padding:30pt}
.header{text-align:center;margin-bottom:18pt;border-bottom:%s;padding-bottom:12pt}
.header h1{font-size:22pt;font-weight:700;text-transform:uppercase;letter-spacing:.04em;margin-bottom:3pt}
.header .job-title{font-size:13pt;color:#4b5563;margin-bottom:6pt}
.contact-line{display:flex;justify-content:center;flex-wrap:wrap;gap:9pt;font-size:10pt;color:#4b5563}
.section{margin-bottom:15pt}
.section-title{font-size:11pt;color:%s;border-bottom:1pt solid #9ca3af;padding-bottom:3pt}
.exp-item{margin-bottom:12pt}
.exp-head{display:flex;justify-content:space-between;align-items:baseline;margin-bottom:2pt}
.exp-title{font-weight:700;font-size:11pt}
.dates{font-size:10pt;font-weight:500;color:#4b5563;white-space:nowrap}
.company{font-size:10pt;font-style:italic;color:#374151;margin-bottom:3pt}
.edu-item{display:flex;justify-content:space-between;align-items:baseline;margin-bottom:4pt}
.edu-item .degree{font-weight:700}
.edu-item .year{color:#4b5563;white-space:nowrap}
`, headerBorder, accent)
}

func headerAccentCSS(accent string) string {
	return fmt.Sprintf(`
.band{background-color:%s;color:#fff;padding:24pt}
.band h1{font-size:22pt;font-weight:700;margin-bottom:3pt}
.band .job-title{font-size:13pt;font-weight:300;opacity:.9;margin-bottom:12pt}
.band .contact-line{display:flex;flex-wrap:wrap;gap:12pt;font-size:10pt;opacity:.9}
.body{display:grid;grid-template-columns:2fr 1fr;gap:18pt;padding:24pt}
.section{margin-bottom:18pt}
.section-title{font-size:11pt;color:#111827;border-bottom:1pt solid #e5e7eb;padding-bottom:3pt}
.exp-item{margin-bottom:14pt}
.exp-head{display:flex;justify-content:space-between;align-items:center;margin-bottom:2pt}
.exp-title{font-weight:700;font-size:11pt;color:%s}
.dates{font-size:9pt;background:#f3f4f6;color:#4b5563;padding:1pt 6pt;border-radius:3pt;white-space:nowrap}
.company{font-size:10pt;font-weight:700;color:#374151;margin-bottom:3pt}
.card{background:#f9fafb;border-radius:10pt;padding:15pt;height:fit-content}
.skill-row{background:#fff;border:1px solid #f3f4f6;border-radius:3pt;padding:4pt 6pt;font-size:9pt;margin-bottom:4pt;display:flex;align-items:center;gap:6pt}
.skill-dot{width:4pt;height:4pt;border-radius:50%%;background-color:%s;flex-shrink:0}
.edu-item{border-inline-start:2pt solid %s;padding-inline-start:6pt;margin-bottom:9pt}
.edu-item .degree{font-weight:700;font-size:10pt;line-height:1.3}
.edu-item .school{font-size:9pt;color:#4b5563}
.edu-item .year{font-size:9pt;color:#9ca3af}
`, accent, accent, accent, accent)
}
