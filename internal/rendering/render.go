// Package rendering transforms a CV record plus its resolved template
// descriptor into a laid-out A4 HTML document. Rendering is a pure function
// of its inputs: identical (record, descriptor) pairs always produce
// identical bytes.
package rendering

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/masar-app/masar/internal/catalog"
	"github.com/masar-app/masar/internal/types"
)

// AnchorID is the stable element id of the rendered document root; document
// export captures this element.
const AnchorID = "cv-root"

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// templates is parsed once at init; parse failures are programmer errors.
var templates = template.Must(
	template.New("cv").Funcs(template.FuncMap{
		"join": strings.Join,
		"initial": func(s string) string {
			for _, r := range s {
				return string(r)
			}
			return ""
		},
	}).ParseFS(templateFiles, "templates/*.html.tmpl"),
)

// fallback is the neutral configuration used when a record references a
// template id that is not in the catalog. Rendering must not fail on an
// unknown id; it degrades to a plain single-column document instead.
var fallback = catalog.TemplateDescriptor{
	ID:       "fallback",
	Language: types.LanguageEnglish,
	Layout:   catalog.LayoutLinear,
	Style:    catalog.Style{AccentColor: "#000"},
}

// Render returns the full HTML document for the record's chosen template.
func Render(cv *types.CVRecord) (string, error) {
	var sb strings.Builder
	if err := RenderTo(&sb, cv); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo writes the rendered document to w. The record's template id is
// resolved through the catalog; unknown ids fall back to the neutral linear
// configuration.
func RenderTo(w io.Writer, cv *types.CVRecord) error {
	if cv == nil {
		return &RenderError{Message: "nil CV record"}
	}

	desc, err := catalog.Resolve(cv.TemplateID)
	if err != nil {
		var unknown *catalog.UnknownTemplateError
		if !errors.As(err, &unknown) {
			return &RenderError{Message: "template lookup failed", Cause: err}
		}
		desc = fallback
	}

	data := buildPageData(cv, desc)

	name := templateName(desc.Layout)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return &RenderError{
			Message: fmt.Sprintf("failed to execute %s template", name),
			Cause:   err,
		}
	}
	return nil
}

// templateName maps a layout archetype to its template file.
func templateName(layout catalog.Layout) string {
	switch layout {
	case catalog.LayoutSidebar:
		return "sidebar.html.tmpl"
	case catalog.LayoutHeaderAccent:
		return "header_accent.html.tmpl"
	default:
		return "linear.html.tmpl"
	}
}
