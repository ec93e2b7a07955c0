// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/masar-app/masar/internal/catalog"
	"github.com/masar-app/masar/internal/export"
	"github.com/masar-app/masar/internal/rendering"
	"github.com/masar-app/masar/internal/server/middleware"
	"github.com/masar-app/masar/internal/types"
	"github.com/masar-app/masar/internal/validation"
)

// handleProfile returns the authenticated user's profile with billing history.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userService.Profile(r.Context(), userID)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// handleGetCV returns the user's saved draft, or a fresh default when none
// exists yet.
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	doc, err := s.docs.GetCVDocument(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load CV")
		return
	}
	if doc == nil {
		jsonResponse(w, http.StatusOK, types.NewCVRecord())
		return
	}

	jsonResponse(w, http.StatusOK, doc.Content)
}

// handlePutCV replaces the user's saved draft. The record is stored verbatim;
// the one exception is an explicit template switch (the incoming templateId
// differs from the stored draft's), which snaps the record's language to the
// new template's language. Unknown template ids are saved as-is and absorbed
// by the renderer's fallback.
func (s *Server) handlePutCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var cv types.CVRecord
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prev, err := s.docs.GetCVDocument(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load CV")
		return
	}
	prevTemplate := types.NewCVRecord().TemplateID
	if prev != nil {
		prevTemplate = prev.Content.TemplateID
	}

	if cv.TemplateID != prevTemplate {
		// Unknown ids leave the record untouched; the renderer falls back
		// at display time
		_ = catalog.Apply(&cv, cv.TemplateID)
	}

	if err := s.docs.SaveCVDocument(r.Context(), userID, &cv); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to save CV")
		return
	}

	jsonResponse(w, http.StatusOK, cv)
}

// handleListTemplates lists the template catalog, optionally filtered by
// ?lang=ar|en.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	lang := types.Language(r.URL.Query().Get("lang"))
	if lang != "" && !lang.Valid() {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown language %q", lang))
		return
	}

	jsonResponse(w, http.StatusOK, catalog.List(lang))
}

// handlePreview renders the posted CV to HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var cv types.CVRecord
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := rendering.RenderTo(w, &cv); err != nil {
		// Headers already sent; nothing more to do than log via middleware
		return
	}
}

// handleValidate runs completeness checks over the posted CV and returns
// the field-keyed problem map. An empty map means the CV is exportable.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var cv types.CVRecord
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	jsonResponse(w, http.StatusOK, validation.ValidateCV(&cv))
}

// handleExport validates, renders, and captures the posted CV as a PDF.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var cv types.CVRecord
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if problems := validation.ValidateCV(&cv); len(problems) > 0 {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    "cv is not complete enough to export",
			"problems": problems,
		})
		return
	}

	html, err := rendering.Render(&cv)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to render CV")
		return
	}

	pdf, filename, err := s.exporter.Export(r.Context(), export.Request{
		HTML:     html,
		AnchorID: rendering.AnchorID,
		Filename: cv.FullName,
		Language: cv.Language,
	})
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// handleShareCV publishes the user's saved draft under a public slug.
func (s *Server) handleShareCV(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	doc, err := s.docs.GetCVDocument(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load CV")
		return
	}
	if doc == nil {
		errorResponse(w, http.StatusNotFound, "No saved CV to share")
		return
	}

	slug := doc.ShareSlug
	if slug == "" {
		slug = "cv-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
		if err := s.docs.SetShareSlug(r.Context(), userID, slug); err != nil {
			errorResponse(w, http.StatusInternalServerError, "Failed to publish CV")
			return
		}
	}

	jsonResponse(w, http.StatusOK, map[string]string{"slug": slug, "url": "/share/" + slug})
}

// handleSharedCV renders a published CV by its public slug.
func (s *Server) handleSharedCV(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	doc, err := s.docs.GetCVByShareSlug(r.Context(), slug)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load CV")
		return
	}
	if doc == nil {
		errorResponse(w, http.StatusNotFound, "No CV published under this link")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := rendering.RenderTo(w, &doc.Content); err != nil {
		return
	}
}
