// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/masar-app/masar/internal/db"
	"github.com/masar-app/masar/internal/server/middleware"
)

type applicationRequest struct {
	Company   string `json:"company"`
	RoleTitle string `json:"roleTitle"`
	Status    string `json:"status,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func validApplicationStatus(status string) bool {
	switch status {
	case db.ApplicationApplied, db.ApplicationInterview, db.ApplicationOffer, db.ApplicationRejected:
		return true
	}
	return false
}

// handleListApplications lists the user's tracked applications.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.docs.ListApplications(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}
	if apps == nil {
		apps = []db.JobApplication{}
	}

	jsonResponse(w, http.StatusOK, apps)
}

// handleCreateApplication starts tracking a new application.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Company == "" || req.RoleTitle == "" {
		errorResponse(w, http.StatusBadRequest, "Company and role title are required")
		return
	}

	id, err := s.docs.CreateApplication(r.Context(), userID, req.Company, req.RoleTitle, req.Notes)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to create application")
		return
	}

	app, err := s.docs.GetApplication(r.Context(), id)
	if err != nil || app == nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load created application")
		return
	}

	jsonResponse(w, http.StatusCreated, app)
}

// applicationForUser loads an application and checks it belongs to the
// requesting user. Writes the error response itself on failure.
func (s *Server) applicationForUser(w http.ResponseWriter, r *http.Request) (*db.JobApplication, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return nil, false
	}

	app, err := s.docs.GetApplication(r.Context(), id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load application")
		return nil, false
	}
	if app == nil || app.UserID != userID {
		// Same response for missing and foreign records
		errorResponse(w, http.StatusNotFound, "Application not found")
		return nil, false
	}

	return app, true
}

// handleUpdateApplication moves an application through the pipeline.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := s.applicationForUser(w, r)
	if !ok {
		return
	}

	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := req.Status
	if status == "" {
		status = app.Status
	}
	if !validApplicationStatus(status) {
		errorResponse(w, http.StatusBadRequest, "Unknown application status")
		return
	}
	notes := req.Notes
	if notes == "" {
		notes = app.Notes
	}

	if err := s.docs.UpdateApplicationStatus(r.Context(), app.ID, status, notes); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to update application")
		return
	}

	updated, err := s.docs.GetApplication(r.Context(), app.ID)
	if err != nil || updated == nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load updated application")
		return
	}

	jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteApplication stops tracking an application.
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := s.applicationForUser(w, r)
	if !ok {
		return
	}

	if err := s.docs.DeleteApplication(r.Context(), app.ID); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to delete application")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
