// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/masar-app/masar/internal/types"
)

// AI endpoints degrade instead of failing: when generation is unavailable
// or errors out, each returns the same fallback the service layer applies,
// so the editing flow never hard-stops on a model problem. Free-text
// extraction is the exception; a failed extraction has no useful partial
// result.

type summaryRequest struct {
	Summary       string              `json:"summary"`
	JobTitle      string              `json:"jobTitle"`
	TargetCompany types.TargetCompany `json:"targetCompany"`
	Language      types.Language      `json:"language"`
}

// handleAISummary rewrites a professional summary.
func (s *Server) handleAISummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := req.Summary
	if s.aiService != nil {
		result, _ = s.aiService.Summary(r.Context(), req.Summary, req.JobTitle, req.TargetCompany, req.Language)
	}

	jsonResponse(w, http.StatusOK, map[string]string{"summary": result})
}

type bulletsRequest struct {
	Title       string         `json:"title"`
	Company     string         `json:"company"`
	Description string         `json:"description"`
	Language    types.Language `json:"language"`
}

// handleAIBullets rewrites an experience description as bullet points.
func (s *Server) handleAIBullets(w http.ResponseWriter, r *http.Request) {
	var req bulletsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := req.Description
	if s.aiService != nil {
		result, _ = s.aiService.Bullets(r.Context(), req.Title, req.Company, req.Description, req.Language)
	}

	jsonResponse(w, http.StatusOK, map[string]string{"description": result})
}

type skillsRequest struct {
	JobTitle string         `json:"jobTitle"`
	Language types.Language `json:"language"`
}

// handleAISkills suggests skills for a job title.
func (s *Server) handleAISkills(w http.ResponseWriter, r *http.Request) {
	var req skillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	skills := []string{}
	if s.aiService != nil {
		skills, _ = s.aiService.Skills(r.Context(), req.JobTitle, req.Language)
	}

	jsonResponse(w, http.StatusOK, map[string][]string{"skills": skills})
}

// handleAIAnalyze scores the posted CV for ATS fit.
func (s *Server) handleAIAnalyze(w http.ResponseWriter, r *http.Request) {
	var cv types.CVRecord
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	analysis := types.NeutralAnalysis()
	if s.aiService != nil {
		analysis, _ = s.aiService.Analyze(r.Context(), &cv)
	}

	jsonResponse(w, http.StatusOK, analysis)
}

type fromTextRequest struct {
	Text     string         `json:"text"`
	Language types.Language `json:"language"`
}

// handleAIFromText extracts a structured CV from free-form text.
func (s *Server) handleAIFromText(w http.ResponseWriter, r *http.Request) {
	var req fromTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		errorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}

	if s.aiService == nil {
		errorResponse(w, http.StatusServiceUnavailable, "Content generation is not configured")
		return
	}

	cv, err := s.aiService.FromFreeText(r.Context(), req.Text, req.Language)
	if err != nil {
		errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, cv)
}
