package api

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "pbf-marketplace/internal/common/errors"
	"pbf-marketplace/internal/models"
	"pbf-marketplace/internal/services/intake"
)

const msgInvalidJSON = "Invalid JSON body"

type requirementsResponse struct {
	Count        int                  `json:"count"`
	Requirements []models.Requirement `json:"requirements"`
}

type farmersResponse struct {
	Count   int               `json:"count"`
	Farmers []models.Supplier `json:"farmers"`
}

type healthResponse struct {
	Status       string `json:"status"`
	EmailEnabled bool   `json:"emailEnabled"`
	Timestamp    string `json:"timestamp"`
}

func (s *Server) handleSubmitRequirement(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		s.errors.HandleHTTPError(w, r, apperrors.NewInvalidValueError("body", msgInvalidJSON))
		return
	}

	result, err := s.requirements.Submit(r.Context(), intake.RawRequirement(raw))
	if err != nil {
		s.errors.HandleHTTPError(w, r, err)
		return
	}

	apperrors.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleListRequirements(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.requirements.List(r.Context())
	if err != nil {
		s.errors.HandleHTTPError(w, r, err)
		return
	}
	if reqs == nil {
		reqs = []models.Requirement{}
	}

	apperrors.WriteJSON(w, http.StatusOK, requirementsResponse{
		Count:        len(reqs),
		Requirements: reqs,
	})
}

func (s *Server) handleListFarmers(w http.ResponseWriter, _ *http.Request) {
	farmers := s.farmers.All()
	apperrors.WriteJSON(w, http.StatusOK, farmersResponse{
		Count:   len(farmers),
		Farmers: farmers,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	apperrors.WriteJSON(w, http.StatusOK, healthResponse{
		Status:       "OK",
		EmailEnabled: s.emailEnabled,
		Timestamp:    s.now().UTC().Format(time.RFC3339),
	})
}
