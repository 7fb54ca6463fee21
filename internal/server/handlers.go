package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"selene/internal/datasheet"
	"selene/internal/models"
)

type analyzeRequest struct {
	SchematicPath string `json:"schematic_path"`
	AnalysisType  string `json:"analysis_type"`
	CustomQuery   string `json:"custom_query,omitempty"`
	DatasheetPath string `json:"datasheet_path,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.busy.CompareAndSwap(false, true) {
		s.respondError(w, http.StatusConflict, "an analysis is already in progress")
		return
	}
	defer s.busy.Store(false)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SchematicPath == "" {
		s.respondError(w, http.StatusBadRequest, "schematic_path is required")
		return
	}
	if req.AnalysisType == "" {
		req.AnalysisType = models.ComponentVerification
	}

	var record *models.DatasheetRecord
	if req.DatasheetPath != "" {
		text, err := datasheet.ExtractText(req.DatasheetPath)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "datasheet extraction failed: "+err.Error())
			return
		}
		record = s.parser.Parse(text)
	}

	s.logger.Debug("analyze request",
		zap.String("schematic", req.SchematicPath),
		zap.String("type", req.AnalysisType),
		zap.Bool("datasheet", record != nil),
	)

	result := s.engine.Analyze(r.Context(), &models.AnalysisRequest{
		SchematicPath: req.SchematicPath,
		AnalysisType:  req.AnalysisType,
		CustomQuery:   req.CustomQuery,
		DatasheetPath: req.DatasheetPath,
		Datasheet:     record,
	})
	s.respondJSON(w, http.StatusOK, result)
}

type datasheetRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleDatasheet(w http.ResponseWriter, r *http.Request) {
	var req datasheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	text, err := datasheet.ExtractText(req.Path)
	if err != nil {
		s.logger.Error("datasheet extraction failed", zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	record := s.parser.Parse(text)
	s.respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"categories": models.Categories()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	connected := s.gateway.CheckConnection(r.Context())
	resp := map[string]interface{}{
		"model":           s.gateway.Model(),
		"model_available": connected,
		"busy":            s.busy.Load(),
	}
	if s.results != nil {
		resp["cached_results"] = s.results.Len()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		s.respondError(w, http.StatusNotImplemented, "cache not enabled")
		return
	}
	s.results.Clear()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
