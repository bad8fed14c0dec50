package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dsablic/codecheck/internal/aiestimate"
	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/output"
	"github.com/dsablic/codecheck/internal/report"
	"github.com/dsablic/codecheck/internal/source"
)

type analyzeRequest struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	Extended    bool   `json:"extended"`
	Originality *bool  `json:"originality"`
	// IncludeCode is only read by the report endpoint.
	IncludeCode *bool `json:"include_code"`
}

func (r analyzeRequest) estimate() aiestimate.Request {
	return aiestimate.Request{
		Code:            r.Code,
		Language:        r.Language,
		Extended:        r.Extended,
		SkipOriginality: r.Originality != nil && !*r.Originality,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}

	result, ok := s.analyze(w, r, req)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var result model.ScoringResult
	if !decode(w, r, &result) {
		return
	}
	if result.Classification == "" {
		respondError(w, http.StatusBadRequest, "classification is required")
		return
	}

	link := output.ShareLink(result, s.shareOrigin(r), s.now())
	if link == "" {
		respondError(w, http.StatusUnprocessableEntity, "share link unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	result, ok := s.analyze(w, r, req)
	if !ok {
		return
	}

	code := req.Code
	if req.IncludeCode != nil && !*req.IncludeCode {
		code = ""
	}
	generatedAt, err := time.Parse(time.RFC3339, result.CreatedAt)
	if err != nil {
		generatedAt = s.now()
	}
	doc := output.BuildDocument(*result, code, generatedAt)

	var buf bytes.Buffer
	if err := report.Export(&buf, doc, format); err != nil {
		log.Printf("export %s report: %v", format, err)
		respondError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", report.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleSharePreview(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("result")
	if token == "" {
		respondError(w, http.StatusBadRequest, "result parameter is required")
		return
	}

	payload, err := output.DecodeShareToken(token)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid share token")
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req analyzeRequest) (*model.ScoringResult, bool) {
	result, err := s.estimator.Estimate(r.Context(), req.estimate())
	if err != nil {
		if errors.Is(err, aiestimate.ErrEmptyInput) {
			respondError(w, http.StatusBadRequest, aiestimate.EmptyInputMessage)
			return nil, false
		}
		log.Printf("analyze: %v", err)
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return nil, false
	}
	return result, true
}

func (s *Server) shareOrigin(r *http.Request) string {
	if s.origin != "" {
		return s.origin
	}
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, source.MaxBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
