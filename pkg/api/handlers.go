package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/causallab/dagcheck/pkg/buildinfo"
	"github.com/causallab/dagcheck/pkg/check"
	pkgerrors "github.com/causallab/dagcheck/pkg/errors"
	"github.com/causallab/dagcheck/pkg/pipeline"
	"github.com/causallab/dagcheck/pkg/render"
	"github.com/causallab/dagcheck/pkg/scenario"
	"github.com/causallab/dagcheck/pkg/store"
)

// validateResponse is the envelope for single-scenario validation.
type validateResponse struct {
	Report   *check.Report `json:"report"`
	CacheHit bool          `json:"cache_hit"`
	ParseMS  int64         `json:"parse_ms"`
	CheckMS  int64         `json:"check_ms"`
}

// batchItem is one entry in a batch validation response.
type batchItem struct {
	ScenarioID string        `json:"scenario_id"`
	Report     *check.Report `json:"report,omitempty"`
	Error      string        `json:"error,omitempty"`
	ErrorCode  string        `json:"error_code,omitempty"`
}

// batchResponse is the envelope for batch validation.
type batchResponse struct {
	Results []batchItem `json:"results"`
	Total   int         `json:"total"`
	Passed  int         `json:"passed"`
	Failed  int         `json:"failed"`
	Errored int         `json:"errored"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.runner.ValidateScenario(r.Context(), sc, s.requestOptions(r))
	if err != nil {
		s.respondValidationError(w, err)
		return
	}

	s.archive(r, res.Report)
	s.respondJSON(w, http.StatusOK, validateResponse{
		Report:   res.Report,
		CacheHit: res.CacheInfo.ReportHit,
		ParseMS:  res.Stats.ParseTime.Milliseconds(),
		CheckMS:  res.Stats.CheckTime.Milliseconds(),
	})
}

func (s *Server) handleValidateBatch(w http.ResponseWriter, r *http.Request) {
	scenarios, err := scenario.DecodeJSON(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, pkgerrors.UserMessage(err))
		return
	}

	results := s.runner.ValidateBatch(r.Context(), scenarios, s.requestOptions(r))
	sum := pipeline.Summarize(results)

	resp := batchResponse{
		Results: make([]batchItem, len(results)),
		Total:   sum.Total,
		Passed:  sum.Passed,
		Failed:  sum.Failed,
		Errored: sum.Errored,
	}
	for i, br := range results {
		item := batchItem{ScenarioID: br.Scenario.ID}
		if br.Err != nil {
			item.Error = pkgerrors.UserMessage(br.Err)
			item.ErrorCode = string(pkgerrors.GetCode(br.Err))
		} else {
			item.Report = br.Result.Report
			s.archive(r, br.Result.Report)
		}
		resp.Results[i] = item
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.runner.ValidateScenario(r.Context(), sc, s.requestOptions(r))
	if err != nil {
		s.respondValidationError(w, err)
		return
	}

	svg, err := render.RenderSVG(render.ToDOT(res.Graph, render.Options{
		Detailed:   r.URL.Query().Get("detailed") == "true",
		Adjustment: sc.AdjustmentSet,
	}))
	if err != nil {
		s.logger.Error("render failed", "scenario", res.Scenario.ID, "err", err)
		s.respondError(w, http.StatusInternalServerError, "render failed")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := s.store.ListReports(r.Context(), limit)
	if err != nil {
		s.logger.Error("list reports failed", "err", err)
		s.respondError(w, http.StatusInternalServerError, "listing reports failed")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"reports": records,
		"count":   len(records),
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetReport(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.logger.Error("get report failed", "scenario", id, "err", err)
		s.respondError(w, http.StatusInternalServerError, "loading report failed")
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

// requestOptions derives per-request pipeline options from query params.
func (s *Server) requestOptions(r *http.Request) pipeline.Options {
	opts := s.opts
	if r.URL.Query().Get("refresh") == "true" {
		opts.Refresh = true
	}
	if raw := r.URL.Query().Get("max_path_depth"); raw != "" {
		if depth, err := strconv.Atoi(raw); err == nil && depth > 0 {
			opts.MaxPathDepth = depth
		}
	}
	return opts
}

// archive saves a report to the store, if one is configured. Failures are
// logged but never fail the request.
func (s *Server) archive(r *http.Request, rep *check.Report) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveReport(r.Context(), rep); err != nil {
		s.logger.Warn("report archive failed", "scenario", rep.ScenarioID, "err", err)
	}
}

// respondValidationError maps engine errors to status codes.
func (s *Server) respondValidationError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch pkgerrors.GetCode(err) {
	case pkgerrors.ErrCodeMalformedStructure,
		pkgerrors.ErrCodeDanglingReference,
		pkgerrors.ErrCodeInvalidScenario,
		pkgerrors.ErrCodeInvalidVariable,
		pkgerrors.ErrCodeInvalidFormat:
		status = http.StatusUnprocessableEntity
	}
	s.respondJSON(w, status, map[string]string{
		"error":      pkgerrors.UserMessage(err),
		"error_code": string(pkgerrors.GetCode(err)),
	})
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", "err", err)
	}
}
