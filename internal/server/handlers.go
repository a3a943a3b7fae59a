package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/nightring/internal/analysis"
	"github.com/claude/nightring/internal/models"
	"github.com/claude/nightring/internal/report"
)

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNight(w http.ResponseWriter, r *http.Request) {
	email, date, ok := s.nightParams(w, r)
	if !ok {
		return
	}

	res, ok := s.analyze(w, r, email, date)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNightReport(w http.ResponseWriter, r *http.Request) {
	email, date, ok := s.nightParams(w, r)
	if !ok {
		return
	}

	res, ok := s.analyze(w, r, email, date)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Render(email, date, res)))
}

// nightParams resolves the email and date query parameters with the same
// defaults as the MCP tools: configured account, yesterday's night.
func (s *Server) nightParams(w http.ResponseWriter, r *http.Request) (email, date string, ok bool) {
	email = r.URL.Query().Get("email")
	if email == "" {
		email = s.defaultEmail
	}
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email parameter required"})
		return "", "", false
	}

	date = r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return "", "", false
	}
	return email, date, true
}

// analyze runs the fetch + analysis pipeline, writing the error response
// itself when the pipeline does not produce a result.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request, email, date string) (*models.AnalysisResult, bool) {
	doc, err := s.fetcher.FetchMetrics(r.Context(), email, date)
	if err != nil {
		s.log.Error("upstream fetch failed", "date", date, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return nil, false
	}

	res, err := analysis.Run(doc)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrNoUsableData),
			errors.Is(err, analysis.ErrNoHeartRate),
			errors.Is(err, analysis.ErrNoSleepData):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			s.log.Error("analysis failed", "date", date, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return nil, false
	}
	return res, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
