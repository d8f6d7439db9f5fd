package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/oxapi"
	"github.com/patrickwarner/oxclient/internal/reporting"
)

// defaultReportDays is the window used when the request names no range.
const defaultReportDays = 30

// ReportHandler handles GET /reports/{kind}/{id}?from=YYYY-MM-DD&to=YYYY-MM-DD
// and summarizes the archived daily statistics of one entity.
func (s *Server) ReportHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "report"
	const method = "GET"

	if s.Reports == nil {
		http.Error(w, "reports unavailable", http.StatusServiceUnavailable)
		s.observe(endpoint, method, http.StatusServiceUnavailable, start)
		return
	}

	vars := mux.Vars(r)
	kind, err := oxapi.ParseKind(vars["kind"])
	if err != nil || len(oxapi.StatisticsBreakdowns(kind)) == 0 {
		http.Error(w, "no statistics for kind", http.StatusNotFound)
		s.observe(endpoint, method, http.StatusNotFound, start)
		return
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		s.observe(endpoint, method, http.StatusBadRequest, start)
		return
	}

	to := models.CalendarDate(time.Now())
	from := to.AddDate(0, 0, -defaultReportDays)
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse(models.DayLayout, v); err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			s.observe(endpoint, method, http.StatusBadRequest, start)
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse(models.DayLayout, v); err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			s.observe(endpoint, method, http.StatusBadRequest, start)
			return
		}
	}

	daily, err := s.Reports.QueryDaily(r.Context(), kind, id, from, to)
	if err != nil {
		s.Logger.Error("query report", zap.String("kind", string(kind)), zap.Int("id", id), zap.Error(err))
		http.Error(w, "warehouse error", http.StatusInternalServerError)
		s.observe(endpoint, method, http.StatusInternalServerError, start)
		return
	}

	s.writeJSON(w, http.StatusOK, reporting.Summarize(kind, id, daily))
	s.observe(endpoint, method, http.StatusOK, start)
}
