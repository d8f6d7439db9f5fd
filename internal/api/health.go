package api

import (
	"net/http"
	"time"

	"github.com/patrickwarner/oxclient/internal/oxapi"
)

// HealthHandler reports the session state. It answers 503 unless the client
// holds an authenticated session.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "health"
	const method = "GET"

	var state oxapi.State
	_ = s.WithClient(func(c *oxapi.Client) error {
		state = c.State()
		return nil
	})

	status := http.StatusOK
	body := map[string]string{"status": "ok", "session": state.String()}
	if state != oxapi.StateAuthenticated {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	}
	s.writeJSON(w, status, body)
	s.observe(endpoint, method, status, start)
}
