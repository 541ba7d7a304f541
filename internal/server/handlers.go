package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agbru/bealsearch/internal/search"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleStats reports the work distribution progress.
// It queries the service for completed and pending partition counts and
// returns them as JSON.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	completed, pending := s.service.Stats()

	s.writeJSONResponse(w, http.StatusOK, StatsResponse{
		Completed: completed,
		Pending:   pending,
	})
}

// handleGetWork processes a worker's request for a partition to search.
// It returns the next work specification as JSON, or 204 No Content when
// every partition has been completed.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleGetWork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	spec := s.service.GetWork()
	if spec == nil {
		// The search is over; workers treat 204 as "retry later".
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, spec)
}

// handleFinish processes a worker's completion report for a partition.
// It decodes the request body, hands the results to the service, and
// acknowledges the report. Duplicate reports are acknowledged the same way.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseFinishRequest(r, s.securityConfig.MaxBodyBytes)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	results := make([]search.Quad, len(req.Results))
	for i, row := range req.Results {
		results[i] = search.Quad{A: row[0], X: row[1], B: row[2], Y: row[3]}
	}

	if err := s.service.FinishWork(req.Part, results); err != nil {
		s.logger.Printf("Error persisting results for partition %d: %v", req.Part, err)
		s.writeErrorResponse(w, http.StatusInternalServerError, "failed to persist results")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, FinishResponse{Status: "ok"})
}

// parseFinishRequest decodes and validates a finish report body.
//
// Parameters:
//   - r: The HTTP request carrying the JSON body.
//   - maxBytes: The maximum accepted body size.
//
// Returns:
//   - *FinishRequest: The decoded report.
//   - error: A decoding or validation error, nil otherwise.
func parseFinishRequest(r *http.Request, maxBytes int64) (*FinishRequest, error) {
	var req FinishRequest

	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
