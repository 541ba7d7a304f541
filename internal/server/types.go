package server

// FinishRequest represents the JSON body a worker posts when it has finished
// searching a partition. Results are encoded as compact [a, x, b, y] rows.
type FinishRequest struct {
	// Part is the partition identifier (the fixed base a).
	Part uint32 `json:"part"`
	// Results holds the candidate quadruples found in the partition.
	Results [][4]uint32 `json:"results"`
}

// FinishResponse represents the JSON response to a finish report.
type FinishResponse struct {
	// Status is "ok" when the report was accepted.
	Status string `json:"status"`
}

// StatsResponse represents the JSON response for the /stats endpoint.
type StatsResponse struct {
	// Completed is the number of partitions whose results were persisted.
	Completed int `json:"completed"`
	// Pending is the number of distinct partitions dispatched but unconfirmed.
	Pending int `json:"pending"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}
