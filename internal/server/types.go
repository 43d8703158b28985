package server

// ParseResponse is the response for the parse and extract endpoints
type ParseResponse struct {
	Profile string `json:"profile"`
	Invoice any    `json:"invoice"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid   bool     `json:"valid"`
	Profile string   `json:"profile,omitempty"`
	Kind    string   `json:"kind,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
