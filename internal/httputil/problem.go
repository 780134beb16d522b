package httputil

import (
	"encoding/json"
	"io"
)

// ProblemDetail represents an RFC 7807 Problem Details response body as
// returned by the remote collaborator on non-success statuses.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// DecodeProblem parses an RFC 7807 body. A body that is not valid JSON
// (e.g. a proxy error page) yields an empty ProblemDetail rather than an
// error; the caller falls back to the HTTP status text.
func DecodeProblem(r io.Reader) *ProblemDetail {
	var p ProblemDetail
	body, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return &p
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return &ProblemDetail{}
	}
	return &p
}

// Message returns the most descriptive text available.
func (p *ProblemDetail) Message() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
