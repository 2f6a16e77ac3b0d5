package server

import (
	"encoding/json"
)

// Envelope is the JSON shape every tool response carries. Not-found is a
// success:false envelope with an explicit message, never a protocol error;
// clients branch on Success without parsing error strings.
type Envelope struct {
	Success bool        `json:"success"`
	Source  string      `json:"source,omitempty"`
	Count   int         `json:"count,omitempty"`
	Results interface{} `json:"results,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessEnvelope wraps results for a tool response.
func SuccessEnvelope(source string, count int, results interface{}) Envelope {
	return Envelope{Success: true, Source: source, Count: count, Results: results}
}

// ErrorEnvelope wraps a caller-safe failure message.
func ErrorEnvelope(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// NotFoundEnvelope reports an explicit miss for a fixed lookup.
func NotFoundEnvelope(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// JSON renders the envelope; a marshal failure degrades to a minimal
// hand-built error document rather than panicking mid-response.
func (e Envelope) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return `{"success":false,"error":"response serialization failed"}`
	}
	return string(data)
}
