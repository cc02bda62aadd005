// Package models provides the data structures shared by the transfer workflow, its event sources and its runtimes.
package models

// Request represents an incoming webhook delivery containing a body and associated headers.
type Request struct {
	Body    string
	Headers map[string]string
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}
