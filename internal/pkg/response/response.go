package response

import (
	"encoding/json"
	"io"
	"net/http"
)

// DecodeJSON decodes JSON from request body into the provided struct
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// ErrorBody is the error shape the gallery clients expect
type ErrorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// DataBody wraps a payload as {"data": ...}
type DataBody struct {
	Data interface{} `json:"data"`
}

// MessageBody carries a human readable result, optionally with data
type MessageBody struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Metadata represents offset pagination metadata
type Metadata struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// Page is the list response: {"data": [...], "metadata": {...}}
type Page struct {
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
}

// JSON sends v as the JSON body
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// OK sends a 200 OK response with v as-is
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Data sends a 200 OK response wrapped in {"data": ...}
func Data(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, DataBody{Data: data})
}

// Created sends a 201 Created response wrapped in {"data": ...}
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, DataBody{Data: data})
}

// Message sends a 200 OK response with a message and optional data
func Message(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, MessageBody{Message: message, Data: data})
}

// WithMeta sends a list response with pagination metadata
func WithMeta(w http.ResponseWriter, data interface{}, meta Metadata) {
	JSON(w, http.StatusOK, Page{Data: data, Metadata: meta})
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// ValidationError sends a 400 response listing the offending fields
func ValidationError(w http.ResponseWriter, details map[string]string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "Missing required fields", Details: details})
}

// InternalError sends a 500 response carrying the upstream message
func InternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal error"
	}
	Error(w, http.StatusInternalServerError, message)
}
