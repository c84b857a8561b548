package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"battery-analyzer/internal/listing"
	"battery-analyzer/internal/processor"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeFilesystem    ErrorType = "filesystem"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeLaunch        ErrorType = "launch"
	ErrorTypeExternal      ErrorType = "external"
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeBusy          ErrorType = "busy"
	ErrorTypeRequest       ErrorType = "request"
	ErrorTypeInternal      ErrorType = "internal"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

type errorCategory struct {
	target      error
	typ         ErrorType
	code        string
	key         string
	status      int
	suggestions []string
}

// first match wins
var errorCategories = []errorCategory{
	{listing.ErrNotFound, ErrorTypeFilesystem, "folder_not_found", "error_folder_not_found", http.StatusNotFound,
		[]string{"path", "drive"}},
	{processor.ErrInputMissing, ErrorTypeFilesystem, "input_missing", "error_folder_not_found", http.StatusNotFound,
		[]string{"path", "drive"}},
	{listing.ErrReadFailed, ErrorTypeFilesystem, "folder_read_error", "error_folder_read", http.StatusInternalServerError,
		[]string{"permissions", "directory"}},
	{listing.ErrMetadata, ErrorTypeFilesystem, "metadata_error", "error_metadata", http.StatusInternalServerError,
		[]string{"locked", "retry"}},
	{processor.ErrOutputCreate, ErrorTypeFilesystem, "output_create_error", "error_output_create", http.StatusInternalServerError,
		[]string{"permissions", "space"}},
	{processor.ErrScriptMissing, ErrorTypeConfiguration, "script_missing", "error_script_missing", http.StatusNotFound,
		[]string{"install", "config"}},
	{processor.ErrLaunch, ErrorTypeLaunch, "launch_error", "error_launch", http.StatusInternalServerError,
		[]string{"python", "config"}},
	{processor.ErrExternalFailure, ErrorTypeExternal, "external_failure", "error_external", http.StatusBadGateway,
		[]string{"files", "verbose"}},
	{processor.ErrBusy, ErrorTypeBusy, "busy", "error_busy", http.StatusConflict,
		[]string{"wait"}},
	{ErrInvalidParameters, ErrorTypeValidation, "invalid_parameters", "error_invalid_parameters", http.StatusBadRequest,
		[]string{"fields", "positive"}},
	{ErrInvalidRequest, ErrorTypeRequest, "invalid_request", "error_invalid_request", http.StatusBadRequest,
		[]string{"refresh"}},
}

var fallbackCategory = errorCategory{
	typ:         ErrorTypeInternal,
	code:        "processing_error",
	key:         "error_processing",
	status:      http.StatusInternalServerError,
	suggestions: []string{"retry", "logs"},
}

func categorize(err error) errorCategory {
	for _, c := range errorCategories {
		if errors.Is(err, c.target) {
			return c
		}
	}

	return fallbackCategory
}

// CategorizeError analyzes an error and returns an appropriate ErrorResponse
func CategorizeError(err error) ErrorResponse {
	return CategorizeErrorWithLang(err, "en")
}

// CategorizeErrorWithLang analyzes an error and returns an appropriate ErrorResponse with translations
func CategorizeErrorWithLang(err error, lang string) ErrorResponse {
	if err == nil {
		return ErrorResponse{
			Type:        ErrorTypeInternal,
			Code:        "unknown_error",
			Title:       GetTranslation(lang, "error_processing_title"),
			Description: GetTranslation(lang, "error_processing_description"),
			Details:     "No error details available",
		}
	}

	c := categorize(err)

	suggestions := make([]string, 0, len(c.suggestions))
	for _, s := range c.suggestions {
		suggestions = append(suggestions, GetTranslation(lang, c.key+"_suggestion_"+s))
	}

	return ErrorResponse{
		Type:        c.typ,
		Code:        c.code,
		Title:       GetTranslation(lang, c.key+"_title"),
		Description: GetTranslation(lang, c.key+"_description"),
		Details:     err.Error(),
		Suggestions: suggestions,
	}
}

// StatusForError returns the HTTP status used for err
func StatusForError(err error) int {
	return categorize(err).status
}

// WriteErrorResponse writes a structured error response as JSON
func WriteErrorResponse(w http.ResponseWriter, err error, statusCode int) {
	WriteErrorResponseWithLang(w, err, statusCode, "en")
}

// WriteErrorResponseWithLang writes a structured error response as JSON with language support
func WriteErrorResponseWithLang(w http.ResponseWriter, err error, statusCode int, lang string) {
	errorResp := CategorizeErrorWithLang(err, lang)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if jsonErr := json.NewEncoder(w).Encode(errorResp); jsonErr != nil {
		fmt.Fprintf(w, "Error: %v", err)
	}
}
