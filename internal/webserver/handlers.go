package webserver

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"battery-analyzer/internal/listing"
	"battery-analyzer/internal/processor"
	"battery-analyzer/internal/processor/method"
	"battery-analyzer/internal/types"
)

//go:embed www/*
var wwwFiles embed.FS

// TemplateData holds data for template rendering
type TemplateData struct {
	Lang    string
	T       Translation
	Methods method.Catalog
}

// ProcessResponse is returned by a successful processing run
type ProcessResponse struct {
	RunID      string   `json:"run_id"`
	Message    string   `json:"message"`
	Output     string   `json:"output"`
	Command    []string `json:"command"`
	DurationMS int64    `json:"duration_ms"`
}

// DryRunResponse shows the command a run would execute
type DryRunResponse struct {
	Command []string `json:"command"`
}

// Server wires the HTTP surface to the lister and the processor
type Server struct {
	proc     *processor.Processor
	defaults types.ProcessConfig
}

// NewServer returns a Server running proc and offering defaults to the form
func NewServer(proc *processor.Processor, defaults types.ProcessConfig) *Server {
	return &Server{proc: proc, defaults: defaults}
}

// Routes returns the application handler with middleware applied
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", HomeHandler)
	mux.Handle("/www/", http.StripPrefix("/www/", StaticFileServer()))
	mux.HandleFunc("/api/files", FilesHandler)
	mux.HandleFunc("/api/process", s.ProcessHandler)
	mux.HandleFunc("/api/methods", MethodsHandler)
	mux.HandleFunc("/api/defaults", s.DefaultsHandler)
	mux.HandleFunc("/api/hint", HintHandler)

	return LoggingMiddleware(CompressionMiddleware(mux))
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	lang := GetLanguageFromRequest(r)

	data := TemplateData{
		Lang:    lang,
		T:       GetTranslations(lang),
		Methods: method.All(),
	}

	tmpl, err := template.ParseFS(wwwFiles, "www/index_template.html")
	if err != nil {
		slog.Error("Error parsing template:", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err = tmpl.Execute(w, data)
	if err != nil {
		slog.Error("Error executing template:", "error", err)
	}
}

// FilesHandler lists the spreadsheets in the folder given by the path query parameter
func FilesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := slog.With("handler", "FilesHandler")
	lang := GetLanguageFromRequest(r)

	folder := SanitizeFolderPath(r.URL.Query().Get("path"))

	err := ValidateFolderPath(folder, "path")
	if err != nil {
		WriteErrorResponseWithLang(w, err, StatusForError(err), lang)
		return
	}

	files, err := listing.ListExcelFiles(folder)
	if err != nil {
		log.Error("Failed to list folder", "path", folder, "error", err)
		WriteErrorResponseWithLang(w, err, StatusForError(err), lang)

		return
	}

	log.Debug("Folder listed", "path", folder, "files", len(files))
	writeJSON(w, http.StatusOK, files)
}

// ProcessHandler runs the processing script for the posted configuration and waits for it to finish.
// With ?dry_run=true it only reports the command line.
func (s *Server) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := slog.With("handler", "ProcessHandler")
	lang := GetLanguageFromRequest(r)

	cfg, err := receiveProcessConfig(w, r)
	if err != nil {
		log.Warn("Rejected processing request", "error", err)
		WriteErrorResponseWithLang(w, err, StatusForError(err), lang)

		return
	}

	if r.URL.Query().Get("dry_run") == "true" {
		writeJSON(w, http.StatusOK, DryRunResponse{Command: s.proc.CommandLine(cfg)})
		return
	}

	res, err := s.proc.Run(cfg)
	if err != nil {
		var extErr *processor.ExternalError
		if errors.As(err, &extErr) {
			log.Error("Processing script failed", "exit_code", extErr.ExitCode)
		} else {
			log.Error("Processing failed", "error", err)
		}

		WriteErrorResponseWithLang(w, err, StatusForError(err), lang)

		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{
		RunID:      res.RunID,
		Message:    res.Output(),
		Output:     res.Stdout,
		Command:    res.Command,
		DurationMS: res.Duration.Milliseconds(),
	})
}

func receiveProcessConfig(w http.ResponseWriter, r *http.Request) (types.ProcessConfig, error) {
	var cfg types.ProcessConfig

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return cfg, fmt.Errorf("%w: cannot read body: %w", ErrInvalidRequest, err)
	}

	var raw map[string]json.RawMessage

	err = json.Unmarshal(body, &raw)
	if err != nil {
		return cfg, fmt.Errorf("%w: cannot decode body: %w", ErrInvalidRequest, err)
	}

	err = CheckRequiredFields(raw)
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(body, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%w: cannot decode body: %w", ErrInvalidRequest, err)
	}

	err = ValidateProcessConfig(&cfg)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

// MethodsHandler serves the method catalog
func MethodsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, method.All())
}

// DefaultsHandler serves the form defaults
func (s *Server) DefaultsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.defaults)
}

// HintHandler serves hint text for the UI tooltips
func HintHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hintKey := r.URL.Query().Get("key")
	if hintKey == "" {
		http.Error(w, "Hint key is required", http.StatusBadRequest)
		return
	}

	lang := GetLanguageFromRequest(r)

	key := "hint_" + hintKey

	hintText := GetTranslation(lang, key)
	if hintText == key {
		http.Error(w, "Hint not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(hintText))
}

func StaticFileServer() http.Handler {
	subFS, err := fs.Sub(wwwFiles, "www")
	if err != nil {
		slog.Error("Failed to create sub-filesystem", "error", err)
		return http.FileServer(http.FS(wwwFiles))
	}

	return http.FileServer(http.FS(subFS))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
