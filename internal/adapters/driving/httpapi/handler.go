package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driving"
	"github.com/custodia-labs/sapbatch/internal/logger"
)

const (
	// FunctionPath is the route of the function app trigger.
	FunctionPath = "/api/sap_batchjobs_http"

	// ProcessPath is an alias of FunctionPath for standalone use.
	ProcessPath = "/api/process"

	// HealthPath reports liveness.
	HealthPath = "/healthz"

	// InvocationHeader carries the invocation id on requests and responses.
	InvocationHeader = "X-Invocation-Id"

	// DatatypeSAPBatch is the only supported datatype.
	DatatypeSAPBatch = "sap_batch"

	maxBodyBytes = 1 << 20
)

// processParams are the trigger parameters, from the query string or a
// JSON body.
type processParams struct {
	Filename        string `json:"filename"`
	Path            string `json:"path"`
	SourceContainer string `json:"sourceContainer"`
	SinkContainer   string `json:"sinkContainer"`
	Datatype        string `json:"datatype"`
}

// ProcessResponse is the success body.
type ProcessResponse struct {
	Results     string `json:"results"`
	Destination string `json:"destination"`
	Rows        int    `json:"rows"`
}

// ErrorBody is the error detail inside ErrorResponse.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the failure body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Handler serves the processing routes.
type Handler struct {
	processor driving.Processor
	newID     func() string
}

// NewHandler creates a handler backed by processor.
func NewHandler(processor driving.Processor) *Handler {
	return &Handler{
		processor: processor,
		newID:     uuid.NewString,
	}
}

// Routes returns the HTTP routes.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	for _, path := range []string{FunctionPath, ProcessPath} {
		mux.HandleFunc("GET "+path, h.handleProcess)
		mux.HandleFunc("POST "+path, h.handleProcess)
	}
	mux.HandleFunc("GET "+HealthPath, h.handleHealth)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(InvocationHeader)
	if id == "" {
		id = h.newID()
	}
	w.Header().Set(InvocationHeader, id)
	log := logger.With(zap.String("invocation_id", id))

	params, err := readParams(r)
	if err != nil {
		h.fail(w, log, err)
		return
	}
	log.Debug("trigger",
		zap.String("filename", params.Filename),
		zap.String("path", params.Path),
		zap.String("datatype", params.Datatype),
	)

	res, err := h.processor.Process(r.Context(), driving.Request{
		SourceContainer: params.SourceContainer,
		SourcePath:      params.Path,
		Filename:        params.Filename,
		SinkContainer:   params.SinkContainer,
	})
	if err != nil {
		h.fail(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{
		Results:     res.Summary(),
		Destination: res.Written.String(),
		Rows:        res.Rows,
	})
}

func (h *Handler) fail(w http.ResponseWriter, log *zap.Logger, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("code", code), zap.Error(err))
	} else {
		log.Warn("request rejected", zap.String("code", code), zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: err.Error()}})
}

// readParams merges the JSON body with the query string. Query values win.
func readParams(r *http.Request) (processParams, error) {
	var params processParams

	if r.Method == http.MethodPost && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return params, fmt.Errorf("%w: read body: %v", domain.ErrInvalidInput, err)
		}
		if len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, &params); err != nil {
				return params, fmt.Errorf("%w: invalid JSON body: %v", domain.ErrInvalidInput, err)
			}
		}
	}

	q := r.URL.Query()
	override(&params.Filename, q.Get("filename"))
	override(&params.Path, q.Get("path"))
	override(&params.SourceContainer, q.Get("sourceContainer"))
	override(&params.SinkContainer, q.Get("sinkContainer"))
	override(&params.Datatype, q.Get("datatype"))

	if params.Datatype == "" {
		params.Datatype = DatatypeSAPBatch
	}
	if params.Datatype != DatatypeSAPBatch {
		return params, fmt.Errorf("%w: unsupported datatype %q", domain.ErrInvalidInput, params.Datatype)
	}
	if strings.TrimSpace(params.Filename) == "" {
		return params, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	return params, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
