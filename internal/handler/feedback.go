package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/internal/processor"
	"github.com/valentinpelus/signal/pkg/adapters"
	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/types"
)

// maxBodyBytes caps inbound payloads, CSV imports included
const maxBodyBytes = 10 << 20

// FeedbackHandler serves the feedback API
type FeedbackHandler struct {
	processor *processor.FeedbackProcessor
	registry  *adapters.Registry
	perPage   int
	logger    *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(proc *processor.FeedbackProcessor, registry *adapters.Registry, perPage int, logger *zap.Logger) *FeedbackHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if perPage <= 0 {
		perPage = feedback.DefaultPerPage
	}
	return &FeedbackHandler{
		processor: proc,
		registry:  registry,
		perPage:   perPage,
		logger:    logger,
	}
}

type submitResponse struct {
	Adapter string               `json:"adapter"`
	Items   []types.FeedbackItem `json:"items"`
}

type itemResponse struct {
	types.FeedbackItem
	Age string `json:"age"`
}

// HandleSubmit accepts a payload in any enabled adapter format
func (h *FeedbackHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxBodyBytes))
			return
		}
		h.logger.Warn("Failed to read request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	subs, adapter, err := h.registry.DetectAndConvert(body)
	if err != nil {
		h.logger.Info("Unrecognized feedback payload", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.processor.Submit(r.Context(), subs)
	if err != nil {
		h.writeIngestError(w, err, len(records))
		return
	}

	h.logger.Info("Received feedback",
		zap.String("adapter", adapter),
		zap.Int("count", len(records)))
	writeJSON(w, http.StatusCreated, submitResponse{Adapter: adapter, Items: feedback.Items(records)})
}

// HandleImport appends the rows of a CSV body
func (h *FeedbackHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	res, err := h.processor.Import(r.Context(), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case tooLarge(err):
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("import exceeds %d bytes", maxBodyBytes))
	case errors.Is(err, processor.ErrInvalidImport):
		h.logger.Info("Rejected import", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Failed to store import", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, importFailure{
			Error:        "failed to store feedback",
			ImportResult: res,
		})
	}
}

type importFailure struct {
	Error string `json:"error"`
	processor.ImportResult
}

type submitFailure struct {
	Error  string `json:"error"`
	Stored int    `json:"stored"`
}

// HandleList returns one page of the filtered collection
func (h *FeedbackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", h.perPage)
	writeJSON(w, http.StatusOK, h.processor.Page(filter, page, perPage))
}

// HandleGet returns a single record
func (h *FeedbackHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.processor.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, feedback.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{
		FeedbackItem: rec.Item(),
		Age:          feedback.Age(rec.Timestamp(), time.Now()),
	})
}

// HandleDelete removes a record
func (h *FeedbackHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.processor.Remove(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, feedback.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.logger.Error("Failed to remove feedback", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to remove feedback")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleInsights returns every aggregate view of the filtered collection
func (h *FeedbackHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.processor.Insights(filter))
}

// HandleReport renders the summary report as plain text
func (h *FeedbackHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, h.processor.Report(filter))
}

// HandleDeliver sends the summary report to every configured channel
func (h *FeedbackHandler) HandleDeliver(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.processor.Deliver(r.Context(), filter)
	if errors.Is(err, processor.ErrNoChannels) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("Delivery failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "delivery failed")
		return
	}

	status := http.StatusOK
	for _, res := range results {
		if res.Status == processor.StatusFailed {
			status = http.StatusBadGateway
			break
		}
	}
	writeJSON(w, status, map[string]any{"results": results})
}

func (h *FeedbackHandler) writeIngestError(w http.ResponseWriter, err error, stored int) {
	var verr *feedback.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.logger.Error("Failed to store feedback", zap.Error(err), zap.Int("stored", stored))
	writeJSON(w, http.StatusInternalServerError, submitFailure{Error: "failed to store feedback", Stored: stored})
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func parseFilter(r *http.Request) (feedback.Filter, error) {
	q := r.URL.Query()
	f := feedback.Filter{
		Source:    q.Get("source"),
		Sentiment: analysis.Sentiment(q.Get("sentiment")),
		Theme:     analysis.Theme(q.Get("theme")),
	}
	if err := f.Validate(); err != nil {
		return feedback.Filter{}, err
	}
	return f, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return v
	}
	return fallback
}
