package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/article-summarizer/internal/domain/history"
	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/article-summarizer/pkg/errors"
	"github.com/yanqian/article-summarizer/pkg/util"
)

const (
	maxHistoryLimit = 500
	maxFormMemory   = 32 << 20
)

// Handler wires the HTTP transport to the summarizer and the history list.
type Handler struct {
	summarizerSvc summarizer.Service
	history       history.Store
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(summarySvc summarizer.Service, store history.Store, logger *slog.Logger) *Handler {
	return &Handler{
		summarizerSvc: summarySvc,
		history:       store,
		logger:        logger.With("component", "http.handler"),
	}
}

// Index renders the form and the history without processing anything.
func (h *Handler) Index(c *gin.Context) {
	h.renderPage(c, http.StatusOK, pageData{})
}

// SubmitForm summarizes the posted article field and renders the page.
// An empty article is ignored.
func (h *Handler) SubmitForm(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		status, code := http.StatusBadRequest, "invalid_request"
		if isBodyTooLarge(err) {
			status, code = http.StatusRequestEntityTooLarge, "request_too_large"
		}
		h.logger.Warn("read form failed", "code", code, "status", status, "error", err)
		h.renderPage(c, status, pageData{Error: genericFailure})
		return
	}
	article := c.PostForm("article")
	if strings.TrimSpace(article) == "" {
		h.renderPage(c, http.StatusOK, pageData{})
		return
	}

	result, err := h.summarizerSvc.Summarize(c.Request.Context(), summarizer.Request{Text: article})
	if err != nil {
		status, code := classify(err)
		h.logger.Error("form summarization failed", "code", code, "status", status, "error", err)
		h.renderPage(c, status, pageData{Article: article, Error: genericFailure})
		return
	}

	h.record(c.Request.Context(), result)
	h.renderPage(c, http.StatusOK, pageData{Result: &result})
}

// Summarize handles the JSON summarization endpoint.
func (h *Handler) Summarize(c *gin.Context) {
	var req summarizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "request_too_large", "request body too large", err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.summarizerSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		status, code := classify(err)
		message := "summarization failed"
		if status == http.StatusBadRequest {
			message = errMessage(err)
		}
		abortWithError(c, NewHTTPError(status, code, message, err))
		return
	}

	h.record(c.Request.Context(), result)
	c.JSON(http.StatusOK, result)
}

// History returns recent results, newest first.
func (h *Handler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > maxHistoryLimit {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be an integer between 0 and 500", err))
			return
		}
		limit = parsed
	}

	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "history_failed", "history unavailable", err))
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) record(ctx context.Context, result summarizer.Result) {
	entry := history.Entry{
		ID:        uuid.NewString(),
		CreatedAt: util.NowUTC(),
		Result:    result,
	}
	if err := h.history.Add(ctx, entry); err != nil {
		h.logger.Error("record history failed", "error", err)
	}
}

func (h *Handler) renderPage(c *gin.Context, status int, data pageData) {
	entries, err := h.history.Recent(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error("load history failed", "error", err)
	}
	data.History = entries
	c.HTML(status, indexTemplate, data)
}

// classify maps summarizer error codes to an HTTP status and response code.
func classify(err error) (int, string) {
	switch apperrors.CodeOf(err) {
	case summarizer.CodeEmptyInput:
		return http.StatusBadRequest, "invalid_request"
	case summarizer.CodeSummarizationUnavailable:
		return http.StatusBadGateway, summarizer.CodeSummarizationUnavailable
	case summarizer.CodeTokenizationFailed:
		return http.StatusInternalServerError, summarizer.CodeTokenizationFailed
	default:
		return http.StatusInternalServerError, "summarize_failed"
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
