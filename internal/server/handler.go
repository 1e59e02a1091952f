// Package server exposes the tokenizer and highlighter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/prism/internal/cachemanager"
	"github.com/zjrosen/prism/internal/highlight"
	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/theme"
	"github.com/zjrosen/prism/internal/tracing"
)

// DefaultMaxBodyBytes caps request bodies when HandlerConfig leaves it unset.
const DefaultMaxBodyBytes = 4 << 20

// Handler provides the HTTP endpoints.
type Handler struct {
	highlighter  *highlight.Highlighter
	tracer       trace.Tracer
	theme        theme.Name
	palettes     theme.Palettes
	maxBodyBytes int64
	cacheTTL     time.Duration

	markup *cachemanager.ReadThroughCache[string, string, HighlightRequest]
	tokens *cachemanager.ReadThroughCache[string, []lexer.Token, TokenizeRequest]
	caches []interface{ Len() int }
}

// HandlerConfig configures the API handler.
type HandlerConfig struct {
	// Highlighter renders requests. Nil uses the default tokenizer.
	Highlighter *highlight.Highlighter
	// Tracer creates request spans. Nil disables tracing.
	Tracer trace.Tracer
	// Theme is used when a request names none.
	Theme theme.Name
	// Palettes styles HTML pages and stylesheets. Nil uses the built-ins.
	Palettes theme.Palettes
	// MaxBodyBytes caps request bodies. Zero uses DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// CacheTTL is how long rendered responses are kept. Zero uses the cache default.
	CacheTTL time.Duration
	// DisableCache renders every request from scratch.
	DisableCache bool
}

// NewHandler creates a handler from cfg.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		highlighter:  cfg.Highlighter,
		tracer:       cfg.Tracer,
		theme:        cfg.Theme,
		palettes:     cfg.Palettes,
		maxBodyBytes: cfg.MaxBodyBytes,
		cacheTTL:     cfg.CacheTTL,
	}
	if h.highlighter == nil {
		h.highlighter = highlight.New(nil)
	}
	if h.tracer == nil {
		h.tracer = tracing.Disabled().Tracer()
	}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = DefaultMaxBodyBytes
	}

	expiration := cfg.CacheTTL
	if expiration <= 0 {
		expiration = cachemanager.DefaultExpiration
	}
	markupCache := cachemanager.NewInMemoryCacheManager[string, string]("markup", expiration, cachemanager.DefaultCleanupInterval)
	tokenCache := cachemanager.NewInMemoryCacheManager[string, []lexer.Token]("tokens", expiration, cachemanager.DefaultCleanupInterval)
	h.markup = cachemanager.NewReadThroughCache[string, string, HighlightRequest](markupCache, h.renderMarkup, cfg.DisableCache)
	h.tokens = cachemanager.NewReadThroughCache[string, []lexer.Token, TokenizeRequest](tokenCache, h.renderTokens, cfg.DisableCache)
	h.caches = []interface{ Len() int }{markupCache, tokenCache}
	return h
}

// Routes returns an http.Handler with all API routes registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /tokenize", h.instrument("tokenize", h.Tokenize))
	mux.HandleFunc("POST /highlight", h.instrument("highlight", h.Highlight))
	mux.HandleFunc("GET /languages", h.instrument("languages", h.ListLanguages))
	mux.HandleFunc("GET /themes", h.instrument("themes", h.ListThemes))
	mux.HandleFunc("GET /themes/{file}", h.instrument("stylesheet", h.Stylesheet))
	mux.HandleFunc("GET /health", h.Health)

	return mux
}

// === Request/Response Types ===

// TokenizeRequest is the request body for POST /tokenize.
type TokenizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// TokenizeResponse is the response body for POST /tokenize.
type TokenizeResponse struct {
	// Language is the canonical tag the request resolved to.
	Language string        `json:"language"`
	Tokens   []lexer.Token `json:"tokens"`
}

// HighlightRequest is the request body for POST /highlight.
type HighlightRequest struct {
	Text          string `json:"text"`
	Language      string `json:"language"`
	Search        string `json:"search,omitempty"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
	Theme         string `json:"theme,omitempty"`
}

// HighlightResponse is the response body for POST /highlight.
type HighlightResponse struct {
	Markup string `json:"markup"`
	Theme  string `json:"theme"`
}

// LanguageResponse describes one supported language.
type LanguageResponse struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// ListLanguagesResponse is the response body for GET /languages.
type ListLanguagesResponse struct {
	Languages []LanguageResponse `json:"languages"`
	Total     int                `json:"total"`
}

// ThemeResponse describes one built-in theme.
type ThemeResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListThemesResponse is the response body for GET /themes.
type ListThemesResponse struct {
	Themes []ThemeResponse `json:"themes"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	CachedItems int    `json:"cached_items"`
}

// ErrorResponse is the response body for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// === Handlers ===

// Tokenize returns the token stream for a text.
// POST /tokenize
func (h *Handler) Tokenize(w http.ResponseWriter, r *http.Request) {
	var req TokenizeRequest
	if !h.decode(w, r, &req) {
		return
	}

	lang := lexer.ParseLanguage(req.Language)
	ctx, span := tracing.Start(r.Context(), h.tracer, tracing.SpanTokenize,
		attribute.String(tracing.AttrLanguage, lang.String()),
		attribute.Int(tracing.AttrInputBytes, len(req.Text)),
	)
	if !lang.Known() {
		span.AddEvent(tracing.EventFallback)
	}
	key := cachemanager.Key("tokenize", lang.String(), req.Text)
	tokens, hit, err := h.tokens.GetWithRefresh(ctx, key, req, h.cacheTTL)
	span.SetAttributes(
		attribute.Bool(tracing.AttrCacheHit, hit),
		attribute.Int(tracing.AttrTokens, len(tokens)),
	)
	tracing.End(span, err)

	if tokens == nil {
		tokens = []lexer.Token{}
	}
	h.writeJSON(w, http.StatusOK, TokenizeResponse{Language: lang.String(), Tokens: tokens})
}

// Highlight returns markup for a text. Clients accepting text/html get a
// standalone page with the theme stylesheet.
// POST /highlight
func (h *Handler) Highlight(w http.ResponseWriter, r *http.Request) {
	var req HighlightRequest
	if !h.decode(w, r, &req) {
		return
	}

	name := h.theme
	if req.Theme != "" {
		parsed, err := theme.ParseStrict(req.Theme)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "unknown_theme", err.Error(), "")
			return
		}
		name = parsed
	}
	name = theme.Get(name).Name
	req.Theme = string(name)

	ctx, span := tracing.Start(r.Context(), h.tracer, tracing.SpanHighlight,
		attribute.String(tracing.AttrLanguage, req.Language),
		attribute.String(tracing.AttrTheme, req.Theme),
		attribute.Int(tracing.AttrInputBytes, len(req.Text)),
		attribute.Bool(tracing.AttrSearch, req.Search != ""),
	)
	key := cachemanager.Key("highlight", strings.ToLower(strings.TrimSpace(req.Language)), req.Theme,
		req.Search, boolKey(req.CaseSensitive), req.Text)
	markup, hit, err := h.markup.GetWithRefresh(ctx, key, req, h.cacheTTL)
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, hit))
	tracing.End(span, err)

	if acceptsHTML(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(h.palettes.Document(name, "prism", markup)))
		return
	}
	h.writeJSON(w, http.StatusOK, HighlightResponse{Markup: markup, Theme: req.Theme})
}

// ListLanguages returns every supported language with its tags.
// GET /languages
func (h *Handler) ListLanguages(w http.ResponseWriter, _ *http.Request) {
	langs := lexer.Languages()
	resp := ListLanguagesResponse{
		Languages: make([]LanguageResponse, 0, len(langs)),
		Total:     len(langs),
	}
	for _, l := range langs {
		resp.Languages = append(resp.Languages, LanguageResponse{Name: l.String(), Tags: l.Tags()})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ListThemes returns the built-in themes.
// GET /themes
func (h *Handler) ListThemes(w http.ResponseWriter, _ *http.Request) {
	resp := ListThemesResponse{Themes: make([]ThemeResponse, 0, len(theme.Names))}
	for _, name := range theme.Names {
		resp.Themes = append(resp.Themes, ThemeResponse{Name: string(name), Description: theme.Get(name).Description})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Stylesheet returns the CSS for one theme.
// GET /themes/{name}.css
func (h *Handler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	base, ok := strings.CutSuffix(file, ".css")
	if !ok {
		h.writeError(w, http.StatusNotFound, "not_found", "stylesheets are served as <theme>.css", "")
		return
	}
	name, err := theme.ParseStrict(base)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown_theme", err.Error(), "")
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.palettes.Stylesheet(name)))
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok"}
	for _, c := range h.caches {
		resp.CachedItems += c.Len()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// === Helpers ===

func (h *Handler) renderTokens(_ context.Context, req TokenizeRequest) ([]lexer.Token, error) {
	return h.highlighter.Tokenize(req.Text, req.Language), nil
}

func (h *Handler) renderMarkup(_ context.Context, req HighlightRequest) (string, error) {
	return h.highlighter.SyntaxHighlight(req.Text, req.Language, highlight.Options{
		Search:        req.Search,
		CaseSensitive: req.CaseSensitive,
		Theme:         theme.Name(req.Theme),
	}), nil
}

// decode reads a JSON body into v, writing the error response on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body too large", err.Error())
			return false
		}
		h.writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body", err.Error())
		return false
	}
	return true
}

func acceptsHTML(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(mediaType, "text/html") {
			return true
		}
	}
	return false
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.ErrorErr(log.CatServer, "Failed to encode JSON response", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}
