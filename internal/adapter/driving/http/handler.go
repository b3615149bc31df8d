package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
)

// CredentialSource is what the status API needs from the resolver. It is
// satisfied by *application.ResolverProvider.
type CredentialSource interface {
	HasCredentials(domain string) bool
	Resolve(domain string) (model.Credential, error)
	Hosts() []string
}

// Handler is the HTTP driving adapter that serves the read-only status API.
// No response ever carries secret material.
type Handler struct {
	source CredentialSource
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(source CredentialSource, logger *slog.Logger) *Handler {
	return &Handler{
		source: source,
		logger: logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/domains", h.ListDomains)
	mux.HandleFunc("GET /api/v1/domains/{domain}", h.GetDomain)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = noStoreMiddleware(wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListDomains returns the resolution status of every host the configured
// stores can enumerate.
func (h *Handler) ListDomains(w http.ResponseWriter, _ *http.Request) {
	hosts := h.source.Hosts()

	resp := make([]DomainStatusResponse, 0, len(hosts))
	for _, host := range hosts {
		resp = append(resp, h.status(host))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetDomain returns the resolution status of a single domain. Unconfigured
// domains yield 404 with the status body.
func (h *Handler) GetDomain(w http.ResponseWriter, r *http.Request) {
	domain := strings.TrimSpace(r.PathValue("domain"))
	if domain == "" {
		writeError(w, http.StatusBadRequest, "missing domain")
		return
	}

	status := h.status(domain)
	if !status.Configured {
		writeJSON(w, http.StatusNotFound, status)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// status resolves domain and summarises the outcome without the credential
// itself.
func (h *Handler) status(domain string) DomainStatusResponse {
	resp := DomainStatusResponse{
		Domain:     domain,
		Configured: h.source.HasCredentials(domain),
	}
	if !resp.Configured {
		return resp
	}

	cred, err := h.source.Resolve(domain)
	if err != nil {
		var authErr *model.AuthError
		if errors.As(err, &authErr) {
			resp.Scheme = authErr.Scheme
		}
		resp.Error = err.Error()
		h.logger.Warn("domain credentials invalid", "domain", domain, "error", err)
		return resp
	}

	resp.Scheme = string(cred.Scheme())
	resp.Valid = true
	return resp
}
