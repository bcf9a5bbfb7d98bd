package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "no validation errors"
	case 1:
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, e[i].Error())
	}
	return sb.String()
}

// HasErrors returns true if there are validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator checks a Config for errors and collects non-fatal warnings.
type Validator struct {
	errors   ValidationErrors
	warnings []string
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConfig validates cfg and returns ValidationErrors on failure.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = nil
	v.warnings = nil

	if cfg == nil {
		v.addError("", "configuration is nil")
		return v.errors
	}

	v.validateServer(&cfg.Server)
	v.validateUpstream(&cfg.Upstream)
	v.validateQuote(&cfg.Quote)
	v.validateCircuitBreaker(&cfg.CircuitBreaker)
	v.validateObservability(&cfg.Observability, cfg.Server.Port)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

// Warnings returns the warnings collected by the last Validate call.
func (v *Validator) Warnings() []string {
	return v.warnings
}

func (v *Validator) validateServer(s *ServerConfig) {
	if !validPort(s.Port) {
		v.addError("server.port", fmt.Sprintf("port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.IdleTimeout < 0 {
		v.addError("server", "timeouts must not be negative")
	}
	if s.ShutdownTimeout < 0 {
		v.addError("server.shutdownTimeout", "must not be negative")
	}
	if s.MaxRequestBodySize < 0 {
		v.addError("server.maxRequestBodySize", "must not be negative")
	}
}

func (v *Validator) validateUpstream(u *UpstreamConfig) {
	if u.BaseURL == "" {
		v.addError("upstream.baseUrl", "baseUrl is required")
	} else if parsed, err := url.Parse(u.BaseURL); err != nil || parsed.Host == "" ||
		(parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.addError("upstream.baseUrl", fmt.Sprintf("invalid URL %q", u.BaseURL))
	}

	if u.APIVersion == "" {
		v.addError("upstream.apiVersion", "apiVersion is required")
	}
	if u.Timeout <= 0 {
		v.addError("upstream.timeout", "timeout must be positive")
	}

	if !u.HasUserID() {
		v.addWarning("upstream.userId is not set; upstream calls will be rejected and fallback rates served")
	}
	if !u.HasToken() {
		v.addWarning("upstream.token is not set; upstream calls will be rejected and fallback rates served")
	}
	if u.UsesPlaceholderCredentials() {
		v.addWarning("upstream credentials are placeholders; set PM_USER_ID and PM_API_KEY")
	}
}

func (v *Validator) validateQuote(q *QuoteConfig) {
	if q.BaselineCost <= 0 {
		v.addError("quote.baselineCost", "baselineCost must be positive")
	}
	if _, err := q.Location(); err != nil {
		v.addError("quote.timezone", fmt.Sprintf("unknown timezone %q", q.Timezone))
	}
}

func (v *Validator) validateCircuitBreaker(cb *CircuitBreakerConfig) {
	if !cb.Enabled {
		return
	}
	if cb.Threshold <= 0 {
		v.addError("circuitBreaker.threshold", "threshold must be positive")
	}
	if cb.Timeout <= 0 {
		v.addError("circuitBreaker.timeout", "timeout must be positive")
	}
	if cb.HalfOpenRequests < 0 {
		v.addError("circuitBreaker.halfOpenRequests", "must not be negative")
	}
}

func (v *Validator) validateObservability(o *ObservabilityConfig, serverPort int) {
	if o.Metrics.Enabled {
		if !validPort(o.Metrics.Port) {
			v.addError("observability.metrics.port",
				fmt.Sprintf("port must be between 1 and 65535, got %d", o.Metrics.Port))
		} else if o.Metrics.Port == serverPort {
			v.addError("observability.metrics.port", "must differ from server.port")
		}
		if o.Metrics.Path != "" && !strings.HasPrefix(o.Metrics.Path, "/") {
			v.addError("observability.metrics.path", "path must start with '/'")
		}
	}

	if o.Tracing.SamplingRate < 0 || o.Tracing.SamplingRate > 1 {
		v.addError("observability.tracing.samplingRate", "samplingRate must be between 0 and 1")
	}
	if o.Tracing.Enabled && o.Tracing.OTLPEndpoint == "" {
		v.addWarning("tracing is enabled without observability.tracing.otlpEndpoint; spans will not be exported")
	}
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) addWarning(message string) {
	v.warnings = append(v.warnings, message)
}

func validPort(port int) bool {
	return port > 0 && port <= 65535
}
