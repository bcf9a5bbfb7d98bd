package config

import "time"

// Defaults for the carrier API and the local listener.
const (
	DefaultPort         = 3001
	DefaultBaseURL      = "https://api.parcelmonkey.co.uk"
	DefaultAPIVersion   = "3.1"
	DefaultBaselineCost = 100.0
	DefaultMetricsPort  = 9090
	DefaultMetricsPath  = "/metrics"
	DefaultServiceName  = "parcelgw"
)

// Placeholder credentials shipped in defaults. A deployment supplies real
// values through PM_USER_ID and PM_API_KEY.
const (
	PlaceholderUserID = "your-user-id"
	PlaceholderToken  = "your-api-key"
)

// Config is the complete parcelgw configuration. It is built once at
// startup and treated as read-only afterwards.
type Config struct {
	Server         ServerConfig         `yaml:"server" json:"server"`
	Upstream       UpstreamConfig       `yaml:"upstream" json:"upstream"`
	Quote          QuoteConfig          `yaml:"quote" json:"quote"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuitBreaker" json:"circuitBreaker"`
	CORS           CORSConfig           `yaml:"cors" json:"cors"`
	Observability  ObservabilityConfig  `yaml:"observability" json:"observability"`
}

// ServerConfig configures the public HTTP listener.
type ServerConfig struct {
	Address            string   `yaml:"address,omitempty" json:"address,omitempty"`
	Port               int      `yaml:"port" json:"port"`
	ReadTimeout        Duration `yaml:"readTimeout,omitempty" json:"readTimeout,omitempty"`
	WriteTimeout       Duration `yaml:"writeTimeout,omitempty" json:"writeTimeout,omitempty"`
	IdleTimeout        Duration `yaml:"idleTimeout,omitempty" json:"idleTimeout,omitempty"`
	ShutdownTimeout    Duration `yaml:"shutdownTimeout,omitempty" json:"shutdownTimeout,omitempty"`
	MaxRequestBodySize int64    `yaml:"maxRequestBodySize,omitempty" json:"maxRequestBodySize,omitempty"`
}

// UpstreamConfig configures the carrier-aggregation API.
type UpstreamConfig struct {
	BaseURL    string   `yaml:"baseUrl" json:"baseUrl"`
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	UserID     string   `yaml:"userId" json:"-"`
	Token      string   `yaml:"token" json:"-"`
	Timeout    Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// HasUserID reports whether a user ID is set.
func (u UpstreamConfig) HasUserID() bool {
	return u.UserID != ""
}

// HasToken reports whether an API token is set.
func (u UpstreamConfig) HasToken() bool {
	return u.Token != ""
}

// UsesPlaceholderCredentials reports whether either credential is still
// the shipped placeholder.
func (u UpstreamConfig) UsesPlaceholderCredentials() bool {
	return u.UserID == PlaceholderUserID || u.Token == PlaceholderToken
}

// QuoteConfig tunes quote assembly and the fallback generator.
type QuoteConfig struct {
	// BaselineCost is the nominal price the fallback multipliers apply to.
	BaselineCost float64 `yaml:"baselineCost" json:"baselineCost"`
	// Timezone is the IANA location used to compute collection dates.
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty"`
}

// Location resolves Timezone, defaulting to UTC.
func (q QuoteConfig) Location() (*time.Location, error) {
	if q.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(q.Timezone)
}

// CircuitBreakerConfig configures the breaker around upstream calls.
type CircuitBreakerConfig struct {
	Enabled          bool     `yaml:"enabled" json:"enabled"`
	Threshold        int      `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Timeout          Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	HalfOpenRequests int      `yaml:"halfOpenRequests,omitempty" json:"halfOpenRequests,omitempty"`
}

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty" json:"allowMethods,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty" json:"exposeHeaders,omitempty"`
	AllowCredentials bool     `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	MaxAge           int      `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

// ObservabilityConfig represents observability configuration.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Tracing TracingConfig `yaml:"tracing" json:"tracing"`
}

// MetricsConfig represents metrics configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
	Port    int    `yaml:"port,omitempty" json:"port,omitempty"`
}

// TracingConfig represents tracing configuration.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	SamplingRate float64 `yaml:"samplingRate,omitempty" json:"samplingRate,omitempty"`
	OTLPEndpoint string  `yaml:"otlpEndpoint,omitempty" json:"otlpEndpoint,omitempty"`
	ServiceName  string  `yaml:"serviceName,omitempty" json:"serviceName,omitempty"`
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               DefaultPort,
			ReadTimeout:        Duration(30 * time.Second),
			WriteTimeout:       Duration(45 * time.Second),
			IdleTimeout:        Duration(120 * time.Second),
			ShutdownTimeout:    Duration(30 * time.Second),
			MaxRequestBodySize: 1 << 20,
		},
		Upstream: UpstreamConfig{
			BaseURL:    DefaultBaseURL,
			APIVersion: DefaultAPIVersion,
			UserID:     PlaceholderUserID,
			Token:      PlaceholderToken,
			Timeout:    Duration(30 * time.Second),
		},
		Quote: QuoteConfig{
			BaselineCost: DefaultBaselineCost,
			Timezone:     "UTC",
		},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:          false,
			Threshold:        5,
			Timeout:          Duration(30 * time.Second),
			HalfOpenRequests: 1,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
			ExposeHeaders: []string{
				"X-Request-ID",
			},
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: false,
				Path:    DefaultMetricsPath,
				Port:    DefaultMetricsPort,
			},
			Tracing: TracingConfig{
				Enabled:      false,
				SamplingRate: 1.0,
				ServiceName:  DefaultServiceName,
			},
		},
	}
}
