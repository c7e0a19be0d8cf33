// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API         API         `mapstructure:"api"         mask:"struct"`
	NATS        NATS        `mapstructure:"nats"        mask:"struct"`
	Store       Store       `mapstructure:"store"       mask:"struct"`
	Domains     []Domain    `mapstructure:"domains"     validate:"dive"`
	Maintenance Maintenance `mapstructure:"maintenance"`
	Telemetry   Telemetry   `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	// SampleRatio is the fraction of root traces sampled. Zero samples all.
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

// Store selects and configures the audit event store.
type Store struct {
	// Backend is "memory", "nats" or "postgres".
	Backend string `mapstructure:"backend" validate:"required,oneof=memory nats postgres"`
	// Retention is how long events are kept, e.g. "2160h". Empty keeps them forever.
	Retention string `mapstructure:"retention"`
	// Postgres settings, used when Backend is "postgres".
	Postgres Postgres `mapstructure:"postgres" mask:"struct"`
	// Paging bounds the page size of retrieval requests.
	Paging Paging `mapstructure:"paging"`
}

// Postgres connection settings.
type Postgres struct {
	// DSN is a lib/pq connection string.
	DSN          string `mapstructure:"dsn"            mask:"password"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// Paging bounds the page size.
type Paging struct {
	// DefaultLimit is used when a request carries no limit. Defaults to 100.
	DefaultLimit int `mapstructure:"default_limit" validate:"gte=0"`
	// MaxLimit caps the page size. Defaults to 1000.
	MaxLimit int `mapstructure:"max_limit"     validate:"gte=0"`
}

// Domain maps users to a tenant.
type Domain struct {
	// Name of the domain.
	Name string `mapstructure:"name"   validate:"required"`
	// Admins may read and purge the whole domain.
	Admins []string `mapstructure:"admins"`
	// Users may read their own events.
	Users []string `mapstructure:"users"`
}

// Maintenance configures the periodic store maintenance job.
type Maintenance struct {
	// Enabled runs the job alongside the API server.
	Enabled bool `mapstructure:"enabled"`
	// Schedule is a cron expression with a leading seconds field.
	Schedule string `mapstructure:"schedule"`
}

// NATSAuth holds client-side authentication settings for connecting to NATS.
type NATSAuth struct {
	// Type is the auth method: "none", "user_pass", or "nkey".
	Type string `mapstructure:"type"      validate:"omitempty,oneof=none user_pass nkey"`
	// Username for user_pass auth.
	Username string `mapstructure:"username"`
	// Password for user_pass auth.
	Password string `mapstructure:"password"  mask:"password"`
	// NKeyFile path to the NKey seed file for nkey auth.
	NKeyFile string `mapstructure:"nkey_file"`
}

// NATSServerAuth holds server-side authentication settings for the embedded NATS server.
type NATSServerAuth struct {
	// Type is the auth method: "none", "user_pass", or "nkey".
	Type string `mapstructure:"type"  validate:"omitempty,oneof=none user_pass nkey"`
	// Users allowed to connect (for user_pass auth).
	Users []NATSServerUser `mapstructure:"users"`
	// NKeys is a list of allowed public NKeys (for nkey auth).
	NKeys []string `mapstructure:"nkeys"`
}

// NATSServerUser represents an allowed username/password pair for the NATS server.
type NATSServerUser struct {
	// Username for the user.
	Username string `mapstructure:"username"`
	// Password for the user.
	Password string `mapstructure:"password" mask:"password"`
}

// NATS configuration settings.
type NATS struct {
	Server NATSServer `mapstructure:"server,omitempty" mask:"struct"`
	Stream NATSStream `mapstructure:"stream,omitempty"`
	Audit  NATSAudit  `mapstructure:"audit,omitempty"`
}

// NATSAudit configuration for the audit event KV bucket.
type NATSAudit struct {
	// Bucket is the KV bucket name for audit events.
	Bucket   string `mapstructure:"bucket"`
	MaxBytes int64  `mapstructure:"max_bytes"`
	Storage  string `mapstructure:"storage"   validate:"omitempty,oneof=file memory"`
	Replicas int    `mapstructure:"replicas"`
}

// NATSServer configuration settings for the embedded NATS server.
type NATSServer struct {
	// Host the server will bind to.
	Host string `mapstructure:"host"`
	// Port the server will bind to.
	Port int `mapstructure:"port"`
	// StoreDir the directory for JetStream file storage.
	StoreDir string `mapstructure:"store_dir"`
	// Namespace is a prefix for all NATS subjects and infrastructure names.
	Namespace string `mapstructure:"namespace"`
	// Auth holds server-side authentication configuration.
	Auth NATSServerAuth `mapstructure:"auth,omitempty" mask:"struct"`
}

// NATSStream configures the ingestion stream and its durable consumer.
type NATSStream struct {
	// Enabled starts the ingestion consumer alongside the API server.
	Enabled bool `mapstructure:"enabled"`
	// Name is the JetStream stream name.
	Name string `mapstructure:"name"`
	// Subjects is the subject filter for the stream.
	Subjects string `mapstructure:"subjects"`
	MaxAge   string `mapstructure:"max_age"` // e.g. "24h", "1h30m"
	MaxMsgs  int64  `mapstructure:"max_msgs"`
	Storage  string `mapstructure:"storage"  validate:"omitempty,oneof=file memory"`
	Replicas int    `mapstructure:"replicas"`
	// Consumer is the durable consumer name.
	Consumer string `mapstructure:"consumer"`
	// MaxDeliver is the maximum number of delivery attempts.
	MaxDeliver int `mapstructure:"max_deliver"`
	// AckWait is the time to wait for an ACK before redelivering.
	AckWait string `mapstructure:"ack_wait"` // e.g. "30s", "1m"
}

// NATSConnection is a reusable NATS connection configuration block.
type NATSConnection struct {
	// Host the NATS server hostname.
	Host string `mapstructure:"host"`
	// Port the NATS server port.
	Port int `mapstructure:"port"`
	// ClientName the NATS client name for identification.
	ClientName string `mapstructure:"client_name"`
	// Namespace is a prefix for all NATS subjects used by this client.
	Namespace string `mapstructure:"namespace"`
	// Auth holds client-side authentication configuration.
	Auth NATSAuth `mapstructure:"auth,omitempty" mask:"struct"`
}

// API configuration settings.
type API struct {
	Client
	Server `mask:"struct"`
}

// Client configuration settings.
type Client struct {
	// URL the client will connect to.
	URL string `mapstructure:"url"`
	// UserID is sent in the user header of every request.
	UserID string `mapstructure:"user_id"`
}

// Server configuration settings.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port"`
	// UserHeader carries the authenticated user id. Defaults to X-GDC-PUBLIC-USER-ID.
	UserHeader string `mapstructure:"user_header"`
	// RecordPurges stores every domain purge as an audit_purged event.
	RecordPurges bool `mapstructure:"record_purges"`
	// NATS connection settings for the API server.
	NATS NATSConnection `mapstructure:"nats"     mask:"struct"`
	// Security contains security-related configuration for the server.
	Security ServerSecurity `mapstructure:"security"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}
