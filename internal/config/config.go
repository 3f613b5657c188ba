package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	MetricsAddr string `mapstructure:"metrics_addr"` // listen address of the prometheus endpoint, empty disables it
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
	MaxAge         time.Duration `mapstructure:"max_age"` // retention of the scanner stream
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig controls per-network RPC throttling
type RateLimitConfig struct {
	// LocalFallback keeps requests flowing through an in-process limiter when redis is unreachable
	LocalFallback bool `mapstructure:"local_fallback"`
}

// NetworkConfig holds the RPC settings of one network
type NetworkConfig struct {
	RPCURL               string        `mapstructure:"rpc_url"`
	ChunkSize            uint64        `mapstructure:"chunk_size"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	RequestsPerSecond    int           `mapstructure:"requests_per_second"`
}

// NetworksConfig maps a decimal chain id to its RPC settings
type NetworksConfig map[string]NetworkConfig

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize          int `mapstructure:"pool_size"`
	// BrokerConcurrency bounds the history syncs the broker reconciles at once
	BrokerConcurrency int `mapstructure:"broker_concurrency"`
}

// QueueConfig holds task queue configuration
type QueueConfig struct {
	Topic      string        `mapstructure:"topic"`
	TaskLease  time.Duration `mapstructure:"task_lease"`
	DeferDelay time.Duration `mapstructure:"defer_delay"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// AllowedOrigins restricts CORS, empty allows any origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// SchedulerConfig holds the periodic sweeper settings
type SchedulerConfig struct {
	ScheduleInterval  time.Duration `mapstructure:"schedule_interval"`
	DeferredInterval  time.Duration `mapstructure:"deferred_interval"`
	DeferredBatchSize int           `mapstructure:"deferred_batch_size"`
	StaleInterval     time.Duration `mapstructure:"stale_interval"`
}

// PollerConfig holds live poll loop settings
type PollerConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	ChunkSize    int           `mapstructure:"chunk_size"`
	GapThreshold uint64        `mapstructure:"gap_threshold"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// FanoutConfig holds websocket fan-out settings
type FanoutConfig struct {
	Path string `mapstructure:"path"`
}

// APIConfig holds configuration for the REST API
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Redis      RedisConfig     `mapstructure:"redis"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Networks   NetworksConfig  `mapstructure:"networks"`
	Queue      QueueConfig     `mapstructure:"queue"`
	Server     ServerConfig    `mapstructure:"server"`
	Auth       AuthConfig      `mapstructure:"auth"`
}

// WorkerServiceConfig holds configuration for the task worker
type WorkerServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Redis      RedisConfig     `mapstructure:"redis"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Networks   NetworksConfig  `mapstructure:"networks"`
	Worker     WorkerConfig    `mapstructure:"worker"`
	Queue      QueueConfig     `mapstructure:"queue"`
}

// SchedulerServiceConfig holds configuration for the scheduler
type SchedulerServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Queue      QueueConfig     `mapstructure:"queue"`
	Scheduler  SchedulerConfig `mapstructure:"scheduler"`
}

// PollerServiceConfig holds configuration for the live poll loop
type PollerServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Redis      RedisConfig     `mapstructure:"redis"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Networks   NetworksConfig  `mapstructure:"networks"`
	Poller     PollerConfig    `mapstructure:"poller"`
}

// FanoutServiceConfig holds configuration for the websocket fan-out
type FanoutServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	NATS       NATSConfig   `mapstructure:"nats"`
	Server     ServerConfig `mapstructure:"server"`
	Fanout     FanoutConfig `mapstructure:"fanout"`
}

// EventsLogConfig holds configuration for the events log consumer
type EventsLogConfig struct {
	BaseConfig `mapstructure:",squash"`
	NATS       NATSConfig `mapstructure:"nats"`
}

// ReplayConfig holds configuration for the replay tool
type ReplayConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Redis      RedisConfig     `mapstructure:"redis"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Networks   NetworksConfig  `mapstructure:"networks"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)

	var config APIConfig
	if err := readAndUnmarshal(v, &config); err != nil {
		return nil, err
	}
	if err := config.Networks.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadWorkerConfig loads configuration for the task worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerServiceConfig, error) {
	v := configureViper("worker", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("nats.consumer_name", "scanner-worker")
	v.SetDefault("worker.pool_size", 20)
	v.SetDefault("worker.broker_concurrency", 10)

	var config WorkerServiceConfig
	if err := readAndUnmarshal(v, &config); err != nil {
		return nil, err
	}
	if err := config.Networks.ValidateRequired(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSchedulerConfig loads configuration for the scheduler
func LoadSchedulerConfig(configFile string, envPath string) (*SchedulerServiceConfig, error) {
	v := configureViper("scheduler", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("scheduler.schedule_interval", "30m")
	v.SetDefault("scheduler.deferred_interval", "10s")
	v.SetDefault("scheduler.deferred_batch_size", 100)
	v.SetDefault("scheduler.stale_interval", "1m")

	var config SchedulerServiceConfig
	if err := readAndUnmarshal(v, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadPollerConfig loads configuration for the live poll loop
func LoadPollerConfig(configFile string, envPath string) (*PollerServiceConfig, error) {
	v := configureViper("poller", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("poller.interval", "2s")
	v.SetDefault("poller.chunk_size", 100)
	v.SetDefault("poller.gap_threshold", 5)
	v.SetDefault("poller.cache_ttl", "1h")

	var config PollerServiceConfig
	if err := readAndUnmarshal(v, &config); err != nil {
		return nil, err
	}
	if err := config.Networks.ValidateRequired(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFanoutConfig loads configuration for the websocket fan-out
func LoadFanoutConfig(configFile string, envPath string) (*FanoutServiceConfig, error) {
	v := configureViper("fanout", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("fanout.path", "/events")

	var config FanoutServiceConfig
	if err := readAndUnmarshal(v, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadEventsLogConfig loads configuration for the events log consumer
func LoadEventsLogConfig(configFile string, envPath string) (*EventsLogConfig, error) {
	v := configureViper("events-log", configFile, envPath)

	setCommonDefaults(v)

	var config EventsLogConfig
	if err := readAndUnmarshal(v, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadReplayConfig loads configuration for the replay tool
func LoadReplayConfig(configFile string, envPath string) (*ReplayConfig, error) {
	v := configureViper("replay", configFile, envPath)

	setCommonDefaults(v)

	var config ReplayConfig
	if err := readAndUnmarshal(v, &config); err != nil {
		return nil, err
	}
	if err := config.Networks.ValidateRequired(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setCommonDefaults sets the defaults shared by every service
func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.stream_name", "SCANNER")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.ack_wait", "5m")
	v.SetDefault("nats.max_deliver", 5)
	v.SetDefault("nats.max_age", "168h")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("rate_limit.local_fallback", true)
	v.SetDefault("queue.topic", domain.DefaultTaskTopic)
	v.SetDefault("queue.task_lease", domain.DefaultTaskLease.String())
	v.SetDefault("queue.defer_delay", domain.DefaultResolverDeferDelay.String())
}

// readAndUnmarshal reads the config file when present and decodes v into out
func readAndUnmarshal(v *viper.Viper, out interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_SCANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds every known key so env vars are honoured without a config file
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"metrics_addr",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.max_age",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"rate_limit.local_fallback",
		// Worker and queue
		"worker.pool_size",
		"worker.broker_concurrency",
		"queue.topic",
		"queue.task_lease",
		"queue.defer_delay",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Scheduler
		"scheduler.schedule_interval",
		"scheduler.deferred_interval",
		"scheduler.deferred_batch_size",
		"scheduler.stale_interval",
		// Poller
		"poller.interval",
		"poller.chunk_size",
		"poller.gap_threshold",
		"poller.cache_ttl",
		// Fanout
		"fanout.path",
	}

	for _, network := range domain.SupportedNetworks() {
		prefix := "networks." + network.String() + "."
		keys = append(keys,
			prefix+"rpc_url",
			prefix+"chunk_size",
			prefix+"block_head_ttl",
			prefix+"block_head_stale_window",
			prefix+"requests_per_second",
		)
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Validate checks every configured network. An empty map is accepted.
func (n NetworksConfig) Validate() error {
	_, err := n.Parse()
	return err
}

// ValidateRequired is Validate for services that cannot run without a network
func (n NetworksConfig) ValidateRequired() error {
	if len(n) == 0 {
		return fmt.Errorf("%w: at least one network must be configured", domain.ErrInvalidInput)
	}
	return n.Validate()
}

// Parse converts the configured map into network ids, rejecting unsupported
// ids, missing RPC URLs and zero chunk sizes
func (n NetworksConfig) Parse() (map[domain.NetworkID]NetworkConfig, error) {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parsed := make(map[domain.NetworkID]NetworkConfig, len(n))
	for _, key := range keys {
		cfg := n[key]
		id, err := domain.ParseNetworkID(key)
		if err != nil {
			return nil, fmt.Errorf("invalid network %q: %w", key, err)
		}
		if strings.TrimSpace(cfg.RPCURL) == "" {
			return nil, fmt.Errorf("%w: network %s has no rpc_url", domain.ErrInvalidInput, key)
		}
		if cfg.ChunkSize == 0 {
			return nil, fmt.Errorf("%w: network %s chunk_size must be positive", domain.ErrInvalidInput, key)
		}
		parsed[id] = cfg
	}

	return parsed, nil
}
