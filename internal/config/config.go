package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rsl-league/tournament-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	CacheEnabled       bool
	CacheTTL           time.Duration
	LogLevel           logging.Level

	RatingMaxWorkers int

	// VotingStart and ResultsAt bound the award voting window. A zero
	// VotingStart opens voting immediately; a zero ResultsAt is resolved
	// at wiring time to the next Sunday noon deadline.
	VotingStart      time.Time
	ResultsAt        time.Time
	VotePollInterval time.Duration

	FireDBBaseURL               string
	FireDBAuthToken             string
	FireDBTimeout               time.Duration
	FireDBMaxRetries            int
	FireDBCircuitEnabled        bool
	FireDBCircuitFailureCount   int
	FireDBCircuitOpenTimeout    time.Duration
	FireDBCircuitHalfOpenMaxReq int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	ratingMaxWorkers, err := getEnvAsInt("RATING_MAX_WORKERS", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATING_MAX_WORKERS: %w", err)
	}
	if ratingMaxWorkers < 0 {
		return Config{}, fmt.Errorf("RATING_MAX_WORKERS must be >= 0")
	}

	votingStart, err := getEnvAsTime("VOTING_START")
	if err != nil {
		return Config{}, fmt.Errorf("parse VOTING_START: %w", err)
	}
	resultsAt, err := getEnvAsTime("RESULTS_AT")
	if err != nil {
		return Config{}, fmt.Errorf("parse RESULTS_AT: %w", err)
	}
	if !votingStart.IsZero() && !resultsAt.IsZero() && !resultsAt.After(votingStart) {
		return Config{}, fmt.Errorf("RESULTS_AT must be after VOTING_START")
	}

	votePollInterval, err := time.ParseDuration(getEnv("VOTE_POLL_INTERVAL", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VOTE_POLL_INTERVAL: %w", err)
	}
	if votePollInterval <= 0 {
		return Config{}, fmt.Errorf("VOTE_POLL_INTERVAL must be > 0")
	}

	fireDBTimeout, err := time.ParseDuration(getEnv("FIREDB_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREDB_TIMEOUT: %w", err)
	}
	if fireDBTimeout <= 0 {
		return Config{}, fmt.Errorf("FIREDB_TIMEOUT must be > 0")
	}
	fireDBMaxRetries, err := getEnvAsInt("FIREDB_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREDB_MAX_RETRIES: %w", err)
	}
	if fireDBMaxRetries < 0 {
		return Config{}, fmt.Errorf("FIREDB_MAX_RETRIES must be >= 0")
	}
	fireDBCircuitEnabled, err := strconv.ParseBool(getEnv("FIREDB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREDB_CIRCUIT_ENABLED: %w", err)
	}
	fireDBCircuitFailureCount, err := getEnvAsInt("FIREDB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREDB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if fireDBCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FIREDB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	fireDBCircuitOpenTimeout, err := time.ParseDuration(getEnv("FIREDB_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREDB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if fireDBCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FIREDB_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	fireDBCircuitHalfOpenMaxReq, err := getEnvAsInt("FIREDB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREDB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if fireDBCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FIREDB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "tournament-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CacheEnabled:       cacheEnabled,
		CacheTTL:           cacheTTL,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		RatingMaxWorkers: ratingMaxWorkers,

		VotingStart:      votingStart,
		ResultsAt:        resultsAt,
		VotePollInterval: votePollInterval,

		FireDBBaseURL:               strings.TrimSpace(getEnv("FIREDB_BASE_URL", "")),
		FireDBAuthToken:             strings.TrimSpace(getEnv("FIREDB_AUTH_TOKEN", "")),
		FireDBTimeout:               fireDBTimeout,
		FireDBMaxRetries:            fireDBMaxRetries,
		FireDBCircuitEnabled:        fireDBCircuitEnabled,
		FireDBCircuitFailureCount:   fireDBCircuitFailureCount,
		FireDBCircuitOpenTimeout:    fireDBCircuitOpenTimeout,
		FireDBCircuitHalfOpenMaxReq: fireDBCircuitHalfOpenMaxReq,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsTime(key string) (time.Time, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339, value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
