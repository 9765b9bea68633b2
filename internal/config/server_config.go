package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"

	"github/vaultbridge/hw-wallet/internal/util"
)

// ModuleName of this service, used for logging and version output.
const ModuleName = "hw-wallet"

// Database holds the postgres connection configuration.
type Database struct {
	Host             string
	Port             int
	Username         string
	Password         string `json:"-"` // sensitive
	Database         string
	AdditionalParams map[string]string `json:",omitempty"`
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ConnectionString generates a connection string to be passed to sql.Open or similar.
func (c Database) ConnectionString() string {
	connectionString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s", c.Host, c.Port, c.Username, c.Password, c.Database)
	for k, v := range c.AdditionalParams {
		connectionString += fmt.Sprintf(" %s=%s", k, v)
	}
	return connectionString
}

// EchoServer holds the echo HTTP server configuration.
type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
	EnablePprof                    bool
}

// LoggerServer holds the zerolog configuration.
type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogResponseBody    bool
	PrettyPrintConsole bool
}

// HardwareWallet holds the signing orchestration limits and per-chain defaults.
type HardwareWallet struct {
	MaxAssociationsPerUser    int
	MaxPendingRequestsPerUser int
	SigningRequestTTL         time.Duration
	// ChainIDs maps a chain identifier to its EVM chain ID, overriding the
	// built-in defaults (ethereum=1, polygon=137, bsc=56).
	ChainIDs map[string]string
	// GasDefaults maps a chain identifier to a default legacy gas price in wei.
	GasDefaults map[string]string
}

// PushService holds the notification provider toggles.
type PushService struct {
	UseMockProvider bool
	UseLogProvider  bool
}

// Management holds the config for the management endpoints (readiness, metrics).
type Management struct {
	Secret string `json:"-"` // sensitive
}

// Server is the central configuration struct, initialized once from ENV.
type Server struct {
	Database       Database
	Echo           EchoServer
	Logger         LoggerServer
	HardwareWallet HardwareWallet
	Push           PushService
	Management     Management
}

var (
	dotEnvOnce sync.Once
)

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables.
func DefaultServiceConfigFromEnv() Server {
	// optional local overrides, silently skipped when absent
	dotEnvOnce.Do(func() {
		_ = gotenv.Load(".env.local")
	})

	return Server{
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Username: util.GetEnv("PGUSER", "dbuser"),
			Password: util.GetEnv("PGPASSWORD", ""),
			Database: util.GetEnv("PGDATABASE", "development"),
			AdditionalParams: map[string]string{
				"sslmode": util.GetEnv("PGSSLMODE", "disable"),
			},
			MaxOpenConns:    util.GetEnvAsInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns:    util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 15),
			ConnMaxLifetime: util.GetEnvAsDuration("DB_CONN_MAX_LIFETIME", 15*time.Minute),
		},
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnablePprof:                    util.GetEnvAsBool("SERVER_ECHO_ENABLE_PPROF", false),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		HardwareWallet: HardwareWallet{
			MaxAssociationsPerUser:    util.GetEnvAsInt("SERVER_HW_MAX_ASSOCIATIONS_PER_USER", 10),
			MaxPendingRequestsPerUser: util.GetEnvAsInt("SERVER_HW_MAX_PENDING_REQUESTS_PER_USER", 5),
			SigningRequestTTL:         util.GetEnvAsDuration("SERVER_HW_SIGNING_REQUEST_TTL", 300*time.Second),
			ChainIDs:                  util.GetEnvAsStringMap("SERVER_HW_CHAIN_IDS", nil),
			GasDefaults:               util.GetEnvAsStringMap("SERVER_HW_GAS_DEFAULTS", nil),
		},
		Push: PushService{
			UseMockProvider: util.GetEnvAsBool("SERVER_PUSH_USE_MOCK_PROVIDER", false),
			UseLogProvider:  util.GetEnvAsBool("SERVER_PUSH_USE_LOG_PROVIDER", true),
		},
		Management: Management{
			Secret: util.GetEnv("SERVER_MANAGEMENT_SECRET", "mgmtpass"),
		},
	}
}
