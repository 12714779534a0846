package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	RecordsPort       string `mapstructure:"RECORDS_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB backs the records service and settings persistence.
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	DatabaseName    string `mapstructure:"DATABASE_NAME"`
	SettingsPersist bool   `mapstructure:"SETTINGS_PERSIST"`

	// Remote contracts.
	RosterServiceURL string        `mapstructure:"ROSTER_SERVICE_URL"`
	DemandServiceURL string        `mapstructure:"DEMAND_SERVICE_URL"`
	SolverURL        string        `mapstructure:"SOLVER_URL"`
	RemoteTimeout    time.Duration `mapstructure:"REMOTE_TIMEOUT"`
	SolverTimeout    time.Duration `mapstructure:"SOLVER_TIMEOUT"`

	// Solver contract.
	SolverRoleOrder       []string `mapstructure:"SOLVER_ROLE_ORDER"`
	SolverContractVersion string   `mapstructure:"SOLVER_CONTRACT_VERSION"`
	SchoolDays            []string `mapstructure:"SCHOOL_DAYS"`
	RegenerationMode      string   `mapstructure:"REGENERATION_MODE"`

	// Redis configuration.
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	RedisScheduleDB  int           `mapstructure:"REDIS_SCHEDULE_DB"`
	RedisQueueDB     int           `mapstructure:"REDIS_QUEUE_DB"`
	ScheduleCacheTTL time.Duration `mapstructure:"SCHEDULE_CACHE_TTL"`

	// Initial settings, used until persisted settings are found.
	DefaultTotalHours int      `mapstructure:"DEFAULT_TOTAL_HOURS"`
	DefaultShowStart  string   `mapstructure:"DEFAULT_SHOW_START"`
	DefaultShowEnd    string   `mapstructure:"DEFAULT_SHOW_END"`
	DefaultJobs       []string `mapstructure:"DEFAULT_JOBS"`
}

const (
	RegenerationInline = "inline"
	RegenerationQueue  = "queue"
)

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("RECORDS_PORT", "8081")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "shiftdesk")
	viper.SetDefault("SETTINGS_PERSIST", true)
	viper.SetDefault("ROSTER_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("DEMAND_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("SOLVER_URL", "http://localhost:8000")
	viper.SetDefault("REMOTE_TIMEOUT", "10s")
	viper.SetDefault("SOLVER_TIMEOUT", "30s")
	viper.SetDefault("SOLVER_ROLE_ORDER", []string{"manager", "server", "driver"})
	viper.SetDefault("SOLVER_CONTRACT_VERSION", "v1")
	viper.SetDefault("SCHOOL_DAYS", []string{"mon", "tue", "wed", "thu", "fri"})
	viper.SetDefault("REGENERATION_MODE", RegenerationInline)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SCHEDULE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SCHEDULE_CACHE_TTL", "72h")
	viper.SetDefault("DEFAULT_TOTAL_HOURS", 40)
	viper.SetDefault("DEFAULT_SHOW_START", "08:00")
	viper.SetDefault("DEFAULT_SHOW_END", "20:00")
	viper.SetDefault("DEFAULT_JOBS", []string{"Manager", "Server", "Driver"})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	// Decode into a fresh value; decoding over AppConfig would reuse its slices.
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
