package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	postgresStorage "github.com/clubhub-dev/clubhub/internal/adapters/database/postgres"
	"github.com/clubhub-dev/clubhub/internal/adapters/database/redis"
	"github.com/clubhub-dev/clubhub/internal/domain/service"
	"github.com/clubhub-dev/clubhub/internal/domain/utils/location"
	"github.com/clubhub-dev/clubhub/pkg/logger"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const envPrefix = "CLUBHUB"

type HTTP struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	PublicURL       string
}

func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

type Auth struct {
	service.AuthConfig
	SecureCookies bool
	LoginRate     float64
	LoginBurst    int
}

type Settings struct {
	Debug     bool
	Location  *time.Location
	PageSizes service.PageSizes
	HTTP      HTTP
	Auth      Auth
}

type Config struct {
	Database *gorm.DB
	Redis    *redis.Client
	Settings Settings
}

func setDefaults() {
	viper.SetDefault("settings.debug", false)
	viper.SetDefault("settings.timezone", "UTC")
	viper.SetDefault("settings.pagination.posts", service.DefaultPageSizes.Posts)
	viper.SetDefault("settings.pagination.clubs", service.DefaultPageSizes.Clubs)
	viper.SetDefault("settings.pagination.joins", service.DefaultPageSizes.Joins)
	viper.SetDefault("settings.pagination.attends", service.DefaultPageSizes.Attends)
	viper.SetDefault("settings.pagination.users", service.DefaultPageSizes.Users)

	viper.SetDefault("service.http.host", "0.0.0.0")
	viper.SetDefault("service.http.port", 8080)
	viper.SetDefault("service.http.shutdown-timeout", 10*time.Second)
	viper.SetDefault("service.http.public-url", "http://localhost:8080")

	viper.SetDefault("service.database.driver", "postgres")
	viper.SetDefault("service.database.port", 5432)
	viper.SetDefault("service.database.path", "clubhub.db")
	viper.SetDefault("service.redis.port", 6379)

	viper.SetDefault("service.auth.token-ttl", time.Hour)
	viper.SetDefault("service.auth.session-ttl", 14*24*time.Hour)
	viper.SetDefault("service.auth.login-rate", 1.0)
	viper.SetDefault("service.auth.login-burst", 5)
}

// Load reads the yaml config at path (config.yaml in the working directory when
// empty), applies CLUBHUB_* environment overrides and initializes the logger.
func Load(path string) error {
	setDefaults()
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	loc, err := location.Load(viper.GetString("settings.timezone"))
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	return logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: loc,
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
}

func LoadSettings() Settings {
	return Settings{
		Debug:    viper.GetBool("settings.debug"),
		Location: location.Location(),
		PageSizes: service.PageSizes{
			Posts:   viper.GetInt("settings.pagination.posts"),
			Clubs:   viper.GetInt("settings.pagination.clubs"),
			Joins:   viper.GetInt("settings.pagination.joins"),
			Attends: viper.GetInt("settings.pagination.attends"),
			Users:   viper.GetInt("settings.pagination.users"),
		},
		HTTP: HTTP{
			Host:            viper.GetString("service.http.host"),
			Port:            viper.GetInt("service.http.port"),
			ShutdownTimeout: viper.GetDuration("service.http.shutdown-timeout"),
			CORSOrigins:     viper.GetStringSlice("service.http.cors-origins"),
			PublicURL:       viper.GetString("service.http.public-url"),
		},
		Auth: Auth{
			AuthConfig: service.AuthConfig{
				JWTSecret:  viper.GetString("service.auth.jwt-secret"),
				TokenTTL:   viper.GetDuration("service.auth.token-ttl"),
				SessionTTL: viper.GetDuration("service.auth.session-ttl"),
			},
			SecureCookies: viper.GetBool("service.auth.secure-cookies"),
			LoginRate:     viper.GetFloat64("service.auth.login-rate"),
			LoginBurst:    viper.GetInt("service.auth.login-burst"),
		},
	}
}

// OpenDatabase connects to the configured driver: postgres, or sqlite for a
// single-file deployment.
func OpenDatabase() (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}
	if viper.GetBool("settings.debug") {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}

	var dialector gorm.Dialector
	switch driver := viper.GetString("service.database.driver"); driver {
	case "postgres":
		dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable TimeZone=%s",
			viper.GetString("service.database.user"),
			viper.GetString("service.database.password"),
			viper.GetString("service.database.name"),
			viper.GetString("service.database.host"),
			viper.GetInt("service.database.port"),
			location.Location().String(),
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(viper.GetString("service.database.path") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	database, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	logger.Log.Info("Successfully connected to the database")
	return database, nil
}

func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(postgresStorage.Migrations...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Log.Info("Database migrated")
	return nil
}

// Get opens every backing service the HTTP server needs.
func Get(ctx context.Context) (*Config, error) {
	settings := LoadSettings()
	if settings.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("service.auth.jwt-secret is required")
	}

	database, err := OpenDatabase()
	if err != nil {
		return nil, err
	}
	if err = Migrate(database); err != nil {
		return nil, err
	}

	redisClient, err := redis.New(ctx, redis.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetInt("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
		DB:       viper.GetInt("service.redis.db"),
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Successfully connected to redis")

	return &Config{
		Database: database,
		Redis:    redisClient,
		Settings: settings,
	}, nil
}
