package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name          string `envconfig:"APP_NAME"`
		Timezone      string `envconfig:"TIMEZONE"`
		PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
		CORS          struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Booking struct {
		PaymentWindowMinutes int `envconfig:"PAYMENT_WINDOW_MINUTES" default:"30"`
		IntakeLimit          struct {
			MaxRequests   int `envconfig:"MAX_REQUESTS"   default:"5"`
			WindowSeconds int `envconfig:"WINDOW_SECONDS" default:"3600"`
		} `envconfig:"INTAKE_LIMIT"`
		Sweep struct {
			IntervalSeconds   int `envconfig:"INTERVAL_SECONDS"    default:"60"`
			MinTriggerSeconds int `envconfig:"MIN_TRIGGER_SECONDS" default:"5"`
		} `envconfig:"SWEEP"`
	} `envconfig:"BOOKING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"60"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry            int    `envconfig:"MAX_RETRY"`
			RetryWaitTime       int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable      string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate         bool   `envconfig:"AUTO_MIGRATE"`
			Prefix              string `envconfig:"PREFIX"`
			QueryTimeoutSeconds int    `envconfig:"QUERY_TIMEOUT_SECONDS" default:"5"`
			ReadRetries         int    `envconfig:"READ_RETRIES"          default:"3"`
			Read                struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Audit        string `envconfig:"AUDIT"        default:"bookit.audit"`
			Notification string `envconfig:"NOTIFICATION" default:"bookit.notification"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			Region               string `envconfig:"REGION"`
			Endpoint             string `envconfig:"ENDPOINT"`
			AccessKey            string `envconfig:"ACCESS_KEY"`
			SecretKey            string `envconfig:"SECRET_KEY"`
			BucketName           string `envconfig:"BUCKET_NAME"`
			PresignExpireMinutes int    `envconfig:"PRESIGN_EXPIRE_MINUTES" default:"15"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

// Init loads .env when present and then the process environment. It runs
// once; later calls return the first result.
func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Debug().Err(loadErr).Msg("No .env file, using the process environment")
		}

		if err = envconfig.Process("", &conf); err != nil {
			err = fmt.Errorf("process environment: %w", err)

			return
		}

		if err = conf.Validate(); err != nil {
			return
		}

		initialized = true

		log.Info().Str("env", conf.Server.Env).Msg("Service configuration initialized successfully")
	})

	return err
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}

// Validate rejects settings the booking rules cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Booking.PaymentWindowMinutes <= 0 {
		errs = append(errs, errors.New("BOOKING_PAYMENT_WINDOW_MINUTES must be positive"))
	}

	if c.Booking.IntakeLimit.MaxRequests <= 0 || c.Booking.IntakeLimit.WindowSeconds <= 0 {
		errs = append(errs, errors.New("BOOKING_INTAKE_LIMIT must allow at least one request per window"))
	}

	if c.Booking.Sweep.IntervalSeconds <= 0 {
		errs = append(errs, errors.New("BOOKING_SWEEP_INTERVAL_SECONDS must be positive"))
	}

	if ratio := c.External.Otel.SampleRatio; ratio < 0 || ratio > 1 {
		errs = append(errs, fmt.Errorf("EXTERNAL_OTEL_SAMPLE_RATIO must be within [0, 1], got %v", ratio))
	}

	return errors.Join(errs...)
}
