package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"bookit/config"
)

const (
	maxIdleConnection = 10
	maxOpenConnection = 10
	connMaxIdleTime   = 5 * time.Minute
	driverName        = "postgres"
)

// Endpoint is one side of the read/write split.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB

	QueryTimeout time.Duration
	ReadRetries  int
}

func New(cfg *config.Config) *Connection {
	write, err := Connect(cfg, "write", WriteEndpoint(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the write database")
	}

	read, err := Connect(cfg, "read", ReadEndpoint(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the read database")
	}

	return &Connection{
		Read:         read,
		Write:        write,
		QueryTimeout: time.Duration(cfg.DB.Postgres.QueryTimeoutSeconds) * time.Second,
		ReadRetries:  cfg.DB.Postgres.ReadRetries,
	}
}

// WithTimeout bounds a single statement by the configured query timeout.
func (c *Connection) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.QueryTimeout)
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	return withPrefix(cfg, Endpoint(cfg.DB.Postgres.Write))
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	return withPrefix(cfg, Endpoint(cfg.DB.Postgres.Read))
}

func withPrefix(cfg *config.Config, ep Endpoint) Endpoint {
	ep.Name = cfg.DB.Postgres.Prefix + ep.Name

	return ep
}

// DSN renders the endpoint as a postgres URL. Extra values are appended to the
// query string, which is how migrate receives its table name.
func (ep Endpoint) DSN(extra url.Values) string {
	query := url.Values{}
	if ep.SSLMode != "" {
		query.Set("sslmode", ep.SSLMode)
	}

	if ep.Timezone != "" {
		query.Set("timezone", ep.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(ep.Username, ep.Password),
		Host:     net.JoinHostPort(ep.Host, ep.Port),
		Path:     "/" + ep.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect opens a pool to ep, retrying MaxRetry times RetryWaitTime seconds
// apart while the database is still coming up.
func Connect(cfg *config.Config, name string, ep Endpoint) (*sqlx.DB, error) {
	attempt := 0
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	db, err := backoff.Retry(context.Background(), func() (*sqlx.DB, error) {
		attempt++

		db, err := sqlx.Connect(driverName, ep.DSN(nil))
		if err != nil {
			log.Error().
				Err(err).
				Str("name", name).
				Str("host", ep.Host).
				Str("dbName", ep.Name).
				Int("attempt", attempt).
				Msg("Failed connecting to database, retrying")

			return nil, err
		}

		return db, nil
	}, backoff.WithBackOff(backoff.NewConstantBackOff(wait)), backoff.WithMaxTries(uint(max(cfg.DB.Postgres.MaxRetry, 1))))
	if err != nil {
		return nil, fmt.Errorf("connect %s database after %d attempts: %w", name, attempt, err)
	}

	db.SetMaxIdleConns(maxIdleConnection)
	db.SetMaxOpenConns(maxOpenConnection)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	log.Info().
		Str("name", name).
		Str("host", ep.Host).
		Str("port", ep.Port).
		Str("dbName", ep.Name).
		Msg("Connected to database")

	return db, nil
}
