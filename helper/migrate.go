package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/postgres"
)

const migrationSource = "file://migrations/postgres"

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
	ActionForce   Action = "force"
)

var ErrUnknownAction = errors.New("unknown migration action")

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.WriteEndpoint(config).DSN(url.Values{"x-migrations-table": {config.DB.Postgres.MigrationTable}})

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

// Run applies action to the booking schema. Force takes the version to mark
// the schema clean at, after a failed migration was repaired by hand.
func Run(config *config.Config, action Action, args ...string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = ignoreNoChange(mig.Up())
	case ActionDown:
		err = ignoreNoChange(mig.Steps(-1))
	case ActionStepUp:
		err = ignoreNoChange(mig.Steps(1))
	case ActionDrop:
		err = ignoreNoChange(mig.Down())
	case ActionVersion:
		version, dirty, verr := mig.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info().Msg("No migration applied yet")

			return nil
		}

		if verr != nil {
			return fmt.Errorf("error reading schema version: %w", verr)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")

		return nil
	case ActionForce:
		if len(args) == 0 {
			return fmt.Errorf("%s requires a version", ActionForce)
		}

		version, perr := strconv.Atoi(args[0])
		if perr != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], perr)
		}

		err = mig.Force(version)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration completed successfully")

	return nil
}
