package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/traineeline/internal/config"
	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/keyring"
	"github.com/julianstephens/traineeline/internal/storage"
	"github.com/julianstephens/traineeline/internal/storage/postgres"
	"github.com/julianstephens/traineeline/internal/storage/sqlite"
)

const (
	// SourceKeyring reads the connection string from the OS keyring.
	// "keyring:<profile>" selects a named entry.
	SourceKeyring = "keyring"
	// SourceEnv reads the connection string from TRAINEELINE_DB_CONNECTION
	SourceEnv = "env"
)

// ErrEmbeddedCredentials is returned for --db values that carry a password
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed")

// OpenStore picks the holiday store for target: a keyring or environment
// reference, a PostgreSQL connection string, or a SQLite file path.
func OpenStore(target string) (storage.Provider, error) {
	switch {
	case target == SourceKeyring || strings.HasPrefix(target, SourceKeyring+":"):
		profile := strings.TrimPrefix(strings.TrimPrefix(target, SourceKeyring), ":")
		connStr, err := keyring.GetConnectionString(profile)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string found in keyring; use '%s keyring set' to store one", constants.AppName)
			}
			return nil, err
		}
		return postgres.New(connStr), nil

	case target == SourceEnv:
		connStr := os.Getenv(constants.EnvDBConnection)
		if connStr == "" {
			return nil, fmt.Errorf("%s is not set", constants.EnvDBConnection)
		}
		return postgres.New(connStr), nil

	case isPostgresTarget(target):
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store it with '%s keyring set', export %s and pass --db=env, or use a .pgpass file",
					ErrEmbeddedCredentials, constants.AppName, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(target), nil

	default:
		path, err := config.ExpandHome(target)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

func isPostgresTarget(target string) bool {
	return postgres.IsConnString(target) || strings.Contains(target, "host=") || strings.Contains(target, "dbname=")
}
