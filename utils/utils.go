// Package utils contains the utility packages
package utils

import (
	"flag"
	"os"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/config"
	"github.com/VinukaThejana/nomad/connect"
)

// Flags are the command line flags of the server
type Flags struct {
	// Migrate applies the schema and exits
	Migrate bool
}

// ParseFlags is a function that is used to parse the command line flags
func ParseFlags(args []string) (Flags, error) {
	var flags Flags

	fs := flag.NewFlagSet("nomad", flag.ContinueOnError)
	fs.BoolVar(&flags.Migrate, "migrate", false, "Migrate the users schema with the two factor columns to the relational database")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	return flags, nil
}

// CheckForMigrations is a function that migrates the schema and exits when the migrate flag is present
func CheckForMigrations(c *connect.Connector, env *config.Env) {
	flags, err := ParseFlags(os.Args[1:])
	if err != nil {
		logger.Errorf(err)
	}

	if flags.Migrate {
		c.MigrateSchemaChanges(env)
		os.Exit(0)
	}
}
