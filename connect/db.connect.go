package connect

import (
	"fmt"
	"os"
	"strings"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/config"
	"github.com/VinukaThejana/nomad/models"
	"github.com/VinukaThejana/nomad/twofa"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// InitDatabase is a fucntion to initialize the connection with the postgres database
func (c *Connector) InitDatabase(env *config.Env) {
	db, err := gorm.Open(postgres.Open(env.DSN), &gorm.Config{})
	if err != nil {
		logger.Errorf(err)
	}

	if config.GetDevEnv(env) != config.Prod {
		db.Logger = gormLogger.Default.LogMode(gormLogger.Info)
	}

	c.DB = db
}

// MigrateSchemaChanges is a fucntion that is used to migrate schema changes to the database
func (c *Connector) MigrateSchemaChanges(env *config.Env) {
	if config.GetDevEnv(env) == config.Prod {
		logger.Error(fmt.Errorf(" 🪨 Cannot migrate schema changes on production !"))
		os.Exit(0)
	}

	c.DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")

	err := c.DB.AutoMigrate(&models.User{})
	if err != nil {
		logger.Errorf(err)
	}

	types := make([]string, 0, len(twofa.Types))
	for _, t := range twofa.Types {
		types = append(types, fmt.Sprintf("'%s'", t))
	}
	err = c.DB.Exec(fmt.Sprintf(
		"ALTER TABLE users DROP CONSTRAINT IF EXISTS chk_users_two_fa_type; "+
			"ALTER TABLE users ADD CONSTRAINT chk_users_two_fa_type CHECK (two_fa_type IN (%s))",
		strings.Join(types, ", "),
	)).Error
	if err != nil {
		logger.Errorf(err)
	}

	logger.Log("\n\n ✅ All schema changes have been migrated !")
}
