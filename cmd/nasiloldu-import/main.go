// nasiloldu-import is the one-shot maintenance CLI: it seeds the database,
// runs Wikidata imports and patches individual person fields. It shares the
// storage façade with the server but is never part of the serving path.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/config"
	"github.com/nasiloldu/backend/database"
	"github.com/nasiloldu/backend/logger"
)

var log = logger.New("nasiloldu-import")

var rootCmd = &cobra.Command{
	Use:          "nasiloldu-import",
	Short:        "Offline import and maintenance commands for nasiloldu.net",
	SilenceUsage: true,
}

// openDatabase loads config and returns a migrated database handle.
func openDatabase() (config.Config, *gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := database.AutoMigrateModels(db); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
