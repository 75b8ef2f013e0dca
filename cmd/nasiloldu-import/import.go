package main

import (
	"github.com/spf13/cobra"

	"github.com/nasiloldu/backend/database"
	"github.com/nasiloldu/backend/importer"
	"github.com/nasiloldu/backend/repository"
	"github.com/nasiloldu/backend/wikidata"
	"github.com/nasiloldu/backend/wikipedia"
)

var (
	importBatches   int
	skipDescription bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import notable deceased people from Wikidata",
	Long: `Runs sequential SPARQL batches against Wikidata, maps each result onto
the local schema and inserts persons whose Wikidata ID is not yet present.
The run is single-pass and non-resumable; rows committed before a failure
stay committed and are skipped on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		if err := database.SeedDefaults(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}

		service := &importer.Service{
			Persons:     repository.NewPersonRepository(db),
			Categories:  repository.NewCategoryRepository(db),
			Countries:   repository.NewCountryRepository(db),
			Professions: repository.NewProfessionRepository(db),
			DeathCauses: repository.NewDeathCauseRepository(db),
			Wikidata:    wikidata.NewClient(cfg.WikidataEndpoint, cfg.HTTPUserAgent, log),
			Log:         log,
		}
		if !skipDescription {
			service.Wikipedia = wikipedia.NewClient(cfg.WikipediaEndpoint, cfg.HTTPUserAgent, log)
		}

		maxBatches := cfg.ImportMaxBatches
		if importBatches > 0 {
			maxBatches = importBatches
		}

		summary, err := service.Run(cmd.Context(), importer.Options{
			BatchSize:  cfg.ImportBatchSize,
			BatchDelay: cfg.ImportBatchDelay,
			MaxBatches: maxBatches,
		})
		if summary != nil {
			log.Info().
				Str("run_id", summary.RunID).
				Int("batches", summary.Batches).
				Int("imported", summary.Imported).
				Int("skipped", summary.Skipped).
				Int("failed", summary.Failed).
				Dur("duration", summary.Duration).
				Msg("import finished")
		}
		return err
	},
}

func init() {
	importCmd.Flags().IntVar(&importBatches, "batches", 0, "override the configured batch cap")
	importCmd.Flags().BoolVar(&skipDescription, "skip-descriptions", false, "do not fetch Wikipedia summaries during import")
	rootCmd.AddCommand(importCmd)
}
