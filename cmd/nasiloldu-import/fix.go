package main

import (
	"github.com/spf13/cobra"

	"github.com/nasiloldu/backend/repository"
	"github.com/nasiloldu/backend/wikidata"
	"github.com/nasiloldu/backend/wikipedia"
)

// the fix-* commands patch individual person fields by primary key. They are
// single-pass: each failed item is logged and skipped.

var enrichDescriptionsCmd = &cobra.Command{
	Use:   "enrich-descriptions",
	Short: "Fill in missing long-form descriptions from Wikipedia",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		persons := repository.NewPersonRepository(db)
		wiki := wikipedia.NewClient(cfg.WikipediaEndpoint, cfg.HTTPUserAgent, log)

		all, err := persons.ListAllForMaintenance()
		if err != nil {
			return err
		}

		var updated, skipped, failed int
		for _, person := range all {
			if person.Description != nil && *person.Description != "" {
				skipped++
				continue
			}
			summary := wiki.GetSummaryWithFallback(cmd.Context(), person.Name)
			if summary.Extract == "" {
				skipped++
				continue
			}
			person.Description = &summary.Extract
			if person.WikipediaURL == nil && summary.PageURL != "" {
				person.WikipediaURL = &summary.PageURL
			}
			if err := persons.Update(&person); err != nil {
				failed++
				log.Warn().Err(err).Uint("id", person.ID).Msg("description update failed")
				continue
			}
			updated++
		}

		log.Info().Int("updated", updated).Int("skipped", skipped).Int("failed", failed).Msg("enrich-descriptions finished")
		return nil
	},
}

var fixImagesCmd = &cobra.Command{
	Use:   "fix-images",
	Short: "Fetch missing person images from Wikidata",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		persons := repository.NewPersonRepository(db)
		wd := wikidata.NewClient(cfg.WikidataEndpoint, cfg.HTTPUserAgent, log)

		all, err := persons.ListAllForMaintenance()
		if err != nil {
			return err
		}

		var updated, skipped, failed int
		for _, person := range all {
			if person.ImageURL != nil && *person.ImageURL != "" {
				skipped++
				continue
			}
			image, err := wd.FetchImage(cmd.Context(), person.WikidataID)
			if err != nil {
				failed++
				log.Warn().Err(err).Str("qid", person.WikidataID).Msg("image fetch failed")
				continue
			}
			if image == "" {
				skipped++
				continue
			}
			person.ImageURL = &image
			if err := persons.Update(&person); err != nil {
				failed++
				log.Warn().Err(err).Uint("id", person.ID).Msg("image update failed")
				continue
			}
			updated++
		}

		log.Info().Int("updated", updated).Int("skipped", skipped).Int("failed", failed).Msg("fix-images finished")
		return nil
	},
}

var fixCountriesCmd = &cobra.Command{
	Use:   "fix-countries",
	Short: "Re-resolve country of citizenship for persons imported without one",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		persons := repository.NewPersonRepository(db)
		countries := repository.NewCountryRepository(db)
		wd := wikidata.NewClient(cfg.WikidataEndpoint, cfg.HTTPUserAgent, log)

		all, err := persons.ListAllForMaintenance()
		if err != nil {
			return err
		}

		var updated, skipped, failed int
		for _, person := range all {
			if person.Nationality != nil && *person.Nationality != "" {
				skipped++
				continue
			}
			name, countryQID, err := wd.FetchCountry(cmd.Context(), person.WikidataID)
			if err != nil {
				failed++
				log.Warn().Err(err).Str("qid", person.WikidataID).Msg("country fetch failed")
				continue
			}
			if name == "" {
				skipped++
				continue
			}
			country, err := countries.GetOrCreate(name, &countryQID)
			if err != nil {
				failed++
				log.Warn().Err(err).Str("country", name).Msg("country upsert failed")
				continue
			}
			person.CountryID = country.ID
			person.Nationality = &name
			if err := persons.Update(&person); err != nil {
				failed++
				log.Warn().Err(err).Uint("id", person.ID).Msg("country update failed")
				continue
			}
			updated++
		}

		log.Info().Int("updated", updated).Int("skipped", skipped).Int("failed", failed).Msg("fix-countries finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichDescriptionsCmd, fixImagesCmd, fixCountriesCmd)
}
