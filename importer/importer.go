// Package importer maps Wikidata query results onto the local schema. It is
// single-pass and non-resumable: every item failure is logged and counted,
// and already-inserted rows are safe across reruns because the Wikidata QID
// is checked before every insert.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/repository"
	"github.com/nasiloldu/backend/utils"
	"github.com/nasiloldu/backend/wikidata"
	"github.com/nasiloldu/backend/wikipedia"
)

// Summary is the aggregate result of one import run.
type Summary struct {
	RunID    string        `json:"run_id"`
	Batches  int           `json:"batches"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Options control batch pacing of a run.
type Options struct {
	BatchSize  int
	BatchDelay time.Duration
	MaxBatches int
}

// Service wires the external clients to the storage façade.
type Service struct {
	Persons     repository.PersonRepositoryInterface
	Categories  repository.CategoryRepositoryInterface
	Countries   repository.CountryRepositoryInterface
	Professions repository.ProfessionRepositoryInterface
	DeathCauses repository.DeathCauseRepositoryInterface
	Wikidata    *wikidata.Client
	Wikipedia   *wikipedia.Client
	Log         zerolog.Logger
}

// Run executes sequential batches against the knowledge graph with a fixed
// inter-batch delay, stopping when the source returns no further data or the
// batch cap is reached. Individual item failures never abort the run.
func (s *Service) Run(ctx context.Context, opts Options) (*Summary, error) {
	summary := &Summary{RunID: uuid.New().String()}
	start := time.Now()
	log := s.Log.With().Str("run_id", summary.RunID).Logger()

	for batch := 0; batch < opts.MaxBatches; batch++ {
		if batch > 0 {
			select {
			case <-time.After(opts.BatchDelay):
			case <-ctx.Done():
				summary.Duration = time.Since(start)
				return summary, ctx.Err()
			}
		}

		entities, err := s.Wikidata.FetchDeceased(ctx, opts.BatchSize, batch*opts.BatchSize)
		if err != nil {
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("batch %d fetch failed: %w", batch, err)
		}
		if len(entities) == 0 {
			break
		}
		summary.Batches++

		for _, entity := range entities {
			switch err := s.importOne(ctx, entity); {
			case err == nil:
				summary.Imported++
			case errors.Is(err, errAlreadyImported):
				summary.Skipped++
			default:
				summary.Failed++
				log.Warn().Err(err).Str("qid", entity.QID).Str("name", entity.Name).Msg("item import failed")
			}
		}

		log.Info().Int("batch", batch).Int("fetched", len(entities)).
			Int("imported", summary.Imported).Int("skipped", summary.Skipped).Int("failed", summary.Failed).
			Msg("batch complete")
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

var errAlreadyImported = errors.New("person already imported")

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Service) importOne(ctx context.Context, entity wikidata.Entity) error {
	_, err := s.Persons.GetByWikidataID(entity.QID)
	if err == nil {
		return errAlreadyImported
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("dedup check failed: %w", err)
	}

	if entity.Occupation == "" || entity.Country == "" {
		return fmt.Errorf("entity %s is missing occupation or country", entity.QID)
	}

	categorySlug := ClassifyCause(entity.CauseOfDeath)
	category, err := s.Categories.GetBySlug(categorySlug)
	if err != nil {
		return fmt.Errorf("category %s lookup failed: %w", categorySlug, err)
	}

	country, err := s.Countries.GetOrCreate(entity.Country, optional(entity.CountryQID))
	if err != nil {
		return err
	}
	profession, err := s.Professions.GetOrCreate(entity.Occupation, nil)
	if err != nil {
		return err
	}

	var deathCauseID *uint
	if entity.CauseOfDeath != "" {
		cause, err := s.DeathCauses.GetOrCreate(entity.CauseOfDeath, category.ID, optional(entity.CauseQID))
		if err != nil {
			return err
		}
		deathCauseID = &cause.ID
	}

	person := models.Person{
		WikidataID:    entity.QID,
		Slug:          s.uniqueSlug(entity),
		Name:          entity.Name,
		BirthDate:     optional(entity.BirthDate),
		DeathDate:     optional(entity.DeathDate),
		BirthPlace:    optional(entity.BirthPlace),
		DeathPlace:    optional(entity.DeathPlace),
		DeathCauseRaw: optional(entity.CauseOfDeath),
		Nationality:   optional(entity.Country),
		ImageURL:      optional(entity.ImageURL),
		WikipediaURL:  optional(entity.WikipediaURL),
		ProfessionID:  profession.ID,
		CountryID:     country.ID,
		DeathCauseID:  deathCauseID,
		CategoryID:    category.ID,
		IsApproved:    true,
	}

	// description enrichment is best effort; upstream gaps leave it nil
	if s.Wikipedia != nil {
		summary := s.Wikipedia.GetSummaryWithFallback(ctx, entity.Name)
		person.Description = optional(summary.Extract)
		if person.WikipediaURL == nil {
			person.WikipediaURL = optional(summary.PageURL)
		}
	}

	if err := s.Persons.Create(&person); err != nil {
		return err
	}
	return nil
}

// uniqueSlug derives the person's slug from the name, suffixing the QID when
// another person already claims it (homonyms are expected and unguarded at
// the name level).
func (s *Service) uniqueSlug(entity wikidata.Entity) string {
	slug := utils.Slugify(entity.Name)
	if slug == "" {
		slug = utils.Slugify(entity.QID)
	}
	if _, err := s.Persons.GetBySlug(slug); err == nil {
		return slug + "-" + utils.Slugify(entity.QID)
	}
	return slug
}
