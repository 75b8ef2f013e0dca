package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/repository"
	"github.com/nasiloldu/backend/routes"
)

const (
	homeListSize    = 10
	facetListSize   = 50
	relatedListSize = 6
)

// Prefetcher runs the minimal façade queries a route needs and records the
// results in the request-scoped cache. Independent queries for one request
// run concurrently; dependent ones (entity lookup before its person list)
// run in sequence.
type Prefetcher struct {
	Persons     repository.PersonRepositoryInterface
	Categories  repository.CategoryRepositoryInterface
	Countries   repository.CountryRepositoryInterface
	Professions repository.ProfessionRepositoryInterface
	Log         zerolog.Logger
}

// Prefetch populates cache for the matched route. A not-found entity is not
// an error: the key is recorded as nil and the page renders its not-found
// state.
func (p *Prefetcher) Prefetch(ctx context.Context, match routes.Match, cache *Cache) error {
	switch match.Name {
	case routes.Home:
		return p.prefetchHome(ctx, cache)
	case routes.Person:
		return p.prefetchPerson(match.Param, cache)
	case routes.Category:
		return p.prefetchCategory(match.Param, cache)
	case routes.Country:
		return p.prefetchCountry(match.Param, cache)
	case routes.Profession:
		return p.prefetchProfession(match.Param, cache)
	default:
		// static and unmatched pages carry no server data
		return nil
	}
}

func (p *Prefetcher) prefetchHome(ctx context.Context, cache *Cache) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := p.Categories.ListAll()
		if err != nil {
			return err
		}
		cache.Set(KeyCategories, categories)
		return nil
	})
	g.Go(func() error {
		countries, err := p.Countries.ListAll()
		if err != nil {
			return err
		}
		cache.Set(KeyCountries, countries)
		return nil
	})
	g.Go(func() error {
		recent, err := p.Persons.ListRecent(homeListSize)
		if err != nil {
			return err
		}
		cache.Set(KeyPersonsRecent, recent)
		return nil
	})
	g.Go(func() error {
		popular, err := p.Persons.ListPopular(homeListSize)
		if err != nil {
			return err
		}
		cache.Set(KeyPersonsPop, popular)
		return nil
	})
	g.Go(func() error {
		today, err := p.Persons.ListDiedToday(0)
		if err != nil {
			return err
		}
		cache.Set(KeyPersonsToday, today)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("home prefetch failed: %w", err)
	}
	return nil
}

func (p *Prefetcher) prefetchPerson(slug string, cache *Cache) error {
	person, err := p.Persons.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache.Set(KeyPerson(slug), nil)
			return nil
		}
		return fmt.Errorf("person prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyPerson(slug), person)

	related, err := p.Persons.Related(person.ID, relatedListSize)
	if err != nil {
		return fmt.Errorf("related prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyPersonRelated(slug), related)

	// the page is already fully readable from cache; the counter bump must
	// not hold up the response
	personID := person.ID
	go func() {
		if err := p.Persons.IncrementViewCount(personID); err != nil {
			p.Log.Error().Err(err).Uint("person_id", personID).Msg("view count increment failed")
		}
	}()

	return nil
}

func (p *Prefetcher) prefetchCategory(slug string, cache *Cache) error {
	category, err := p.Categories.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache.Set(KeyCategory(slug), nil)
			return nil
		}
		return fmt.Errorf("category prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyCategory(slug), category)

	persons, err := p.Persons.ListByCategory(category.ID, facetListSize, 0)
	if err != nil {
		return fmt.Errorf("category persons prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyCategoryPersons(slug), persons)
	return nil
}

func (p *Prefetcher) prefetchCountry(slug string, cache *Cache) error {
	country, err := p.Countries.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache.Set(KeyCountry(slug), nil)
			return nil
		}
		return fmt.Errorf("country prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyCountry(slug), country)

	persons, err := p.Persons.ListByCountry(country.ID, facetListSize, 0)
	if err != nil {
		return fmt.Errorf("country persons prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyCountryPersons(slug), persons)
	return nil
}

func (p *Prefetcher) prefetchProfession(slug string, cache *Cache) error {
	profession, err := p.Professions.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache.Set(KeyProfession(slug), nil)
			return nil
		}
		return fmt.Errorf("profession prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyProfession(slug), profession)

	persons, err := p.Persons.ListByProfession(profession.ID, facetListSize, 0)
	if err != nil {
		return fmt.Errorf("profession persons prefetch failed for %s: %w", slug, err)
	}
	cache.Set(KeyProfessionPersons(slug), persons)
	return nil
}
