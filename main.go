package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/nasiloldu/backend/config"
	"github.com/nasiloldu/backend/database"
	"github.com/nasiloldu/backend/handlers"
	"github.com/nasiloldu/backend/importer"
	"github.com/nasiloldu/backend/logger"
	"github.com/nasiloldu/backend/render"
	"github.com/nasiloldu/backend/repository"
	"github.com/nasiloldu/backend/seo"
	"github.com/nasiloldu/backend/wikidata"
	"github.com/nasiloldu/backend/wikipedia"
)

func main() {
	log := logger.New("nasiloldu-backend")

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := database.SeedDefaults(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed defaults")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get underlying sql.DB")
	}
	log.Info().Str("database", cfg.DatabasePath).Msg("database ready")

	personRepo := repository.NewPersonRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	professionRepo := repository.NewProfessionRepository(db)
	deathCauseRepo := repository.NewDeathCauseRepository(db)
	userRepo := repository.NewUserRepository(db)

	wikidataClient := wikidata.NewClient(cfg.WikidataEndpoint, cfg.HTTPUserAgent, log)
	wikipediaClient := wikipedia.NewClient(cfg.WikipediaEndpoint, cfg.HTTPUserAgent, log)
	importService := &importer.Service{
		Persons:     personRepo,
		Categories:  categoryRepo,
		Countries:   countryRepo,
		Professions: professionRepo,
		DeathCauses: deathCauseRepo,
		Wikidata:    wikidataClient,
		Wikipedia:   wikipediaClient,
		Log:         log,
	}

	metaGen := &seo.Generator{
		BaseURL:     cfg.SiteBaseURL,
		Persons:     personRepo,
		Categories:  categoryRepo,
		Countries:   countryRepo,
		Professions: professionRepo,
	}
	prefetcher := &render.Prefetcher{
		Persons:     personRepo,
		Categories:  categoryRepo,
		Countries:   countryRepo,
		Professions: professionRepo,
		Log:         log,
	}
	renderer, err := render.NewRenderer(cfg.ShellPath, prefetcher, metaGen, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load client shell")
	}
	log.Info().Str("shell", cfg.ShellPath).Msg("client shell loaded")

	categoryHandler := &handlers.CategoryHandler{Categories: categoryRepo, Persons: personRepo, Log: log}
	countryHandler := &handlers.CountryHandler{Countries: countryRepo, Persons: personRepo, Log: log}
	professionHandler := &handlers.ProfessionHandler{Professions: professionRepo, Persons: personRepo, Log: log}
	personHandler := &handlers.PersonHandler{Persons: personRepo, Log: log}
	adminHandler := &handlers.AdminHandler{Users: userRepo, Importer: importService, StatsDB: sqlDB, Cfg: cfg, Log: log}
	seoHandler := &handlers.SEOHandler{DB: sqlDB, BaseURL: cfg.SiteBaseURL, Log: log}
	documentHandler := &handlers.DocumentHandler{Renderer: renderer, Log: log}

	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler.Handler)

	// the admin bulk import legitimately runs for minutes, so the request
	// timeout applies everywhere except that route
	webTimeout := middleware.Timeout(60 * time.Second)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(webTimeout)
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.ListCategories)
				r.Get("/{slug}", categoryHandler.GetCategory)
				r.Get("/{slug}/persons", categoryHandler.ListCategoryPersons)
			})
			r.Route("/countries", func(r chi.Router) {
				r.Get("/", countryHandler.ListCountries)
				r.Get("/{slug}", countryHandler.GetCountry)
				r.Get("/{slug}/persons", countryHandler.ListCountryPersons)
			})
			r.Route("/professions", func(r chi.Router) {
				r.Get("/", professionHandler.ListProfessions)
				r.Get("/{slug}", professionHandler.GetProfession)
				r.Get("/{slug}/persons", professionHandler.ListProfessionPersons)
			})
			r.Route("/persons", func(r chi.Router) {
				r.Get("/today", personHandler.ListTodayPersons)
				r.Get("/recent", personHandler.ListRecentPersons)
				r.Get("/popular", personHandler.ListPopularPersons)
				r.Get("/{slug}", personHandler.GetPerson)
				r.Get("/{slug}/related", personHandler.GetRelatedPersons)
			})
			r.Get("/search", personHandler.SearchPersons)
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(webTimeout).Post("/login", adminHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(func(next http.Handler) http.Handler {
					return handlers.AuthMiddleware(cfg.JWTSecret, next)
				})
				r.With(webTimeout).Get("/stats", adminHandler.GetStats)
				r.Post("/import-from-wikidata", adminHandler.ImportFromWikidata)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(webTimeout)
		r.Get("/sitemap.xml", seoHandler.Sitemap)
		r.Get("/robots.txt", seoHandler.Robots)
		r.Get("/*", documentHandler.ServeDocument)
	})

	serverAddr := ":" + cfg.Port
	log.Info().Str("addr", serverAddr).Msg("server listening")
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// no write deadline: the bulk import response is written after minutes
		IdleTimeout: 120 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
