package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/cli"
	"github.com/alexanderramin/shootcal/internal/config"
	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/geocode"
	"github.com/alexanderramin/shootcal/internal/httpapi"
	"github.com/alexanderramin/shootcal/internal/logging"
	"github.com/alexanderramin/shootcal/internal/service"
	"github.com/alexanderramin/shootcal/internal/suntimes"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Config file: SHOOTCAL_CONFIG or ~/.config/shootcal/config.yaml
	cfgPath := os.Getenv(config.EnvPrefix + "_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)

	sun, err := suntimes.New(suntimes.Options{
		Timezone:  cfg.Sun.Timezone,
		CacheSize: cfg.Cache.Size,
		CacheTTL:  cfg.Cache.TTL,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("configuring sun times: %w", err)
	}

	// Geocoding stays off unless enabled; locations then keep the
	// coordinates they were given.
	var geocoder geocode.Geocoder
	if cfg.Geocode.Enabled {
		geocoder = geocode.NewNominatimClient(geocode.Config{
			Endpoint:     cfg.Geocode.Endpoint,
			UserAgent:    cfg.Geocode.UserAgent,
			CountryCodes: cfg.Geocode.CountryCodes,
			TimeoutMs:    cfg.Geocode.TimeoutMs,
			MaxRetries:   cfg.Geocode.MaxRetries,
			CacheSize:    cfg.Cache.Size,
			CacheTTL:     cfg.Cache.TTL,
		}, geocode.NewSlogObserver(logger))
	}

	engine := calendar.NewEngine(logger)
	observer := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Projects:    service.NewProjectService(uow, engine, sun, logger, observer),
		Calendars:   service.NewCalendarService(uow, engine, sun, logger, observer),
		Versions:    service.NewVersionService(uow, engine, sun, logger, observer),
		Rules:       service.NewRuleService(uow, observer),
		Definitions: service.NewDefinitionService(uow, engine, geocoder, logger, observer),
		Access:      service.NewAccessService(uow, observer),
		Import:      service.NewImportService(uow, engine, sun, logger, cfg.Owner.Default, observer),
		ServerAddr:  cfg.Server.Addr,
		Owner:       cfg.Owner.Default,
	}

	app.Server = httpapi.NewServer(httpapi.Services{
		Projects:    app.Projects,
		Calendars:   app.Calendars,
		Versions:    app.Versions,
		Rules:       app.Rules,
		Definitions: app.Definitions,
		Access:      app.Access,
	}, cfg.Owner.Default, logger)

	// Forms and the calendar browser need a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
