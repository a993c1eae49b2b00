package main

import (
	"context"
	"flag"
	"os"

	"film_stats/internal/app"
	"film_stats/internal/config"
	"film_stats/internal/deployment"
	"film_stats/internal/domain/film"
	"film_stats/internal/filmsource"
	"film_stats/internal/processing"
	"film_stats/internal/report"
	"film_stats/internal/sheets"
	"film_stats/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	source := flag.String("source", "", "Path or URL of the film dataset (overrides FILM_DATA_SOURCE)")
	runOnce := flag.Bool("once", false, "Render once to the report (and sheets, when configured) and exit")
	sortColumn := flag.String("sort", "", "Column to sort by in run-once mode")
	searchTerm := flag.String("search", "", "Search term to apply in run-once mode")
	flag.Parse()

	// Load configuration
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *source != "" {
		cfg.DataSource = *source
	}

	log.Info().
		Str("source", cfg.DataSource).
		Bool("run_once", *runOnce).
		Bool("sheets", cfg.SheetsEnabled()).
		Bool("deploy", cfg.DeployEnabled()).
		Msg("Starting film stats application")

	ctx := context.Background()
	resilience := config.DefaultResilienceConfig

	filmClient := filmsource.NewClient(cfg.DataSource, resilience.Fetch.Timeout)
	sorter := film.NewSorter(cfg.CollationLanguage)
	reportWriter := report.NewWriter(cfg.ReportFile, cfg.DataSource)

	if *runOnce {
		if err := runOnceMode(ctx, cfg, resilience, filmClient, sorter, reportWriter, *searchTerm, *sortColumn); err != nil {
			log.Fatal().Err(err).Msg("Run-once mode failed")
		}
		return
	}

	if *sortColumn != "" || *searchTerm != "" {
		log.Warn().Msg("-sort and -search only apply in run-once mode")
	}

	if err := runInteractive(ctx, cfg, filmClient, sorter, reportWriter); err != nil {
		log.Fatal().Err(err).Msg("Interactive mode failed")
	}
}

// runOnceMode renders the dashboard a single time to the report and, when
// configured, the spreadsheet, then publishes the report
func runOnceMode(ctx context.Context, cfg *app.Config, resilience config.ResilienceConfig,
	filmClient *filmsource.Client, sorter *film.Sorter, reportWriter *report.Writer,
	searchTerm, sortColumn string) error {

	var col film.Column
	if sortColumn != "" {
		parsed, err := film.ParseColumn(sortColumn)
		if err != nil {
			return err
		}
		col = parsed
	}

	renderers := []processing.Renderer{reportWriter}
	if cfg.SheetsEnabled() {
		sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return err
		}
		renderers = append(renderers, sheets.NewDashboardManager(sheetsClient, cfg.SpreadsheetID, resilience.SheetWrite))
	}

	dashboard := processing.NewDashboard(filmClient, processing.NewMultiRenderer(renderers...), sorter, cfg.TopN)

	startErr := dashboard.Start(ctx)
	if startErr == nil {
		if searchTerm != "" {
			if err := dashboard.Search(ctx, searchTerm); err != nil {
				return err
			}
		}
		if sortColumn != "" {
			if err := dashboard.SortBy(ctx, col); err != nil {
				return err
			}
		}
	}

	// The report is written even when the load failed so the error is published
	if err := reportWriter.Flush(); err != nil {
		return err
	}

	if cfg.DeployEnabled() {
		deployer := deployment.NewSSHDeployer(cfg.DeployURL, cfg.DeployKeyFile, cfg.KnownHostsFile, resilience.Deploy.Timeout)
		defer deployer.Disconnect()

		if err := deployer.PublishReport(reportWriter.Path()); err != nil {
			return err
		}
	}

	log.Info().
		Int64("fetches", filmClient.GetFetchCount()).
		Str("report", reportWriter.Path()).
		Msg("Completed run-once rendering")

	return startErr
}

// runInteractive hosts the dashboard in the terminal until the user quits
func runInteractive(ctx context.Context, cfg *app.Config, filmClient *filmsource.Client,
	sorter *film.Sorter, reportWriter *report.Writer) error {

	logFile, err := app.RedirectLogsToFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	screen := tui.NewScreen()
	dashboard := processing.NewDashboard(filmClient, processing.NewMultiRenderer(screen, reportWriter), sorter, cfg.TopN)

	p := tea.NewProgram(tui.New(ctx, dashboard, screen), tea.WithAltScreen(), tea.WithOutput(os.Stdout))
	if _, err := p.Run(); err != nil {
		return err
	}

	return reportWriter.Flush()
}
