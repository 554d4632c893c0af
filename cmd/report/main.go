package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/salesops/kpireport/internal/config"
	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/export"
	"github.com/salesops/kpireport/internal/repository/postgres"
	"github.com/salesops/kpireport/internal/service"
	"github.com/salesops/kpireport/internal/storage"
	"github.com/salesops/kpireport/pkg/logger"
)

const rangeDateLayout = "2006-01-02"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	logger.Setup(os.Getenv("LOG_LEVEL"), false)

	app := &cli.App{
		Name:  "report",
		Usage: "Generate the monthly KPI bonus report",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Compute per-manager coefficients and bonuses for one period",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:     "month",
						Usage:    "Report month (1..12)",
						Required: true,
						EnvVars:  []string{"REPORT_MONTH"},
					},
					&cli.IntFlag{
						Name:     "year",
						Usage:    "Report year",
						Required: true,
						EnvVars:  []string{"REPORT_YEAR"},
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Override range start (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "Override range end, exclusive (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Write the report as CSV to this path",
					},
					&cli.BoolFlag{
						Name:  "archive",
						Usage: "Upload the CSV to the configured report archive",
					},
				},
				Action: runGenerate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("report failed")
	}
}

func runGenerate(c *cli.Context) error {
	cfg := config.Load()

	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	reportService := service.NewReportService(
		postgres.NewPlanRepository(db),
		postgres.NewTaskRepository(db),
		postgres.NewClientRepository(db),
		postgres.NewOrderRepository(db),
		cfg.Managers,
		nil,
	)

	period := domain.Period{Month: c.Int("month"), Year: c.Int("year")}
	from, to := period.Range()
	if raw := c.String("from"); raw != "" {
		if from, err = time.Parse(rangeDateLayout, raw); err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
	}
	if raw := c.String("to"); raw != "" {
		if to, err = time.Parse(rangeDateLayout, raw); err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
	}

	report, err := reportService.GenerateRange(c.Context, period, from, to)
	if err != nil {
		return err
	}

	for _, result := range report.Results {
		fmt.Printf("%-30s k=%s premia=%s premia_dod=%s\n",
			result.Manager.Name,
			result.SumCoefficient.StringFixed(2),
			result.PrimaryBonus.StringFixed(2),
			result.AdditionalBonus.StringFixed(2),
		)
	}

	if path := c.String("csv"); path != "" {
		if err := export.WriteCSV(report, path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("report CSV written")
	}

	if c.Bool("archive") {
		client, err := storage.NewS3Client(cfg.Archive)
		if err != nil {
			return err
		}
		data, err := export.RenderCSV(report)
		if err != nil {
			return err
		}
		key := export.ObjectKey(cfg.Archive.Prefix, period)
		if err := client.UploadObject(c.Context, key, data); err != nil {
			return err
		}
		log.Info().Str("key", key).Msg("report archived")
	}

	return nil
}
