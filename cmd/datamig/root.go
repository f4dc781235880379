package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"datamig/pkg/dataset"
	"datamig/pkg/pipeline"
	"datamig/pkg/schema"
	"datamig/pkg/source"
)

var rootCmd = &cobra.Command{
	Use:           "datamig",
	Short:         "Migrate user and dependant records from heterogeneous sources into one canonical schema",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("csv", "", "path to a semicolon-delimited user file")
	flags.String("xml", "", "path to a tagged-markup user file")
	flags.String("sheet", "", "remote spreadsheet identifier")
	flags.String("users-range", "usuarios", "spreadsheet range holding user rows")
	flags.String("dependants-range", "dependentes", "spreadsheet range holding dependant rows")
	flags.String("credentials", "credentials.json", "OAuth client secrets file for the spreadsheet API")
	flags.String("token", "token.json", "cached OAuth token file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	// Every flag can also be set through the environment, e.g. DATAMIG_CSV.
	viper.SetEnvPrefix("datamig")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// job pairs a configured source with its declared field-mapping table.
type job struct {
	src     source.Source
	mapping schema.Mapping
}

func run(cmd *cobra.Command, _ []string) error {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(viper.GetString("log-level")); err == nil {
		logger.SetLevel(level)
	}

	var jobs []job
	if path := viper.GetString("csv"); path != "" {
		jobs = append(jobs, job{src: source.NewDelimitedFile(path, logger), mapping: schema.DelimitedMapping})
	}
	if path := viper.GetString("xml"); path != "" {
		jobs = append(jobs, job{src: source.NewMarkupFile(path, logger), mapping: schema.MarkupMapping})
	}
	if id := viper.GetString("sheet"); id != "" {
		sheet := source.NewSpreadsheet(id, logger)
		sheet.UsersRange = viper.GetString("users-range")
		sheet.DependantsRange = viper.GetString("dependants-range")
		sheet.CredentialsFile = viper.GetString("credentials")
		sheet.TokenFile = viper.GetString("token")
		jobs = append(jobs, job{src: sheet, mapping: schema.SpreadsheetMapping})
	}
	if len(jobs) == 0 {
		return errors.New("no sources configured: pass at least one of --csv, --xml or --sheet")
	}

	// Sources run sequentially, each end to end. A failed source aborts its
	// own run only; the remaining sources still migrate.
	failed := 0
	var total time.Duration
	for _, j := range jobs {
		started := time.Now()
		result, err := pipeline.Run(cmd.Context(), j.src, j.mapping)
		if err != nil {
			failed++
			logger.WithError(err).Errorf("migration failed for source %s", j.src.Name())
			continue
		}
		elapsed := time.Since(started)
		total += elapsed

		fmt.Println("========================================")
		fmt.Printf("Migrated source: %s\n\n", j.src.Name())
		fmt.Println(dataset.ToCSV(result.Users))
		fmt.Println("----------------------------------------")
		fmt.Println(dataset.ToCSV(result.Dependants))

		logger.WithFields(logrus.Fields{
			"source":  j.src.Name(),
			"users":   len(result.Users.Rows),
			"elapsed": elapsed,
		}).Info("source migrated")
	}

	logger.WithField("total", total).Info("migration finished")
	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(jobs))
	}
	return nil
}
