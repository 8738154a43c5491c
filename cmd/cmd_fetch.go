// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mgirard/annuaire/dataset"
	"github.com/mgirard/annuaire/diag"
	"github.com/mgirard/annuaire/geo"
	"github.com/mgirard/annuaire/utils/textutils"
	"github.com/spf13/cobra"
)

var fetchOptions = struct {
	trace     bool
	traceBody bool
	cacheDir  string
	url       string
	output    string
}{}

var fetchCmd = &cobra.Command{
	Use:   "fetch <dataset>",
	Short: "Télécharge et enrichit un jeu de données",
	Long: `Télécharge le CSV distant d'un jeu de données, détecte sa forme,
le joint aux coordonnées des communes et départements, puis écrit le
résultat en CSV si --output est fourni.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ref, err := dataset.Find(args[0])
		if err != nil {
			return err
		}

		loader := dataset.NewLoader(&dataset.LoaderOptions{
			UserAgent:           fmt.Sprintf("annuaire/%s (+https://github.com/mgirard/annuaire)", Version),
			EnableHTTPTrace:     fetchOptions.trace,
			EnableHTTPBodyTrace: fetchOptions.traceBody,
			ShowProgress:        true,
		})

		url := ref.URL
		if fetchOptions.url != "" {
			url = fetchOptions.url
		}

		table, diags := loader.Fetch(ref.Name, url)
		for _, d := range diags {
			log.Printf("[%s] %s", d.Level, d.Message)
		}

		log.Printf(
			"Fetched %s rows (%s skipped, %s bytes) from %s",
			textutils.FormatInt(int64(loader.Metrics.Rows)),
			textutils.FormatInt(int64(loader.Metrics.RowsSkipped)),
			textutils.FormatInt(loader.Metrics.Bytes),
			ref.Name,
		)

		if table.Len() == 0 {
			log.Println("Aucune donnée disponible")

			return nil
		}

		shape := dataset.DetectShape(table)
		log.Printf("Detected shape: %s", shape.Kind)

		cityCache, cacheDiags := geo.LoadCache(filepath.Join(fetchOptions.cacheDir, ref.CityCache))
		for _, d := range cacheDiags {
			log.Printf("[%s] %s", d.Level, d.Message)
		}

		var deptCache geo.Cache

		if ref.DeptCache != "" {
			var deptDiags []diag.Diagnostic

			deptCache, deptDiags = geo.LoadCache(filepath.Join(fetchOptions.cacheDir, ref.DeptCache))
			for _, d := range deptDiags {
				log.Printf("[%s] %s", d.Level, d.Message)
			}
		}

		geo.NewEnricher(nil).Enrich(table, shape, cityCache, deptCache)
		log.Printf("Enriched %s rows with coordinates", textutils.FormatInt(int64(table.Len())))

		if fetchOptions.output == "" {
			return nil
		}

		f, err := os.Create(filepath.Clean(fetchOptions.output))
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}

		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Printf("closing output file: %s", cerr)
			}
		}()

		if err := table.WriteCSV(f); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}

		log.Printf("Wrote %s rows to %s", textutils.FormatInt(int64(table.Len())), fetchOptions.output)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(
		&fetchOptions.trace,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	fetchCmd.Flags().BoolVar(
		&fetchOptions.traceBody,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
	fetchCmd.Flags().StringVar(
		&fetchOptions.cacheDir,
		"cache-dir",
		".",
		"Répertoire contenant les fichiers de coordonnées",
	)
	fetchCmd.Flags().StringVar(
		&fetchOptions.url,
		"url",
		"",
		"Remplace l'URL du jeu de données",
	)
	fetchCmd.Flags().StringVarP(
		&fetchOptions.output,
		"output",
		"o",
		"",
		"Écrit le tableau enrichi dans ce fichier CSV",
	)
}
