// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mgirard/annuaire/dataset"
	"github.com/mgirard/annuaire/server"
	"github.com/spf13/cobra"
)

var serveOptions = struct {
	addr     string
	cacheDir string
	ttl      time.Duration
}{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Démarre l'API locale du tableau de bord",
	Long: `Sert les annuaires enrichis sous forme d'API JSON/CSV locale.
La configuration peut venir d'un fichier .env: ANNUAIRE_ADDR,
ANNUAIRE_CACHE_DIR, ANNUAIRE_TTL_HOURS, et ANNUAIRE_URL_<NOM> pour
remplacer l'URL d'un jeu de données.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found (using environment variables)")
		}

		addr := serveOptions.addr
		if !cmd.Flags().Changed("addr") {
			addr = getEnv("ANNUAIRE_ADDR", addr)
		}

		cacheDir := serveOptions.cacheDir
		if !cmd.Flags().Changed("cache-dir") {
			cacheDir = getEnv("ANNUAIRE_CACHE_DIR", cacheDir)
		}

		ttl := serveOptions.ttl
		if !cmd.Flags().Changed("ttl") {
			if hours, err := strconv.Atoi(getEnv("ANNUAIRE_TTL_HOURS", "")); err == nil && hours > 0 {
				ttl = time.Duration(hours) * time.Hour
			}
		}

		overrides := make(map[string]string)
		if err := dataset.Each(func(ref dataset.Reference) error {
			if url := os.Getenv("ANNUAIRE_URL_" + strings.ToUpper(ref.Name)); url != "" {
				overrides[ref.Name] = url
			}

			return nil
		}); err != nil {
			return err
		}

		loader := dataset.NewLoader(&dataset.LoaderOptions{
			UserAgent: fmt.Sprintf("annuaire/%s (+https://github.com/mgirard/annuaire)", Version),
		})

		provider := server.NewSnapshotProvider(server.ProviderOptions{
			CacheDir:     cacheDir,
			TTL:          ttl,
			Loader:       loader,
			URLOverrides: overrides,
		})

		fmt.Println("🗺️  Annuaire API starting...")
		fmt.Printf("📍 Open http://%s/api/records in your browser\n", addr)
		fmt.Println("🔒 Local only - not exposed to internet")

		return server.NewServer(provider).Run(addr)
	},
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(
		&serveOptions.addr,
		"addr",
		"localhost:8080",
		"Adresse d'écoute du serveur",
	)
	serveCmd.Flags().StringVar(
		&serveOptions.cacheDir,
		"cache-dir",
		".",
		"Répertoire contenant les fichiers de coordonnées",
	)
	serveCmd.Flags().DurationVar(
		&serveOptions.ttl,
		"ttl",
		dataset.DefaultTTL,
		"Durée de validité du cache de données",
	)
}
