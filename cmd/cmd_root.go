// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "annuaire",
	Short: "exploration des annuaires publics français",
	Long: `
annuaire télécharge les annuaires publiés sur data.gouv.fr (professionnels
de santé Ameli, Répertoire National des Élus), les enrichit avec les
coordonnées des communes et départements, et les expose sous forme de
tableaux filtrables, de statistiques et de données cartographiques.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
