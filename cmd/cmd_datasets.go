// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/mgirard/annuaire/dataset"
	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Liste les jeux de données disponibles",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, b, c := strings.Repeat("─", 2), strings.Repeat("─", 8), strings.Repeat("─", 56)
		fmt.Println("Jeux de données disponibles:")
		fmt.Printf("╭─%2s─┬─%-8s─┬─%-56s╮\n", a, b, c)
		fmt.Printf("│ %2s │ %-8s │ %-56s│\n", "Id", "Nom", "Description")
		fmt.Printf("├─%2s─┼─%-8s─┼─%-56s┤\n", a, b, c)
		err := dataset.Each(func(ref dataset.Reference) error {
			fmt.Printf("│ %2d │ %-8s │ %-56s│\n", ref.ID, ref.Name, ref.Description)

			return nil
		})
		fmt.Printf("╰─%2s─┴─%-8s─┴─%-56s╯\n", a, b, c)

		return err
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}
