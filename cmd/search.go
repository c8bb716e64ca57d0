/*
Copyright © 2026 Technical University of Denmark - written by Kai Blin <kblin@biosustain.dtu.dk>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"secondarymetabolites.org/dfam-cds/internal/models"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <clade>",
	Short: "List the Dfam families of a clade",
	Long: `List the Dfam families of a clade.

Prints accession, name and length of every family summary returned by the
Dfam API. Nothing is cached.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := getRelatives()

		logger := setupLogging(debug)
		defer logger.Sync()

		m := models.NewModels(newClient(), newStore(), nil, logger)

		summaries, err := m.Families.Search(cmd.Context(), args[0], r)
		if err != nil {
			panic(fmt.Errorf("error searching clade %s: %s", args[0], err))
		}

		for _, summary := range summaries {
			fmt.Printf("%s\t%s\t%d\n", summary.Accession, summary.Name, summary.Length)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addRelativesFlag(searchCmd)
}
