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

var listMissing bool

// cacheStatusCmd represents the cacheStatus command
var cacheStatusCmd = &cobra.Command{
	Use:   "status <clade>",
	Short: "Show how many of a clade's families are cached",
	Long: `Show how many of a clade's families are cached.

Runs the clade search and compares the result to the cache directory,
without fetching any family records.`,
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

		status, err := m.Families.Status(summaries)
		if err != nil {
			panic(fmt.Errorf("error reading cache: %s", err))
		}

		fmt.Printf("%d cached, %d missing\n", len(status.Cached), len(status.Missing))
		if listMissing {
			for _, accession := range status.Missing {
				fmt.Println(accession)
			}
		}
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	addRelativesFlag(cacheStatusCmd)
	cacheStatusCmd.Flags().BoolVarP(&listMissing, "missing", "m", false, "List the accessions not yet cached")
}
