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
	"github.com/spf13/viper"

	"secondarymetabolites.org/dfam-cds/internal/extract"
	"secondarymetabolites.org/dfam-cds/internal/models"
)

// familiesCmd represents the families command
var familiesCmd = &cobra.Command{
	Use:   "families <clade>",
	Short: "Write a summary table of a clade's families",
	Long: `Write a summary table of a clade's families.

One row per family with accession, name, length, title, repeat type and
repeat subtype.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := getRelatives()

		logger := setupLogging(debug)
		defer logger.Sync()

		m := models.NewModels(newClient(), newStore(), nil, logger)

		set, err := searchAndLoad(cmd.Context(), m, args[0], r)
		if err != nil {
			panic(err)
		}

		path := viper.GetString("output.families")
		if err = extract.Families(set, path); err != nil {
			panic(fmt.Errorf("error writing family table %s: %s", path, err))
		}
		logger.Infow("wrote family table", "families", set.Len(), "path", path)
	},
}

func init() {
	rootCmd.AddCommand(familiesCmd)
	addRelativesFlag(familiesCmd)

	familiesCmd.Flags().StringP("output", "o", "families.tsv", "Output table of families")
	viper.BindPFlag("output.families", familiesCmd.Flags().Lookup("output"))
}
