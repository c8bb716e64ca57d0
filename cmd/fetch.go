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

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <clade>",
	Short: "Download all family records of a clade into the cache",
	Long: `Download all family records of a clade into the cache.

Families already in the cache directory are not requested again.`,
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

		fmt.Printf("Loaded %d families with %d coding sequences.\n", set.Len(), set.CodingSeqCount())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addRelativesFlag(fetchCmd)
}
