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

	"secondarymetabolites.org/dfam-cds/internal/data"
	"secondarymetabolites.org/dfam-cds/internal/models"
)

// dbImportCmd represents the dbImport command
var dbImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import all cached families into the database",
	Long: `Import all cached families into the database.

Families already in the database are updated and their coding sequences
replaced. No network access is needed.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := setupLogging(debug)
		defer logger.Sync()

		db, err := InitDb()
		if err != nil {
			panic(fmt.Errorf("error opening database: %s", err))
		}
		defer db.Close()

		store := newStore()
		m := models.NewModels(newClient(), store, db, logger)

		if err = importCached(m, store.Dir()); err != nil {
			panic(err)
		}

		counts, err := m.Records.Counts()
		if err != nil {
			panic(fmt.Errorf("error counting records: %s", err))
		}
		fmt.Printf("Database holds %d families with %d coding sequences.\n", counts.Families, counts.CodingSeqs)
	},
}

func importCached(m models.Models, source string) error {
	set, err := m.Families.LoadCached()
	if err != nil {
		return fmt.Errorf("error reading cache: %w", err)
	}

	run, err := m.Records.StartRun(source)
	if err != nil {
		return fmt.Errorf("error starting import run: %w", err)
	}

	err = set.Each(func(acc string, rec *data.FamilyRecord) error {
		if err := m.Records.Add(run, rec); err != nil {
			return fmt.Errorf("error importing %s: %w", acc, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return m.Records.FinishRun(run)
}

func init() {
	dbCmd.AddCommand(dbImportCmd)
}
