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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"secondarymetabolites.org/dfam-cds/internal/extract"
	"secondarymetabolites.org/dfam-cds/internal/mailer"
	"secondarymetabolites.org/dfam-cds/internal/models"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <clade>",
	Short: "Extract the coding sequences of a clade's families",
	Long: `Extract the coding sequences of a clade's families.

Writes the translated coding sequences to a FASTA file and their
annotations to a tab-separated table with one row per coding sequence.
Families missing from the cache are fetched first.

If mail.recipient is configured, a summary is mailed when done.`,
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

		faPath := viper.GetString("output.fasta")
		tsvPath := viper.GetString("output.tsv")
		opts := extract.Options{
			Width:  viper.GetInt("output.width"),
			Strict: viper.GetBool("extract.strict"),
		}

		rows, err := extract.CodingSeqs(set, faPath, tsvPath, opts)
		if err != nil {
			panic(fmt.Errorf("error extracting coding sequences: %s", err))
		}
		logger.Infow("extracted coding sequences", "families", set.Len(), "coding_seqs", rows, "fasta", faPath, "tsv", tsvPath)

		recipient := viper.GetString("mail.recipient")
		if recipient == "" {
			return
		}

		summary := mailer.ExtractSummary{
			Clade:      args[0],
			Relatives:  string(r),
			Families:   set.Len(),
			CodingSeqs: rows,
			FastaPath:  faPath,
			TablePath:  tsvPath,
			Finished:   time.Now(),
		}
		if err = newMailer().SendFromTemplate(recipient, mailer.ExtractSummaryTemplate, summary); err != nil {
			// The outputs are already written, a failed notification is not fatal.
			logger.Errorw("failed to send summary mail", "recipient", recipient, "error", err)
		}
	},
}

func newMailer() mailer.Mailer {
	mailConfig := mailer.MailConfig{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Username: viper.GetString("mail.username"),
		Password: viper.GetString("mail.password"),
		Sender:   viper.GetString("mail.sender"),
	}
	return mailer.New(&mailConfig)
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addRelativesFlag(extractCmd)

	extractCmd.Flags().String("fasta", "coding_seqs.faa", "Output FASTA file for translated coding sequences")
	extractCmd.Flags().String("tsv", "coding_seqs.tsv", "Output table of coding sequence annotations")
	extractCmd.Flags().Int("width", extract.DefaultWidth, "FASTA line width")
	extractCmd.Flags().Bool("strict", true, "Fail on coding sequences lacking an annotation field")
	viper.BindPFlag("output.fasta", extractCmd.Flags().Lookup("fasta"))
	viper.BindPFlag("output.tsv", extractCmd.Flags().Lookup("tsv"))
	viper.BindPFlag("output.width", extractCmd.Flags().Lookup("width"))
	viper.BindPFlag("extract.strict", extractCmd.Flags().Lookup("strict"))
}
