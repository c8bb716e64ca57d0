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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"secondarymetabolites.org/dfam-cds/internal/dfam"
	"secondarymetabolites.org/dfam-cds/internal/extract"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dfam-cds",
	Short: "Extract coding sequences from Dfam transposable element families",
	Long: `Extract coding sequences from Dfam transposable element families.

Family records are fetched from the Dfam API once and kept in a local
cache directory, so repeated runs only query families not seen before.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dfam-cds.toml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Run in debug mode")

	rootCmd.PersistentFlags().String("api-url", dfam.DefaultBaseURL, "Base URL of the Dfam API")
	rootCmd.PersistentFlags().String("cache-dir", "dfam.cache", "Directory holding cached family records")
	viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("cache.dir", rootCmd.PersistentFlags().Lookup("cache-dir"))

	viper.SetDefault("api.url", dfam.DefaultBaseURL)
	viper.SetDefault("api.limit", dfam.DefaultLimit)
	viper.SetDefault("api.timeout", 0)
	viper.SetDefault("cache.dir", "dfam.cache")
	viper.SetDefault("output.fasta", "coding_seqs.faa")
	viper.SetDefault("output.tsv", "coding_seqs.tsv")
	viper.SetDefault("output.families", "families.tsv")
	viper.SetDefault("output.width", extract.DefaultWidth)
	viper.SetDefault("extract.strict", true)
	viper.SetDefault("server.address", "127.0.0.1")
	viper.SetDefault("server.port", 6424)
	viper.SetDefault("mail.port", 25)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".dfam-cds")
	}

	viper.SetEnvPrefix("DFAM_CDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
