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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"secondarymetabolites.org/dfam-cds/internal/web"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cache as a Dfam API mirror",
	Long: `Serve the cache as a Dfam API mirror.

Cached records are served under the same /api/families paths as dfam.org.
Clade searches only match a record's own clade list, relatives are not
resolved.`,
	Run: func(cmd *cobra.Command, args []string) {
		web.Run(debug)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "127.0.0.1", "Address to listen on")
	serveCmd.Flags().IntP("port", "p", 6424, "Port to listen on")
	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
