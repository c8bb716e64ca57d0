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
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"secondarymetabolites.org/dfam-cds/internal/cache"
	"secondarymetabolites.org/dfam-cds/internal/data"
	"secondarymetabolites.org/dfam-cds/internal/dfam"
	"secondarymetabolites.org/dfam-cds/internal/models"
)

var relatives string

func addRelativesFlag(cmd *cobra.Command) {
	help := fmt.Sprintf("Clade relatives to include %v", data.ValidRelatives())
	cmd.Flags().StringVarP(&relatives, "relatives", "r", string(data.Both), help)
}

// getRelatives exits with a usage error on an invalid --relatives value.
func getRelatives() data.Relatives {
	r, err := data.ParseRelatives(relatives)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

func setupLogging(debug bool) *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	logger, err := config.Build()
	if err != nil {
		log.Fatalf("Failed to set up logging: %s", err.Error())
	}
	return logger.Sugar()
}

func newClient() *dfam.Client {
	return dfam.New(viper.GetString("api.url"), viper.GetInt("api.limit"), viper.GetDuration("api.timeout"))
}

func newStore() *cache.Store {
	return cache.New(viper.GetString("cache.dir"))
}

// InitDb opens and pings the configured Postgres database.
func InitDb() (*sql.DB, error) {
	uri := viper.GetString("database.uri")
	if uri == "" {
		return nil, fmt.Errorf("database.uri is not configured")
	}

	db, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// searchAndLoad runs a clade search and loads every family it finds.
func searchAndLoad(ctx context.Context, m models.Models, clade string, r data.Relatives) (*data.FamilySet, error) {
	summaries, err := m.Families.Search(ctx, clade, r)
	if err != nil {
		return nil, fmt.Errorf("error searching clade %s: %w", clade, err)
	}

	set, err := m.Families.Load(ctx, summaries)
	if err != nil {
		return nil, fmt.Errorf("error loading families: %w", err)
	}
	return set, nil
}
