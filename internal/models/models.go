package models

import (
	"database/sql"

	"go.uber.org/zap"

	"secondarymetabolites.org/dfam-cds/internal/cache"
	"secondarymetabolites.org/dfam-cds/internal/dfam"
)

type Models struct {
	Families FamilyModel
	Records  RecordModel
}

// NewModels wires the live models. db may be nil for commands that never
// touch Postgres.
func NewModels(client *dfam.Client, store *cache.Store, db *sql.DB, logger *zap.SugaredLogger) Models {
	m := Models{
		Families: NewFamilyModel(client, store, logger),
	}
	if db != nil {
		m.Records = NewRecordModel(db)
	}
	return m
}

func NewMockModels() Models {
	return Models{
		Families: NewMockFamilyModel(),
		Records:  NewMockRecordModel(),
	}
}
