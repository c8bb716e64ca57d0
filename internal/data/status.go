package data

import (
	"time"

	"github.com/google/uuid"
)

// CacheStatus splits the accessions of a search into those already cached
// and those a load would still have to fetch. Both keep search order.
type CacheStatus struct {
	Cached  []string `json:"cached"`
	Missing []string `json:"missing"`
}

type RecordCounts struct {
	Families   int `json:"families"`
	CodingSeqs int `json:"coding_seqs"`
}

type ImportRun struct {
	Id       uuid.UUID
	Source   string
	Started  time.Time
	Finished time.Time
	Families int
}
