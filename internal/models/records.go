package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"secondarymetabolites.org/dfam-cds/internal/data"
)

type RecordModel interface {
	Ping() error
	StartRun(source string) (*data.ImportRun, error)
	FinishRun(run *data.ImportRun) error
	Add(run *data.ImportRun, rec *data.FamilyRecord) error
	Counts() (*data.RecordCounts, error)
}

type LiveRecordModel struct {
	DB *sql.DB
}

func NewRecordModel(db *sql.DB) *LiveRecordModel {
	return &LiveRecordModel{DB: db}
}

func (m *LiveRecordModel) Ping() error {
	return m.DB.Ping()
}

func (m *LiveRecordModel) StartRun(source string) (*data.ImportRun, error) {
	run := &data.ImportRun{
		Id:      uuid.New(),
		Source:  source,
		Started: time.Now(),
	}

	statement := `INSERT INTO dfam.import_runs (run_id, source, started) VALUES ($1, $2, $3)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := m.DB.ExecContext(ctx, statement, run.Id, run.Source, run.Started)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (m *LiveRecordModel) FinishRun(run *data.ImportRun) error {
	run.Finished = time.Now()
	statement := `UPDATE dfam.import_runs SET finished = $1, families = $2 WHERE run_id = $3`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := m.DB.ExecContext(ctx, statement, run.Finished, run.Families, run.Id)
	return err
}

// Add upserts a family and replaces all of its coding sequences.
func (m *LiveRecordModel) Add(run *data.ImportRun, rec *data.FamilyRecord) error {
	ctx := context.Background()
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = upsertFamily(run, rec, ctx, tx)
	if err != nil {
		tx.Rollback()
		return err
	}

	err = replaceCodingSeqs(rec, ctx, tx)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	run.Families++
	return nil
}

func upsertFamily(run *data.ImportRun, rec *data.FamilyRecord, ctx context.Context, tx *sql.Tx) error {
	statement := `INSERT INTO dfam.families (
		accession, name, title, description, length, classification,
		repeat_type_name, repeat_subtype_name, clades, run_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (accession) DO UPDATE SET
		name = EXCLUDED.name, title = EXCLUDED.title, description = EXCLUDED.description,
		length = EXCLUDED.length, classification = EXCLUDED.classification,
		repeat_type_name = EXCLUDED.repeat_type_name, repeat_subtype_name = EXCLUDED.repeat_subtype_name,
		clades = EXCLUDED.clades, run_id = EXCLUDED.run_id`

	clades := make([]string, 0, len(rec.Clades))
	for _, clade := range rec.Clades {
		clades = append(clades, string(clade))
	}

	args := []interface{}{
		rec.Accession,
		rec.Name,
		rec.Title,
		rec.Description,
		rec.Length,
		rec.Classification,
		rec.RepeatTypeName,
		nullable(rec.RepeatSubtypeName),
		pq.Array(clades),
		run.Id,
	}

	_, err := tx.ExecContext(ctx, statement, args...)
	return err
}

func replaceCodingSeqs(rec *data.FamilyRecord, ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM dfam.coding_seqs WHERE accession = $1`, rec.Accession)
	if err != nil {
		return err
	}

	statement := `INSERT INTO dfam.coding_seqs (
		accession, position, product, translation, protein_type, start_pos, end_pos,
		exon_count, exon_starts, exon_ends, external_reference, reverse, stop_codons,
		frameshifts, gaps, percent_identity, left_unaligned, right_unaligned,
		align_data, classification_id, description
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	for i, cs := range rec.CodingSeqs {
		product, ok := cs.Product.Get()
		if !ok {
			return data.NewMissingFieldError(rec.Accession, i, "product", cs.Product)
		}
		translation, ok := cs.Translation.Get()
		if !ok {
			return data.NewMissingFieldError(rec.Accession, i, "translation", cs.Translation)
		}

		args := []interface{}{
			rec.Accession,
			i,
			product,
			translation,
			nullable(cs.ProteinType),
			nullable(cs.Start),
			nullable(cs.End),
			nullable(cs.ExonCount),
			pq.Array(cs.ExonStarts.Value),
			pq.Array(cs.ExonEnds.Value),
			nullable(cs.ExternalReference),
			nullable(cs.Reverse),
			nullable(cs.StopCodons),
			nullable(cs.Frameshifts),
			nullable(cs.Gaps),
			nullable(cs.PercentIdentity),
			nullable(cs.LeftUnaligned),
			nullable(cs.RightUnaligned),
			nullable(cs.AlignData),
			nullable(cs.ClassificationId),
			nullable(cs.Description),
		}

		if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
			return err
		}
	}
	return nil
}

// nullable maps absent and null values to SQL NULL.
func nullable[T any](o data.Optional[T]) interface{} {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return v
}

func (m *LiveRecordModel) Counts() (*data.RecordCounts, error) {
	var counts data.RecordCounts

	err := m.DB.QueryRow(`SELECT COUNT(accession) FROM dfam.families`).Scan(&counts.Families)
	if err != nil {
		return nil, err
	}

	err = m.DB.QueryRow(`SELECT COUNT(coding_seq_id) FROM dfam.coding_seqs`).Scan(&counts.CodingSeqs)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

type MockRecordModel struct {
	Runs     []*data.ImportRun
	Families map[string]*data.FamilyRecord
}

func NewMockRecordModel() *MockRecordModel {
	return &MockRecordModel{Families: map[string]*data.FamilyRecord{}}
}

func (m *MockRecordModel) Ping() error {
	return nil
}

func (m *MockRecordModel) StartRun(source string) (*data.ImportRun, error) {
	run := &data.ImportRun{Id: uuid.New(), Source: source, Started: time.Now()}
	m.Runs = append(m.Runs, run)
	return run, nil
}

func (m *MockRecordModel) FinishRun(run *data.ImportRun) error {
	run.Finished = time.Now()
	return nil
}

func (m *MockRecordModel) Add(run *data.ImportRun, rec *data.FamilyRecord) error {
	m.Families[rec.Accession] = rec
	run.Families++
	return nil
}

func (m *MockRecordModel) Counts() (*data.RecordCounts, error) {
	counts := data.RecordCounts{Families: len(m.Families)}
	for _, rec := range m.Families {
		counts.CodingSeqs += len(rec.CodingSeqs)
	}
	return &counts, nil
}
