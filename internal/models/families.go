package models

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"secondarymetabolites.org/dfam-cds/internal/cache"
	"secondarymetabolites.org/dfam-cds/internal/data"
	"secondarymetabolites.org/dfam-cds/internal/dfam"
	"secondarymetabolites.org/dfam-cds/internal/utils"
)

type FamilyModel interface {
	Search(ctx context.Context, clade string, relatives data.Relatives) ([]data.FamilySummary, error)
	Load(ctx context.Context, summaries []data.FamilySummary) (*data.FamilySet, error)
	Status(summaries []data.FamilySummary) (*data.CacheStatus, error)
	LoadCached() (*data.FamilySet, error)
	Raw(accession string) ([]byte, error)
}

type LiveFamilyModel struct {
	Client *dfam.Client
	Cache  *cache.Store
	logger *zap.SugaredLogger
}

func NewFamilyModel(client *dfam.Client, store *cache.Store, logger *zap.SugaredLogger) *LiveFamilyModel {
	return &LiveFamilyModel{Client: client, Cache: store, logger: logger}
}

func (m *LiveFamilyModel) Search(ctx context.Context, clade string, relatives data.Relatives) ([]data.FamilySummary, error) {
	result, err := m.Client.Search(ctx, clade, relatives)
	if err != nil {
		return nil, err
	}

	m.logger.Infof("found %d families", result.TotalCount)
	if result.Truncated() {
		m.logger.Warnw("search results truncated by the server",
			"total_count", result.TotalCount,
			"returned", len(result.Results),
			"limit", m.Client.Limit,
		)
	}
	return result.Results, nil
}

// Load returns the full record for every summary, reading the cache first
// and fetching and caching whatever is missing. The first failure aborts the
// whole load.
func (m *LiveFamilyModel) Load(ctx context.Context, summaries []data.FamilySummary) (*data.FamilySet, error) {
	set := data.NewFamilySet()
	for _, summary := range summaries {
		rec, err := m.loadOne(ctx, summary.Accession)
		if err != nil {
			return nil, err
		}
		set.Put(summary.Accession, rec)
	}
	return set, nil
}

func (m *LiveFamilyModel) loadOne(ctx context.Context, accession string) (*data.FamilyRecord, error) {
	path, err := m.Cache.Path(accession)
	if err != nil {
		return nil, err
	}

	cached, err := m.Cache.Has(accession)
	if err != nil {
		return nil, err
	}

	if cached {
		m.logger.Infof("found %s", path)
		raw, err := m.Cache.Read(accession)
		if err != nil {
			return nil, err
		}
		return decodeRecord(path, raw)
	}

	m.logger.Infof("query Dfam API: %s", m.Client.FamilyURL(accession))
	raw, err := m.Client.Fetch(ctx, accession)
	if err != nil {
		return nil, err
	}

	rec, err := decodeRecord(accession, raw)
	if err != nil {
		return nil, err
	}

	if err = m.Cache.Write(accession, raw); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeRecord(source string, raw []byte) (*data.FamilyRecord, error) {
	var rec data.FamilyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("parsing family record %s: %w", source, err)
	}
	return &rec, nil
}

func (m *LiveFamilyModel) Status(summaries []data.FamilySummary) (*data.CacheStatus, error) {
	cachedAccessions, err := m.Cache.List()
	if err != nil {
		return nil, err
	}
	return newCacheStatus(summaries, cachedAccessions), nil
}

func newCacheStatus(summaries []data.FamilySummary, cachedAccessions []string) *data.CacheStatus {
	wanted := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		wanted = append(wanted, summary.Accession)
	}
	wanted = utils.Unique(wanted)

	return &data.CacheStatus{
		Cached:  utils.Intersect(wanted, cachedAccessions),
		Missing: utils.Difference(wanted, cachedAccessions),
	}
}

// LoadCached decodes every record in the cache, without touching the network.
func (m *LiveFamilyModel) LoadCached() (*data.FamilySet, error) {
	accessions, err := m.Cache.List()
	if err != nil {
		return nil, err
	}

	set := data.NewFamilySet()
	for _, accession := range accessions {
		raw, err := m.Cache.Read(accession)
		if err != nil {
			return nil, err
		}
		path, err := m.Cache.Path(accession)
		if err != nil {
			return nil, err
		}
		rec, err := decodeRecord(path, raw)
		if err != nil {
			return nil, err
		}
		set.Put(accession, rec)
	}
	return set, nil
}

func (m *LiveFamilyModel) Raw(accession string) ([]byte, error) {
	return m.Cache.Read(accession)
}

type MockFamilyModel struct {
	Summaries []data.FamilySummary
	Records   map[string][]byte
	Fetches   int
}

func NewMockFamilyModel() *MockFamilyModel {
	records := map[string][]byte{
		"DF0000001": []byte(`{"accession": "DF0000001", "name": "MIR", "title": "Mammalian-wide interspersed repeat", "length": 262, "repeat_type_name": "SINE", "clades": [9606, 10090]}`),
		"DF0000002": []byte(`{"accession": "DF0000002", "name": "L2", "title": "Long interspersed element 2", "length": 3387, "repeat_type_name": "LINE", "repeat_subtype_name": "L2", "clades": [9606],
			"coding_seqs": [{"product": "L2_ORF2", "translation": "MKVLSLNVNGL", "protein_type": "LINE", "start": 1, "end": 33, "exon_count": 1, "exon_starts": [1], "exon_ends": [33], "external_reference": null, "reverse": false, "stop_codons": 0, "frameshifts": 0, "gaps": 0, "percent_identity": 98.5, "left_unaligned": 0, "right_unaligned": 0, "align_data": "", "classification_id": 42, "description": "reverse transcriptase"}]}`),
	}
	return &MockFamilyModel{
		Summaries: []data.FamilySummary{{Accession: "DF0000001"}, {Accession: "DF0000002"}},
		Records:   records,
	}
}

func (m *MockFamilyModel) Search(ctx context.Context, clade string, relatives data.Relatives) ([]data.FamilySummary, error) {
	return m.Summaries, nil
}

func (m *MockFamilyModel) Load(ctx context.Context, summaries []data.FamilySummary) (*data.FamilySet, error) {
	set := data.NewFamilySet()
	for _, summary := range summaries {
		raw, ok := m.Records[summary.Accession]
		if !ok {
			return nil, fmt.Errorf("%s: %w", summary.Accession, data.ErrRecordNotFound)
		}
		m.Fetches++
		rec, err := decodeRecord(summary.Accession, raw)
		if err != nil {
			return nil, err
		}
		set.Put(summary.Accession, rec)
	}
	return set, nil
}

func (m *MockFamilyModel) Status(summaries []data.FamilySummary) (*data.CacheStatus, error) {
	cachedAccessions := make([]string, 0, len(m.Records))
	for accession := range m.Records {
		cachedAccessions = append(cachedAccessions, accession)
	}
	return newCacheStatus(summaries, cachedAccessions), nil
}

func (m *MockFamilyModel) LoadCached() (*data.FamilySet, error) {
	summaries := make([]data.FamilySummary, 0, len(m.Summaries))
	for _, summary := range m.Summaries {
		if _, ok := m.Records[summary.Accession]; ok {
			summaries = append(summaries, summary)
		}
	}
	return m.Load(context.Background(), summaries)
}

func (m *MockFamilyModel) Raw(accession string) ([]byte, error) {
	raw, ok := m.Records[accession]
	if !ok {
		return nil, fmt.Errorf("%s: %w", accession, data.ErrRecordNotFound)
	}
	return raw, nil
}
