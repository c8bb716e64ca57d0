package data

// FamilySet maps accessions to loaded records and keeps the order in which
// accessions were first added.
type FamilySet struct {
	order   []string
	records map[string]*FamilyRecord
}

func NewFamilySet() *FamilySet {
	return &FamilySet{records: map[string]*FamilyRecord{}}
}

// Put stores rec under acc. Re-adding an accession replaces the record but
// keeps its original position.
func (s *FamilySet) Put(acc string, rec *FamilyRecord) {
	if _, ok := s.records[acc]; !ok {
		s.order = append(s.order, acc)
	}
	s.records[acc] = rec
}

func (s *FamilySet) Get(acc string) (*FamilyRecord, bool) {
	rec, ok := s.records[acc]
	return rec, ok
}

func (s *FamilySet) Len() int {
	return len(s.order)
}

func (s *FamilySet) Accessions() []string {
	accs := make([]string, len(s.order))
	copy(accs, s.order)
	return accs
}

// Each calls fn for every record in insertion order, stopping at the first error.
func (s *FamilySet) Each(fn func(acc string, rec *FamilyRecord) error) error {
	for _, acc := range s.order {
		if err := fn(acc, s.records[acc]); err != nil {
			return err
		}
	}
	return nil
}

// CodingSeqCount is the total number of coding sequences over all records.
func (s *FamilySet) CodingSeqCount() int {
	total := 0
	for _, rec := range s.records {
		total += len(rec.CodingSeqs)
	}
	return total
}
