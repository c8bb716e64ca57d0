package extract

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"secondarymetabolites.org/dfam-cds/internal/cache"
	"secondarymetabolites.org/dfam-cds/internal/data"
	"secondarymetabolites.org/dfam-cds/internal/dfam"
	"secondarymetabolites.org/dfam-cds/internal/models"
)

type fastaRecord struct {
	Header   string
	Sequence string
	Lines    []string
}

func parseFasta(t *testing.T, r io.Reader) []fastaRecord {
	t.Helper()
	scanner := bufio.NewScanner(r)
	var records []fastaRecord
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			records = append(records, fastaRecord{Header: line[1:]})
			continue
		}
		if len(records) == 0 {
			t.Fatalf("sequence line %q before first header", line)
		}
		current := &records[len(records)-1]
		current.Sequence += line
		current.Lines = append(current.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	return records
}

func fullCodingSeq(product, translation string) data.CodingSequence {
	return data.CodingSequence{
		Product:           data.Some(product),
		Translation:       data.Some(translation),
		ProteinType:       data.Some("LINE"),
		Start:             data.Some(10),
		End:               data.Some(1200),
		ExonCount:         data.Some(2),
		ExonStarts:        data.Some([]int{10, 700}),
		ExonEnds:          data.Some([]int{500, 1200}),
		ExternalReference: data.Null[string](),
		Reverse:           data.Some(false),
		StopCodons:        data.Some(0),
		Frameshifts:       data.Some(1),
		Gaps:              data.Some(2),
		PercentIdentity:   data.Some(87.25),
		LeftUnaligned:     data.Some(0),
		RightUnaligned:    data.Some(3),
		AlignData:         data.Some(""),
		ClassificationId:  data.Some(12),
		Description:       data.Some("ORF2 reverse transcriptase"),
	}
}

func TestWrap(t *testing.T) {
	for _, length := range []int{0, 1, 59, 60, 61, 120, 121, 1000} {
		seq := strings.Repeat("MKVLA", length/5+1)[:length]
		wrapped := Wrap(seq, 60)

		var lines []string
		if wrapped != "" {
			lines = strings.Split(wrapped, "\n")
		}

		expectedLines := (length + 59) / 60
		if len(lines) != expectedLines {
			t.Errorf("Wrap(len %d): expected %d lines, got %d", length, expectedLines, len(lines))
		}
		for _, line := range lines {
			if len(line) > 60 {
				t.Errorf("Wrap(len %d): line of %d characters", length, len(line))
			}
		}
		if joined := strings.Join(lines, ""); joined != seq {
			t.Errorf("Wrap(len %d): lines do not reconstruct the input", length)
		}
	}
}

func TestWrapWidth(t *testing.T) {
	tests := []struct {
		seq      string
		width    int
		expected string
	}{
		{"ABCDEFG", 3, "ABC\nDEF\nG"},
		{"ABCDEF", 3, "ABC\nDEF"},
		{"AB", 0, "AB"},
		{"αβγδε", 2, "αβ\nγδ\nε"},
		{"", 3, ""},
	}

	for _, tt := range tests {
		if got := Wrap(tt.seq, tt.width); got != tt.expected {
			t.Errorf("Wrap(%q, %d): expected %q, got %q", tt.seq, tt.width, tt.expected, got)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		field    data.Field
		expected string
	}{
		{data.Some("abc"), "abc"},
		{data.Some(42), "42"},
		{data.Some(87.5), "87.5"},
		{data.Some(100.0), "100"},
		{data.Some(true), "true"},
		{data.Some([]int{1, 20, 300}), "1,20,300"},
		{data.Some([]int{}), ""},
		{data.Null[int](), Missing},
		{data.Optional[string]{}, Missing},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.field); got != tt.expected {
			t.Errorf("FormatValue(%+v): expected %q, got %q", tt.field, tt.expected, got)
		}
	}
}

func TestTableHeader(t *testing.T) {
	header := TableHeader()
	if len(header) != 19 {
		t.Errorf("Expected %d columns, got %d", 19, len(header))
	}
	if header[0] != "name" || header[1] != "acc" || header[18] != "description" {
		t.Errorf("Unexpected header %v", header)
	}
}

func TestWriteCodingSeqs(t *testing.T) {
	set := data.NewFamilySet()
	set.Put("DF0000002", &data.FamilyRecord{Accession: "DF0000002", CodingSeqs: []data.CodingSequence{
		fullCodingSeq("L2_ORF1", strings.Repeat("M", 130)),
		fullCodingSeq("L2_ORF2", "MKV"),
	}})
	set.Put("DF0000001", &data.FamilyRecord{Accession: "DF0000001"})
	set.Put("DF0000003", &data.FamilyRecord{Accession: "DF0000003", CodingSeqs: []data.CodingSequence{}})

	fa := new(bytes.Buffer)
	tsv := new(bytes.Buffer)
	rows, err := WriteCodingSeqs(fa, tsv, set, Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if rows != 2 {
		t.Errorf("Expected %d rows, got %d", 2, rows)
	}

	lines := strings.Split(strings.TrimSuffix(tsv.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected %d lines, got %d", 3, len(lines))
	}

	expectedRow := []string{
		"L2_ORF2", "DF0000002", "LINE", "10", "1200", "2", "10,700", "500,1200",
		".", "false", "0", "1", "2", "87.25", "0", "3", "", "12", "ORF2 reverse transcriptase",
	}
	if got := strings.Split(lines[2], "\t"); !cmp.Equal(got, expectedRow) {
		t.Errorf("Unexpected row.\n%s", cmp.Diff(expectedRow, got))
	}

	records := parseFasta(t, fa)
	if len(records) != 2 {
		t.Fatalf("Expected %d FASTA entries, got %d", 2, len(records))
	}
	if records[0].Header != "L2_ORF1" || len(records[0].Lines) != 3 || records[0].Sequence != strings.Repeat("M", 130) {
		t.Errorf("Unexpected first entry %+v", records[0])
	}
}

func TestWriteCodingSeqsEmpty(t *testing.T) {
	set := data.NewFamilySet()
	set.Put("DF0000001", &data.FamilyRecord{Accession: "DF0000001"})

	fa := new(bytes.Buffer)
	tsv := new(bytes.Buffer)
	rows, err := WriteCodingSeqs(fa, tsv, set, Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if rows != 0 {
		t.Errorf("Expected %d rows, got %d", 0, rows)
	}
	if tsv.String() != strings.Join(TableHeader(), "\t")+"\n" {
		t.Errorf("Expected header only, got %q", tsv.String())
	}
	if fa.Len() != 0 {
		t.Errorf("Expected empty FASTA, got %q", fa.String())
	}
}

func TestWriteCodingSeqsMissingFields(t *testing.T) {
	noGaps := fullCodingSeq("ORF1", "MKV")
	noGaps.Gaps = data.Optional[int]{}

	noTranslation := fullCodingSeq("ORF1", "")
	noTranslation.Translation = data.Optional[string]{}

	nullProduct := fullCodingSeq("", "MKV")
	nullProduct.Product = data.Null[string]()

	tests := []struct {
		Name     string
		Cds      data.CodingSequence
		Strict   bool
		Field    string
		Null     bool
		Expected string
	}{
		{Name: "strict absent annotation", Cds: noGaps, Strict: true, Field: "gaps"},
		{Name: "lenient absent annotation", Cds: noGaps, Strict: false, Expected: Missing},
		{Name: "absent translation", Cds: noTranslation, Strict: false, Field: "translation"},
		{Name: "null product", Cds: nullProduct, Strict: false, Field: "product", Null: true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			set := data.NewFamilySet()
			set.Put("DF0000001", &data.FamilyRecord{Accession: "DF0000001", CodingSeqs: []data.CodingSequence{tt.Cds}})

			tsv := new(bytes.Buffer)
			_, err := WriteCodingSeqs(io.Discard, tsv, set, Options{Strict: tt.Strict})

			if tt.Field != "" {
				var mfe *data.MissingFieldError
				if !errors.As(err, &mfe) {
					t.Fatalf("Expected MissingFieldError, got %v", err)
				}
				if mfe.Field != tt.Field || mfe.Null != tt.Null || mfe.Accession != "DF0000001" || mfe.Index != 0 {
					t.Errorf("Unexpected error %+v", mfe)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSuffix(tsv.String(), "\n"), "\n")
			gaps := strings.Split(lines[1], "\t")[12]
			if gaps != tt.Expected {
				t.Errorf("Expected %q, got %q", tt.Expected, gaps)
			}
		})
	}
}

func TestWriteFamilies(t *testing.T) {
	set := data.NewFamilySet()
	set.Put("DF0000001", &data.FamilyRecord{Accession: "DF0000001", Name: "MIR", Length: 262, Title: "MIR", RepeatTypeName: "SINE"})
	set.Put("DF0000002", &data.FamilyRecord{Accession: "DF0000002", Name: "L2", Length: 3387, Title: "L2", RepeatTypeName: "LINE", RepeatSubtypeName: data.Some("L2")})

	out := new(bytes.Buffer)
	if err := WriteFamilies(out, set); err != nil {
		t.Fatal(err)
	}

	expected := "acc\tname\tlength\ttitle\trepeat_type_name\trepeat_subtype_name\n" +
		"DF0000001\tMIR\t262\tMIR\tSINE\t.\n" +
		"DF0000002\tL2\t3387\tL2\tLINE\tL2\n"
	if out.String() != expected {
		t.Errorf("Unexpected table.\n%s", cmp.Diff(expected, out.String()))
	}
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	store := cache.New(filepath.Join(dir, "dfam.cache"))

	withCds := `{"accession": "DF0000002", "name": "L2", "coding_seqs": [
		{"product": "L2_ORF1", "translation": "MKVLSLNVNGLRSPRKRRLLFEWLKKQ", "protein_type": "LINE", "start": 1, "end": 81,
		 "exon_count": 1, "exon_starts": [1], "exon_ends": [81], "external_reference": null, "reverse": false,
		 "stop_codons": 0, "frameshifts": 0, "gaps": 0, "percent_identity": 100, "left_unaligned": 0,
		 "right_unaligned": 0, "align_data": "", "classification_id": 7, "description": ""},
		{"product": "L2_ORF2", "translation": "MSLNIATWNVRGLNSP", "protein_type": "LINE", "start": 100, "end": 148,
		 "exon_count": 1, "exon_starts": [100], "exon_ends": [148], "external_reference": null, "reverse": true,
		 "stop_codons": 1, "frameshifts": 0, "gaps": 0, "percent_identity": 91.3, "left_unaligned": 2,
		 "right_unaligned": 0, "align_data": "", "classification_id": 7, "description": ""}]}`
	withoutCds := `{"accession": "DF0000001", "name": "MIR", "coding_seqs": []}`

	if err := store.Write("DF0000002", []byte(withCds)); err != nil {
		t.Fatal(err)
	}
	if err := store.Write("DF0000001", []byte(withoutCds)); err != nil {
		t.Fatal(err)
	}

	// Everything is cached, so the unroutable API must never be contacted.
	client := dfam.New("http://127.0.0.1:1", 0, 0)
	families := models.NewFamilyModel(client, store, zap.NewNop().Sugar())

	set, err := families.Load(context.Background(), []data.FamilySummary{{Accession: "DF0000002"}, {Accession: "DF0000001"}})
	if err != nil {
		t.Fatal(err)
	}

	faPath := filepath.Join(dir, "coding_seqs.faa")
	tsvPath := filepath.Join(dir, "coding_seqs.tsv")
	rows, err := CodingSeqs(set, faPath, tsvPath, Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if rows != 2 {
		t.Errorf("Expected %d rows, got %d", 2, rows)
	}

	tsv, err := os.ReadFile(tsvPath)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSuffix(string(tsv), "\n"), "\n"); len(lines) != 3 {
		t.Errorf("Expected %d lines, got %d", 3, len(lines))
	}

	fa, err := os.Open(faPath)
	if err != nil {
		t.Fatal(err)
	}
	defer fa.Close()
	records := parseFasta(t, fa)
	if len(records) != 2 {
		t.Errorf("Expected %d FASTA entries, got %d", 2, len(records))
	}

	familiesPath := filepath.Join(dir, "families.tsv")
	if err := Families(set, familiesPath); err != nil {
		t.Fatal(err)
	}
	table, err := os.ReadFile(familiesPath)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSuffix(string(table), "\n"), "\n"); len(lines) != 3 {
		t.Errorf("Expected %d lines, got %d", 3, len(lines))
	}
}
