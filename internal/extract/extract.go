// Package extract projects loaded Dfam families into flat output files: a
// protein FASTA of the embedded coding sequences with a matching annotation
// table, and a one-row-per-family summary table.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"secondarymetabolites.org/dfam-cds/internal/data"
)

const DefaultWidth = 60

// Missing is written in place of absent or null values.
const Missing = "."

type Options struct {
	// Width is the FASTA line width; zero means DefaultWidth.
	Width int
	// Strict turns an absent annotation field into a MissingFieldError
	// instead of writing Missing.
	Strict bool
}

// Wrap breaks s into lines of at most width characters. Lines are cut
// between runes, never inside one.
func Wrap(s string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n > 0 && n%width == 0 {
			b.WriteByte('\n')
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// TableHeader is the column list of the coding sequence table.
func TableHeader() []string {
	return append([]string{"name", "acc"}, data.AnnotationColumns...)
}

// CodingSeqs writes the coding sequences of set to a FASTA file at faPath
// and a tab-separated table at tsvPath, returning the number of rows.
func CodingSeqs(set *data.FamilySet, faPath, tsvPath string, opts Options) (int, error) {
	faFile, err := os.Create(faPath)
	if err != nil {
		return 0, err
	}
	defer faFile.Close()

	tsvFile, err := os.Create(tsvPath)
	if err != nil {
		return 0, err
	}
	defer tsvFile.Close()

	rows, err := WriteCodingSeqs(faFile, tsvFile, set, opts)
	if err != nil {
		return rows, err
	}

	if err = faFile.Close(); err != nil {
		return rows, err
	}
	return rows, tsvFile.Close()
}

// WriteCodingSeqs is CodingSeqs on arbitrary writers. The table header is
// always written, even when no family has coding sequences.
func WriteCodingSeqs(fa, tsv io.Writer, set *data.FamilySet, opts Options) (int, error) {
	faOut := bufio.NewWriter(fa)
	tsvOut := bufio.NewWriter(tsv)

	if _, err := fmt.Fprintln(tsvOut, strings.Join(TableHeader(), "\t")); err != nil {
		return 0, err
	}

	rows := 0
	err := set.Each(func(acc string, rec *data.FamilyRecord) error {
		for i := range rec.CodingSeqs {
			cs := &rec.CodingSeqs[i]

			// A null product or translation cannot be written either.
			name, ok := cs.Product.Get()
			if !ok {
				return data.NewMissingFieldError(acc, i, "product", cs.Product)
			}
			seq, ok := cs.Translation.Get()
			if !ok {
				return data.NewMissingFieldError(acc, i, "translation", cs.Translation)
			}

			row, err := tableRow(acc, i, name, cs, opts.Strict)
			if err != nil {
				return err
			}

			if _, err = fmt.Fprintf(faOut, ">%s\n%s\n", name, Wrap(seq, opts.Width)); err != nil {
				return err
			}
			if _, err = fmt.Fprintln(tsvOut, strings.Join(row, "\t")); err != nil {
				return err
			}
			rows++
		}
		return nil
	})
	if err != nil {
		faOut.Flush()
		tsvOut.Flush()
		return rows, err
	}

	if err = faOut.Flush(); err != nil {
		return rows, err
	}
	return rows, tsvOut.Flush()
}

func tableRow(acc string, index int, name string, cs *data.CodingSequence, strict bool) ([]string, error) {
	row := make([]string, 0, len(data.AnnotationColumns)+2)
	row = append(row, name, acc)

	for _, column := range data.AnnotationColumns {
		field, _ := cs.Annotation(column)
		if !field.IsPresent() && strict {
			return nil, &data.MissingFieldError{Accession: acc, Index: index, Field: column}
		}
		row = append(row, FormatValue(field))
	}
	return row, nil
}

// FormatValue renders a field for a table cell.
func FormatValue(field data.Field) string {
	if !field.IsPresent() || field.IsNull() {
		return Missing
	}

	switch v := field.Any().(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
