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

var familyColumns = []string{"acc", "name", "length", "title", "repeat_type_name", "repeat_subtype_name"}

// Families writes one row per family of set to a table at path.
func Families(set *data.FamilySet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = WriteFamilies(f, set); err != nil {
		return err
	}
	return f.Close()
}

func WriteFamilies(w io.Writer, set *data.FamilySet) error {
	out := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(out, strings.Join(familyColumns, "\t")); err != nil {
		return err
	}

	err := set.Each(func(acc string, rec *data.FamilyRecord) error {
		row := []string{
			acc,
			rec.Name,
			strconv.Itoa(rec.Length),
			rec.Title,
			rec.RepeatTypeName,
			FormatValue(rec.RepeatSubtypeName),
		}
		_, err := fmt.Fprintln(out, strings.Join(row, "\t"))
		return err
	})
	if err != nil {
		return err
	}

	return out.Flush()
}
