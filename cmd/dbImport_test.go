package cmd

import (
	"testing"

	"secondarymetabolites.org/dfam-cds/internal/models"
)

func TestImportCached(t *testing.T) {
	m := models.NewMockModels()

	if err := importCached(m, "dfam.cache"); err != nil {
		t.Fatal(err)
	}

	records := m.Records.(*models.MockRecordModel)
	if len(records.Runs) != 1 {
		t.Fatalf("Expected %d import run, got %d", 1, len(records.Runs))
	}

	run := records.Runs[0]
	if run.Source != "dfam.cache" {
		t.Errorf("Expected %s, got %s", "dfam.cache", run.Source)
	}
	if run.Families != 2 {
		t.Errorf("Expected %d, got %d", 2, run.Families)
	}
	if run.Finished.IsZero() {
		t.Error("Expected run to be finished")
	}

	counts, err := m.Records.Counts()
	if err != nil {
		t.Fatal(err)
	}
	if counts.Families != 2 || counts.CodingSeqs != 1 {
		t.Errorf("Expected 2 families and 1 coding sequence, got %+v", counts)
	}
}
