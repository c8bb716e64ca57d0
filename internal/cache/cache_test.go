package cache

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"secondarymetabolites.org/dfam-cds/internal/data"
)

func newTestStore() *Store {
	return NewWithFs(afero.NewMemMapFs(), "dfam.cache")
}

func TestPath(t *testing.T) {
	store := newTestStore()
	expected := "dfam.cache/DF0000001.json"
	got, err := store.Path("DF0000001")
	if err != nil {
		t.Fatal(err)
	}
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestInvalidAccession(t *testing.T) {
	accessions := []string{"", ".", "..", "../../etc/evil", "sub/DF0000001", `..\evil`, "/etc/evil"}

	for _, acc := range accessions {
		t.Run(acc, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			store := NewWithFs(fs, "/work/dfam.cache")

			if _, err := store.Path(acc); !errors.Is(err, data.ErrInvalidAccession) {
				t.Errorf("Path: expected %v, got %v", data.ErrInvalidAccession, err)
			}
			if _, err := store.Has(acc); !errors.Is(err, data.ErrInvalidAccession) {
				t.Errorf("Has: expected %v, got %v", data.ErrInvalidAccession, err)
			}
			if _, err := store.Read(acc); !errors.Is(err, data.ErrInvalidAccession) {
				t.Errorf("Read: expected %v, got %v", data.ErrInvalidAccession, err)
			}
			if err := store.Write(acc, []byte("{}")); !errors.Is(err, data.ErrInvalidAccession) {
				t.Errorf("Write: expected %v, got %v", data.ErrInvalidAccession, err)
			}

			exists, err := afero.Exists(fs, "/etc/evil.json")
			if err != nil {
				t.Fatal(err)
			}
			if exists {
				t.Error("Expected nothing written outside the cache directory")
			}
		})
	}
}

func TestReadMissing(t *testing.T) {
	store := newTestStore()

	has, err := store.Has("DF0000001")
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Error("Expected empty cache not to have DF0000001")
	}

	_, err = store.Read("DF0000001")
	if !errors.Is(err, data.ErrRecordNotFound) {
		t.Errorf("Expected %v, got %v", data.ErrRecordNotFound, err)
	}
}

func TestWriteRead(t *testing.T) {
	store := newTestStore()
	raw := []byte(`{"accession": "DF0000001",  "name": "MIR"}`)

	if err := store.Write("DF0000001", raw); err != nil {
		t.Fatal(err)
	}

	has, err := store.Has("DF0000001")
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Error("Expected DF0000001 to be cached")
	}

	got, err := store.Read("DF0000001")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(raw) {
		t.Errorf("Expected %s, got %s", raw, got)
	}
}

func TestList(t *testing.T) {
	store := newTestStore()

	accessions, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(accessions) != 0 {
		t.Errorf("Expected empty list, got %v", accessions)
	}

	for _, acc := range []string{"DF0000002", "DF0000001"} {
		if err := store.Write(acc, []byte("{}")); err != nil {
			t.Fatal(err)
		}
	}
	if err := afero.WriteFile(store.fs, "dfam.cache/notes.txt", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	accessions, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"DF0000001", "DF0000002"}
	if !cmp.Equal(accessions, expected) {
		t.Errorf("Unexpected listing.\n%s", cmp.Diff(expected, accessions))
	}
}
