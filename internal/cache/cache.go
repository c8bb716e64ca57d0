/*
Copyright © 2026 Technical University of Denmark - written by Kai Blin <kblin@biosustain.dtu.dk>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cache keeps one JSON file per Dfam family on disk.
//
// Entries are written once, after the first successful fetch, and are never
// expired or rewritten.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"secondarymetabolites.org/dfam-cds/internal/data"
)

const suffix = ".json"

type Store struct {
	fs  afero.Fs
	dir string
}

// New returns a store rooted at dir on the real filesystem.
func New(dir string) *Store {
	return NewWithFs(afero.NewOsFs(), dir)
}

func NewWithFs(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Path is where the entry for accession lives, whether it exists or not.
// Accessions that would resolve outside the cache directory are rejected
// with data.ErrInvalidAccession.
func (s *Store) Path(accession string) (string, error) {
	if accession == "" || accession == "." || accession == ".." ||
		strings.ContainsAny(accession, `/\`) || strings.ContainsRune(accession, filepath.Separator) {
		return "", fmt.Errorf("%q: %w", accession, data.ErrInvalidAccession)
	}

	path := filepath.Join(s.dir, accession+suffix)
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel != filepath.Base(path) {
		return "", fmt.Errorf("%q: %w", accession, data.ErrInvalidAccession)
	}
	return path, nil
}

func (s *Store) Has(accession string) (bool, error) {
	path, err := s.Path(accession)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, path)
}

// Read returns the raw bytes stored for accession, or data.ErrRecordNotFound.
func (s *Store) Read(accession string) ([]byte, error) {
	path, err := s.Path(accession)
	if err != nil {
		return nil, err
	}
	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", accession, data.ErrRecordNotFound)
		}
		return nil, err
	}
	return raw, nil
}

// Write stores raw verbatim, creating the cache directory if needed.
func (s *Store) Write(accession string, raw []byte) error {
	path, err := s.Path(accession)
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// List returns the sorted accessions of all cached entries. A missing cache
// directory is an empty cache.
func (s *Store) List() ([]string, error) {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []string{}, nil
	}

	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, err
	}

	accessions := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), suffix) {
			continue
		}
		accessions = append(accessions, strings.TrimSuffix(info.Name(), suffix))
	}
	sort.Strings(accessions)
	return accessions, nil
}
