package differ

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// schemaExtensions are the file extensions PairDirs considers.
var schemaExtensions = []string{".yaml", ".yml", ".json"}

// PairFiles reads two single files into a pair named after the candidate's
// base name. A missing file becomes a nil side; both missing is an error.
func PairFiles(fsys afero.Fs, baselinePath, candidatePath string) ([]FilePair, error) {
	baseline, err := readOptional(fsys, baselinePath)
	if err != nil {
		return nil, err
	}
	candidate, err := readOptional(fsys, candidatePath)
	if err != nil {
		return nil, err
	}
	if baseline == nil && candidate == nil {
		return nil, fmt.Errorf("differ: neither %s nor %s exists", baselinePath, candidatePath)
	}
	return []FilePair{{Name: filepath.Base(candidatePath), Baseline: baseline, Candidate: candidate}}, nil
}

// PairDirs pairs the YAML and JSON files below two directories by relative
// path. Files present on one side only become new or deleted pairs. A missing
// directory is treated as empty.
func PairDirs(fsys afero.Fs, baselineDir, candidateDir string) ([]FilePair, error) {
	baseline, err := listSchemaFiles(fsys, baselineDir)
	if err != nil {
		return nil, err
	}
	candidate, err := listSchemaFiles(fsys, candidateDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(baseline)+len(candidate))
	for name := range baseline {
		names = append(names, name)
	}
	for name := range candidate {
		if _, ok := baseline[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	pairs := make([]FilePair, 0, len(names))
	for _, name := range names {
		pair := FilePair{Name: name}
		if path, ok := baseline[name]; ok {
			if pair.Baseline, err = afero.ReadFile(fsys, path); err != nil {
				return nil, fmt.Errorf("differ: reading %s: %w", path, err)
			}
		}
		if path, ok := candidate[name]; ok {
			if pair.Candidate, err = afero.ReadFile(fsys, path); err != nil {
				return nil, fmt.Errorf("differ: reading %s: %w", path, err)
			}
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// listSchemaFiles maps slash-separated relative names to full paths.
func listSchemaFiles(fsys afero.Fs, dir string) (map[string]string, error) {
	files := make(map[string]string)
	exists, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("differ: checking %s: %w", dir, err)
	}
	if !exists {
		return files, nil
	}
	err = afero.Walk(fsys, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !slices.Contains(schemaExtensions, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("differ: listing %s: %w", dir, err)
	}
	return files, nil
}

// readOptional returns nil content for a file that does not exist.
func readOptional(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("differ: reading %s: %w", path, err)
	}
	return data, nil
}
