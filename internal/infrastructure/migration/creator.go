package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
	"unicode"
)

var fileTemplate = template.Must(template.New("migration").Parse(`-- {{.Name}}{{if .Down}} (rollback){{end}}
-- Created: {{.Created}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`))

// MigrationFile is a newly created up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair into dir. Versions are
// timestamps so files sort in creation order.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	slug := slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now().UTC()
	version := now.Format("20060102150405")
	base := filepath.Join(dir, version+"_"+slug)
	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		UpPath:      base + ".up.sql",
		DownPath:    base + ".down.sql",
	}

	if err := writeMigration(mf.UpPath, mf, false, now); err != nil {
		return nil, err
	}
	if err := writeMigration(mf.DownPath, mf, true, now); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

func writeMigration(path string, mf *MigrationFile, down bool, created time.Time) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return fileTemplate.Execute(f, map[string]any{
		"Name":        mf.Name,
		"Description": mf.Description,
		"Created":     created.Format(time.RFC3339),
		"Down":        down,
	})
}

// slugify lower-cases name and joins its words with underscores
func slugify(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return -1
			}
			return unicode.ToLower(r)
		}, w)
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, "_")
}

// ListMigrations returns the base names of the migrations in dir, sorted
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries)/2)
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok && !e.IsDir() {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}
