// Package synthesizer turns rows of the data workbook into a generated
// Gherkin feature file, one scenario per row. The file is rewritten in
// full on every run, before the BDD runner discovers scenario sources.
package synthesizer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rs/zerolog/log"

	"github.com/ou2sema/Playwright-framework/internal/datastore"
)

// GenerationError reports a synthesis run that could not read its
// source sheet or write its output file.
type GenerationError struct {
	Sheet string
	Path  string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating scenarios from sheet %q to %s: %v", e.Sheet, e.Path, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

const featureTmpl = `# GENERATED FILE - DO NOT EDIT
# Synthesized from the {{.Sheet}} sheet of {{.Source}}; one scenario per row.
@generated @login
Feature: Data-driven login
  Exercises every login case defined in the data workbook.
{{range .Rows}}
  Scenario: {{index . "case_id"}}: login as "{{index . "username"}}"
    Given the login page is open
    When the user submits the credentials from case "{{index . "case_id"}}"
    Then the login outcome matches case "{{index . "case_id"}}"
{{end}}`

type templateRow map[string]string

// Generator synthesizes the login feature file from a loaded store.
type Generator struct {
	Store   *datastore.Store
	Sheet   string
	OutPath string

	tmpl *template.Template
}

// New creates a generator reading the named sheet and writing to
// outPath.
func New(store *datastore.Store, sheet, outPath string) *Generator {
	return &Generator{
		Store:   store,
		Sheet:   sheet,
		OutPath: outPath,
		tmpl:    template.Must(template.New("feature").Parse(featureTmpl)),
	}
}

// Generate renders one scenario block per source row and overwrites the
// output file with the result. Output is deterministic: unchanged
// source data produces byte-identical files. The write goes through a
// temp file and rename so the runner never discovers a half-written
// feature.
func (g *Generator) Generate() error {
	rows, err := g.Store.GetSheet(g.Sheet)
	if err != nil {
		return &GenerationError{Sheet: g.Sheet, Path: g.OutPath, Err: err}
	}

	tmplRows := make([]templateRow, 0, len(rows))
	for _, row := range rows {
		tmplRows = append(tmplRows, templateRow{
			"case_id":         row.String("case_id"),
			"username":        row.String("username"),
			"password":        row.String("password"),
			"expected_result": row.String("expected_result"),
		})
	}

	var buf bytes.Buffer
	data := struct {
		Sheet  string
		Source string
		Rows   []templateRow
	}{g.Sheet, filepath.Base(g.Store.Path()), tmplRows}
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return &GenerationError{Sheet: g.Sheet, Path: g.OutPath, Err: err}
	}

	if err := writeAtomic(g.OutPath, buf.Bytes()); err != nil {
		return &GenerationError{Sheet: g.Sheet, Path: g.OutPath, Err: err}
	}

	log.Info().Str("sheet", g.Sheet).Str("path", g.OutPath).Int("scenarios", len(tmplRows)).Msg("synthesized feature file")
	return nil
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".feature-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
