package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/typings-labs/gentypings/internal/license"
	"github.com/typings-labs/gentypings/internal/session"
	"go.uber.org/zap"
)

// Locations inside the template store.
const (
	staticDir    = "templates/static"
	templateDir  = "templates/template"
	licensesRoot = "templates"
)

// Output file names.
const (
	TypingsFile  = "typings.json"
	ReadmeFile   = "README.md"
	TestStubFile = "test/test.ts"
	PackageFile  = "package.json"
	LicenseFile  = "LICENSE"
)

// MainEntry is the entry point written into typings.json.
const MainEntry = "index.d.ts"

// AmbientFlag is appended to the bundle command of ambient declarations.
const AmbientFlag = " --ambient"

// Result holds the outcome of materializing a repository.
type Result struct {
	OutputDir string
	Files     []string // slash-separated, relative to OutputDir, in write order
	Warnings  []string
	Failures  []*StepError
}

// StepError records a step that failed to write its file.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Materializer writes the files of a new repository.
type Materializer struct {
	// Force allows writing into a non-empty directory.
	Force bool
	// Now supplies the license year. Defaults to time.Now.
	Now    func() time.Time
	Logger *zap.Logger

	fsys fs.FS
}

// New returns a Materializer backed by the embedded template store.
func New(logger *zap.Logger) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{
		Now:    time.Now,
		Logger: logger,
		fsys:   templateFS,
	}
}

type step struct {
	name string
	run  func(cfg session.Config, outputDir string) ([]string, error)
}

// Materialize writes every file for cfg into outputDir. Steps run in a fixed
// order and a failing step does not stop the ones after it; all failures are
// listed in the result and joined into the returned error.
func (m *Materializer) Materialize(cfg session.Config, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if !m.Force {
		existing, err := os.ReadDir(outputDir)
		if err == nil && len(existing) > 0 {
			return nil, fmt.Errorf("output directory %s is not empty; remove existing files first or use --force", outputDir)
		}
	}

	result := &Result{OutputDir: outputDir}

	steps := []step{
		{"copy static files", m.copyStatic},
		{"render " + TypingsFile, m.writeTypings},
		{"render " + ReadmeFile, m.writeReadme},
		{"write " + TestStubFile, m.writeTestStub},
		{"render " + PackageFile, m.writePackage},
		{"render " + LicenseFile, m.writeLicense},
	}

	for _, s := range steps {
		files, err := s.run(cfg, outputDir)
		result.Files = append(result.Files, files...)
		if err != nil {
			m.Logger.Warn("scaffold step failed", zap.String("step", s.name), zap.Error(err))
			result.Failures = append(result.Failures, &StepError{Step: s.name, Err: err})
			continue
		}
		m.Logger.Debug("scaffold step done", zap.String("step", s.name), zap.Strings("files", files))
	}

	m.validate(result, TypingsFile, TypingsSchema)
	m.validate(result, PackageFile, PackageSchema)

	if len(result.Failures) > 0 {
		errs := make([]error, len(result.Failures))
		for i, f := range result.Failures {
			errs[i] = f
		}
		return result, errors.Join(errs...)
	}
	return result, nil
}

// validate checks a generated file against a schema and records violations as
// warnings. Files that were not written are skipped.
func (m *Materializer) validate(result *Result, file, schema string) {
	data, err := os.ReadFile(filepath.Join(result.OutputDir, filepath.FromSlash(file)))
	if err != nil {
		return
	}
	issues, err := ValidateJSON(schema, data)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not validate %s: %v", file, err))
		return
	}
	for _, issue := range issues {
		result.Warnings = append(result.Warnings, file+" "+issue.String())
	}
}

// copyStatic copies the passthrough files verbatim, keeping their layout.
func (m *Materializer) copyStatic(_ session.Config, outputDir string) ([]string, error) {
	var files []string
	var errs []error

	walkErr := fs.WalkDir(m.fsys, staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, staticDir+"/")
		data, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", rel, err))
			return nil
		}
		if err := writeFile(outputDir, rel, data); err != nil {
			errs = append(errs, err)
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("walking static templates: %w", walkErr))
	}
	return files, errors.Join(errs...)
}

func (m *Materializer) writeTypings(cfg session.Config, outputDir string) ([]string, error) {
	return m.renderTo(outputDir, path.Join(templateDir, "typings.json.tmpl"), TypingsFile, map[string]any{
		"name":     cfg.SourcePackageName,
		"main":     MainEntry,
		"homepage": session.GitHubBaseURL + cfg.SourceRepoRef,
	})
}

func (m *Materializer) writeReadme(cfg session.Config, outputDir string) ([]string, error) {
	return m.renderTo(outputDir, path.Join(templateDir, "README.md.tmpl"), ReadmeFile, map[string]any{
		"prettyPackageName": cfg.PrettyPackageName,
		"sourcePackageName": cfg.SourcePackageName,
		"sourcePackageUrl":  cfg.SourcePackageURL,
		"license":           string(cfg.LicenseID),
	})
}

func (m *Materializer) writeTestStub(cfg session.Config, outputDir string) ([]string, error) {
	if err := writeFile(outputDir, TestStubFile, []byte(TestStub(cfg))); err != nil {
		return nil, err
	}
	return []string{TestStubFile}, nil
}

func (m *Materializer) writePackage(cfg session.Config, outputDir string) ([]string, error) {
	ambient := ""
	if cfg.IsAmbientDeclaration {
		ambient = AmbientFlag
	}
	return m.renderTo(outputDir, path.Join(templateDir, "package.json.tmpl"), PackageFile, map[string]any{
		"ambient": ambient,
	})
}

func (m *Materializer) writeLicense(cfg session.Config, outputDir string) ([]string, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return m.renderTo(outputDir, path.Join(licensesRoot, license.TemplatePath(cfg.LicenseID)), LicenseFile, map[string]any{
		"year":   now().Year(),
		"author": strings.TrimSpace(cfg.LicenseAuthorName),
	})
}

// TestStub returns the contents of test/test.ts: the two test harness imports
// and, unless the declaration is ambient, an import of the source package.
func TestStub(cfg session.Config) string {
	sourceImport := ""
	if !cfg.IsAmbientDeclaration {
		sourceImport = fmt.Sprintf("import %s = require('%s');", importIdentifier(cfg.SourcePackageName), cfg.SourcePackageName)
	}
	return strings.Join([]string{
		"import test = require('blue-tape');",
		"import isCallable = require('is-callable');",
		"",
		sourceImport,
		"",
	}, "\n")
}

// importIdentifier turns a package name into a TypeScript identifier:
// "is-callable" becomes "isCallable".
func importIdentifier(pkg string) string {
	var b strings.Builder
	upper := false
	for _, r := range pkg {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" {
		return "source"
	}
	if unicode.IsDigit(rune(id[0])) {
		id = "_" + id
	}
	return id
}

// Render executes a template from the store with the given substitutions.
// Referencing a key that is not in data is an error.
func (m *Materializer) Render(name string, data map[string]any) ([]byte, error) {
	raw, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("template %s not found: %w", name, err)
	}

	tmpl, err := template.New(path.Base(name)).
		Option("missingkey=error").
		Funcs(template.FuncMap{"json": jsonString}).
		Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (m *Materializer) renderTo(outputDir, tmplName, outName string, data map[string]any) ([]string, error) {
	out, err := m.Render(tmplName, data)
	if err != nil {
		return nil, err
	}
	if err := writeFile(outputDir, outName, out); err != nil {
		return nil, err
	}
	return []string{outName}, nil
}

// jsonString quotes a value as a JSON string literal.
func jsonString(v any) (string, error) {
	b, err := json.Marshal(fmt.Sprint(v))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeFile(outputDir, rel string, data []byte) error {
	outPath := filepath.Join(outputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
