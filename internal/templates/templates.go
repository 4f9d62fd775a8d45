// Package templates holds the page and fragment templates. Every file in
// src/ is parsed together with src/layouts and src/include, so a page can
// use any shared section.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/oops"

	"github.com/Masterminds/sprig"
)

//go:embed src
var embeddedTemplateFs embed.FS

// Set is a parsed collection of templates keyed by file name
type Set struct {
	templates map[string]*template.Template
	// liveDir, when set, re-parses templates from disk on every render.
	liveDir string
}

func getTemplatesFromFS(templateFS fs.FS) (map[string]*template.Template, map[string]error) {
	templates := make(map[string]*template.Template)
	errs := make(map[string]error)

	files, err := fs.ReadDir(templateFS, "src")
	if err != nil {
		errs["src"] = err
		return templates, errs
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".html") {
			continue
		}
		t := template.New(f.Name())
		t = t.Funcs(sprig.FuncMap())
		t = t.Funcs(PortfolioTemplateFuncs)
		t, err := t.ParseFS(templateFS,
			"src/layouts/*",
			"src/include/*",
			"src/"+f.Name(),
		)
		if err != nil {
			errs[f.Name()] = err
			continue
		}
		templates[f.Name()] = t
	}

	return templates, errs
}

type errEntry struct {
	name string
	err  error
}

func collectErrors(errs map[string]error) error {
	if len(errs) == 0 {
		return nil
	}
	var errsList []errEntry
	for filename, err := range errs {
		errsList = append(errsList, errEntry{filename, err})
	}
	sort.Slice(errsList, func(i, j int) bool {
		return strings.Compare(errsList[i].name, errsList[j].name) < 0
	})
	for _, e := range errsList {
		logging.Error().Str("filename", e.name).Err(e.err).Msg("Failed to parse template")
	}
	return oops.New(errsList[0].err, "failed to parse %d template(s), first was %s", len(errsList), errsList[0].name)
}

// New parses the embedded templates
func New() (*Set, error) {
	templates, errs := getTemplatesFromFS(embeddedTemplateFs)
	if err := collectErrors(errs); err != nil {
		return nil, err
	}
	return &Set{templates: templates}, nil
}

// NewLive parses templates from dir (which must contain src/) and re-reads
// them on every render, for editing templates without a restart.
func NewLive(dir string) (*Set, error) {
	templates, errs := getTemplatesFromFS(os.DirFS(dir))
	if err := collectErrors(errs); err != nil {
		return nil, err
	}
	return &Set{templates: templates, liveDir: dir}, nil
}

// Get returns the named template
func (s *Set) Get(name string) (*template.Template, error) {
	templates := s.templates
	if s.liveDir != "" {
		var errs map[string]error
		templates, errs = getTemplatesFromFS(os.DirFS(s.liveDir))
		if errs[name] != nil {
			return nil, oops.New(errs[name], "error in template %s", name)
		}
	}

	t, ok := templates[name]
	if !ok {
		return nil, oops.New(nil, "template not found: %s", name)
	}
	return t, nil
}

// Render executes the named template into w. Output is buffered so a
// failing template never leaves a half-written response.
func (s *Set) Render(w io.Writer, name string, data interface{}) error {
	t, err := s.Get(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return oops.New(err, "failed to execute template %s", name)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Names lists the parsed template names in sorted order
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
