package site

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/models"
	"musyoka.dev/internal/oops"
	"musyoka.dev/internal/services"
	"musyoka.dev/internal/templates"
)

// Exporter writes the rendered site to a directory so it can be hosted
// without the server. Pages link to each other with static paths and the
// HTMX attributes are left out.
type Exporter struct {
	Site            *models.Site
	Templates       *templates.Set
	StaticDir       string
	OutputDir       string
	ScrollThreshold int
	Now             func() time.Time
}

// Result counts what an export produced
type Result struct {
	Pages       int
	StaticFiles int
}

// Export renders every page and copies the static assets
func (e *Exporter) Export() (*Result, error) {
	if e.Now == nil {
		e.Now = time.Now
	}
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return nil, oops.New(err, "failed to create output directory %s", e.OutputDir)
	}

	ps := services.NewProjectService(&models.ProjectList{Projects: e.Site.Projects})
	res := &Result{}

	if err := e.writePage("index.html", "index.html", e.pageData(ps, services.ViewState{Category: models.CategoryAll})); err != nil {
		return nil, err
	}
	res.Pages++

	for _, tab := range ps.Categories() {
		if tab.ID == models.CategoryAll {
			continue
		}
		path := filepath.Join("projects", string(tab.ID), "index.html")
		if err := e.writePage(path, "index.html", e.pageData(ps, services.ViewState{Category: tab.ID})); err != nil {
			return nil, err
		}
		res.Pages++
	}

	for _, p := range ps.GetAll() {
		p := p
		state := services.ViewState{Category: models.CategoryAll, Selected: &p}
		path := filepath.Join("projects", p.ID+".html")
		if err := e.writePage(path, "project.html", e.pageData(ps, state)); err != nil {
			return nil, err
		}
		res.Pages++
	}

	if err := e.writeJSON(filepath.Join("api", "projects.json"), ps.GetAll()); err != nil {
		return nil, err
	}

	if e.StaticDir != "" {
		n, err := copyDir(e.StaticDir, filepath.Join(e.OutputDir, "static"))
		if err != nil {
			return nil, err
		}
		res.StaticFiles = n
	}

	return res, nil
}

func (e *Exporter) pageData(ps *services.ProjectService, state services.ViewState) templates.PageData {
	return templates.PageData{
		Site:            e.Site,
		State:           state,
		Projects:        ps.Filter(state.Category),
		Categories:      ps.Categories(),
		ScrollThreshold: e.ScrollThreshold,
		Year:            e.Now().Year(),
		Static:          "/static",
		Export:          true,
	}
}

func (e *Exporter) writePage(rel, name string, data templates.PageData) error {
	var buf bytes.Buffer
	if err := e.Templates.Render(&buf, name, data); err != nil {
		return oops.New(err, "failed to render %s", rel)
	}
	return e.writeFile(rel, buf.Bytes())
}

func (e *Exporter) writeJSON(rel string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return oops.New(err, "failed to marshal %s", rel)
	}
	return e.writeFile(rel, data)
}

func (e *Exporter) writeFile(rel string, data []byte) error {
	path := filepath.Join(e.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return oops.New(err, "failed to create directory for %s", rel)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oops.New(err, "failed to write %s", rel)
	}
	logging.Debug().Str("file", rel).Int("bytes", len(data)).Msg("Exported")
	return nil
}

// copyDir copies every regular file under src into dst, overwriting
// files that already exist. A missing src copies nothing.
func copyDir(src, dst string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		logging.Warn().Str("dir", src).Msg("Static directory not found, skipping")
		return 0, nil
	}

	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, oops.New(err, "failed to copy static files from %s", src)
	}
	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
