package templates

import (
	"strings"

	"musyoka.dev/internal/models"
	"musyoka.dev/internal/services"
)

// PageData is passed to every page and fragment template
type PageData struct {
	Site            *models.Site
	State           services.ViewState
	Projects        []models.Project
	Categories      []services.CategoryTab
	Scrolled        bool
	ScrollThreshold int
	Year            int
	Static          string
	Contact         ContactFormData
	// Export is set when rendering files for a static export, where the
	// HTMX endpoints are not available.
	Export bool
}

// ContactFormData is the state of the contact form after a submission
type ContactFormData struct {
	Name    string
	Email   string
	Message string
	Errors  map[string]string
	Success string
	Failure string
}

// CategoryURL links a filter tab
func (d PageData) CategoryURL(c models.Category) string {
	if d.Export {
		if c == models.CategoryAll {
			return "/#projects"
		}
		return "/projects/" + string(c) + "/#projects"
	}
	return d.State.WithCategory(c).URL("projects")
}

// ProjectURL opens the detail view of p
func (d PageData) ProjectURL(p models.Project) string {
	if d.Export {
		return "/projects/" + p.ID + ".html"
	}
	return d.State.WithSelected(&p).URL("projects")
}

// CloseURL dismisses the detail view, keeping the selected category
func (d PageData) CloseURL() string {
	if d.Export {
		return d.CategoryURL(d.State.Category)
	}
	return d.State.Closed().URL("projects")
}

// MenuURL opens or closes the mobile menu
func (d PageData) MenuURL(open bool) string {
	if d.Export {
		return "#home"
	}
	return d.State.WithMenu(open).URL("")
}

// NavURL follows an in-page link, closing the mobile menu on the way
func (d PageData) NavURL(href string) string {
	if d.Export || !d.State.MenuOpen {
		return href
	}
	return d.State.WithMenu(false).URL(strings.TrimPrefix(href, "#"))
}

// SkillURL toggles toolkit row i
func (d PageData) SkillURL(i int) string {
	if d.Export {
		return "#skills"
	}
	return d.State.Toggled(i).URL("skills")
}

// fragmentURL is the HTMX endpoint at path for state s. The whole view
// state travels with it so the fragment's own links keep it.
func fragmentURL(path string, s services.ViewState) string {
	q := s.Query().Encode()
	if q == "" {
		return path
	}
	return path + "?" + q
}

// NavbarFragmentURL re-renders the navbar for the current state. The
// scroll offset is added by the client.
func (d PageData) NavbarFragmentURL() string {
	return fragmentURL("/fragments/navbar", d.State)
}

// CategoryFragmentURL swaps in the gallery filtered by c
func (d PageData) CategoryFragmentURL(c models.Category) string {
	return fragmentURL("/fragments/projects", d.State.WithCategory(c))
}

// ProjectFragmentURL swaps in the detail view of p
func (d PageData) ProjectFragmentURL(p models.Project) string {
	return fragmentURL("/fragments/projects/"+p.ID, d.State.WithSelected(&p))
}

// CloseFragmentURL swaps in the empty detail view
func (d PageData) CloseFragmentURL() string {
	return fragmentURL("/fragments/modal/close", d.State.Closed())
}

// SkillFragmentURL swaps in the toolkit with row i toggled
func (d PageData) SkillFragmentURL(i int) string {
	return fragmentURL("/fragments/toolkit", d.State.Toggled(i))
}

// SkillOpen reports whether toolkit row i is expanded
func (d PageData) SkillOpen(i int) bool {
	return d.State.OpenSkill == i
}
