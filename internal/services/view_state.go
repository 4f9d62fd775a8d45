package services

import (
	"net/url"
	"strconv"

	"musyoka.dev/internal/models"
)

// DefaultScrollThreshold is the scroll offset in pixels past which the
// navbar switches to its solid variant.
const DefaultScrollThreshold = 50

// NavbarScrolled reports whether the navbar should use its scrolled style
func NavbarScrolled(offset, threshold int) bool {
	return offset > threshold
}

// ViewState is the UI state of the page that the browser keeps in the
// query string: selected category, the project shown in the modal, the
// mobile menu and the open toolkit row.
type ViewState struct {
	Category models.Category
	Selected *models.Project
	MenuOpen bool
	// OpenSkill is the expanded toolkit row, or -1 when all are collapsed.
	OpenSkill int
}

// ParseViewState reads the view state from query parameters. Unknown
// project ids leave nothing selected and an out of range skill index
// collapses the accordion.
func ParseViewState(q url.Values, projects *ProjectService, toolkitSize int) ViewState {
	state := ViewState{
		Category:  models.CategoryAll,
		OpenSkill: 0,
	}

	if c := models.Category(q.Get("category")); c != "" && projects.IsCategory(c) {
		state.Category = c
	}
	if id := q.Get("project"); id != "" {
		state.Select(projects, id)
	}
	state.MenuOpen = q.Get("menu") == "open"

	if raw, ok := q["skill"]; ok && len(raw) > 0 {
		state.OpenSkill = -1
		if i, err := strconv.Atoi(raw[0]); err == nil && i >= 0 && i < toolkitSize {
			state.OpenSkill = i
		}
	}
	return state
}

// Select makes the project with the given id the selected one. It returns
// false and clears the selection when no such project exists.
func (v *ViewState) Select(projects *ProjectService, id string) bool {
	p, err := projects.GetByID(id)
	if err != nil {
		v.Selected = nil
		return false
	}
	v.Selected = p
	return true
}

// Close clears the selected project
func (v *ViewState) Close() {
	v.Selected = nil
}

// ToggleSkill opens row i, or collapses it if it is already open
func (v *ViewState) ToggleSkill(i int) {
	if v.OpenSkill == i {
		v.OpenSkill = -1
		return
	}
	v.OpenSkill = i
}

// Query encodes the state back into query parameters. Defaults are left
// out so the plain page URL is the default state.
func (v ViewState) Query() url.Values {
	q := url.Values{}
	if v.Category != "" && v.Category != models.CategoryAll {
		q.Set("category", string(v.Category))
	}
	if v.Selected != nil {
		q.Set("project", v.Selected.ID)
	}
	if v.MenuOpen {
		q.Set("menu", "open")
	}
	if v.OpenSkill != 0 {
		q.Set("skill", strconv.Itoa(v.OpenSkill))
	}
	return q
}

// URL returns the page link for this state, anchored at fragment
func (v ViewState) URL(fragment string) string {
	u := url.URL{Path: "/", RawQuery: v.Query().Encode()}
	if fragment != "" {
		u.Fragment = fragment
	}
	return u.String()
}

// WithCategory is the state after clicking a filter tab
func (v ViewState) WithCategory(c models.Category) ViewState {
	v.Category = c
	v.Selected = nil
	return v
}

// WithSelected is the state after opening a project's details
func (v ViewState) WithSelected(p *models.Project) ViewState {
	v.Selected = p
	return v
}

// Closed is the state after closing the modal
func (v ViewState) Closed() ViewState {
	v.Close()
	return v
}

// WithMenu is the state after opening or closing the mobile menu
func (v ViewState) WithMenu(open bool) ViewState {
	v.MenuOpen = open
	return v
}

// Toggled is the state after clicking toolkit row i
func (v ViewState) Toggled(i int) ViewState {
	v.ToggleSkill(i)
	return v
}
