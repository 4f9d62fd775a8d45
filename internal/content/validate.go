package content

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"musyoka.dev/internal/models"
)

// ValidationError lists every problem found in a content document
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid content (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// projectIDPattern keeps ids usable as URL path segments and file names
var projectIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var knownCategories = map[models.Category]bool{
	models.CategoryWebApp:     true,
	models.CategoryAutomation: true,
	models.CategoryPlatform:   true,
	models.CategoryTool:       true,
}

var knownStatuses = map[models.Status]bool{
	models.StatusLive:        true,
	models.StatusDevelopment: true,
	models.StatusMaintenance: true,
}

// Validate checks that every record has the fields the templates rely on.
// It returns a *ValidationError or nil.
func Validate(site *models.Site) error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if site.Profile.Name == "" {
		add("profile.name is required")
	}
	if site.Meta.Title == "" {
		add("meta.title is required")
	}

	for i, link := range site.Nav {
		if link.Name == "" {
			add("nav[%d]: name is required", i)
		}
		if !strings.HasPrefix(link.Href, "#") {
			add("nav[%d]: href %q must be an in-page anchor", i, link.Href)
		}
	}

	seen := make(map[string]bool)
	for i := range site.Projects {
		p := &site.Projects[i]
		where := fmt.Sprintf("projects[%d]", i)
		if p.ID != "" {
			where = fmt.Sprintf("project %q", p.ID)
		}

		if p.ID == "" {
			add("%s: id is required", where)
		} else if !projectIDPattern.MatchString(p.ID) {
			add("%s: id must contain only lowercase letters, digits and dashes", where)
		} else if seen[p.ID] {
			add("%s: duplicate id", where)
		}
		seen[p.ID] = true

		if p.Title == "" {
			add("%s: title is required", where)
		}
		if !knownCategories[p.Category] {
			add("%s: unknown category %q", where, p.Category)
		}
		if !knownStatuses[p.Status] {
			add("%s: unknown status %q", where, p.Status)
		}
		if !isHTTPURL(p.SourceLink) {
			add("%s: source_link %q is not an http(s) URL", where, p.SourceLink)
		}
		if p.LiveLink != "" && !isHTTPURL(p.LiveLink) {
			add("%s: live_link %q is not an http(s) URL", where, p.LiveLink)
		}
		if len(p.Tech) == 0 {
			add("%s: tech list is empty", where)
		}
	}

	for i, method := range site.Contact {
		if method.Label == "" || method.Href == "" {
			add("contact[%d]: label and href are required", i)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
