package templates

import (
	"html/template"
	"strings"

	"musyoka.dev/internal/markdown"
	"musyoka.dev/internal/models"
)

var statusClasses = map[models.Status]string{
	models.StatusLive:        "badge badge-live",
	models.StatusDevelopment: "badge badge-development",
	models.StatusMaintenance: "badge badge-maintenance",
}

var PortfolioTemplateFuncs = template.FuncMap{
	"markdown": markdown.MustRender,
	"statusclass": func(s models.Status) string {
		if c, ok := statusClasses[s]; ok {
			return c
		}
		return "badge"
	},
	"accent": func(color string) string {
		if color == "" {
			return "accent-cyan"
		}
		return "accent-" + color
	},
	"external": func(href string) bool {
		return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
	},
	"anchorid": func(href string) string {
		return strings.TrimPrefix(href, "#")
	},
}
