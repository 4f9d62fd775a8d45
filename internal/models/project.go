package models

// Category tags a project for the gallery filter
type Category string

const (
	CategoryAll        Category = "all"
	CategoryWebApp     Category = "web-app"
	CategoryAutomation Category = "automation"
	CategoryPlatform   Category = "platform"
	CategoryTool       Category = "tool"
)

// Status is the badge shown on a project card
type Status string

const (
	StatusLive        Status = "live"
	StatusDevelopment Status = "development"
	StatusMaintenance Status = "maintenance"
)

// Project represents a portfolio project
type Project struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Subtitle        string   `json:"subtitle" yaml:"subtitle"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"long_description" yaml:"long_description"`
	Tech            []string `json:"tech" yaml:"tech"`
	Category        Category `json:"category" yaml:"category"`
	Image           string   `json:"image" yaml:"image"`
	LiveLink        string   `json:"live_link,omitempty" yaml:"live_link,omitempty"`
	SourceLink      string   `json:"source_link" yaml:"source_link"`
	Features        []string `json:"features" yaml:"features"`
	Achievements    []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	Status          Status   `json:"status" yaml:"status"`
}

// TechPreview returns at most n technologies
func (p Project) TechPreview(n int) []string {
	if len(p.Tech) <= n {
		return p.Tech
	}
	return p.Tech[:n]
}

// TechHidden is the number of technologies TechPreview(n) leaves out
func (p Project) TechHidden(n int) int {
	if len(p.Tech) <= n {
		return 0
	}
	return len(p.Tech) - n
}

// FeaturePreview returns at most n features
func (p Project) FeaturePreview(n int) []string {
	if len(p.Features) <= n {
		return p.Features
	}
	return p.Features[:n]
}

// StatusLabel is the human readable badge text
func (p Project) StatusLabel() string {
	switch p.Status {
	case StatusLive:
		return "Live"
	case StatusDevelopment:
		return "In Development"
	default:
		return "Maintenance"
	}
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects" yaml:"projects"`
}
