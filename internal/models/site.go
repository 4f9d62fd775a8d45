package models

// Site is everything rendered on the single page. It is loaded once and
// never mutated afterwards.
type Site struct {
	Meta        Meta            `yaml:"meta"`
	Profile     Profile         `yaml:"profile"`
	Nav         []NavLink       `yaml:"nav"`
	Stats       []Stat          `yaml:"stats"`
	Values      []Value         `yaml:"values"`
	Services    []Service       `yaml:"services"`
	Process     []ProcessStep   `yaml:"process"`
	Experience  []Experience    `yaml:"experience"`
	SoftSkills  []SkillCategory `yaml:"soft_skills"`
	Toolkit     []SkillCategory `yaml:"toolkit"`
	Projects    []Project       `yaml:"projects"`
	Contact     []ContactMethod `yaml:"contact"`
	Available   []Availability  `yaml:"availability"`
	CallsToAct  []CallToAction  `yaml:"calls_to_action"`
	Social      []SocialLink    `yaml:"social"`
	FooterTech  []string        `yaml:"footer_tech"`
	FooterLinks []NavLink       `yaml:"footer_links"`
}

// Meta holds the page head tags
type Meta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	Author      string   `yaml:"author"`
	URL         string   `yaml:"url"`
	Image       string   `yaml:"image"`
}

type Profile struct {
	Name     string   `yaml:"name"`
	Brand    string   `yaml:"brand"`
	Headline string   `yaml:"headline"`
	Tagline  string   `yaml:"tagline"`
	Summary  string   `yaml:"summary"`
	Location string   `yaml:"location"`
	Status   string   `yaml:"status"`
	Resume   string   `yaml:"resume"`
	About    []string `yaml:"about"`
	Quote    string   `yaml:"quote"`
}

type NavLink struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
}

type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Value struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Service struct {
	Icon        string   `yaml:"icon"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Color       string   `yaml:"color"`
}

type ProcessStep struct {
	Step        string `yaml:"step"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Experience struct {
	ID               string   `yaml:"id"`
	Role             string   `yaml:"role"`
	Company          string   `yaml:"company"`
	Location         string   `yaml:"location"`
	Period           string   `yaml:"period"`
	Type             string   `yaml:"type"`
	Description      string   `yaml:"description"`
	Responsibilities []string `yaml:"responsibilities"`
	Achievements     []string `yaml:"achievements"`
	Technologies     []string `yaml:"technologies"`
	Current          bool     `yaml:"current"`
}

// SkillCategory is one accordion row of the toolkit, or one soft skill group
type SkillCategory struct {
	Category string   `yaml:"category"`
	Skills   []string `yaml:"skills"`
}

type ContactMethod struct {
	Icon        string `yaml:"icon"`
	Label       string `yaml:"label"`
	Value       string `yaml:"value"`
	Href        string `yaml:"href"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

type Availability struct {
	Icon     string `yaml:"icon"`
	Title    string `yaml:"title"`
	Value    string `yaml:"value"`
	Subtitle string `yaml:"subtitle"`
}

type CallToAction struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Action      string `yaml:"action"`
	Href        string `yaml:"href"`
}

type SocialLink struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}
