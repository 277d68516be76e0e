package model

// ContentSection is one marketing-site section (hero, about, services, faq…)
// rendered from a frontmattered markdown file.
type ContentSection struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Order       int    `json:"order"`
	HTMLContent string `json:"html"`
}
