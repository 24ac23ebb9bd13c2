package render

// PageData carries everything a renderer needs for one page. Form is nil for
// pages without the order form.
type PageData struct {
	Title string       `json:"title"`
	Form  *FormView    `json:"form,omitempty"`
	Links []Link       `json:"links,omitempty"`
	Theme *ThemeConfig `json:"theme,omitempty"`
}

// Link is a navigation entry.
type Link struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// DefaultLinks returns the application navigation with current marked.
func DefaultLinks(current Page) []Link {
	return []Link{
		{Href: "/", Label: "Home", Active: current == PageHome},
		{Href: "/order", Label: "Order", Active: current == PageOrder},
	}
}
