// Package view renders the landing page with gomponents.
package view

import (
	"io"

	"github.com/jxdata/portal/internal/content"
	"github.com/jxdata/portal/internal/model"
	"github.com/jxdata/portal/internal/service"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// ConsultForm carries the state of the consultation form between requests.
type ConsultForm struct {
	Sent   bool
	Failed bool
	Values model.CreateLeadRequest
	Errors map[string]string
}

// PageData is everything the landing page needs for one render.
type PageData struct {
	Catalog *content.Catalog
	Stats   []content.Stat
	Quiz    *service.QuizState
	// Notice is a one-off message shown above the quiz card.
	Notice  string
	Consult ConsultForm
}

// Page composes every section into a full HTML document.
func Page(data PageData) g.Node {
	site := data.Catalog.Site

	return c.HTML5(c.HTML5Props{
		Title:       site.Name + " | " + site.Badge,
		Description: site.Description,
		Language:    "zh-CN",
		Head: []g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("/static/site.css")),
		},
		Body: []g.Node{
			h.Class("page"),
			Navbar(data.Catalog),
			h.Main(
				Hero(data.Catalog.Site, data.Stats),
				Services(data.Catalog.Services),
				Quiz(data.Quiz, data.Notice),
				Technology(data.Catalog.Technologies),
				News(data.Catalog.News),
				CTA(data.Consult),
			),
			Footer(data.Catalog),
		},
	})
}

// Render writes the full page to w.
func Render(w io.Writer, data PageData) error {
	return Page(data).Render(w)
}
