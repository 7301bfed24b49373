package view

import (
	"github.com/jxdata/portal/internal/content"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// navAnchors maps navigation labels to in-page anchors.
var navAnchors = map[string]string{
	"首页":    "#top",
	"数据登记":  "#services",
	"数据实验室": "#services",
	"供需市场":  "#services",
	"流通服务":  "#services",
	"合作生态":  "#quiz",
}

func anchorFor(label string) string {
	if a, ok := navAnchors[label]; ok {
		return a
	}
	return "#top"
}

func Navbar(catalog *content.Catalog) g.Node {
	return h.Header(
		h.Class("navbar"), h.ID("top"),
		h.Div(
			h.Class("container navbar-inner"),
			h.A(
				h.Class("brand"), h.Href("/"),
				Icon("globe", "brand-mark"),
				h.Span(h.Class("brand-name"), g.Text(catalog.Site.Name)),
				h.Span(h.Class("brand-sub"), g.Text(catalog.Site.Subtitle)),
			),
			h.Nav(
				h.Class("nav-links"), h.Aria("label", "主导航"),
				g.Map(catalog.Nav, func(label string) g.Node {
					return h.A(h.Href(anchorFor(label)), g.Text(label))
				}),
			),
			h.A(h.Class("btn btn-primary"), h.Href("#cta"), g.Text("立即加入")),
		),
	)
}

func Hero(site content.Site, stats []content.Stat) g.Node {
	return h.Section(
		h.Class("hero"),
		h.Div(
			h.Class("container hero-inner"),
			h.Span(h.Class("badge"), g.Text(site.Badge)),
			h.H1(
				g.Text(site.Headline),
				h.Span(h.Class("accent"), g.Text(site.HeadlineAccent)),
			),
			h.P(h.Class("lead"), g.Text(site.Intro)),
			h.Div(
				h.Class("hero-actions"),
				h.A(h.Class("btn btn-primary"), h.Href("#quiz"), g.Text("开始测评"), Icon("arrow-right", "icon-sm")),
				h.A(h.Class("btn btn-ghost"), h.Href("#services"), g.Text("了解更多")),
			),
			h.Dl(
				h.Class("stats"),
				g.Map(stats, func(s content.Stat) g.Node {
					return h.Div(
						h.Class("stat"),
						h.Dt(g.Text(s.Label)),
						h.Dd(g.Text(formatCount(s.Value, s.Suffix))),
					)
				}),
			),
		),
	)
}

func Services(items []content.Item) g.Node {
	return h.Section(
		h.Class("section services"), h.ID("services"),
		h.Div(
			h.Class("container"),
			h.H2(h.Class("section-title"), g.Text("全方位赋能 数据要素价值释放")),
			h.P(h.Class("section-lead"), g.Text("我们提供从数据确权到安全流通的全链路服务，助力企业在数字经济时代抢占先机。")),
			h.Div(
				h.Class("grid grid-4"),
				g.Map(items, func(it content.Item) g.Node {
					return h.Article(
						h.Class("card"),
						Icon(it.Glyph, "icon-lg"),
						h.H3(g.Text(it.Title)),
						h.P(g.Text(it.Description)),
						h.A(h.Class("card-link"), h.Href("#quiz"), g.Text("了解详情"), Icon("arrow-right", "icon-sm")),
					)
				}),
			),
		),
	)
}

func Technology(items []content.Item) g.Node {
	return h.Section(
		h.Class("section technology"), h.ID("technology"),
		h.Div(
			h.Class("container split"),
			h.Div(
				h.H2(h.Class("section-title"), g.Text("硬核技术支撑 构建可信流通底座")),
				h.Div(
					h.Class("panel-dark"),
					h.Strong(g.Text("可信计算环境")),
					h.P(g.Text("采用 TEE、MPC 等前沿技术，确保数据在计算过程中的绝对安全。")),
				),
			),
			h.Ul(
				h.Class("feature-list"),
				g.Map(items, func(it content.Item) g.Node {
					return h.Li(
						Icon(it.Glyph, "icon-md"),
						h.Div(
							h.H3(g.Text(it.Title)),
							h.P(g.Text(it.Description)),
						),
					)
				}),
			),
		),
	)
}

func News(items []content.News) g.Node {
	return h.Section(
		h.Class("section news"), h.ID("news"),
		h.Div(
			h.Class("container"),
			h.H2(h.Class("section-title"), g.Text("新闻资讯")),
			h.Ul(
				h.Class("news-list"),
				g.Map(items, func(n content.News) g.Node {
					return h.Li(
						h.Span(h.Class("tag"), g.Text(n.Tag)),
						h.Span(h.Class("date"), g.Text(n.Date)),
						h.Span(h.Class("news-title"), g.Text(n.Title)),
					)
				}),
			),
		),
	)
}

func Footer(catalog *content.Catalog) g.Node {
	f := catalog.Footer

	return h.Footer(
		h.Class("footer"),
		h.Div(
			h.Class("container footer-grid"),
			h.Div(
				h.Span(h.Class("brand-name"), g.Text(catalog.Site.Name)),
				h.P(g.Text(catalog.Site.Description)),
			),
			h.Div(
				h.H4(g.Text("快速链接")),
				h.Ul(g.Map(f.QuickLinks, func(label string) g.Node {
					return h.Li(h.A(h.Href(anchorFor(label)), g.Text(label)))
				})),
			),
			h.Div(
				h.H4(g.Text("联系我们")),
				h.P(g.Text(f.Address)),
				h.P(g.Text(f.Phone)),
				h.P(h.A(h.Href("mailto:"+f.Email), g.Text(f.Email))),
			),
		),
		h.Div(
			h.Class("container footer-legal"),
			h.Span(g.Text(f.Copyright)),
			h.Span(g.Text(f.ICP)),
		),
	)
}
