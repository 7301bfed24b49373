package view

import (
	"strconv"

	"github.com/jxdata/portal/internal/quiz"
	"github.com/jxdata/portal/internal/service"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// Quiz renders the quiz section: the current question card, or the result
// card once every question has been answered.
func Quiz(state *service.QuizState, notice string) g.Node {
	return h.Section(
		h.Class("section quiz"), h.ID("quiz"),
		h.Div(
			h.Class("container narrow"),
			h.Div(
				h.Class("section-head"),
				h.H2(h.Class("section-title"), g.Text("测一测：您的企业能用平台做什么？")),
				h.P(g.Text("只需 1 分钟，为您定制专属的数据产业服务方案")),
			),
			g.If(notice != "", h.P(h.Class("notice"), h.Role("status"), g.Text(notice))),
			g.Iff(state != nil && !state.Completed, func() g.Node { return questionCard(state) }),
			g.Iff(state != nil && state.Completed, func() g.Node { return resultCard(state) }),
		),
	)
}

func questionCard(state *service.QuizState) g.Node {
	q := state.Question
	if q == nil {
		return nil
	}

	return h.Div(
		h.Class("quiz-card"), h.Data("step", strconv.Itoa(state.Step)),
		h.Div(
			h.Class("quiz-head"),
			h.Span(h.Class("quiz-step"), g.Textf("问题 %d / %d", state.Step, state.Total)),
			progress(state.Step, state.Total),
		),
		h.Div(
			h.Class("quiz-prompt"),
			Icon(q.Glyph, "icon-md"),
			h.H3(g.Text(q.Prompt)),
		),
		h.Form(
			h.Class("quiz-options"), h.Method("post"), h.Action("/quiz/answer"),
			h.Input(h.Type("hidden"), h.Name("step"), h.Value(strconv.Itoa(state.Step))),
			g.Map(indexed(q.Options), func(o option) g.Node {
				return h.Button(
					h.Type("submit"), h.Class("quiz-option"),
					h.Name("option"), h.Value(strconv.Itoa(o.index)),
					h.Span(g.Text(o.label)),
					Icon("chevron-right", "icon-sm"),
				)
			}),
		),
	)
}

// progress renders one bar per question, lit up to and including step.
func progress(step, total int) g.Node {
	bars := make([]g.Node, 0, total)
	for i := 1; i <= total; i++ {
		bars = append(bars, h.Span(c.Classes{"bar": true, "bar-active": i <= step}))
	}
	return h.Div(h.Class("quiz-progress"), h.Aria("hidden", "true"), g.Group(bars))
}

func resultCard(state *service.QuizState) g.Node {
	return h.Div(
		h.Class("quiz-card quiz-result"),
		h.Div(h.Class("result-mark"), Icon("zap", "icon-lg")),
		h.H3(g.Text("测评完成！")),
		g.If(len(state.Recommendations) > 0,
			h.P(g.Text("根据您的需求，我们建议您重点关注以下服务：")),
		),
		g.If(len(state.Recommendations) == 0,
			h.P(g.Text("暂未匹配到需要重点关注的服务，欢迎随时联系我们的专家。")),
		),
		h.Ul(
			h.Class("recommendations"),
			g.Map(state.Recommendations, func(r quiz.Recommendation) g.Node {
				return h.Li(
					Icon(r.Glyph, "icon-md"),
					h.Div(
						h.Span(h.Class("rec-kicker"), g.Text("推荐服务")),
						h.Strong(g.Text(r.Label)),
					),
				)
			}),
		),
		h.Div(
			h.Class("result-actions"),
			h.A(h.Class("btn btn-primary"), h.Href("#cta"), g.Text("立即咨询专家")),
			h.Form(
				h.Method("post"), h.Action("/quiz/reset"),
				h.Button(h.Type("submit"), h.Class("btn btn-ghost"), g.Text("重新测评")),
			),
		),
	)
}

type option struct {
	index int
	label string
}

func indexed(labels []string) []option {
	out := make([]option, len(labels))
	for i, l := range labels {
		out[i] = option{index: i, label: l}
	}
	return out
}
