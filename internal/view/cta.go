package view

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// CTA renders the closing call to action with the consultation form.
func CTA(form ConsultForm) g.Node {
	return h.Section(
		h.Class("section cta"), h.ID("cta"),
		h.Div(
			h.Class("container cta-panel"),
			h.H2(g.Text("准备好开启您的数据价值之旅了吗？")),
			h.P(h.Class("section-lead"), g.Text("加入嘉兴数据产业生态，与数百家领先企业共同探索数据要素的无限可能。")),
			g.If(form.Sent, h.P(h.Class("notice notice-ok"), h.Role("status"), g.Text("提交成功，我们的专家将尽快与您联系。"))),
			g.If(form.Failed, h.P(h.Class("notice"), h.Role("alert"), g.Text("提交失败，请稍后重试。"))),
			g.If(!form.Sent, consultForm(form)),
		),
	)
}

func consultForm(form ConsultForm) g.Node {
	v := form.Values

	return h.Form(
		h.Class("consult-form"), h.Method("post"), h.Action("/consult"),
		field("name", "姓名", "text", v.Name, form.Errors, true),
		field("company", "企业名称", "text", v.Company, form.Errors, true),
		field("phone", "联系电话", "tel", v.Phone, form.Errors, true),
		field("email", "电子邮箱", "email", v.Email, form.Errors, false),
		h.Div(
			h.Class("field field-wide"),
			h.Label(h.For("consult-message"), g.Text("咨询内容")),
			h.Textarea(
				h.ID("consult-message"), h.Name("message"),
				g.Attr("rows", "3"), g.Attr("maxlength", "500"),
				g.Text(v.Message),
			),
			fieldError(form.Errors, "message"),
		),
		h.Button(h.Type("submit"), h.Class("btn btn-primary"), g.Text("咨询专家")),
	)
}

func field(name, label, kind, value string, errs map[string]string, required bool) g.Node {
	id := "consult-" + name

	return h.Div(
		h.Class("field"),
		h.Label(h.For(id), g.Text(label)),
		h.Input(
			h.ID(id), h.Name(name), h.Type(kind), h.Value(value),
			g.If(required, h.Required()),
		),
		fieldError(errs, name),
	)
}

func fieldError(errs map[string]string, name string) g.Node {
	msg, ok := errs[name]
	if !ok {
		return nil
	}
	return h.Span(h.Class("field-error"), g.Text(msg))
}
