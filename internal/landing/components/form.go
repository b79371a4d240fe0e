package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// SignupForm is the primary notification signup.
func SignupForm() g.Node {
	return g.El("form",
		Class("card"),
		ID("signup"),
		g.Attr("data-subscription-type", "notification"),
		Label(For("signup-email"), Class("muted"), g.Text("Email address")),
		Input(Type("email"), ID("signup-email"), Name("email"), Placeholder("Enter your email address"), Required()),
		Label(
			Class("muted"),
			Input(Type("checkbox"), Name("marketingConsent"), Value("true")),
			g.Text(" Send me product updates"),
		),
		Button(Type("submit"), g.Text("Get Notified")),
		P(Class("muted"), g.Attr("data-status", ""), g.Attr("aria-live", "polite")),
	)
}

// ResearchForm signs up for the market research program.
func ResearchForm() g.Node {
	return Section(
		ID("research"),
		Div(
			Class("container"),
			g.El("form",
				Class("card"),
				g.Attr("data-subscription-type", "research"),
				H2(g.Text("Help Shape "+ProductName)),
				P(Class("muted"), g.Text("Get priority access to our research program. We'll reach out personally to learn about your needs and get your input on features.")),
				Label(For("research-email"), Class("muted"), g.Text("Email address")),
				Input(Type("email"), ID("research-email"), Name("email"), Placeholder("Enter your email address"), Required()),
				Input(Type("hidden"), Name("marketingConsent"), Value("true")),
				Button(Type("submit"), g.Text("Join the Research Program")),
				P(Class("muted"), g.Attr("data-status", ""), g.Attr("aria-live", "polite")),
			),
		),
	)
}
