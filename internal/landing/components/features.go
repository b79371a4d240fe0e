package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type feature struct {
	Title       string
	Description string
}

var features = []feature{
	{"Secure & Protected", "Advanced encryption ensures your health records remain completely private and protected at all times."},
	{"Smart Organization", "Automatic categorization organizes your medical documents by type, date, and relevance."},
	{"Instant Access", "Get your complete medical history in seconds, anywhere, anytime. Perfect for emergencies and appointments."},
	{"Doctor Collaboration", "Securely share specific records with healthcare providers."},
	{"Mobile Ready", "Offline access on your phone. Your health records in your pocket, always available."},
	{"Privacy Focused", "Built with privacy at its core. Your data stays protected with end-to-end encryption."},
}

func Features() g.Node {
	return Section(
		ID("features"),
		Div(
			Class("container"),
			H2(g.Text("Everything you need for your health records")),
			Div(
				Class("features"),
				g.Map(features, func(f feature) g.Node {
					return Div(
						Class("card"),
						H3(g.Text(f.Title)),
						P(Class("muted"), g.Text(f.Description)),
					)
				}),
			),
		),
	)
}
