package components

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func PageFooter(now time.Time) g.Node {
	return Footer(
		Div(
			Class("container muted"),
			P(g.Text("© " + strconv.Itoa(now.Year()) + " " + ProductName + ". All rights reserved.")),
			Nav(
				A(Href("https://twitter.com/laknor_health"), g.Text("Twitter")),
				g.Text(" · "),
				A(Href("https://linkedin.com/company/laknor"), g.Text("LinkedIn")),
				g.Text(" · "),
				A(Href("https://github.com/laknor"), g.Text("GitHub")),
			),
		),
	)
}
