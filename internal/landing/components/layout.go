package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ProductName is shown in the page title, hero and footer.
const ProductName = "LAKNOR"

type PageConfig struct {
	Title       string
	Description string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = ProductName + " - Your Medical Records, Organized"
	}

	if config.Description == "" {
		config.Description = "Scan, store, and share your health documents securely. Join the waitlist."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				StyleEl(g.Raw(baseStyles)),
			),
			Body(
				g.Group(content),
				Script(g.Raw(subscribeScript)),
			),
		),
	})
}

const baseStyles = `
body{margin:0;font-family:system-ui,sans-serif;color:#111827;background:#fff}
.container{max-width:72rem;margin:0 auto;padding:3rem 1.5rem}
.hero{background:linear-gradient(135deg,#f0fdfa,#fff,#faf5ff)}
.hero h1{font-size:3rem;line-height:1.1;font-weight:800;letter-spacing:-.02em}
.hero p.lead{font-size:1.25rem;color:#4b5563}
.card{border:1px solid #e5e7eb;border-radius:.75rem;padding:1.5rem;background:#fff}
.features{display:grid;grid-template-columns:repeat(auto-fit,minmax(16rem,1fr));gap:1.5rem}
input[type=email]{width:100%;padding:.75rem;border:1px solid #d1d5db;border-radius:.5rem;box-sizing:border-box}
button{margin-top:.75rem;width:100%;padding:.75rem;border:0;border-radius:.5rem;background:#0f766e;color:#fff;font-weight:600;cursor:pointer}
.muted{font-size:.875rem;color:#6b7280}
footer{border-top:1px solid #e5e7eb}
`

// subscribeScript posts each form as JSON and forwards the page query string
// so utm_* attribution reaches the intake endpoint.
const subscribeScript = `
document.querySelectorAll("form[data-subscription-type]").forEach(function (form) {
  form.addEventListener("submit", function (event) {
    event.preventDefault();
    var status = form.querySelector("[data-status]");
    var consent = form.querySelector("input[name=marketingConsent]");
    fetch("/api/subscribe" + window.location.search, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({
        email: form.querySelector("input[name=email]").value,
        marketingConsent: consent ? consent.checked : false,
        subscriptionType: form.dataset.subscriptionType
      })
    }).then(function (res) {
      return res.json();
    }).then(function (data) {
      status.textContent = data.message;
    }).catch(function () {
      status.textContent = "Something went wrong. Please try again.";
    });
  });
});
`
