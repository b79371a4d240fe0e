package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// HeroVariant selects the headline copy. Only variant A is served.
const HeroVariant = "A"

type heroCopy struct {
	Headline    string
	Subheadline string
}

var heroVariants = map[string]heroCopy{
	"A": {
		Headline:    "Never Lose a Medical Record Again",
		Subheadline: ProductName + " helps you scan, store, and share your health documents securely, accessible anytime, anywhere.",
	},
	"B": {
		Headline:    "Your Health History, Safely in One Place",
		Subheadline: "From prescriptions to vaccination logs, manage your medical past with ease and privacy.",
	},
	"C": {
		Headline:    "Take Control of Your Medical Past and Present",
		Subheadline: "Easily scan, store, and share your health records with end-to-end encryption and offline access.",
	},
}

func Hero() g.Node {
	hero := heroVariants[HeroVariant]
	return Section(
		Class("hero"),
		ID("hero"),
		g.Attr("data-variant", HeroVariant),
		Div(
			Class("container"),
			H1(g.Text(hero.Headline)),
			P(Class("lead"), g.Text(hero.Subheadline)),
			SignupForm(),
		),
	)
}
