package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.com",
		"First.Last@Example.ORG",
		"user+tag@sub.domain.co.uk",
		"a@b.c.d",
		"ünïcode@exämple.de",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"@b.com",
		"a@",
		"a@b",
		"a@.",
		"a@b.",
		"a@@b.com",
		"a@b@c.com",
		"a b@c.com",
		" a@b.com",
		"a@b.com ",
		"a@b.com\n",
		"a\t@b.com",
		"a\v@b.com",
		"a@b .com",
		"a@b.co m",
		"\uFEFFa@b.com",
		"a@b\u3000.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestParseSubscriptionType(t *testing.T) {
	assert.Equal(t, SubscriptionTypeResearch, ParseSubscriptionType("research"))
	assert.Equal(t, SubscriptionTypeNotification, ParseSubscriptionType("notification"))
	assert.Equal(t, SubscriptionTypeNotification, ParseSubscriptionType(""))
	assert.Equal(t, SubscriptionTypeNotification, ParseSubscriptionType("Research"))
	assert.Equal(t, SubscriptionTypeNotification, ParseSubscriptionType("newsletter"))
}

func TestRoute(t *testing.T) {
	target, source := SubscriptionTypeResearch.Route()
	assert.Equal(t, TargetResearch, target)
	assert.Equal(t, SourceEmailModal, source)

	target, source = SubscriptionTypeNotification.Route()
	assert.Equal(t, TargetNotification, target)
	assert.Equal(t, SourceLandingPage, source)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	if v := OptionalString("spring"); assert.NotNil(t, v) {
		assert.Equal(t, "spring", *v)
	}
}
