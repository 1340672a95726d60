// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

package forms_test

import (
	"testing"

	"codeberg.org/hverlin/inkwell/internal/forms"
	"github.com/stretchr/testify/assert"
)

func lookup(values map[string]string) func(string) string {
	return func(name string) string {
		return values[name]
	}
}

func TestRequired(t *testing.T) {
	rule := forms.Required()
	assert.NotEmpty(t, rule(""))
	assert.NotEmpty(t, rule("   "))
	assert.Empty(t, rule("value"))
}

func TestEmail(t *testing.T) {
	rule := forms.Email()
	assert.Empty(t, rule("ada@example.com"))
	assert.NotEmpty(t, rule("not-an-email"))
	assert.NotEmpty(t, rule("ada@localhost"))
	assert.NotEmpty(t, rule("Ada Lovelace <ada@example.com>"))
}

func TestURL(t *testing.T) {
	rule := forms.URL()
	assert.Empty(t, rule("https://example.com/cover.jpg"))
	assert.Empty(t, rule("http://example.com"))
	assert.NotEmpty(t, rule("ftp://example.com/file"))
	assert.NotEmpty(t, rule("example.com/cover.jpg"))
	assert.NotEmpty(t, rule(""))
}

func TestLength(t *testing.T) {
	rule := forms.Length(8, 16)
	assert.NotEmpty(t, rule("short"))
	assert.NotEmpty(t, rule("way-too-long-to-be-a-password"))
	assert.Empty(t, rule("just-right"))
}

func TestValidate_FirstFailingRuleWins(t *testing.T) {
	errs := forms.Login.Validate(lookup(map[string]string{
		"email":    "",
		"password": "short",
	}))

	assert.False(t, errs.Valid())
	assert.Equal(t, "This field is required.", errs["email"])
	assert.Equal(t, "Must be between 8 and 16 characters long.", errs["password"])
}

func TestValidate_ValidForm(t *testing.T) {
	errs := forms.Signup.Validate(lookup(map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"password":   "correct-horse",
	}))

	assert.True(t, errs.Valid())
	assert.Empty(t, errs)
}

func TestValidate_PostRequiresValidImageURL(t *testing.T) {
	errs := forms.Post.Validate(lookup(map[string]string{
		"title":     "Title",
		"subtitle":  "Subtitle",
		"image_url": "not a url",
		"body":      "<p>Body</p>",
	}))

	assert.False(t, errs.Valid())
	assert.Equal(t, "Please enter a valid URL.", errs["image_url"])
	assert.NotContains(t, errs, "title")
}

func TestValidate_RecoveryBoundsFirstPassword(t *testing.T) {
	errs := forms.Recovery.Validate(lookup(map[string]string{
		"password1": "short",
		"password2": "short",
	}))

	assert.False(t, errs.Valid())
	assert.Equal(t, "Must be between 8 and 16 characters long.", errs["password1"])
	assert.NotContains(t, errs, "password2")

	errs = forms.Recovery.Validate(lookup(map[string]string{
		"password1": "long-enough-pass",
		"password2": "long-enough-pass",
	}))
	assert.True(t, errs.Valid())
}

func TestValidate_ContactRequiresAllFields(t *testing.T) {
	errs := forms.Contact.Validate(lookup(map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"contact": "",
		"message": "",
	}))

	assert.False(t, errs.Valid())
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "contact")
	assert.Contains(t, errs, "message")
}
