// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package forms declares the validation schemas for every form the
// application accepts. Each field carries a static list of rules which a
// single generic validator evaluates; the first failing rule per field wins.
package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// Rule checks a single value and returns an error message, or "" if valid.
type Rule func(value string) string

// Field binds a form input name to its rules.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is the statically declared rule set for one form.
type Schema struct {
	Fields []Field
}

// Errors maps field names to their first validation error message.
type Errors map[string]string

// Validate evaluates the schema against a value lookup (typically
// echo.Context.FormValue) and returns all field errors. An empty result
// means the form is valid.
func (s Schema) Validate(value func(name string) string) Errors {
	errs := Errors{}
	for _, f := range s.Fields {
		v := value(f.Name)
		for _, rule := range f.Rules {
			if msg := rule(v); msg != "" {
				errs[f.Name] = msg
				break
			}
		}
	}
	return errs
}

// Valid reports whether validation produced no errors.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Required rejects empty or whitespace-only values.
func Required() Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "This field is required."
		}
		return ""
	}
}

// Email rejects values that do not parse as a bare address with a domain.
func Email() Rule {
	return func(value string) string {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return "Please enter a valid email address."
		}
		at := strings.LastIndex(value, "@")
		if !strings.Contains(value[at+1:], ".") {
			return "Please enter a valid email address."
		}
		return ""
	}
}

// URL rejects values that are not absolute http(s) URLs.
func URL() Rule {
	return func(value string) string {
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "Please enter a valid URL."
		}
		return ""
	}
}

// Length bounds the value length in bytes, inclusive.
func Length(min, max int) Rule {
	return func(value string) string {
		if len(value) < min || len(value) > max {
			return fmt.Sprintf("Must be between %d and %d characters long.", min, max)
		}
		return ""
	}
}

// The application's forms. Field names match the HTML input names.
var (
	Login = Schema{Fields: []Field{
		{Name: "email", Rules: []Rule{Required(), Email()}},
		{Name: "password", Rules: []Rule{Required(), Length(8, 16)}},
	}}

	Signup = Schema{Fields: []Field{
		{Name: "first_name", Rules: []Rule{Required()}},
		{Name: "last_name", Rules: []Rule{Required()}},
		{Name: "email", Rules: []Rule{Required(), Email()}},
		{Name: "password", Rules: []Rule{Required(), Length(8, 16)}},
	}}

	Post = Schema{Fields: []Field{
		{Name: "title", Rules: []Rule{Required()}},
		{Name: "subtitle", Rules: []Rule{Required()}},
		{Name: "image_url", Rules: []Rule{Required(), URL()}},
		{Name: "body", Rules: []Rule{Required()}},
	}}

	Comment = Schema{Fields: []Field{
		{Name: "comment", Rules: []Rule{Required()}},
	}}

	Recovery = Schema{Fields: []Field{
		{Name: "password1", Rules: []Rule{Required(), Length(8, 16)}},
		{Name: "password2", Rules: []Rule{Required()}},
	}}

	Contact = Schema{Fields: []Field{
		{Name: "name", Rules: []Rule{Required()}},
		{Name: "email", Rules: []Rule{Required(), Email()}},
		{Name: "contact", Rules: []Rule{Required()}},
		{Name: "message", Rules: []Rule{Required()}},
	}}
)
