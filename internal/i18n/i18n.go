// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package i18n localizes user-facing notices.
package i18n

import (
	"context"
	"embed"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

var (
	bundle    *i18n.Bundle
	matcher   language.Matcher
	supported []language.Tag
)

type localizerContextKey struct{}

// Init loads the embedded translation bundle. Must be called once at
// startup before any translation lookup.
func Init() error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files := []string{
		"translations/active.en.toml",
		"translations/active.de.toml",
	}
	for _, file := range files {
		if _, err := b.LoadMessageFileFS(translationFS, file); err != nil {
			return err
		}
	}

	bundle = b
	supported = []language.Tag{language.English, language.German}
	matcher = language.NewMatcher(supported)
	return nil
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value.
func MatchLanguage(acceptLang string) language.Tag {
	if matcher == nil {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	// Use the matched index: Match's returned tag carries extensions from
	// the request instead of the canonical supported tag.
	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// WithLocale attaches a localizer for the given language to the context.
func WithLocale(ctx context.Context, lang language.Tag) context.Context {
	if bundle == nil {
		return ctx
	}
	localizer := i18n.NewLocalizer(bundle, lang.String())
	return context.WithValue(ctx, localizerContextKey{}, localizer)
}

// T translates a message by ID. Unknown IDs and untranslated contexts fall
// back to the ID itself.
func T(ctx context.Context, messageID string) string {
	localizer, ok := ctx.Value(localizerContextKey{}).(*i18n.Localizer)
	if !ok {
		if bundle == nil {
			return messageID
		}
		localizer = i18n.NewLocalizer(bundle, language.English.String())
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
