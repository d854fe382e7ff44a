package ssr

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// ErrorPageCopy is the localized text of the fallback error page.
type ErrorPageCopy struct {
	Lang     string
	Title    string
	Heading  string
	Message  string
	LinkText string
}

// DefaultErrorPageCopy is the English fallback text.
var DefaultErrorPageCopy = ErrorPageCopy{
	Lang:     "en",
	Title:    "Server error",
	Heading:  "Oops! Something went wrong…",
	Message:  "An error occurred on the server. We already know about the problem or will find out soon. Please try reloading the page a little later.",
	LinkText: "Back to home",
}

// UkrainianErrorPageCopy is the Ukrainian fallback text.
var UkrainianErrorPageCopy = ErrorPageCopy{
	Lang:     "uk",
	Title:    "Помилка сервера",
	Heading:  "Ой! Щось пішло не так…",
	Message:  "На сервері сталася помилка. Ми вже знаємо про проблему або скоро про неї дізнаємось. Спробуйте перезавантажити сторінку трохи пізніше.",
	LinkText: "Повернутись на головну",
}

func (c ErrorPageCopy) withDefaults(d ErrorPageCopy) ErrorPageCopy {
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Heading == "" {
		c.Heading = d.Heading
	}
	if c.Message == "" {
		c.Message = d.Message
	}
	if c.LinkText == "" {
		c.LinkText = d.LinkText
	}
	return c
}

// minimalErrorPage is served if the error page component itself fails.
const minimalErrorPage = `<!DOCTYPE html><html><head><meta charset="UTF-8"><title>500</title></head><body><h1>500</h1><a href="/">/</a></body></html>`

// ErrorPage returns the self-contained fallback document as a templ component.
// It links back to the site root and never contains error details.
func ErrorPage(text ErrorPageCopy) templ.Component {
	return errorDocument(text.withDefaults(DefaultErrorPageCopy))
}

// RenderErrorPage renders the fallback document for text. It cannot fail.
func RenderErrorPage(text ErrorPageCopy) string {
	var b strings.Builder
	if err := ErrorPage(text).Render(context.Background(), &b); err != nil {
		return minimalErrorPage
	}
	return b.String()
}

// FallbackPage returns the default fallback document. The error is never
// inspected, so nothing about it reaches the client.
func FallbackPage(_ error) string {
	return RenderErrorPage(DefaultErrorPageCopy)
}
