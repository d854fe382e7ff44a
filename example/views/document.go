// Package views renders the document shell used when no SSR sidecar runs.
package views

import "github.com/dmitrymomot/reactssr/ssr"

//go:generate templ generate

// StateElementID is the id of the script element holding the page state.
const StateElementID = "__reactssr_state"

func documentLang(rc *ssr.RenderContext) string {
	if rc.Locale != nil {
		return *rc.Locale
	}
	return "en"
}

// documentState is the state the client hydrates from.
func documentState(rc *ssr.RenderContext) map[string]any {
	return map[string]any{
		"pageData":   rc.PageData,
		"globalData": rc.GlobalData,
		"router":     rc.Router,
		"locale":     rc.Locale,
		"locales":    rc.Locales,
	}
}
