// Package navigation parses and builds the routes that connect the flows.
package navigation

import (
	"fmt"
	"net/url"
)

type Page string

const (
	PageHome      Page = "/"
	PageInterpret Page = "/interpret"
	PageReply     Page = "/reply"
	PageStyle     Page = "/style"
)

// Route is a page plus its query parameters.
type Route struct {
	Page  Page
	Query url.Values
}

// ReplyParams are the values the reply flow accepts from a route.
type ReplyParams struct {
	Text string
	Goal string
}

// Complete reports whether both text and goal were supplied.
func (p ReplyParams) Complete() bool {
	return p.Text != "" && p.Goal != ""
}

// Parse reads a route such as "/reply?text=Hallo&goal=Afspraak+maken".
func Parse(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("parsing route %q: %w", raw, err)
	}

	path := u.Path
	if path == "" {
		path = string(PageHome)
	}

	switch Page(path) {
	case PageHome, PageInterpret, PageReply, PageStyle:
	default:
		return Route{}, fmt.Errorf("unknown route %q", path)
	}

	return Route{Page: Page(path), Query: u.Query()}, nil
}

// ReplyParams extracts text and goal; missing values are empty.
func (r Route) ReplyParams() ReplyParams {
	return ReplyParams{Text: r.Query.Get("text"), Goal: r.Query.Get("goal")}
}

func (r Route) String() string {
	if len(r.Query) == 0 {
		return string(r.Page)
	}
	return string(r.Page) + "?" + r.Query.Encode()
}

// To returns a route without parameters.
func To(page Page) Route {
	return Route{Page: page}
}

// ReplyLink builds the link into the reply flow with text before goal.
func ReplyLink(text, goal string) string {
	return string(PageReply) + "?text=" + url.QueryEscape(text) + "&goal=" + url.QueryEscape(goal)
}
