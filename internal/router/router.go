// Package router maps paths to screens.
package router

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRoute is returned for paths missing from the table.
var ErrUnknownRoute = errors.New("unknown route")

// Screen identifies which screen a route opens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenGame
	ScreenPractice
	ScreenTerms
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenGame:
		return "game"
	case ScreenPractice:
		return "practice"
	case ScreenTerms:
		return "terms"
	default:
		return "unknown"
	}
}

// Route binds a path to a screen and its fixed configuration.
type Route struct {
	Path    string
	Title   string
	Screen  Screen
	Charset string
}

var routes = []Route{
	{Path: "/", Title: "Home", Screen: ScreenHome},
	{Path: "/game", Title: "Game", Screen: ScreenGame},
	{Path: "/index", Title: "Index finger", Screen: ScreenPractice, Charset: "FJGHRUTYCMVNB"},
	{Path: "/middle", Title: "Middle finger", Screen: ScreenPractice, Charset: "DEIKX,"},
	{Path: "/ring", Title: "Ring finger", Screen: ScreenPractice, Charset: "LOPSW."},
	{Path: "/little", Title: "Little finger", Screen: ScreenPractice, Charset: "AZQ"},
	{Path: "/terms", Title: "Terms and conditions", Screen: ScreenTerms},
}

// Routes returns the route table in declaration order.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Resolve looks up path after collapsing repeated and trailing slashes.
func Resolve(path string) (Route, error) {
	clean := Clean(path)
	for _, r := range routes {
		if r.Path == clean {
			return r, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

// Clean collapses repeated slashes, drops a trailing slash and ensures a
// leading one.
func Clean(path string) string {
	parts := strings.FieldsFunc(strings.TrimSpace(path), func(r rune) bool { return r == '/' })
	return "/" + strings.Join(parts, "/")
}
