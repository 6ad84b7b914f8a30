// Package components renders the server-side HTML fragments and pages.
package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
)

// NavItem is one link of the top navigation.
type NavItem struct {
	Name string
	URL  string
}

var MainNav = []NavItem{
	{Name: "Map", URL: "/"},
	{Name: "Events", URL: "/calendar"},
	{Name: "Beach Rules", URL: "/rules"},
}

// writer collects the first write error so markup can be emitted without
// checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func attr(s string) string {
	return templ.EscapeString(s)
}

func classes(base string, extra ...string) string {
	return twmerge.Merge(append([]string{base}, extra...)...)
}

// Layout wraps content in the page shell.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`)
		w.text(title)
		w.raw(` | Juanito</title>`,
			`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`,
			`<script src="https://cdn.tailwindcss.com"></script>`,
			`</head><body class="min-h-screen bg-sky-50 text-slate-800">`,
			`<nav class="flex gap-4 bg-sky-700 px-6 py-3 text-white">`,
			`<span class="font-bold">Juanito</span>`)
		for _, item := range MainNav {
			w.raw(`<a class="hover:underline" hx-boost="true" href="`, attr(item.URL), `">`)
			w.text(item.Name)
			w.raw(`</a>`)
		}
		w.raw(`</nav><main id="content" class="mx-auto max-w-5xl p-6">`)
		w.component(ctx, content)
		w.raw(`</main></body></html>`)
		return w.err
	})
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
