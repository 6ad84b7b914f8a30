package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// BeachRules renders the beach-rules popup content.
func BeachRules(rules []models.BeachRule) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section id="beach-rules" class="rounded-lg bg-white p-6 shadow">`,
			`<h2 class="mb-4 text-xl font-semibold">Beach Rules</h2><ol class="space-y-3">`)
		for i, r := range rules {
			w.printf(`<li class="beach-rule" data-index="%d"><h3 class="font-medium">`, i+1)
			w.text(r.Title)
			w.raw(`</h3><p class="text-sm text-slate-600">`)
			w.text(r.Text)
			w.raw(`</p></li>`)
		}
		w.raw(`</ol></section>`)
		return w.err
	})
}

// Products renders the local products list of the sidebar.
func Products(products []models.Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<ul id="products" class="grid grid-cols-2 gap-2">`)
		for _, p := range products {
			w.raw(`<li class="product rounded bg-white p-3 shadow-sm"><span class="font-medium">`)
			w.text(p.Name)
			w.raw(`</span> <span class="text-xs uppercase text-slate-500">`)
			w.text(p.Kind)
			w.raw(`</span></li>`)
		}
		w.raw(`</ul>`)
		return w.err
	})
}
