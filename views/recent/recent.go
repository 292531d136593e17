package recent

import (
	"context"
	"fmt"
	"io"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"

	"faq-studio/internal/features/recent/panel"
	"faq-studio/views"
)

const (
	blockClass  = "block"
	bannerClass = "mb-3 block rounded border border-red-700 bg-red-950 p-3 text-red-200"
	tableClass  = "mt-2 block w-full border-collapse text-left text-sm"
	selectClass = "rounded border border-neutral-700 bg-neutral-900 p-2"
	headClass   = "border-b border-neutral-700 p-2 font-semibold"
)

// PageData is what the recent page needs to render its shell
type PageData struct {
	Options  []panel.Option
	Selected string
}

// visible merges the hidden utility over base when show is false
func visible(base string, show bool) string {
	if show {
		return base
	}
	return twmerge.Merge(base, "hidden")
}

// Page renders the full recent-questions page. The panel starts hidden and is
// filled from /recent/table when opened.
func Page(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="mb-6 flex items-center gap-3">
<h1 class="text-2xl font-bold">FAQ Studio</h1>
<button type="button" id="recent-open" class="rounded bg-sky-700 px-3 py-2 text-white">Recent questions</button>
</section>
<section class="mb-6"><label class="mr-2" for="category-select">Category</label>`)
		if err != nil {
			return err
		}
		if err := CategorySelect(data.Options, data.Selected).Render(ctx, w); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<input id="category-search" list="category-suggestions" placeholder="Find a category" class="%s ml-2">
<datalist id="category-suggestions"></datalist>
</section>
<section id="recent-panel" class="%s" data-confirm="%s">
<div class="mb-3 flex justify-end"><button type="button" id="recent-refresh" class="rounded bg-neutral-700 px-3 py-1 text-sm text-white">Refresh</button></div>
<p id="recent-loading" class="%s">Loading...</p>
<div id="recent-body"></div>
</section>
`,
			selectClass,
			visible(blockClass, false),
			templ.EscapeString(panel.DeleteConfirmMessage),
			visible("text-neutral-400 "+blockClass, false),
		)
		return err
	})

	return views.Layout("Recent questions", body)
}

// PanelBody renders the count label, the error banner and the table from a
// surface snapshot.
func PanelBody(snap panel.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h2 class="mb-2 text-lg font-semibold">Recent questions <span id="recent-count">%s</span></h2>
<div id="recent-error" class="%s">%s</div>
<table id="recent-table" class="%s">
<thead><tr><th class="%s">ID</th><th class="%s">Question</th><th class="%s">Category</th><th class="%s">Created</th><th class="%s"></th></tr></thead>
<tbody id="recent-rows">`,
			templ.EscapeString(snap.Count),
			visible(bannerClass, snap.Error != ""),
			templ.EscapeString(snap.Error),
			visible(tableClass, snap.TableVisible),
			headClass, headClass, headClass, headClass, headClass,
		)
		if err != nil {
			return err
		}

		if err := panel.TableBody(snap.Table).Render(ctx, w); err != nil {
			return err
		}

		_, err = io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}

// CategorySelect renders the category select with the given selection
func CategorySelect(options []panel.Option, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<select id="category-select" name="value" class="%s" data-sentinel="%s" data-prompt="%s">`,
			selectClass,
			templ.EscapeString(panel.SentinelValue),
			templ.EscapeString(panel.PromptMessage),
		)
		if err != nil {
			return err
		}

		for _, opt := range options {
			attr := ""
			if opt.Value == selected {
				attr = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(opt.Value), attr, templ.EscapeString(opt.Label)); err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, "</select>")
		return err
	})
}
