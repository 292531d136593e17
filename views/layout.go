package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the shared HTML document
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s | FAQ Studio</title>
<script src="https://cdn.tailwindcss.com"></script>
<script src="/assets/panel.js" defer></script>
</head>
<body class="min-h-screen bg-neutral-950 text-neutral-100">
<main class="mx-auto max-w-5xl p-6">
`, templ.EscapeString(title))
		if err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err = io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
