package panel

import "strings"

var markupReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Sanitize replaces < and > with their entities. Nothing else is encoded.
func Sanitize(s string) string {
	return markupReplacer.Replace(s)
}
