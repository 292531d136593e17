package panel

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderHTML(t *testing.T, view TableView) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, TableBody(view).Render(context.Background(), &buf))
	return buf.String()
}

func TestRenderRowCount(t *testing.T) {
	for _, n := range []int{0, 1, 7, PageSize} {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			vm := ViewModel{}
			for i := 0; i < n; i++ {
				vm.Records = append(vm.Records, Record{ID: fmt.Sprint(i + 1), Question: fmt.Sprintf("q%d", i)})
			}

			view := Render(vm)
			html := renderHTML(t, view)

			if n == 0 {
				assert.True(t, view.Empty())
				assert.Equal(t, 1, strings.Count(html, "<tr"))
				assert.Contains(t, html, `colspan="5"`)
				assert.Contains(t, html, EmptyMessage)
				return
			}

			assert.Len(t, view.Rows, n)
			assert.Equal(t, n, strings.Count(html, "<tr data-row-id="))
			assert.Equal(t, n, strings.Count(html, `class="btn-del`))
		})
	}
}

func TestRenderPreservesOrderAndBlanks(t *testing.T) {
	view := Render(ViewModel{Records: []Record{
		{ID: "9", Question: "newest", Category: "diger", CreatedAt: "2025-03-01"},
		{ID: "3"},
		{ID: "5", Question: "middle"},
	}})

	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{"9", "3", "5"}, []string{view.Rows[0].ID, view.Rows[1].ID, view.Rows[2].ID})
	assert.Equal(t, [4]string{"3", "", "", ""}, view.Rows[1].Cells)

	html := renderHTML(t, view)
	assert.NotContains(t, html, "undefined")
	assert.NotContains(t, html, "null")
	assert.Contains(t, html, `<tr data-row-id="9">`)
	assert.Contains(t, html, `data-id="5"`)
}

func TestRenderEscapesMarkup(t *testing.T) {
	view := Render(ViewModel{Records: []Record{
		{ID: "1", Question: "<script>alert('x')</script>", Category: "<b>bold</b>"},
	}})

	html := renderHTML(t, view)
	assert.Contains(t, html, "&lt;script&gt;alert('x')&lt;/script&gt;")
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>")
}

func TestTableBodyAfterClear(t *testing.T) {
	assert.Empty(t, renderHTML(t, TableView{}))
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "", CountLabel(nil))
	assert.Equal(t, "(0)", CountLabel(int64Ptr(0)))
	assert.Equal(t, "(1234)", CountLabel(int64Ptr(1234)))
}
