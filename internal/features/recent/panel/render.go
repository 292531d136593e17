package panel

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const (
	// Columns is the number of table columns, action column included
	Columns = 5

	// EmptyMessage is shown in the placeholder row of an empty table
	EmptyMessage = "No records found."
)

const (
	cellClass   = "border-b border-neutral-800 p-2"
	deleteClass = "btn-del rounded bg-red-800 px-2 py-1 text-white cursor-pointer"
)

// Row is one rendered record. Cells hold sanitized id, question, category and
// created_at in that order.
type Row struct {
	ID    string
	Cells [4]string
}

// TableView is the render instructions for the table body: either Rows, or
// a single placeholder row when there is nothing to show.
type TableView struct {
	Rows        []Row
	Placeholder string
}

// Empty reports whether the view renders the placeholder row
func (v TableView) Empty() bool {
	return len(v.Rows) == 0
}

// Render turns a view model into table render instructions, preserving server order
func Render(vm ViewModel) TableView {
	if len(vm.Records) == 0 {
		return TableView{Placeholder: EmptyMessage}
	}

	rows := make([]Row, 0, len(vm.Records))
	for _, rec := range vm.Records {
		rows = append(rows, Row{
			ID: rec.ID,
			Cells: [4]string{
				Sanitize(rec.ID),
				Sanitize(rec.Question),
				Sanitize(rec.Category),
				Sanitize(rec.CreatedAt),
			},
		})
	}

	return TableView{Rows: rows}
}

// CountLabel formats the total for the count label; unknown totals are blank
func CountLabel(total *int64) string {
	if total == nil {
		return ""
	}
	return fmt.Sprintf("(%d)", *total)
}

// TableBody renders the rows of a TableView as <tr> elements
func TableBody(view TableView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if view.Empty() {
			if view.Placeholder == "" {
				return nil
			}
			_, err := fmt.Fprintf(w,
				`<tr><td colspan="%d" class="p-2 text-neutral-400">%s</td></tr>`,
				Columns, Sanitize(view.Placeholder))
			return err
		}

		for _, row := range view.Rows {
			if err := writeRow(w, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeRow(w io.Writer, row Row) error {
	id := templ.EscapeString(row.ID)

	if _, err := fmt.Fprintf(w, `<tr data-row-id="%s">`, id); err != nil {
		return err
	}
	for _, cell := range row.Cells {
		if _, err := fmt.Fprintf(w, `<td class="%s">%s</td>`, cellClass, cell); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w,
		`<td class="%s"><button type="button" class="%s" data-id="%s">Delete</button></td></tr>`,
		cellClass, deleteClass, id)
	return err
}
