package keep

import (
	"fmt"

	"github.com/deepnoodle-ai/trellokeep"
)

// The Keep API note shape: a note holds either a text body or a list body.
// https://developers.google.com/keep/api/reference/rest/v1/notes

type noteRequest struct {
	Title string   `json:"title"`
	Body  noteBody `json:"body"`
}

type noteBody struct {
	Text *textContent `json:"text,omitempty"`
	List *listContent `json:"list,omitempty"`
}

type textContent struct {
	Text string `json:"text"`
}

type listContent struct {
	ListItems []listItem `json:"listItems"`
}

type listItem struct {
	Text           textContent `json:"text"`
	Checked        bool        `json:"checked"`
	ChildListItems []listItem  `json:"childListItems,omitempty"`

	// isHeader is not part of the API shape; it tracks which top-level
	// items accept children while the request is assembled.
	isHeader bool
}

type noteResponse struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// newNoteRequest converts a rendered note body to the Keep API shape. Text
// bodies map directly. Checklist bodies map header entries to top-level list
// items and the item entries that follow a header to its childListItems, so
// sections render as indented groups in Keep. Item entries that appear
// before any header become top-level items.
func newNoteRequest(title string, body trellokeep.NoteBody) (*noteRequest, error) {
	switch b := body.(type) {
	case *trellokeep.TextBody:
		return &noteRequest{
			Title: title,
			Body:  noteBody{Text: &textContent{Text: b.Text}},
		}, nil
	case *trellokeep.ChecklistBody:
		items := make([]listItem, 0, len(b.Entries))
		for _, entry := range b.Entries {
			item := listItem{
				Text:    textContent{Text: entry.Text},
				Checked: entry.Checked,
			}
			if !entry.IsHeader && len(items) > 0 && items[len(items)-1].isHeader {
				parent := &items[len(items)-1]
				parent.ChildListItems = append(parent.ChildListItems, item)
				continue
			}
			item.isHeader = entry.IsHeader
			items = append(items, item)
		}
		return &noteRequest{
			Title: title,
			Body:  noteBody{List: &listContent{ListItems: items}},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported note body type: %T", body)
	}
}
