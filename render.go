package trellokeep

import (
	"fmt"
	"strings"
)

// Format selects the note body representation produced by Render.
type Format string

const (
	// FormatText renders a single block of sectioned text. Easier to
	// reorder by hand in Keep after creation.
	FormatText Format = "text"

	// FormatChecklist renders a sequence of checkable entries with
	// section headers.
	FormatChecklist Format = "checklist"
)

// ParseFormat converts a string to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(value) {
	case "text":
		return FormatText, nil
	case "checklist", "list":
		return FormatChecklist, nil
	default:
		return "", fmt.Errorf("invalid note format %q (expected \"text\" or \"checklist\")", value)
	}
}

// NoteBody is the rendered note content handed to a NoteCreator. It is either
// a *TextBody or a *ChecklistBody.
type NoteBody interface {
	noteBody()
}

// TextBody is a note stored as one block of text: a header line per list
// followed by its items, sections separated by a blank line.
type TextBody struct {
	Text string
}

func (b *TextBody) noteBody() {}

// ChecklistBody is a note stored as an ordered sequence of checklist entries.
// Header entries mark sections; item entries are checkable by the end user.
// All entries start unchecked.
type ChecklistBody struct {
	Entries []ChecklistEntry
}

func (b *ChecklistBody) noteBody() {}

// ChecklistEntry is one line of a checklist note.
type ChecklistEntry struct {
	Text     string
	IsHeader bool
	Checked  bool
}

// Render converts a snapshot into a note body. It performs no reordering,
// no de-duplication, and no text rewriting. Lists with zero items still emit
// their header so the section is visible in the note. An empty snapshot
// renders to an empty body; that is not an error.
func Render(snapshot *Snapshot, format Format) (NoteBody, error) {
	switch format {
	case FormatText:
		return renderText(snapshot), nil
	case FormatChecklist:
		return renderChecklist(snapshot), nil
	default:
		return nil, fmt.Errorf("invalid note format %q", format)
	}
}

func renderText(snapshot *Snapshot) *TextBody {
	var sections []string
	for _, list := range snapshot.Lists {
		lines := make([]string, 0, len(list.Items)+1)
		lines = append(lines, list.Name)
		lines = append(lines, list.Items...)
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return &TextBody{Text: strings.Join(sections, "\n\n")}
}

func renderChecklist(snapshot *Snapshot) *ChecklistBody {
	entries := make([]ChecklistEntry, 0, snapshot.ItemCount()+len(snapshot.Lists))
	for _, list := range snapshot.Lists {
		entries = append(entries, ChecklistEntry{Text: list.Name, IsHeader: true})
		for _, item := range list.Items {
			entries = append(entries, ChecklistEntry{Text: item})
		}
	}
	return &ChecklistBody{Entries: entries}
}
