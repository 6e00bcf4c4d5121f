package trellokeep

import "strings"

// Extract builds a Snapshot from a raw board. For each requested name it
// finds the first list on the board whose name matches case-insensitively and
// includes that list with its source casing and its cards in source order.
// Output list order follows the requested order, not the board's order.
//
// Empty-string cards are skipped. If any requested name has no match the
// whole extraction fails with a *NotFoundError naming every missing name; no
// partial snapshot is returned.
func Extract(board *Board, names []string) (*Snapshot, error) {
	snapshot := &Snapshot{Lists: make([]NamedList, 0, len(names))}
	var missing []string

	for _, name := range names {
		list, ok := findList(board, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		items := make([]string, 0, len(list.Cards))
		for _, card := range list.Cards {
			if card == "" {
				continue
			}
			items = append(items, card)
		}
		snapshot.Lists = append(snapshot.Lists, NamedList{
			Name:  list.Name,
			Items: items,
		})
	}

	if len(missing) > 0 {
		return nil, &NotFoundError{Board: board.Name, Names: missing}
	}
	return snapshot, nil
}

// findList returns the first list whose name matches case-insensitively.
// Boards with duplicate list names resolve to the first match.
func findList(board *Board, name string) (SourceList, bool) {
	for _, list := range board.Lists {
		if strings.EqualFold(list.Name, name) {
			return list, true
		}
	}
	return SourceList{}, false
}
