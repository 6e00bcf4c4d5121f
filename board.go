package trellokeep

// Board is the raw structure returned by a BoardSource: the board's display
// name and its lists in board order, each carrying its card texts in card
// order. It is the input to Extract and carries no behavior.
type Board struct {
	Name  string
	Lists []SourceList
}

// SourceList is one list on a source board.
type SourceList struct {
	Name  string
	Cards []string
}

// Snapshot is the canonical in-memory representation of the selected lists
// and their items. It is created by Extract, optionally replaced by a
// Transformer, and consumed by Render. The JSON form is the schema the
// transform stage exchanges with the model:
//
//	{"lists": [{"name": "...", "items": ["...", ...]}, ...]}
type Snapshot struct {
	Lists []NamedList `json:"lists"`
}

// NamedList is a named, ordered sequence of item texts. Order is significant:
// it reflects board order after extraction, or the model's chosen order after
// a transform.
type NamedList struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ItemCount returns the total number of items across all lists.
func (s *Snapshot) ItemCount() int {
	var count int
	for _, list := range s.Lists {
		count += len(list.Items)
	}
	return count
}
