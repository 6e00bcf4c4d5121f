// Package trellokeep extracts cards from named lists on a Trello board and
// turns them into a Google Keep note, optionally reorganizing the items with
// an LLM along the way.
//
// The pipeline has four stages:
//
//   - Extract: select the requested lists from a raw board and build a
//     Snapshot, matching list names case-insensitively and preserving order.
//   - Transform (optional): hand the Snapshot plus user instructions to an
//     LLM and accept a filtered/reordered Snapshot back, after strict schema
//     validation.
//   - Render: produce either a plain text body or a checklist body.
//   - Create: hand the rendered note to a NoteCreator, typically the Google
//     Keep client in the keep package.
//
// The Pipeline type sequences these stages. The trello and keep packages
// implement the BoardSource and NoteCreator collaborator interfaces.
package trellokeep
