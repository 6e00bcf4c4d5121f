package trellokeep

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/trellokeep/slogger"
)

// BoardSource fetches the raw structure of a named board. Implemented by
// trello.Client.
type BoardSource interface {
	Board(ctx context.Context, name string) (*Board, error)
}

// NoteCreator creates a remote note from a rendered body. Implemented by
// keep.Client.
type NoteCreator interface {
	CreateNote(ctx context.Context, title string, body NoteBody) (*Note, error)
}

// Note identifies a created note.
type Note struct {
	// Name is the resource name assigned by the note service.
	Name string

	// Title of the created note.
	Title string
}

// PipelineOptions configures a Pipeline.
type PipelineOptions struct {
	Source      BoardSource
	Notes       NoteCreator
	Transformer *Transformer
	Logger      slogger.Logger
}

// Pipeline sequences extraction, the optional transform, rendering, and note
// creation. Every stage failure aborts the run; no partial note is created
// and no stage is retried at this level.
type Pipeline struct {
	source      BoardSource
	notes       NoteCreator
	transformer *Transformer
	logger      slogger.Logger
}

// NewPipeline validates the options and returns a Pipeline. The Transformer
// may be nil when no filtering will ever be requested; Notes may be nil when
// only Build is used.
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("board source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogger.DefaultLogger
	}
	return &Pipeline{
		source:      opts.Source,
		notes:       opts.Notes,
		transformer: opts.Transformer,
		logger:      logger,
	}, nil
}

// RunOptions describes one run of the pipeline.
type RunOptions struct {
	// Board is the display name of the source board.
	Board string

	// Lists are the requested list names, in the order they should appear
	// in the note. Matching is case-insensitive.
	Lists []string

	// Title of the note. Falls back to the board's display name when empty.
	Title string

	// Format of the note body.
	Format Format

	// Instructions, when non-empty, activate the transform stage. Passed
	// verbatim to the model.
	Instructions string
}

// BuildResult is the rendered note before creation.
type BuildResult struct {
	Title    string
	Body     NoteBody
	Snapshot *Snapshot
}

// Build fetches the board, extracts the requested lists, optionally runs the
// transform, and renders the note body. It does not create a note.
func (p *Pipeline) Build(ctx context.Context, opts RunOptions) (*BuildResult, error) {
	board, err := p.source.Board(ctx, opts.Board)
	if err != nil {
		return nil, fmt.Errorf("error fetching board: %w", err)
	}
	p.logger.Debug("board fetched", "board", board.Name, "lists", len(board.Lists))

	snapshot, err := Extract(board, opts.Lists)
	if err != nil {
		return nil, err
	}
	p.logger.Info("lists extracted",
		"board", board.Name,
		"lists", len(snapshot.Lists),
		"items", snapshot.ItemCount())

	if opts.Instructions != "" {
		if p.transformer == nil {
			return nil, fmt.Errorf("instructions were provided but no transformer is configured")
		}
		snapshot, err = p.transformer.Transform(ctx, snapshot, opts.Instructions)
		if err != nil {
			return nil, err
		}
		p.logger.Info("snapshot transformed",
			"lists", len(snapshot.Lists),
			"items", snapshot.ItemCount())
	}

	if snapshot.ItemCount() == 0 {
		p.logger.Warn("snapshot contains no items", "board", board.Name)
	}

	body, err := Render(snapshot, opts.Format)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = board.Name
	}
	return &BuildResult{Title: title, Body: body, Snapshot: snapshot}, nil
}

// Run executes Build and hands the result to the note creator.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*Note, error) {
	if p.notes == nil {
		return nil, fmt.Errorf("note creator is required")
	}
	result, err := p.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	note, err := p.notes.CreateNote(ctx, result.Title, result.Body)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	p.logger.Info("note created", "title", note.Title, "name", note.Name)
	return note, nil
}
