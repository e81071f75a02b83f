// Package clipuni exchanges text between a codepage-bound edit control and
// the clipboard in both plain single-byte form and the "text/unicode" wide
// form (NUL-terminated 16-bit code units, host byte order).
//
// Copying converts the selected text from the active codepage to wide form
// and publishes both representations. Pasting prefers the wide form,
// converting it back to the active codepage, and falls back to plain text.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	clipuni/             Root package with the shared Memory and Allocator interfaces
//	├── codepage/        Codepage table, active codepage sources, converter specs
//	├── uconv/           Transcoding sessions and codepage-specific fix-ups
//	├── sharedmem/       wazero linear-memory arena for giveable clipboard blocks
//	├── clipboard/       Format registry, exclusive-access board, host mirror
//	├── textctl/         Edit control collaborator and an in-memory buffer
//	├── report/          User-visible error channel
//	├── pipeline/        Copy/cut and paste pipelines, action dispatch
//	├── errors/          Structured error types
//	└── cmd/clipuni/     Terminal editor demonstrating the pipelines
//
// # Quick Start
//
//	arena, err := sharedmem.New(ctx, sharedmem.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer arena.Close(ctx)
//
//	board := clipboard.NewBoard(arena, clipboard.NewRegistry())
//	active := codepage.NewActive(850)
//
//	pc, err := pipeline.New(board, active, report.Log(logger), pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pc.Close()
//
//	buf := textctl.NewBuffer([]byte("hello"))
//	buf.Select(0, 5)
//	n := pc.Copy(buf) // n == 5
//
// # Resource Rules
//
// Clipboard access is exclusive: every pipeline call opens the board,
// defers the close and never leaves it held. Transcoding sessions live for
// exactly one conversion and are closed before the pipeline returns. The
// wide-text format atom is registered by pipeline.New and deleted by
// Context.Close.
package clipuni
