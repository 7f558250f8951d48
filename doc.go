// Package lineedit provides an IO-agnostic, allocation-optional interactive
// line editor for character-oriented terminals.
//
// It consumes a byte stream from a terminal (keyboard plus escape
// sequences), maintains an internal model of the line being edited and of
// the visible terminal viewport, and produces a byte stream of printable
// characters and ANSI/VT escape sequences that drive the terminal display.
// It is useful for:
//   - REPLs and interactive shells that want readline-style editing
//   - Remote/embedded consoles talking over a plain byte transport
//   - Any program that needs line editing without pulling in a terminal
//     emulator or a curses-style full-screen library
//
// # Quick Start
//
//	ed := lineedit.New(reader, writer,
//	    lineedit.WithPrompt("> "),
//	    lineedit.WithUnboundedHistory(),
//	)
//	if err := ed.Initialize(); err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    line, err := ed.ReadLine()
//	    if err != nil {
//	        break
//	    }
//	    fmt.Println("you said:", line)
//	}
//
// # Architecture
//
// The pipeline is linear and synchronous at the level of one input byte:
//
//	bytes in -> Parser -> Event -> editor FSM -> OutputAction -> Output -> bytes out
//
// The package is organized around these core types:
//
//   - [Parser]: turns raw bytes into [Event]s (printable runes, control
//     characters, parsed CSI sequences)
//   - [LineBuffer]: the UTF-8 text being edited, indexed by character
//     position; bounded and unbounded variants
//   - [TerminalModel]: tracks the assumed cursor and scroll state of the
//     real terminal so escape sequences stay consistent with it
//   - [History] / [HistoryNavigator]: the recall history and its transient
//     up/down navigation state for one ReadLine call
//   - [Output]: expands one [OutputAction] into a lazy sequence of byte
//     chunks, mutating the TerminalModel as it goes
//   - [Editor]: ties all of the above together behind two operations,
//     Initialize and ReadLine
//
// # Transport
//
// The editor never touches a socket, a PTY, or a file descriptor directly.
// It only sees the terminal through two small contracts:
//
//	type ByteReader interface { ReadByte() (byte, error) }
//	type ByteWriter interface {
//	    Write(p []byte) (int, error)
//	    Flush() error
//	}
//
// This keeps the core usable equally over blocking stdin/stdout, a
// polling/non-blocking adapter, or a cooperative async task driving the
// same byte-at-a-time state machine.
//
// # Construction
//
// Editor is configured at construction with functional options, the same
// pattern used throughout this codebase's terminal types:
//
//	ed := lineedit.New(r, w,
//	    lineedit.WithBoundedBuffer(128),
//	    lineedit.WithBoundedHistory(4096),
//	    lineedit.WithPromptParts("user@host", "$ "),
//	    lineedit.WithLogger(myLogger),
//	)
//
// # Concurrency
//
// The core is strictly single-threaded and cooperative: no background
// work, no timers, no internal synchronization. Unlike most types in this
// codebase's ancestry, Editor does not lock itself for concurrent use —
// it is exclusively owned by the goroutine driving ReadLine.
//
// # History
//
// [RingHistory] stores entries NUL-delimited in one fixed byte buffer and
// evicts the oldest whole entries to make room for new ones; looking up an
// entry returns a copied string even when it wraps around the end of the
// buffer, trading the zero-copy two-range slice of the original no-heap
// design for a plain Go string API.
package lineedit
