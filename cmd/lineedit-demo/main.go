// Command lineedit-demo is a minimal interactive shell built on the
// lineedit package: it puts the real terminal into raw mode, wires stdin
// and stdout as the editor's byte transport, and echoes back whatever
// line was accepted until Ctrl-C or Ctrl-D ends the session.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	lineedit "github.com/danielgatis/go-lineedit"
)

func main() {
	prompt := pflag.StringP("prompt", "p", "> ", "prompt text")
	historySize := pflag.IntP("history-size", "H", 4096, "ring history capacity in bytes, 0 to disable")
	boundedBuffer := pflag.IntP("bounded-buffer", "b", 0, "bound the line buffer to this many bytes, 0 for unbounded")
	pflag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lineedit-demo: logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sessionID := uuid.New().String()
	log := logger.With(zap.String("session", sessionID))

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatal("failed to enter raw mode", zap.Error(err))
	}
	defer term.Restore(fd, oldState)

	reader := &byteReader{r: bufio.NewReader(os.Stdin)}
	writer := &byteWriter{w: bufio.NewWriter(os.Stdout)}

	opts := []lineedit.Option{
		lineedit.WithPrompt(*prompt),
		lineedit.WithLogger(zapAdapter{log}),
	}
	if *historySize > 0 {
		opts = append(opts, lineedit.WithBoundedHistory(*historySize))
	}
	if *boundedBuffer > 0 {
		opts = append(opts, lineedit.WithBoundedBuffer(*boundedBuffer))
	} else {
		opts = append(opts, lineedit.WithUnboundedBuffer())
	}

	ed := lineedit.New(reader, writer, opts...)

	// Discard bytes already held in the bufio.Reader's own buffer so they
	// can't be misread as a reply to the init probe. This does not read from
	// the terminal: input still queued in the terminal or the OS is not
	// discarded.
	drainPending(reader)

	if err := ed.Initialize(); err != nil {
		log.Error("initialize failed", zap.Error(err))
		return
	}

	for {
		line, err := ed.ReadLine()
		if err != nil {
			var le *lineedit.Error
			if ok := asLineeditError(err, &le); ok && le.Kind == lineedit.ErrKindAborted {
				log.Info("session ended")
				return
			}
			log.Error("read line failed", zap.Error(err))
			return
		}
		writer.Write([]byte(fmt.Sprintf("you said: %s\r\n", line)))
		writer.Flush()
	}
}

func asLineeditError(err error, target **lineedit.Error) bool {
	le, ok := err.(*lineedit.Error)
	if ok {
		*target = le
	}
	return ok
}

func drainPending(r *byteReader) {
	for r.r.Buffered() > 0 {
		if _, err := r.r.ReadByte(); err != nil {
			return
		}
	}
}

type byteReader struct {
	r *bufio.Reader
}

func (b *byteReader) ReadByte() (byte, error) {
	return b.r.ReadByte()
}

type byteWriter struct {
	w *bufio.Writer
}

func (b *byteWriter) Write(p []byte) (int, error) {
	return b.w.Write(p)
}

func (b *byteWriter) Flush() error {
	return b.w.Flush()
}

type zapAdapter struct {
	log *zap.Logger
}

func (z zapAdapter) Debugf(format string, args ...any) {
	z.log.Sugar().Debugf(format, args...)
}

func (z zapAdapter) Errorf(format string, args ...any) {
	z.log.Sugar().Errorf(format, args...)
}
