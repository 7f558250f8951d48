package lineedit

// ByteReader is the host contract for reading one byte of terminal input.
// It may block or suspend. Returning io.EOF from ReadLine's reads maps to an
// Aborted error; any other error maps to an IOError at the
// ReadLine/Initialize boundary.
type ByteReader interface {
	ReadByte() (byte, error)
}

// ByteWriter is the host contract for writing terminal output. Flush must
// guarantee that a subsequent read of the terminal's replies observes the
// previously written bytes.
type ByteWriter interface {
	Write(p []byte) (int, error)
	Flush() error
}

// BellProvider is notified whenever the editor wants to ring the terminal
// bell through some side channel other than emitting BEL bytes (most
// callers don't need this: BEL is already written to the ByteWriter).
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell notifications.
type NoopBell struct{}

func (NoopBell) Ring() {}

var _ BellProvider = NoopBell{}
