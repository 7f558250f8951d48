package lineedit

// Option configures an Editor at construction time, following the same
// functional-options shape used throughout this codebase's ancestry for
// constructing terminal types.
type Option func(*config)

type bufferKind int

const (
	bufferUnbounded bufferKind = iota
	bufferBounded
)

type historyKind int

const (
	historyNone historyKind = iota
	historyUnbounded
	historyBounded
)

type config struct {
	bufferKind  bufferKind
	bufferSize  int
	historyKind historyKind
	historySize int
	prompt      Prompt
	logger      Logger
	bell        BellProvider
}

func defaultConfig() *config {
	return &config{
		bufferKind:  bufferUnbounded,
		historyKind: historyNone,
		prompt:      NewPrompt("> "),
		logger:      NoopLogger{},
		bell:        NoopBell{},
	}
}

// WithBoundedBuffer uses a fixed-capacity line buffer of n bytes; inserts
// that would exceed it fail (ring the bell) rather than growing.
func WithBoundedBuffer(n int) Option {
	return func(c *config) {
		c.bufferKind = bufferBounded
		c.bufferSize = n
	}
}

// WithUnboundedBuffer uses a line buffer that grows on demand (the
// default).
func WithUnboundedBuffer() Option {
	return func(c *config) {
		c.bufferKind = bufferUnbounded
	}
}

// WithBoundedHistory enables a ring-buffer history of n bytes; the oldest
// whole entries are evicted to make room for new ones.
func WithBoundedHistory(n int) Option {
	return func(c *config) {
		c.historyKind = historyBounded
		c.historySize = n
	}
}

// WithUnboundedHistory enables a history that grows without limit.
func WithUnboundedHistory() Option {
	return func(c *config) {
		c.historyKind = historyUnbounded
	}
}

// WithNoHistory disables history (the default): Ctrl-N/Ctrl-P always bell.
func WithNoHistory() Option {
	return func(c *config) {
		c.historyKind = historyNone
	}
}

// WithPrompt sets the prompt text.
func WithPrompt(text string) Option {
	return func(c *config) {
		c.prompt = NewPrompt(text)
	}
}

// WithPromptParts sets the prompt from a concatenation of parts, useful
// when different segments carry different terminal styling.
func WithPromptParts(parts ...string) Option {
	return func(c *config) {
		c.prompt = NewPromptFromParts(parts...)
	}
}

// WithLogger installs a Logger for I/O-boundary diagnostics.
func WithLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithBellProvider installs a side-channel bell notifier, invoked whenever
// the editor rings the bell, in addition to writing BEL to the transport.
func WithBellProvider(bell BellProvider) Option {
	return func(c *config) {
		c.bell = bell
	}
}

func (c *config) newBuffer() LineBuffer {
	if c.bufferKind == bufferBounded {
		return newBoundedBuffer(c.bufferSize)
	}
	return newUnboundedBuffer()
}

func (c *config) newHistory() History {
	switch c.historyKind {
	case historyBounded:
		return NewRingHistory(c.historySize)
	case historyUnbounded:
		return NewUnboundedHistory()
	default:
		return NoHistory{}
	}
}
