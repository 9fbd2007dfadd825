package analytics

import (
	"bufio"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// Nop is a sink that discards everything.
type Nop struct{}

// VisibleItems implements Sink.
func (Nop) VisibleItems(BrowseMode, bool, string) {}

// Close implements Sink.
func (Nop) Close() error { return nil }

// FileSink appends one JSON line per event to a log file. Not safe for
// concurrent use; mediadeck emits from the UI loop only.
type FileSink struct {
	session string
	f       *os.File
	w       *bufio.Writer
	now     func() time.Time
}

// NewFileSink opens (or creates) the event log at path.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{
		session: NewSessionID(),
		f:       f,
		w:       bufio.NewWriter(f),
		now:     time.Now,
	}, nil
}

// Session returns the sink's session identifier.
func (s *FileSink) Session() string { return s.session }

// VisibleItems implements Sink.
func (s *FileSink) VisibleItems(mode BrowseMode, visible bool, itemID string) {
	ev := Event{
		Session: s.session,
		Time:    s.now().UTC(),
		Mode:    mode.String(),
		Visible: visible,
		ItemID:  itemID,
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.w.Write(line)
	s.w.WriteByte('\n')
}

// Close implements Sink.
func (s *FileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
