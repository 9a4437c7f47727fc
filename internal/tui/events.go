package tui

import (
	"sync"

	"github.com/handiism/albumart-downloader/internal/download"
)

// eventSink buffers progress events from the download goroutines until the
// UI picks them up on its next tick.
type eventSink struct {
	mu     sync.Mutex
	events []download.ProgressEvent
}

func (s *eventSink) push(event download.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *eventSink) drain() []download.ProgressEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}
