package squeeze

import (
	"fmt"
	"log"
	"time"
)

// EventType identifies what an Event reports.
type EventType int

const (
	EventCompressionStart   EventType = iota // Encode starts; Size is the input length
	EventCompressionEnd                      // Encode ends; Size is the container length
	EventDecompressionStart                  // Decode starts; Size is the container length
	EventDecompressionEnd                    // Decode ends; Size is the output length
	EventDictionaryReset                     // LZW dictionary cleared; Size is the output position
	EventLookupAnomaly                       // arithmetic symbol lookup fell back to the lowest symbol
)

var eventTypeNames = [...]string{
	EventCompressionStart:   "COMPRESSION_START",
	EventCompressionEnd:     "COMPRESSION_END",
	EventDecompressionStart: "DECOMPRESSION_START",
	EventDecompressionEnd:   "DECOMPRESSION_END",
	EventDictionaryReset:    "DICTIONARY_RESET",
	EventLookupAnomaly:      "LOOKUP_ANOMALY",
}

// String returns the name of the event type.
func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a progress notification emitted by a codec.
type Event struct {
	Type      EventType
	Algorithm Algorithm
	Size      int64
	Time      time.Time
	Msg       string
}

// String returns a string representation of this event.
func (evt *Event) String() string {
	if evt.Msg != "" {
		return fmt.Sprintf("%s %s: size=%d: %s", evt.Algorithm, evt.Type, evt.Size, evt.Msg)
	}
	return fmt.Sprintf("%s %s: size=%d", evt.Algorithm, evt.Type, evt.Size)
}

// Listener is an interface implemented by event processors.
type Listener interface {
	// ProcessEvent is called synchronously for every event.  It must not
	// retain evt after returning.
	ProcessEvent(evt *Event)
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(evt *Event)

// ProcessEvent calls fn(evt).
func (fn ListenerFunc) ProcessEvent(evt *Event) {
	fn(evt)
}

// LogListener writes every event to a *log.Logger.
type LogListener struct {
	logger *log.Logger
}

// NewLogListener returns a LogListener that writes to logger, or to the
// standard logger if logger is nil.
func NewLogListener(logger *log.Logger) *LogListener {
	if logger == nil {
		logger = log.Default()
	}
	return &LogListener{logger: logger}
}

// ProcessEvent logs evt.
func (l *LogListener) ProcessEvent(evt *Event) {
	if evt.Type == EventLookupAnomaly {
		l.logger.Printf("WARNING: %v", evt)
		return
	}
	l.logger.Print(evt)
}

var (
	_ Listener = ListenerFunc(nil)
	_ Listener = (*LogListener)(nil)
)

// notifier fans events out to the configured listeners.
type notifier struct {
	alg       Algorithm
	listeners []Listener
}

func (n notifier) notify(t EventType, size int64, msg string) {
	if len(n.listeners) == 0 {
		return
	}
	evt := &Event{Type: t, Algorithm: n.alg, Size: size, Time: time.Now(), Msg: msg}
	for _, l := range n.listeners {
		l.ProcessEvent(evt)
	}
}
