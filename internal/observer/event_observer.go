package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-pattern-analyzer/internal/logger"
)

// EventType represents the type of pipeline event
type EventType string

const (
	// AnalysisStarted when an analysis begins
	AnalysisStarted EventType = "analysis_started"
	// ModelResponded when the vision model returned raw text
	ModelResponded EventType = "model_responded"
	// AnalysisCompleted when an analysis finishes successfully
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFailed when an analysis fails
	AnalysisFailed EventType = "analysis_failed"
)

// AnalysisEvent describes one pipeline event
type AnalysisEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	AnalysisID     string                 `json:"analysis_id,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Notifier fans pipeline events out to the subscribed observers
type Notifier struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewNotifier creates an empty notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer
func (n *Notifier) Subscribe(observer Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, observer)
}

// Unsubscribe removes an observer by name
func (n *Notifier) Unsubscribe(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, observer := range n.observers {
		if observer.GetObserverName() == name {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers the event to every subscribed observer
func (n *Notifier) Notify(ctx context.Context, event AnalysisEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	n.mu.RLock()
	observers := make([]Observer, len(n.observers))
	copy(observers, n.observers)
	n.mu.RUnlock()

	for _, observer := range observers {
		observer.OnEvent(ctx, event)
	}
}

// LoggingObserver writes every pipeline event to the structured log
type LoggingObserver struct{}

// NewLoggingObserver creates a logging observer
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{}
}

// OnEvent logs the event
func (o *LoggingObserver) OnEvent(_ context.Context, event AnalysisEvent) {
	entry := logger.WithComponent("observer").WithFields(logrus.Fields{
		"event_type":         event.EventType,
		"analysis_id":        event.AnalysisID,
		"processing_time_ms": event.ProcessingTime.Milliseconds(),
		"success":            event.Success,
	})
	for key, value := range event.Metadata {
		entry = entry.WithField(key, value)
	}
	if event.ErrorMessage != "" {
		entry.WithField("error_message", event.ErrorMessage).Warn("Pipeline event")
		return
	}
	entry.Info("Pipeline event")
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}
