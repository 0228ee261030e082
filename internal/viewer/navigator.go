package viewer

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Navigator opens a target in some viewer.
type Navigator interface {
	Navigate(ctx context.Context, target Target) error
}

// WriterNavigator prints targets to a writer, for terminals without a
// document viewer.
type WriterNavigator struct {
	W io.Writer
}

// Navigate implements Navigator.
func (n WriterNavigator) Navigate(_ context.Context, target Target) error {
	_, err := fmt.Fprintf(n.W, "route:     %s\nfile link: %s\nlocal:     %s\n",
		target.Route, target.FileLink, target.LocalPath)
	return err
}

// RecordingNavigator collects targets instead of opening them.
type RecordingNavigator struct {
	mu      sync.Mutex
	targets []Target
}

// Navigate implements Navigator.
func (n *RecordingNavigator) Navigate(_ context.Context, target Target) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
	return nil
}

// Targets returns a copy of the recorded targets.
func (n *RecordingNavigator) Targets() []Target {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Target(nil), n.targets...)
}
