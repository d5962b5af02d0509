package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrExportAbandoned is returned when the snapshot did not signal completion
// before the watchdog fired.
var ErrExportAbandoned = errors.New("export abandoned: completion signal not received")

// PreviewToggler is anything that can be forced into its preview state.
type PreviewToggler interface {
	SetPreviewMode(on bool)
}

// SnapshotFunc takes the actual snapshot once the preview state has settled.
// The returned channel is closed when the snapshot completes.
type SnapshotFunc func(ctx context.Context) (<-chan struct{}, error)

// Exporter runs print/export snapshots one at a time. Each export switches
// its target into preview mode, waits for the switch to settle, takes the
// snapshot and then reverts. The revert happens exactly once whether the
// snapshot completes, fails, is cancelled or never reports back.
type Exporter struct {
	mu       sync.Mutex
	settle   time.Duration
	watchdog time.Duration
}

func NewExporter(settle, watchdog time.Duration) *Exporter {
	return &Exporter{settle: settle, watchdog: watchdog}
}

// Export performs one snapshot of target.
func (e *Exporter) Export(ctx context.Context, target PreviewToggler, snapshot SnapshotFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var once sync.Once
	revert := func() { once.Do(func() { target.SetPreviewMode(false) }) }
	defer revert()

	target.SetPreviewMode(true)

	expired := make(chan struct{})
	timer := time.AfterFunc(e.watchdog, func() {
		revert()
		close(expired)
	})
	defer timer.Stop()

	if e.settle > 0 {
		wait := time.NewTimer(e.settle)
		select {
		case <-wait.C:
		case <-ctx.Done():
			wait.Stop()
			return ctx.Err()
		}
	}

	done, err := snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	// A snapshot that already finished counts even if the watchdog fired
	// while it ran.
	select {
	case <-done:
		return nil
	default:
	}
	select {
	case <-done:
		return nil
	case <-expired:
		return ErrExportAbandoned
	case <-ctx.Done():
		return ctx.Err()
	}
}
