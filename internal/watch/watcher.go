// Package watch reports changes to slot descriptors on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

// DefaultDebounce is how long a descriptor must stay quiet before its change
// is reported.
const DefaultDebounce = 250 * time.Millisecond

// Event reports that the descriptor of slot Index changed. Removed is true
// when the descriptor no longer exists once the change settled.
type Event struct {
	Index   int
	Removed bool
}

// Watcher watches the slot directories of one model directory. Only slot
// directories that exist when the Watcher is created are watched.
type Watcher struct {
	watcher  *fsnotify.Watcher
	modelDir string
	maxSlots int
	debounce time.Duration
	logger   *zap.Logger

	pending map[int]time.Time
	events  chan Event
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New validates cfg and starts watching every existing slot directory.
func New(cfg types.Config, opts ...Option) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		modelDir: cfg.ModelDir,
		maxSlots: cfg.MaxSlots,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		pending:  make(map[int]time.Time),
		events:   make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(w)
	}

	watched := 0
	for i := 0; i < w.maxSlots; i++ {
		dir := filepath.Join(w.modelDir, strconv.Itoa(i))
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		watched++
	}
	w.logger.Debug("watching slot directories",
		zap.String("model_dir", w.modelDir),
		zap.Int("count", watched))

	return w, nil
}

// Events returns the channel of settled changes. It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run processes filesystem events until ctx is done. It closes the
// underlying watcher and the Events channel before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer w.watcher.Close()

	tick := w.debounce / 4
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			if err := w.flush(ctx); err != nil {
				return nil
			}
		}
	}
}

// handleEvent records a change to a params.json for debouncing.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != types.DescriptorFileName {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	index, err := strconv.Atoi(filepath.Base(filepath.Dir(event.Name)))
	if err != nil || index < 0 || index >= w.maxSlots {
		return
	}
	w.logger.Debug("descriptor event",
		zap.Int("slot", index),
		zap.String("op", event.Op.String()))
	w.pending[index] = time.Now()
}

// flush emits events for slots whose last change is older than the debounce
// window. It returns ctx.Err() if the context ends while sending.
func (w *Watcher) flush(ctx context.Context) error {
	now := time.Now()
	for index, at := range w.pending {
		if now.Sub(at) < w.debounce {
			continue
		}
		delete(w.pending, index)

		path := filepath.Join(w.modelDir, strconv.Itoa(index), types.DescriptorFileName)
		_, statErr := os.Stat(path)
		ev := Event{Index: index, Removed: errors.Is(statErr, fs.ErrNotExist)}

		select {
		case w.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
