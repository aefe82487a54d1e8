// Package watch reports changes made by other programs to a file being
// edited.
package watch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/internal/log"
)

const defaultDebounce = 50 * time.Millisecond

// Change carries the full content of the file after a change settled.
type Change struct {
	Path    string
	Content []byte
}

type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before a change is
// reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.log = log.OrNop(l) }
}

// Watcher watches one file. It watches the parent directory so that files
// replaced by rename are still followed.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *zap.Logger

	fsw     *fsnotify.Watcher
	changes chan Change
	errs    chan error

	mu     sync.Mutex
	last   []byte
	closed bool

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New starts watching path. The current content of path is the baseline:
// only content that differs from it is reported.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(abs)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}

	w := &Watcher{
		path:     abs,
		debounce: defaultDebounce,
		log:      zap.NewNop(),
		fsw:      fsw,
		changes:  make(chan Change, 1),
		errs:     make(chan error, 1),
		last:     content,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) Path() string { return w.path }

// Changes delivers settled changes. It is closed by Close.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Errors delivers watch errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Expect records content about to be written by this process so the write
// is not reported back as an external change.
func (w *Watcher) Expect(content []byte) {
	w.mu.Lock()
	w.last = append([]byte(nil), content...)
	w.mu.Unlock()
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.fsw.Close()
	w.wg.Wait()
	close(w.changes)
	close(w.errs)
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("file event", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-timer.C:
			w.settle()
		}
	}
}

func (w *Watcher) settle() {
	content, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		w.send(nil, err)
		return
	}

	w.mu.Lock()
	same := bytes.Equal(content, w.last)
	if !same {
		w.last = content
	}
	w.mu.Unlock()
	if same {
		return
	}
	w.send(&Change{Path: w.path, Content: content}, nil)
}

func (w *Watcher) send(c *Change, err error) {
	if c != nil {
		select {
		case w.changes <- *c:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.errs <- err:
	case <-w.closeCh:
	default:
		w.log.Warn("dropped watch error", zap.Error(err))
	}
}
