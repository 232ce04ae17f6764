// Package watch reports debounced changes to log files under a directory tree.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/papapumpkin/daylog/internal/logline"
)

// Debounce is how long a file must stay quiet before its change is reported.
const Debounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // file written or created
	ChangeRemoved                    // file deleted or renamed away
)

// String returns a lower-case name for the kind.
func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is one debounced file change.
type Change struct {
	Kind ChangeKind
	File string
}

// Watcher monitors a directory tree for changes to files with one extension.
type Watcher struct {
	Dir     string
	Ext     string
	Changes <-chan Change

	changes chan Change
	quit    chan struct{}
	done    chan struct{}
	started bool
	stop    sync.Once
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

// New creates a watcher for dir reporting files whose extension matches ext.
func New(dir, ext string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ch := make(chan Change, 16)
	return &Watcher{
		Dir:     dir,
		Ext:     ext,
		Changes: ch,
		changes: ch,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
		logger:  logger,
	}, nil
}

// Start adds every directory under Dir and begins watching.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. It is safe to call more
// than once and after a failed or missing Start.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		close(w.quit)
		w.watcher.Close()
		if w.started {
			<-w.done
		}
		close(w.changes)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						w.logger.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if !logline.HasExt(event.Name, w.Ext) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for file, t := range pending {
				if now.Sub(t) >= Debounce {
					delete(pending, file)
					if !w.emit(file) {
						return
					}
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-w.quit:
			return
		}
	}
}

// emit reports a change, returning false if the watcher is stopping.
func (w *Watcher) emit(file string) bool {
	c := Change{Kind: ChangeModified, File: file}
	if _, err := os.Stat(file); err != nil {
		c.Kind = ChangeRemoved
	}
	select {
	case w.changes <- c:
		return true
	case <-w.quit:
		return false
	}
}
