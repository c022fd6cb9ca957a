// Package watch reports changes made to the time log file by other programs.
package watch

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event describes a change to the watched file.
type Event struct {
	Path      string
	Operation string
}

// FileWatcher watches a single file. It watches the parent directory so that
// editors which save by rename-and-replace are still noticed.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan Event
	done    chan struct{}
	logger  *slog.Logger
}

// NewFileWatcher starts watching path. The file itself need not exist yet,
// but its directory must.
func NewFileWatcher(path string, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan Event, 1),
		done:    make(chan struct{}),
		logger:  logger,
	}
	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.done)
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path || event.Op == fsnotify.Chmod {
				continue
			}
			// Pending events are coalesced; consumers re-read the whole file anyway.
			select {
			case fw.events <- Event{Path: event.Name, Operation: event.Op.String()}:
			default:
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watch error", "path", fw.path, "error", err)
		}
	}
}

// Events returns the channel of change notifications. It is closed by Close.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

// Path returns the absolute path of the watched file.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Close stops watching and waits for the event loop to exit.
func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	return err
}
