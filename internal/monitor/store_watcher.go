package monitor

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"bmitrack/internal/logger"
)

// StoreWatcher reports writes to the sqlite database file so the UI can
// reload a history that another process appended to.
type StoreWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan struct{}
	stop    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewStoreWatcher watches the directory holding dbPath. The directory, not
// the file: sqlite writes through journal/WAL siblings and renames, which a
// file-level watch loses track of.
func NewStoreWatcher(dbPath string) (*StoreWatcher, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	sw := &StoreWatcher{
		watcher: w,
		path:    abs,
		events:  make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	sw.wg.Add(1)
	go sw.loop()
	return sw, nil
}

// Events delivers at most one pending notification; bursts of sqlite page
// writes coalesce into a single refresh.
func (s *StoreWatcher) Events() <-chan struct{} { return s.events }

func (s *StoreWatcher) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stop:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			// matches the db file and its -wal/-journal siblings
			if !strings.HasPrefix(ev.Name, s.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case s.events <- struct{}{}:
			default:
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("Store watcher error: %v", err)
		}
	}
}

// Close stops the watch goroutine and releases the inotify handle.
func (s *StoreWatcher) Close() error {
	var err error
	s.once.Do(func() {
		close(s.stop)
		err = s.watcher.Close()
		s.wg.Wait()
	})
	return err
}
