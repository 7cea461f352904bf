package bank

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the window in which repeated events for one path collapse
// into a single emit. Editors tend to fire several writes per save.
const debounce = 100 * time.Millisecond

// relevantOps are the filesystem changes that can alter a bank definition.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reports changes to bank files so the host can rebuild and swap
// the library on its own tick. Events carries the path of each changed
// .yaml/.yml file, debounced per path. Both channels are closed once Close
// has been called, so ranging over Events terminates cleanly.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
	stop sync.Once

	Events chan string
	Errors chan error
}

// NewWatcher watches the given directories for bank file changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	w := &Watcher{
		fsw:    fsw,
		done:   make(chan struct{}),
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
	}
	go w.run()
	return w, nil
}

// Close stops watching. Undelivered events are dropped. The watch
// goroutine closes Events and Errors on its way out, never Close itself:
// it may be blocked mid-send during a burst of file events, and only the
// sender can close its channels safely.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

// run filters, debounces and forwards fsnotify events until Close. Every
// send is paired with done so shutdown cannot deadlock on a full channel.
func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)
	lastEmit := make(map[string]time.Time)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 || !isBankFile(event.Name) {
				continue
			}
			now := time.Now()
			if now.Sub(lastEmit[event.Name]) < debounce {
				continue
			}
			lastEmit[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

func isBankFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
