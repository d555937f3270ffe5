package settings

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
)

// settleDelay is how long the file must stay quiet before it is reloaded.
// Editors often write a file in several steps.
const settleDelay = 100 * time.Millisecond

// Watcher reloads a settings file whenever it changes on disk.
//
// Successful reloads are sent on Updates and failed ones on Errors. Both
// channels are closed once the watcher stops.
type Watcher struct {
	Updates <-chan *Settings
	Errors  <-chan error

	path    string
	watcher *fsnotify.Watcher
	updates chan *Settings
	errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the settings file at path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, eris.Wrapf(err, "resolving %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "creating file watcher")
	}

	// Watch the directory, as editors replace files by renaming over them.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, eris.Wrapf(err, "watching %s", filepath.Dir(abs))
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Settings, 4),
		errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	w.Updates = w.updates
	w.Errors = w.errors

	go w.run()
	return w, nil
}

func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.errors)
	defer close(w.updates)

	settle := time.NewTimer(settleDelay)
	if !settle.Stop() {
		<-settle.C
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle.Reset(settleDelay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, eris.Wrap(err, "watching settings"))

		case <-settle.C:
			w.send(Load(w.path))

		case <-w.closeCh:
			settle.Stop()
			return
		}
	}
}

func (w *Watcher) send(s *Settings, err error) {
	if err != nil {
		select {
		case w.errors <- err:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.updates <- s:
	case <-w.closeCh:
	}
}
