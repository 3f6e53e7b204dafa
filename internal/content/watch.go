package content

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a content directory whenever one of its YAML files
// changes and delivers each successfully loaded catalog on C. A reload
// that fails validation is logged and dropped; the previous catalog
// stays current.
type Watcher struct {
	dir  string
	fsw  *fsnotify.Watcher
	out  chan *Catalog
	done chan struct{}
	log  zerolog.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewWatcher starts watching dir.
func NewWatcher(dir string, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:  dir,
		fsw:  fsw,
		out:  make(chan *Catalog, 1),
		done: make(chan struct{}),
		log:  log,
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// C delivers reloaded catalogs. Only the latest unread catalog is kept.
// It is closed by Close.
func (w *Watcher) C() <-chan *Catalog {
	return w.out
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.out)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			w.log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("content change detected")
			c, err := LoadDir(w.dir)
			if err != nil {
				w.log.Warn().Err(err).Msg("content reload failed")
				continue
			}
			w.deliver(c)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("content watcher error")
		}
	}
}

func (w *Watcher) deliver(c *Catalog) {
	for {
		select {
		case w.out <- c:
			return
		default:
		}
		select {
		case <-w.out:
		default:
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".yaml" {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
