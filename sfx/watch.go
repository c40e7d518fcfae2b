package sfx

import (
	"context"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"w4kit/emu/log"
)

// Delay between the last change to the watched file and the call to fn.
// Editors often save in multiple steps.
const watchDelay = 100 * time.Millisecond

// Watch calls fn once, then each time the file at path changes, until ctx is
// done. Errors returned by fn are logged, they don't stop the watch.
func Watch(ctx context.Context, path string, fn func() error) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory so that files replaced by a rename are seen.
	if err := watcher.Watch(filepath.Dir(path)); err != nil {
		return err
	}

	run := time.After(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-run:
			if err := fn(); err != nil {
				log.ModSfx.ErrorZ("watch").String("path", path).Error("err", err).End()
			}
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == path && !ev.IsAttrib() {
				log.ModSfx.DebugZ("file changed").String("path", path).End()
				run = time.After(watchDelay)
			}
		case err := <-watcher.Error:
			log.ModSfx.WarnZ("watcher").Error("err", err).End()
		}
	}
}
