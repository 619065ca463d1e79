package documents

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
)

// watcher wraps an fsnotify watcher over the source directory. Any
// write or create under the directory surfaces as a SourceChanged
// message so the list reloads.
type watcher struct {
	fs *fsnotify.Watcher
}

func newWatcher(path string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}
	return &watcher{fs: fw}, nil
}

// waitCmd blocks until the next relevant event. The caller re-arms it
// after handling the resulting message.
func (w *watcher) waitCmd() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
					event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
					return messages.SourceChanged{}
				}
			case _, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				// Watch errors are non-fatal; keep waiting.
			}
		}
	}
}

// Close stops the watcher.
func (w *watcher) Close() {
	_ = w.fs.Close()
}
