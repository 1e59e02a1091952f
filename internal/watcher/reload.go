package watcher

import (
	"context"
	"os"

	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/pubsub"
)

// Content is the payload of reload events. Err is set on FailedEvent.
type Content struct {
	Path string
	Text string
	Err  error
}

// Reload re-reads path on every signal from changes and publishes the
// result until ctx is done or changes is closed.
func Reload(ctx context.Context, path string, changes <-chan struct{}, pub pubsub.Publisher[Content]) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			publishFile(path, pub)
		}
	}
}

func publishFile(path string, pub pubsub.Publisher[Content]) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the watched file
	if err != nil {
		log.ErrorErr(log.CatWatcher, "reload failed", err, "path", path)
		pub.Publish(pubsub.FailedEvent, Content{Path: path, Err: err})
		return
	}

	n := pub.Publish(pubsub.ReloadedEvent, Content{Path: path, Text: string(data)})
	log.Debug(log.CatWatcher, "reloaded", "path", path, "bytes", len(data), "subscribers", n)
}
