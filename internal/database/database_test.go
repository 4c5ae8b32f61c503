package database

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/event"
)

func TestCommandMonitor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	monitor := NewCommandMonitor(logger, 100*time.Millisecond)

	t.Run("fast command is silent", func(t *testing.T) {
		buf.Reset()
		monitor.Succeeded(context.Background(), &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", Duration: time.Millisecond},
		})
		assert.Empty(t, buf.String())
	})

	t.Run("slow command warns", func(t *testing.T) {
		buf.Reset()
		monitor.Succeeded(context.Background(), &event.CommandSucceededEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "aggregate", Duration: time.Second},
		})
		assert.Contains(t, buf.String(), "MongoDB slow command")
		assert.Contains(t, buf.String(), "command=aggregate")
	})

	t.Run("failure is logged", func(t *testing.T) {
		buf.Reset()
		monitor.Failed(context.Background(), &event.CommandFailedEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert"},
			Failure:              "connection reset",
		})
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "connection reset")
	})
}
