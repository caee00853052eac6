package schedule

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/korulabs/koru/agent"
	"github.com/korulabs/koru/memory"
)

type addEventArgs struct {
	Title string `json:"title"`
	When  string `json:"when"`
}

type removeEventArgs struct {
	EventID int64 `json:"event_id"`
}

// Tools adapts a Scheduler to agent tools keyed by action name:
// add_event, list_events, remove_event.
//
// When mem is configured with an embedder, add_event also stores a memory
// note describing the event. The write is detached and best-effort: it may
// complete after the tool call returns, and failures are logged, never
// raised.
func Tools(s *Scheduler, mem *memory.Memory, logger *logrus.Logger) map[string]agent.Tool {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	addEvent := agent.Func([]string{"title", "when"}, func(ctx context.Context, in addEventArgs) (any, error) {
		id, err := s.AddEvent(ctx, in.Title, in.When)
		if err != nil {
			return nil, err
		}

		if mem != nil && mem.HasEmbedder() {
			note := fmt.Sprintf("Event: %s at %s (id=%d)", in.Title, in.When, id)
			go func() {
				if _, err := mem.StoreText(context.Background(), note, nil); err != nil {
					logger.WithError(err).Debug("event memory note dropped")
				}
			}()
		}
		return fmt.Sprintf("event_id=%d", id), nil
	})

	listEvents := agent.Func(nil, func(ctx context.Context, _ struct{}) (any, error) {
		events, err := s.ListEvents(ctx)
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			return "No events.", nil
		}
		lines := make([]string, 0, len(events))
		for _, e := range events {
			lines = append(lines, fmt.Sprintf("%d\t%s\t%s", e.ID, e.When, e.Title))
		}
		return strings.Join(lines, "\n"), nil
	})

	removeEvent := agent.Func([]string{"event_id"}, func(ctx context.Context, in removeEventArgs) (any, error) {
		ok, err := s.RemoveEvent(ctx, in.EventID)
		if err != nil {
			return nil, err
		}
		if ok {
			return "removed", nil
		}
		return "not_found", nil
	})

	return map[string]agent.Tool{
		"add_event":    addEvent,
		"list_events":  listEvents,
		"remove_event": removeEvent,
	}
}
