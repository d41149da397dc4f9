package cli

import (
	"fmt"
	"log/slog"

	"github.com/atulty/calendar-app-sub000/internal/command"
	"github.com/atulty/calendar-app-sub000/internal/config"
	"github.com/atulty/calendar-app-sub000/internal/engine"
)

// newSession builds an executor whose registry already holds the configured
// default calendar, so the first line of a session can create events
// without any setup commands.
func newSession(cfg config.Config, ids engine.IDGenerator) (*command.Executor, error) {
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}
	reg := engine.NewRegistry(engine.WithIDGenerator(ids))
	if err := reg.CreateCalendar(cfg.DefaultCalendar, cfg.DefaultTimezone); err != nil {
		return nil, fmt.Errorf("bootstrapping calendar %q: %w", cfg.DefaultCalendar, err)
	}
	if err := reg.UseCalendar(cfg.DefaultCalendar); err != nil {
		return nil, err
	}
	slog.Debug("session ready", "calendar", cfg.DefaultCalendar, "timezone", cfg.DefaultTimezone)
	return command.NewExecutor(reg), nil
}
