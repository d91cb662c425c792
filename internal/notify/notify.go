// Package notify holds the reminder collaborator implementations. Actual
// reminder delivery belongs to the platform; this process only records what
// would be scheduled.
package notify

import (
	"cudays/internal/model"
	"cudays/internal/schedule"
)

// LogNotifier writes every reminder action to the log.
type LogNotifier struct {
	logger schedule.Logger
}

var _ schedule.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier that logs reminder actions.
func NewLogNotifier(logger schedule.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Cancel(pk int) {
	n.logger.Info("reminder cancelled", "pk", pk)
}

func (n *LogNotifier) Schedule(e model.Event) {
	n.logger.Info("reminder scheduled", "pk", e.Pk, "title", e.Title, "day", e.Date.String(), "start", e.StartTime.String())
}

func (n *LogNotifier) BatchChanged(events []model.Event) {
	n.logger.Info("selected events changed", "count", len(events))
}
