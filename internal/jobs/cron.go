package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger adapts zap to the logger interface cron uses for its own
// messages (skipped ticks, recovered panics).
type cronLogger struct {
	l *zap.SugaredLogger
}

// Info logs at debug level; cron reports every tick here.
func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

// Error logs at error level.
func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}

func newCron(logger *zap.Logger) *cron.Cron {
	cl := cronLogger{l: logger.Sugar()}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}
