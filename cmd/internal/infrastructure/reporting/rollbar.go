// Package reporting forwards unexpected failures to Rollbar. Until Init is
// called with a token, every function is a no-op.
package reporting

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/rollbar/rollbar-go"

	"secretaria/cmd/internal/domain/entity"
)

var enabled bool

func Init(token, env, host string) {
	if token == "" {
		log.Info("rollbar token not set, error reporting disabled")
		return
	}

	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetServerHost(host)
	rollbar.SetEnabled(true)
	enabled = true
}

func Enabled() bool {
	return enabled
}

// Error reports err along with optional extras and the acting user.
func Error(err error, extras map[string]any, actor *entity.User) {
	if !enabled || err == nil {
		return
	}

	args := []any{err}
	if extras != nil {
		args = append(args, extras)
	}

	if actor != nil {
		rollbar.SetPerson(fmt.Sprint(actor.ID), actor.Nome, actor.Email)
	} else {
		rollbar.ClearPerson()
	}
	rollbar.Error(args...)
}

// Errorf logs the message and reports it.
func Errorf(format string, args ...any) {
	err := fmt.Errorf(format, args...)
	log.Error(err.Error())
	Error(err, nil, nil)
}

// Close flushes the queued reports, waiting at most timeout.
func Close(timeout time.Duration) {
	if !enabled {
		return
	}

	done := make(chan struct{})
	go func() {
		rollbar.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn("timed out flushing rollbar queue")
	}
}
