package hook

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hopebridge/hopebridge/pkg/model"
)

// ExecHook represents a single hook configuration
type ExecHook struct {
	Command []string `toml:"command"`
	Timeout int      `toml:"timeout"` // timeout in seconds, 0 means use default (60s)
	// Events limits the hook to the listed donation events, empty means all
	Events []string `toml:"events"`
}

// Invoke runs a hook with the provided environment variables
func (h *ExecHook) Invoke(env []string) error {
	if h == nil {
		return nil
	}
	if len(h.Command) == 0 {
		return errors.New("hook command is empty")
	}

	timeout := model.DefaultHookTimeout
	if h.Timeout > 0 {
		timeout = time.Duration(h.Timeout) * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var cmd *exec.Cmd
	if len(h.Command) == 1 {
		// Single command, use shell to parse
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", h.Command[0])
	} else {
		cmd = exec.CommandContext(ctx, h.Command[0], h.Command[1:]...)
	}

	cmd.Env = append(os.Environ(), env...)

	data, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Errorf("hook execution failed: %v, output: %s", err, string(data))
	}

	return nil
}

func (h *ExecHook) accepts(event string) bool {
	if len(h.Events) == 0 {
		return true
	}
	for _, e := range h.Events {
		if e == event {
			return true
		}
	}
	return false
}

// Runner fires hooks in the background so donors never wait on them.
type Runner struct {
	hooks []*ExecHook
	wg    sync.WaitGroup
}

func NewRunner(hooks []*ExecHook) *Runner {
	return &Runner{hooks: hooks}
}

// Notify starts every hook interested in the event. Failures are only logged.
func (r *Runner) Notify(event string, donation *model.Donation) {
	if len(r.hooks) == 0 {
		return
	}

	env := Env(event, donation)
	logger := log.WithFields(log.Fields{
		"event":       event,
		"donation_id": donation.ID,
	})

	for i, h := range r.hooks {
		if !h.accepts(event) {
			continue
		}

		r.wg.Add(1)
		go func(index int, h *ExecHook) {
			defer r.wg.Done()

			logger.Debugf("invoking hook %d", index+1)
			if err := h.Invoke(env); err != nil {
				logger.WithError(err).Errorf("hook %d failed", index+1)
				return
			}
			logger.Infof("hook %d finished", index+1)
		}(i, h)
	}
}

// Wait blocks until running hooks are done.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Env describes a donation to hook commands.
func Env(event string, donation *model.Donation) []string {
	return []string{
		"DONATION_EVENT=" + event,
		"DONATION_ID=" + donation.ID,
		"DONATION_STATUS=" + string(donation.Status),
		"DONATION_AMOUNT=" + strconv.FormatInt(donation.Amount, 10),
		"DONATION_CURRENCY=" + string(donation.Currency),
		"DONATION_TYPE=" + string(donation.Type),
		"DONATION_EMAIL=" + donation.Email,
	}
}
