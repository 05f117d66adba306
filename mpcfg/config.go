package mpcfg

import "fmt"

// Scheduler selects the send-side scheduler's path-selection policy
// (spec.md §4.4, §6).
type Scheduler string

// Scheduler values.
const (
	SchedulerDefault    Scheduler = "default" // lowest-SRTT-first, as implemented in mptcp.NextSubflow.
	SchedulerRoundRobin Scheduler = "roundrobin"
)

// A Config is one MCB's (or one process-wide default's) sysctl-style
// configuration.
type Config struct {
	Enabled    bool
	MSS        int
	NdiffPorts int
	Checksum   bool
	Scheduler  Scheduler
}

// An OptionFunc configures a Config.
type OptionFunc func(c *Config) error

// Default returns the kernel's documented defaults (spec.md §6).
func Default() Config {
	return Config{
		Enabled:    true,
		MSS:        1400,
		NdiffPorts: 1,
		Checksum:   false,
		Scheduler:  SchedulerDefault,
	}
}

// New builds a Config starting from Default and applying options in
// order.
func New(options ...OptionFunc) (Config, error) {
	c := Default()
	for _, o := range options {
		if err := o(&c); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// WithScheduler sets the scheduler, rejecting any value other than
// SchedulerDefault and SchedulerRoundRobin. Only SchedulerDefault has a
// matching policy in this module (mptcp.NextSubflow); no scheduler
// here implements SchedulerRoundRobin, which is only stored.
func WithScheduler(s Scheduler) OptionFunc {
	return func(c *Config) error {
		switch s {
		case SchedulerDefault, SchedulerRoundRobin:
			c.Scheduler = s
			return nil
		default:
			return fmt.Errorf("mpcfg: unknown scheduler %q", s)
		}
	}
}

// WithNdiffPorts sets mptcp_ndiffports, the number of subflows to
// open per additional path under per-ports mode (spec.md §4.7).
func WithNdiffPorts(n int) OptionFunc {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("mpcfg: mptcp_ndiffports must be >= 1, got %d", n)
		}
		c.NdiffPorts = n
		return nil
	}
}

// WithChecksum enables or disables DSS checksums.
func WithChecksum(enabled bool) OptionFunc {
	return func(c *Config) error {
		c.Checksum = enabled
		return nil
	}
}
