package mpcfg

import (
	"fmt"
	"strconv"
)

// Sysctl keys, matching the kernel's /proc/sys/net/mptcp/ knob names
// (spec.md §6).
const (
	KeyEnabled    = "mptcp_enabled"
	KeyMSS        = "mptcp_mss"
	KeyNdiffPorts = "mptcp_ndiffports"
	KeyChecksum   = "mptcp_checksum"
	KeyScheduler  = "mptcp_scheduler"
)

// Sysctl renders the named knob's current value in the kernel's own
// string form (bool knobs as "0"/"1"), the same "structured value to
// canonical string" role ovs/codegen.go plays for flow-mod commands.
func (c Config) Sysctl(key string) (string, error) {
	switch key {
	case KeyEnabled:
		return boolString(c.Enabled), nil
	case KeyMSS:
		return strconv.Itoa(c.MSS), nil
	case KeyNdiffPorts:
		return strconv.Itoa(c.NdiffPorts), nil
	case KeyChecksum:
		return boolString(c.Checksum), nil
	case KeyScheduler:
		return string(c.Scheduler), nil
	default:
		return "", fmt.Errorf("mpcfg: unknown sysctl key %q", key)
	}
}

// SetSysctl parses value in the kernel's string form and applies it to
// the named knob, following the same string-keyed switch dispatch as
// ovs/matchparser.go's parseMatch.
func (c *Config) SetSysctl(key, value string) error {
	switch key {
	case KeyEnabled:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("mpcfg: %s: %w", key, err)
		}
		c.Enabled = b
	case KeyMSS:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("mpcfg: %s: %w", key, err)
		}
		if n <= 0 {
			return fmt.Errorf("mpcfg: %s must be positive, got %d", key, n)
		}
		c.MSS = n
	case KeyNdiffPorts:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("mpcfg: %s: %w", key, err)
		}
		return WithNdiffPorts(n)(c)
	case KeyChecksum:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("mpcfg: %s: %w", key, err)
		}
		c.Checksum = b
	case KeyScheduler:
		return WithScheduler(Scheduler(value))(c)
	default:
		return fmt.Errorf("mpcfg: unknown sysctl key %q", key)
	}
	return nil
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBool(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("expected \"0\" or \"1\", got %q", s)
	}
}
