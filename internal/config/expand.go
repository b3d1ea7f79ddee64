package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// Expand replaces variables in a string with their values.
// Supported variables:
//   - ${IFACE} - the configured wireless interface
func Expand(s, iface string) string {
	if s == "" || !strings.Contains(s, "${IFACE}") {
		return s
	}
	return strings.ReplaceAll(s, "${IFACE}", iface)
}

// ExpandArgv expands every element of a command line and returns a new slice.
func ExpandArgv(argv []string, iface string) []string {
	if len(argv) == 0 {
		return nil
	}
	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = Expand(arg, iface)
	}
	return out
}

// Commands is the fully expanded set of external command lines.
type Commands struct {
	Wireless    []string
	Address     []string
	Route       []string
	Reconfigure []string
	Alternative []string
}

// ExpandCommands resolves ${IFACE} in every configured command.
func (c *Config) ExpandCommands() Commands {
	iface := c.Network.Interface
	return Commands{
		Wireless:    ExpandArgv(c.Network.WirelessCommand, iface),
		Address:     ExpandArgv(c.Network.AddressCommand, iface),
		Route:       ExpandArgv(c.Network.RouteCommand, iface),
		Reconfigure: ExpandArgv(c.Recovery.Command, iface),
		Alternative: ExpandArgv(c.Recovery.Alternative, iface),
	}
}
