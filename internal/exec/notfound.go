package exec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// commandNotFoundPatterns detect "command not found" from a wrapping shell
// (sh -c, env, sudo). These require exit code 127.
var commandNotFoundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bash: (\S+): command not found`),
	regexp.MustCompile(`(?i)sh: \d+: (\S+): not found`),
	regexp.MustCompile(`(?i)-bash: (\S+): No such file or directory`),
	regexp.MustCompile(`(?i)env: '?([^\s':]+)'?: No such file or directory`),
	regexp.MustCompile(`(?i)sudo: (\S+): command not found`),
	regexp.MustCompile(`(?i)(\S+): not found`),
	regexp.MustCompile(`(?i)(\S+): command not found`),
}

// IsCommandNotFound checks if the error output indicates a missing command.
// Returns the command name (if extractable) and whether it's a command-not-found error.
func IsCommandNotFound(stderr string, exitCode int) (string, bool) {
	// Exit code 127 is the standard for command not found
	if exitCode != 127 {
		return "", false
	}

	for _, pattern := range commandNotFoundPatterns {
		if matches := pattern.FindStringSubmatch(stderr); len(matches) > 1 {
			return strings.TrimSuffix(matches[1], ":"), true
		}
	}

	// Exit code is 127 but couldn't extract command name
	return "", true
}

// notFoundError builds the error for a tool missing from PATH.
func notFoundError(name string) error {
	suggestion := fmt.Sprintf(`'%s' wasn't found in PATH.

Fixes:

1. Install the package that provides '%s'
   (wireless-tools for iwconfig, iw, wpasupplicant for wpa_cli)

2. Point the config at a tool you do have, e.g.
   network:
     wireless_command: [iw, dev, "${IFACE}", link]`, name, name)

	return errors.New(errors.ErrExec,
		fmt.Sprintf("'%s' not found in PATH", name),
		suggestion)
}
