//go:build !windows

package startup

import "github.com/1broseidon/frameless/internal/platform"

var errUnsupported = platform.ErrUnsupported

func runSchtasks(args ...string) ([]byte, error) {
	return nil, platform.ErrUnsupported
}

// IsElevated always reports false outside Windows.
func IsElevated() bool {
	return false
}

// RelaunchElevated is only available on Windows.
func RelaunchElevated(args []string) error {
	return platform.ErrUnsupported
}
