//go:build !linux && !windows

package platform

// New returns the backend for the running platform.
func New() (Backend, error) {
	return nil, ErrUnsupported
}
