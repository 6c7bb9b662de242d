//go:build freebsd

package route

import (
	"golang.org/x/sys/unix"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
)

// sysctlFibReader reads the FIB configuration scalars from the kernel.
type sysctlFibReader struct{}

// NewFibReader returns the kernel-backed FIB metadata reader.
func NewFibReader() FibReader {
	return sysctlFibReader{}
}

// FibCount reads net.fibs, the number of routing table instances.
func (sysctlFibReader) FibCount() (int, error) {
	n, err := unix.SysctlUint32("net.fibs")
	if err != nil {
		return 0, errors.NewSystemError("reading net.fibs", errnoOf(err), err)
	}
	return int(n), nil
}

// DefaultFib reads net.my_fibnum, the calling process's default FIB.
func (sysctlFibReader) DefaultFib() (int, error) {
	n, err := unix.SysctlUint32("net.my_fibnum")
	if err != nil {
		return 0, errors.NewSystemError("reading net.my_fibnum", errnoOf(err), err)
	}
	return int(n), nil
}
