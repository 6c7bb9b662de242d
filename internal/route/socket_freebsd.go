//go:build freebsd

package route

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
)

// replyTimeout bounds the wait for the kernel's acknowledgement of a
// mutation. The kernel replies synchronously in practice.
const replyTimeout = 2 * time.Second

// routingSocket is a raw PF_ROUTE socket. Mutations written to it apply
// to the FIB selected with SO_SETFIB at open time; packing the FIB into
// spare rtm_flags bits is not part of the kernel protocol.
type routingSocket struct {
	fd  int
	pid int
}

// OpenSocket opens a routing control socket bound to fib.
func OpenSocket(fib int) (ControlSocket, error) {
	fd, err := unix.Socket(unix.AF_ROUTE, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.AF_UNSPEC)
	if err != nil {
		if err == unix.EPERM || err == unix.EACCES {
			return nil, errors.NewPermissionError("opening routing socket requires privileges", err)
		}
		return nil, errors.NewSystemError("opening routing socket", errnoOf(err), err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SETFIB, fib); err != nil {
		unix.Close(fd)
		return nil, errors.NewSystemError(
			fmt.Sprintf("selecting fib %d on routing socket", fib), errnoOf(err), err)
	}

	return &routingSocket{fd: fd, pid: os.Getpid()}, nil
}

// Send writes one encoded message and reads kernel messages until the
// reply with our (pid, seq) arrives, surfacing rtm_errno as a typed error.
// A successful write alone does not mean the route change took effect.
func (s *routingSocket) Send(msg []byte, seq int) error {
	if _, err := unix.Write(s.fd, msg); err != nil {
		// The kernel reports some failures (such as an existing
		// route) directly from write().
		return errors.NewSystemError("writing routing message", errnoOf(err), err)
	}

	deadline := time.Now().Add(replyTimeout)
	buf := make([]byte, 2048)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			log.Warnf("No kernel acknowledgement for routing message seq %d", seq)
			return nil
		}

		fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(remaining.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.NewSystemError("polling routing socket", errnoOf(err), err)
		}
		if n == 0 {
			log.Warnf("No kernel acknowledgement for routing message seq %d", seq)
			return nil
		}

		n, err = unix.Read(s.fd, buf)
		if err != nil {
			return errors.NewSystemError("reading routing reply", errnoOf(err), err)
		}
		if n < msgHeaderLen {
			continue
		}

		h := parseMsgHeader(buf[:n])
		if h.Version != rtmVersion || h.PID != s.pid || h.Seq != seq {
			continue
		}
		if h.Errno != 0 {
			errno := unix.Errno(h.Errno)
			return errors.NewSystemError(
				fmt.Sprintf("kernel rejected routing message: %v", errno), h.Errno, errno)
		}
		return nil
	}
}

func (s *routingSocket) Close() error {
	return unix.Close(s.fd)
}
