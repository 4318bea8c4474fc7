package database

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/topology"
)

// ErrUnavailable marks errors caused by not reaching the database at all: no server
// could be selected in time, the network failed, or the client was shut down.
// Everything else (bad queries, decode failures) is left unmarked.
var ErrUnavailable = errors.New("database unavailable")

// unavailableError keeps the driver error reachable through errors.As while also
// matching ErrUnavailable through errors.Is.
type unavailableError struct {
	err error
}

func (e *unavailableError) Error() string { return e.err.Error() }

func (e *unavailableError) Unwrap() []error { return []error{ErrUnavailable, e.err} }

// classify wraps err with ErrUnavailable when it is a connectivity failure.
func classify(err error) error {
	if err == nil || !IsConnectivity(err) {
		return err
	}
	return &unavailableError{err: err}
}

// IsConnectivity reports whether err comes from failing to establish or select a
// connection, as opposed to a failure after a server answered. Server-side time limits
// (MaxTimeMSExpired, ExceededTimeLimitError) are not connectivity failures.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return true
	}
	// Requests carry no deadline of their own, so a deadline here comes from the
	// driver's selection or connect timeouts.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return isNetError(err) || mongo.IsNetworkError(err)
}

// isNetError reports whether err carries a resolver or socket failure, such as the SRV
// lookup a mongodb+srv URI needs before a client can be built.
func isNetError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Unavailable wraps err so that it matches ErrUnavailable. Test fakes use it to
// simulate an unreachable server.
func Unavailable(err error) error {
	if err == nil {
		err = fmt.Errorf("server selection timeout")
	}
	return &unavailableError{err: err}
}
