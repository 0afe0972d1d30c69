package handoff

import (
	"fmt"
)

// ErrProtocolViolation reports a node observing a state the protocol
// declares impossible (e.g. a queue with both a non-empty FIFO and a
// non-empty successor cache). These are bugs, not runtime conditions, so
// this type is raised via panic rather than returned. The checks are
// always on.
type ErrProtocolViolation struct {
	Node   interface{}
	Detail string
}

func (e ErrProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation on %v: %s", e.Node, e.Detail)
}

func violation(node interface{}, detail string) {
	panic(ErrProtocolViolation{Node: node, Detail: detail})
}
