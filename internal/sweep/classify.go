package sweep

import (
	"fmt"
	"strings"
	"time"
)

// StaleAfter is how long a local-only worktree may go untouched.
const StaleAfter = 4 * 7 * 24 * time.Hour

const week = 7 * 24 * time.Hour

// Reason explains why a worktree is stale.
type Reason int

const (
	RemoteDeleted Reason = iota + 1
	InactiveLocal
)

func (r Reason) String() string {
	switch r {
	case RemoteDeleted:
		return "remote deleted"
	case InactiveLocal:
		return "inactive"
	default:
		return "unknown"
	}
}

// Status is what the scanner knows about one worktree.
type Status struct {
	Name   string
	Branch string
	// Upstream is the configured upstream ref, empty when none.
	Upstream string
	// UpstreamExists reports whether Upstream still resolves after pruning.
	UpstreamExists bool
	// Age is the time since the newest modification under the worktree.
	// Only meaningful without an upstream.
	Age time.Duration
}

// Classify returns the stale reason for s, if any.
func Classify(s Status) (Reason, bool) {
	switch {
	case s.Upstream != "" && !s.UpstreamExists:
		return RemoteDeleted, true
	case s.Upstream == "" && s.Age > StaleAfter:
		return InactiveLocal, true
	default:
		return 0, false
	}
}

// Detail renders the user-facing explanation for a classified status.
func Detail(r Reason, s Status) string {
	switch r {
	case RemoteDeleted:
		return fmt.Sprintf("upstream %s deleted", strings.TrimPrefix(s.Upstream, "refs/remotes/"))
	case InactiveLocal:
		return fmt.Sprintf("no upstream, untouched for %d weeks", int(s.Age/week))
	default:
		return ""
	}
}
