package git

import (
	"errors"
	"fmt"

	"github.com/nicholas-fedor/harborlift/pkg/git/auth"
)

// Default commit identity used when none is configured.
const (
	DefaultAuthorName  = "harborlift"
	DefaultAuthorEmail = "harborlift@localhost"
	DefaultRemote      = "origin"
)

// ErrNothingToCommit indicates the file has no staged changes.
var ErrNothingToCommit = errors.New("no changes to commit")

// CommitOptions controls how a file change is committed.
type CommitOptions struct {
	Message     string      // Commit message
	AuthorName  string      // Author name; DefaultAuthorName when empty
	AuthorEmail string      // Author email; DefaultAuthorEmail when empty
	Push        bool        // Push the commit after creating it
	Remote      string      // Remote to push to; DefaultRemote when empty
	Auth        auth.Config // Credentials for the push
}

// Error represents Git-specific errors.
type Error struct {
	Op     string // Operation that failed
	Path   string // File or repository path
	Reason string // Human-readable reason
	Cause  error  // Underlying error
}

func (e Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("git %s failed for %s: %s: %v", e.Op, e.Path, e.Reason, e.Cause)
	}

	return fmt.Sprintf("git %s failed for %s: %s", e.Op, e.Path, e.Reason)
}

func (e Error) Unwrap() error {
	return e.Cause
}
