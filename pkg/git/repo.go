package git

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/git/auth"
)

// CommitFile stages path in the repository that contains it and commits it.
//
// The repository is found by walking up from the file's directory. When
// opts.Push is set the current branch is pushed to opts.Remote afterwards.
//
// Parameters:
//   - ctx: Context for the push.
//   - path: File to commit.
//   - opts: Commit and push settings.
//
// Returns:
//   - string: Hash of the new commit.
//   - error: Error describing the failed operation, or ErrNothingToCommit.
func CommitFile(ctx context.Context, path string, opts CommitOptions) (string, error) {
	absolute, err := resolvePath(path)
	if err != nil {
		return "", Error{Op: "open", Path: path, Reason: "cannot resolve path", Cause: err}
	}

	repo, err := gogit.PlainOpenWithOptions(filepath.Dir(absolute), &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", Error{Op: "open", Path: path, Reason: "not inside a git repository", Cause: err}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", Error{Op: "open", Path: path, Reason: "repository has no worktree", Cause: err}
	}

	root, err := resolvePath(worktree.Filesystem.Root())
	if err != nil {
		return "", Error{Op: "open", Path: path, Reason: "cannot resolve worktree", Cause: err}
	}

	relative, err := filepath.Rel(root, absolute)
	if err != nil {
		return "", Error{Op: "add", Path: path, Reason: "file is outside the worktree", Cause: err}
	}

	relative = filepath.ToSlash(relative)

	if _, err := worktree.Add(relative); err != nil {
		return "", Error{Op: "add", Path: path, Reason: "failed to stage file", Cause: err}
	}

	status, err := worktree.Status()
	if err != nil {
		return "", Error{Op: "status", Path: path, Reason: "failed to read worktree status", Cause: err}
	}

	if fileStatus, ok := status[relative]; !ok || fileStatus.Staging == gogit.Unmodified {
		return "", Error{Op: "commit", Path: path, Reason: "file unchanged", Cause: ErrNothingToCommit}
	}

	hash, err := worktree.Commit(opts.Message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  valueOr(opts.AuthorName, DefaultAuthorName),
			Email: valueOr(opts.AuthorEmail, DefaultAuthorEmail),
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", Error{Op: "commit", Path: path, Reason: "failed to create commit", Cause: err}
	}

	logrus.WithFields(logrus.Fields{
		"file":   relative,
		"commit": hash.String(),
	}).Info("Committed file")

	if opts.Push {
		if err := push(ctx, repo, opts); err != nil {
			return hash.String(), Error{Op: "push", Path: path, Reason: "failed to push commit", Cause: err}
		}
	}

	return hash.String(), nil
}

func push(ctx context.Context, repo *gogit.Repository, opts CommitOptions) error {
	if err := auth.ValidateConfig(opts.Auth); err != nil {
		return err
	}

	method, err := auth.CreateAuthMethod(opts.Auth)
	if err != nil {
		return err
	}

	remote := valueOr(opts.Remote, DefaultRemote)

	err = repo.PushContext(ctx, &gogit.PushOptions{RemoteName: remote, Auth: method})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		logrus.WithField("remote", remote).Debug("Remote already up to date")

		return nil
	}

	if err != nil {
		return err
	}

	logrus.WithField("remote", remote).Info("Pushed commit")

	return nil
}

func resolvePath(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	dir, err := filepath.EvalSymlinks(filepath.Dir(absolute))
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, filepath.Base(absolute)), nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
