// Package git reads the plugin version from the release tag on HEAD. It uses
// the go-git library, so no git binary is needed on the build machine.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// ErrNoTag is returned when no tag points at HEAD.
var ErrNoTag = errors.New("no tag points at HEAD")

var logger = zap.NewNop()

// SetLogger configures the logger for git operations. Pass nil to disable.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// openRepo opens a git repository at the specified path or current working directory.
// DetectDotGit walks up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logger.Debug("opening repository", zap.String("path", path))

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository reports whether path is inside a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// TagsAtHead returns the names of all tags, lightweight or annotated, that
// point at the HEAD commit, sorted by name.
func TagsAtHead(path string) ([]string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target, err := tagTarget(repo, ref)
		if err != nil {
			return err
		}
		if target == head.Hash() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}

	sort.Strings(names)
	logger.Debug("tags at HEAD", zap.String("head", head.Hash().String()), zap.Strings("tags", names))
	return names, nil
}

// tagTarget returns the commit a tag reference points at, peeling
// annotated tag objects.
func tagTarget(repo *git.Repository, ref *plumbing.Reference) (plumbing.Hash, error) {
	tag, err := repo.TagObject(ref.Hash())
	switch {
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	case err != nil:
		return plumbing.ZeroHash, fmt.Errorf("reading tag %s: %w", ref.Name().Short(), err)
	}

	commit, err := tag.Commit()
	if err != nil {
		// Tags of trees or blobs never match HEAD.
		return plumbing.ZeroHash, nil
	}
	return commit.Hash, nil
}

// VersionFromTag returns the version named by the tag on HEAD, with a
// leading "v" removed. When several tags point at HEAD the shortest name
// wins, so "v1.2.0" is preferred over "v1.2.0-rc.1".
func VersionFromTag(path string) (string, error) {
	names, err := TagsAtHead(path)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoTag
	}

	best := names[0]
	for _, n := range names[1:] {
		if len(n) < len(best) {
			best = n
		}
	}
	return strings.TrimPrefix(best, "v"), nil
}
