// Package gitinfo derives edit links and last-modified times from the git
// repository that contains the documentation.
package gitinfo

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Repo is an opened git working tree.
type Repo struct {
	repo *git.Repository
	root string
}

// Open finds the repository enclosing dir.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.NotFoundError("no git repository found").WithContext("path", dir).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to open git repository").WithContext("path", dir).Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "repository has no worktree").WithContext("path", dir).Build()
	}
	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root is the absolute worktree root.
func (r *Repo) Root() string { return r.root }

// RemoteURL returns the first URL of the named remote.
func (r *Repo) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		if stderrors.Is(err, git.ErrRemoteNotFound) {
			return "", errors.NotFoundError("git remote not found").WithContext("remote", name).Build()
		}
		return "", errors.WrapError(err, errors.CategoryGit, "failed to read git remote").WithContext("remote", name).Build()
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", errors.GitError("git remote has no URL").WithContext("remote", name).Build()
	}
	return urls[0], nil
}

// RelPath returns p relative to the worktree root using forward slashes.
func (r *Repo) RelPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository %s", p, r.root)
	}
	return filepath.ToSlash(rel), nil
}

// LastModified returns the committer time of the newest commit touching p.
func (r *Repo) LastModified(p string) (time.Time, error) {
	rel, err := r.RelPath(p)
	if err != nil {
		return time.Time{}, errors.WrapError(err, errors.CategoryGit, "invalid path").WithContext("path", p).Build()
	}
	iter, err := r.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return time.Time{}, errors.WrapError(err, errors.CategoryGit, "failed to read git log").WithContext("path", rel).Build()
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil || commit == nil {
		return time.Time{}, errors.NotFoundError("no commit touches path").WithContext("path", rel).Build()
	}
	return commitTime(commit), nil
}

func commitTime(c *object.Commit) time.Time {
	return c.Committer.When
}

// EditLinkPattern builds an edit link pattern with a :path placeholder for the
// forge hosting remoteURL. contentDir is the content directory relative to the
// repository root.
func EditLinkPattern(remoteURL, branch, contentDir string) (string, error) {
	host, repoPath, err := parseRemote(remoteURL)
	if err != nil {
		return "", err
	}
	if branch == "" {
		branch = "main"
	}
	dir := strings.Trim(path.Clean(filepath.ToSlash(contentDir)), "/")
	if dir == "." {
		dir = ""
	}
	file := ":path"
	if dir != "" {
		file = dir + "/:path"
	}

	base := "https://" + host + "/" + repoPath
	lower := strings.ToLower(host)
	switch {
	case strings.Contains(lower, "github"):
		return base + "/edit/" + branch + "/" + file, nil
	case strings.Contains(lower, "gitlab"):
		return base + "/-/edit/" + branch + "/" + file, nil
	case strings.Contains(lower, "bitbucket"):
		return base + "/src/" + branch + "/" + file + "?mode=edit", nil
	default:
		// Gitea and Forgejo
		return base + "/_edit/" + branch + "/" + file, nil
	}
}

// parseRemote extracts the host and repository path from https, ssh and scp-like remotes.
func parseRemote(remote string) (host, repoPath string, err error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", "", errors.ValidationError("empty git remote URL").Build()
	}

	if !strings.Contains(remote, "://") {
		// scp-like: git@host:org/repo.git
		at := strings.Index(remote, "@")
		colon := strings.Index(remote, ":")
		if colon < 0 || colon < at {
			return "", "", errors.ValidationError("unsupported git remote URL").WithContext("url", remote).Build()
		}
		host = remote[at+1 : colon]
		repoPath = remote[colon+1:]
	} else {
		u, perr := url.Parse(remote)
		if perr != nil {
			return "", "", errors.WrapError(perr, errors.CategoryValidation, "invalid git remote URL").WithContext("url", remote).Build()
		}
		host = u.Hostname()
		if u.Scheme == "http" || u.Scheme == "https" {
			host = u.Host
		}
		repoPath = u.Path
	}

	repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
	if host == "" || repoPath == "" {
		return "", "", errors.ValidationError("unsupported git remote URL").WithContext("url", remote).Build()
	}
	return host, repoPath, nil
}

// ApplyEditLink sets the theme edit link pattern when none is configured.
// It reports whether s was changed.
func ApplyEditLink(s *site.Site, pattern string) bool {
	if pattern == "" {
		return false
	}
	if s.ThemeConfig.EditLink == nil {
		s.ThemeConfig.EditLink = &site.EditLink{}
	}
	if s.ThemeConfig.EditLink.Pattern != "" {
		return false
	}
	s.ThemeConfig.EditLink.Pattern = pattern
	return true
}
