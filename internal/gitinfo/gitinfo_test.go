package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

func commitFile(t *testing.T, repo *git.Repository, root, rel, content string, when time.Time) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(rel)
	require.NoError(t, err)
	sig := &object.Signature{Name: "tester", Email: "t@example.com", When: when}
	_, err = wt.Commit("update "+rel, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
}

func TestRepo_RemoteAndLastModified(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:devtutorials-km/tutorials.git"}})
	require.NoError(t, err)

	first := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	commitFile(t, repo, root, "docs/index.md", "# Home\n", first)
	commitFile(t, repo, root, "docs/about.md", "# About\n", second)

	r, err := Open(filepath.Join(root, "docs"))
	require.NoError(t, err)
	assert.Equal(t, root, r.Root())

	remote, err := r.RemoteURL("origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:devtutorials-km/tutorials.git", remote)

	_, err = r.RemoteURL("upstream")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	got, err := r.LastModified(filepath.Join(root, "docs", "index.md"))
	require.NoError(t, err)
	assert.True(t, got.Equal(first), "got %s", got)

	got, err = r.LastModified(filepath.Join(root, "docs", "about.md"))
	require.NoError(t, err)
	assert.True(t, got.Equal(second), "got %s", got)

	_, err = r.LastModified(filepath.Join(root, "docs", "missing.md"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestEditLinkPattern(t *testing.T) {
	tests := []struct {
		remote, branch, dir, want string
	}{
		{"git@github.com:devtutorials-km/tutorials.git", "main", "docs", "https://github.com/devtutorials-km/tutorials/edit/main/docs/:path"},
		{"https://github.com/devtutorials-km/tutorials", "", "./docs/", "https://github.com/devtutorials-km/tutorials/edit/main/docs/:path"},
		{"ssh://git@gitlab.example.com:2222/group/sub/repo.git", "develop", "", "https://gitlab.example.com/group/sub/repo/-/edit/develop/:path"},
		{"https://bitbucket.org/team/repo.git", "main", "site/docs", "https://bitbucket.org/team/repo/src/main/site/docs/:path?mode=edit"},
		{"https://git.home.example/inful/docs.git", "main", ".", "https://git.home.example/inful/docs/_edit/main/:path"},
		{"http://localhost:3000/org/repo.git", "main", "docs", "https://localhost:3000/org/repo/_edit/main/docs/:path"},
	}
	for _, tt := range tests {
		got, err := EditLinkPattern(tt.remote, tt.branch, tt.dir)
		require.NoError(t, err, tt.remote)
		assert.Equal(t, tt.want, got, tt.remote)
	}

	for _, bad := range []string{"", "not a remote", "https://github.com/"} {
		_, err := EditLinkPattern(bad, "main", "docs")
		assert.Error(t, err, bad)
	}
}

func TestApplyEditLink(t *testing.T) {
	s := site.Default()
	assert.False(t, ApplyEditLink(s, "https://example.com/edit/:path"), "configured pattern wins")

	s.ThemeConfig.EditLink = nil
	assert.True(t, ApplyEditLink(s, "https://example.com/edit/:path"))
	assert.Equal(t, "https://example.com/edit/:path", s.ThemeConfig.EditLink.Pattern)

	assert.False(t, ApplyEditLink(s, ""))
}
