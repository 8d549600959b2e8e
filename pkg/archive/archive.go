package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/jj-morpho/granola-digest/pkg/report"
)

// Manager keeps a git-versioned archive of fetched week documents,
// one markdown file per week named after its start date. Upstream
// regenerates summaries in place, so the git history is the only
// record of what a week's report looked like at fetch time.
type Manager struct {
	RepoPath string
	Push     bool
}

// NewManager creates a Manager rooted at repoPath, initializing the
// git repository if none exists yet.
func NewManager(repoPath string, push bool) (*Manager, error) {
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	_, err := git.PlainOpen(repoPath)
	if err == git.ErrRepositoryNotExists {
		_, err = git.PlainInit(repoPath, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open archive repo: %w", err)
	}
	return &Manager{RepoPath: repoPath, Push: push}, nil
}

// Snapshot writes one week's raw markdown into the archive working
// tree. Commit batches the writes of a refresh into one commit.
func (m *Manager) Snapshot(week report.WeekDocument) error {
	path := filepath.Join(m.RepoPath, week.Key()+".md")
	if err := os.WriteFile(path, []byte(week.RawMarkdown), 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", week.Key(), err)
	}
	return nil
}

// Commit stages and commits all pending snapshots. A clean worktree
// is not an error. When Push is set the commit is pushed to the
// remote using the default ssh key.
func (m *Manager) Commit(message string) error {
	r, err := git.PlainOpen(m.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to open repo: %w", err)
	}

	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	if _, err := w.Add("."); err != nil {
		return fmt.Errorf("failed to add changes: %w", err)
	}

	if message == "" {
		message = fmt.Sprintf("Snapshot %s", time.Now().Format(time.RFC3339))
	}
	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Granola Digest",
			Email: "digest@granola.local",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	if !m.Push {
		return nil
	}
	return m.push(r)
}

func (m *Manager) push(r *git.Repository) error {
	home, _ := os.UserHomeDir()
	sshKeyPath := filepath.Join(home, ".ssh", "id_rsa")

	publicKeys, err := ssh.NewPublicKeysFromFile("git", sshKeyPath, "")
	if err != nil {
		// No usable key; try the default transport anyway.
		err = r.Push(&git.PushOptions{})
	} else {
		err = r.Push(&git.PushOptions{Auth: publicKeys})
	}
	if err != nil {
		if err == git.NoErrAlreadyUpToDate {
			return nil
		}
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}
