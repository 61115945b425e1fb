package util

import (
	"github.com/go-git/go-git/v5"
)

// GitShortSHA returns the abbreviated HEAD commit of the repository
// containing dir, or "" when dir is not inside a worktree. Synthesized
// stacks are tagged with it so a deployed unit can be traced back to the
// manifest revision that produced it.
func GitShortSHA(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	sha := head.Hash().String()
	if len(sha) < 7 {
		return sha
	}
	return sha[:7]
}
