package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// ValidateBranchName applies real git's ref-name rules to refs/heads/<name>
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name required")
	}
	if err := plumbing.NewBranchReferenceName(name).Validate(); err != nil {
		return fmt.Errorf("'%s' is not a valid branch name: %w", name, err)
	}
	return nil
}

// InvalidBranchMessage is what git prints for a malformed branch name
func InvalidBranchMessage(name string) string {
	return fmt.Sprintf("fatal: '%s' is not a valid branch name.", name)
}
