package state

import (
	"github.com/samber/lo"
)

const shortHashLen = 4

// Snapshot projects a Repository into what the panels render: the branch
// list with the current one marked, the files, and the commits of the
// current branch newest first with the HEAD commit marked.
func Snapshot(r Repository) View {
	view := View{
		CurrentBranch: r.CurrentBranch,
		Head:          r.Head,
		CommitCount:   len(r.Commits),
	}

	view.Branches = lo.Map(r.Branches, func(name string, _ int) BranchView {
		return BranchView{Name: name, Current: name == r.CurrentBranch}
	})

	view.Files = lo.Map(r.Files, func(f FileEntry, _ int) FileView {
		return FileView{Name: f.Name, Status: f.Status, Editable: f.Status == StatusCommitted}
	})

	view.Commits = lo.Map(r.CommitsOnBranch(r.CurrentBranch), func(c Commit, _ int) CommitView {
		return CommitView{
			ID:        c.ID,
			Hash:      c.Hash,
			ShortHash: shortHash(c.Hash),
			Message:   c.Message,
			Branch:    c.Branch,
			IsHead:    c.Hash == r.Head,
		}
	})

	return view
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
