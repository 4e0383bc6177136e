package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	seed := Seed()
	require.NoError(t, seed.Check())
	assert.Equal(t, "main", seed.CurrentBranch)
	assert.Equal(t, []string{"main"}, seed.Branches)
	assert.Equal(t, []Commit{{ID: "1", Message: "Initial commit", Hash: "a1b2c3d", Branch: "main"}}, seed.Commits)
	assert.Equal(t, []FileEntry{{Name: "README.md", Status: StatusCommitted}}, seed.Files)
	assert.Equal(t, "a1b2c3d", seed.Head)

	head, ok := seed.HeadCommit()
	require.True(t, ok)
	assert.Equal(t, SeedMessage, head.Message)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Repository)
	}{
		{"no branches", func(r *Repository) { r.Branches = nil }},
		{"main missing", func(r *Repository) { r.Branches = []string{"dev"}; r.CurrentBranch = "dev" }},
		{"current not a branch", func(r *Repository) { r.CurrentBranch = "ghost" }},
		{"duplicate branch", func(r *Repository) { r.Branches = []string{"main", "main"} }},
		{"duplicate file", func(r *Repository) {
			r.Files = append(r.Files, FileEntry{Name: SeedFile, Status: StatusUntracked})
		}},
		{"commit on unknown branch", func(r *Repository) {
			r.Commits = append(r.Commits, Commit{ID: "2", Hash: "bbbbbbb", Branch: "ghost"})
		}},
		{"head dangling", func(r *Repository) { r.Head = "zzzzzzz" }},
		{"head without commits", func(r *Repository) { r.Commits = nil }},
		{"duplicate hash", func(r *Repository) {
			r.Commits = append(r.Commits, Commit{ID: "2", Hash: SeedHash, Branch: "main"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Seed()
			tt.mutate(&r)
			assert.ErrorIs(t, r.Check(), ErrInvariant)
		})
	}
}

func TestTransitionsCopyOnWrite(t *testing.T) {
	seed := Seed()

	withBranch := seed.WithBranch("dev")
	assert.Equal(t, []string{"main"}, seed.Branches)
	assert.Equal(t, []string{"main", "dev"}, withBranch.Branches)
	assert.True(t, withBranch.WithBranch("dev").Equal(withBranch), "existing branch is a no-op")

	switched := withBranch.WithCurrentBranch("dev")
	assert.Equal(t, "main", withBranch.CurrentBranch)
	assert.Equal(t, "dev", switched.CurrentBranch)
	assert.True(t, switched.WithCurrentBranch("ghost").Equal(switched))

	c := Commit{ID: "2", Message: "m", Hash: "bbbbbbb", Branch: "dev"}
	committed := switched.WithCommit(c)
	assert.Len(t, switched.Commits, 1)
	assert.Len(t, committed.Commits, 2)
	assert.Equal(t, "bbbbbbb", committed.Head)
	assert.Equal(t, SeedHash, switched.Head)

	modified := seed.WithFileStatus(SeedFile, StatusModified)
	f, _ := seed.File(SeedFile)
	assert.Equal(t, StatusCommitted, f.Status)
	f, _ = modified.File(SeedFile)
	assert.Equal(t, StatusModified, f.Status)
	assert.True(t, seed.WithFileStatus("ghost", StatusStaged).Equal(seed))
}

func TestWithStatusTransition(t *testing.T) {
	repo, _ := Seed().AddTestFile()
	repo = repo.ModifyFile(SeedFile)

	next, moved := repo.WithStatusTransition([]FileStatus{StatusModified, StatusUntracked}, StatusStaged)
	assert.Equal(t, 2, moved)
	assert.Len(t, next.FilesWithStatus(StatusStaged), 2)
	assert.Len(t, repo.FilesWithStatus(StatusStaged), 0)

	same, moved := next.WithStatusTransition([]FileStatus{StatusModified}, StatusStaged)
	assert.Zero(t, moved)
	assert.True(t, same.Equal(next))
}

func TestFileHelpers(t *testing.T) {
	t.Run("AddTestFile Names", func(t *testing.T) {
		repo, f := Seed().AddTestFile()
		assert.Equal(t, FileEntry{Name: "file2.txt", Status: StatusUntracked}, f)
		repo, f = repo.AddTestFile()
		assert.Equal(t, "file3.txt", f.Name)
		assert.NoError(t, repo.Check())
	})

	t.Run("AddTestFile Skips Taken Names", func(t *testing.T) {
		repo, err := Seed().AddFile("file3.txt")
		require.NoError(t, err)

		repo, f := repo.AddTestFile()
		assert.Equal(t, "file4.txt", f.Name)
		assert.NoError(t, repo.Check())
	})

	t.Run("AddFile Collision", func(t *testing.T) {
		seed := Seed()
		next, err := seed.AddFile(SeedFile)
		assert.ErrorIs(t, err, ErrFileExists)
		assert.True(t, next.Equal(seed))
		assert.Len(t, next.Files, 1)

		_, err = seed.AddFile("   ")
		assert.Error(t, err)
	})

	t.Run("ModifyFile", func(t *testing.T) {
		repo, _ := Seed().AddTestFile()
		modified := repo.ModifyFile(SeedFile)
		f, _ := modified.File(SeedFile)
		assert.Equal(t, StatusModified, f.Status)

		// untracked and unknown files are left alone
		assert.True(t, repo.ModifyFile("file2.txt").Equal(repo))
		assert.True(t, repo.ModifyFile("ghost").Equal(repo))
	})

	t.Run("NextEditable", func(t *testing.T) {
		repo, _ := Seed().AddTestFile()
		repo = repo.WithFileStatus("file2.txt", StatusCommitted)

		f, ok := repo.NextEditable("")
		require.True(t, ok)
		assert.Equal(t, SeedFile, f.Name)

		f, ok = repo.NextEditable(SeedFile)
		require.True(t, ok)
		assert.Equal(t, "file2.txt", f.Name)

		f, ok = repo.NextEditable("file2.txt")
		require.True(t, ok)
		assert.Equal(t, SeedFile, f.Name)

		_, ok = repo.ModifyFile(SeedFile).ModifyFile("file2.txt").NextEditable("")
		assert.False(t, ok)
	})
}

func TestFileStatusText(t *testing.T) {
	for _, s := range []FileStatus{StatusUntracked, StatusModified, StatusStaged, StatusCommitted} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back FileStatus
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	_, err := ParseFileStatus("deleted")
	assert.Error(t, err)
	_, err = FileStatus(42).MarshalText()
	assert.Error(t, err)
}
