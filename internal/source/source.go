// Package source loads the code to analyze from files, stdin or a git
// revision. Loaded code is only held in memory.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// MaxBytes caps how much code is read from any source.
const MaxBytes = 1 << 20

// Stdin is the path that selects standard input.
const Stdin = "-"

// Snippet is loaded code and where it came from.
type Snippet struct {
	Name string
	Code string
}

// Read loads path, or stdin when path is "-".
func Read(path string, stdin io.Reader) (Snippet, error) {
	if path == Stdin {
		code, err := readLimited(stdin)
		if err != nil {
			return Snippet{}, fmt.Errorf("read stdin: %w", err)
		}
		return Snippet{Name: "stdin", Code: code}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Snippet{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	code, err := readLimited(f)
	if err != nil {
		return Snippet{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Snippet{Name: path, Code: code}, nil
}

// ReadRevision loads path as of rev (a branch, tag or hash) from the git
// repository containing repoDir.
func ReadRevision(repoDir, rev, path string) (Snippet, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Snippet{}, fmt.Errorf("open repository: %w", err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return Snippet{}, fmt.Errorf("resolve %s: %w", rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return Snippet{}, fmt.Errorf("load commit %s: %w", hash, err)
	}

	file, err := commit.File(filepath.ToSlash(path))
	if err != nil {
		return Snippet{}, fmt.Errorf("%s at %s: %w", path, rev, err)
	}
	if file.Size > MaxBytes {
		return Snippet{}, fmt.Errorf("%s at %s: file larger than %d bytes", path, rev, MaxBytes)
	}

	code, err := file.Contents()
	if err != nil {
		return Snippet{}, fmt.Errorf("read %s at %s: %w", path, rev, err)
	}
	return Snippet{Name: fmt.Sprintf("%s@%s", path, rev), Code: code}, nil
}

func readLimited(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxBytes {
		return "", fmt.Errorf("input larger than %d bytes", MaxBytes)
	}
	return string(data), nil
}
