// Package fileutil holds small filesystem helpers shared by the organizer
// and the importer.
package fileutil

import (
	"fmt"
	"io"
	"os"
)

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyEntry copies src to dst preserving link-vs-regular identity: a symbolic
// link is recreated as a link to the same target, never dereferenced.
func CopyEntry(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return fmt.Errorf("read link: %w", err)
		}
		return os.Symlink(target, dst)
	}
	return CopyFile(src, dst)
}

// Exists reports whether any entry (file, directory, or dangling link) sits
// at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
