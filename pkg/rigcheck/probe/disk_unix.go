//go:build !windows

package probe

import (
	"golang.org/x/sys/unix"
)

// DefaultDiskPath is the volume scored when none is configured.
func DefaultDiskPath() string { return "/" }

// diskSpace returns the bytes available to unprivileged users and the
// volume's total size.
func diskSpace(path string) (free, total uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	bsize := uint64(st.Bsize)
	return uint64(st.Bavail) * bsize, uint64(st.Blocks) * bsize, nil
}
