//go:build unix

package scan

import "golang.org/x/sys/unix"

// checkAccess verifies the root is readable and writable. The scan itself
// only reads, but deletion of confirmed duplicates is the advertised
// follow-up, so a root we could never delete from is rejected up front.
func checkAccess(root string) error {
	return unix.Access(root, unix.R_OK|unix.W_OK)
}
