//go:build unix

package script

import (
	"golang.org/x/sys/unix"

	"github.com/coregx/vimcore/pos"
)

// scriptIdentity is the dedup key for the script registry: a (dev, ino)
// pair where fstat is available, falling back to a canonical path
// string everywhere else. Exactly one of the two is populated.
type scriptIdentity struct {
	dev, ino uint64
	path     string
	hasStat  bool
}

// identityOf stats fname to build its identity key, degrading to the
// canonical-path fallback on stat failure (e.g. the file does not exist
// yet, or the platform sandboxes fstat) so sourcing a not-yet-created
// file never panics.
func identityOf(fname string) scriptIdentity {
	var st unix.Stat_t
	if err := unix.Stat(fname, &st); err == nil {
		return scriptIdentity{dev: uint64(st.Dev), ino: uint64(st.Ino), hasStat: true}
	}
	return scriptIdentity{path: pos.CanonicalPath(fname)}
}
