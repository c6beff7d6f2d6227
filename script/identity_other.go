//go:build !unix

package script

import "github.com/coregx/vimcore/pos"

// scriptIdentity on non-unix platforms is always the canonicalized
// path, matching spec.md §4.4 step 6's documented fallback.
type scriptIdentity struct {
	path string
}

func identityOf(fname string) scriptIdentity {
	return scriptIdentity{path: pos.CanonicalPath(fname)}
}
