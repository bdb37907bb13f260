package driver

import (
	"crypto/sha256"
	"fmt"

	"seq/internal/version"
)

// combineDigest: H(content || part1 || part2 ...). parts are hashed in order.
func combineDigest(content [32]byte, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey binds a file's content hash to everything that changes the
// printed expansion: options, mode and tool version.
func cacheKey(content [32]byte, opts *ExpandOptions) Digest {
	seqOpts := opts.Seq
	return combineDigest(content,
		version.Version,
		fmt.Sprintf("schema=%d", diskCacheSchemaVersion),
		"macro="+seqOpts.Macro,
		"markers="+seqOpts.Markers.String(),
		fmt.Sprintf("depth=%d", seqOpts.MaxDepth),
		"layout="+opts.Format.Layout.String(),
		fmt.Sprintf("indent=%d/%t/%t", opts.Format.IndentWidth, opts.Format.UseTabs, opts.Format.DropComments),
		fmt.Sprintf("fragment=%t", opts.Fragment),
		fmt.Sprintf("verify=%t", opts.Verify),
		fmt.Sprintf("iterations=%d", seqOpts.MaxIterations),
	)
}
