package buddy

import (
	"fmt"
	"strings"

	"buddyarena/allocator/types"
)

// BlockInfo is a detached, read-only projection of one block and its
// descendants, for visualization and test assertions. Building it never
// mutates the tree.
type BlockInfo struct {
	Range types.Range
	State State
	Left  *BlockInfo
	Right *BlockInfo
}

// Snapshot projects the subtree under ref into a BlockInfo tree.
func Snapshot(t *Tree, ref types.Ref) *BlockInfo {
	b := t.MustGet(ref)
	info := &BlockInfo{Range: b.Range, State: b.State}
	if b.State == Split {
		left, right := b.Left, b.Right
		info.Left = Snapshot(t, left)
		info.Right = Snapshot(t, right)
	}
	return info
}

// String renders the projection as an indented tree, one block per line.
func (b *BlockInfo) String() string {
	var sb strings.Builder
	b.render(&sb, 0)
	return sb.String()
}

func (b *BlockInfo) render(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s%s %s\n", strings.Repeat("  ", depth), b.Range, b.State)
	if b.State == Split {
		b.Left.render(sb, depth+1)
		b.Right.render(sb, depth+1)
	}
}
