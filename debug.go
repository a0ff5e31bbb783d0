package hexfolio

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics for one tree.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
	vertexCount  int
}

// debugLog prints timing and draw stats to stderr.
func (s *Scene) debugLog(tree string, stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[hexfolio] %s traverse: %v | sort: %v | submit: %v | total: %v\n",
		tree, stats.traverseTime, stats.sortTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[hexfolio] %s commands: %d | vertices: %d\n",
		tree, stats.commandCount, stats.vertexCount)
}

// debugf prints a tagged line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[hexfolio] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers skip it outside debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("hexfolio debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxChildCount is the child count above which a warning is printed.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[hexfolio] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countVertices sums the mesh vertices of a command list. Sprites count as
// the four corners of their quad.
func countVertices(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		if commands[i].Type == CommandMesh {
			count += len(commands[i].meshVerts)
		} else {
			count += 4
		}
	}
	return count
}
