package algorithms

import (
	"context"
	"fmt"

	"github.com/san-kum/algoscope/internal/structures"
)

// BFS traverses the component of start breadth first.
func BFS(ctx context.Context, g *structures.Graph, start int) error {
	if start < 0 || start >= g.Order() {
		return fmt.Errorf("start vertex %d out of range", start)
	}

	queue := []int{start}
	if err := g.Enqueue(start); err != nil {
		return err
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		v := queue[0]
		queue = queue[1:]
		if g.IsVisited(v) {
			continue
		}
		if err := g.Visit(v); err != nil {
			return err
		}
		for _, w := range g.Neighbors(v) {
			if !g.IsVisited(w) && !g.InFrontier(w) {
				if err := g.Enqueue(w); err != nil {
					return err
				}
				queue = append(queue, w)
			}
		}
	}
	return g.Done("traversal complete")
}

// DFS traverses the component of start depth first.
func DFS(ctx context.Context, g *structures.Graph, start int) error {
	if start < 0 || start >= g.Order() {
		return fmt.Errorf("start vertex %d out of range", start)
	}
	if err := dfs(ctx, g, start); err != nil {
		return err
	}
	return g.Done("traversal complete")
}

func dfs(ctx context.Context, g *structures.Graph, v int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.Enqueue(v); err != nil {
		return err
	}
	if err := g.Visit(v); err != nil {
		return err
	}
	for _, w := range g.Neighbors(v) {
		if !g.IsVisited(w) {
			if err := dfs(ctx, g, w); err != nil {
				return err
			}
		}
	}
	return nil
}
