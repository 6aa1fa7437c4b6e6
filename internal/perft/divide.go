package perft

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CheckersGo/pkg/common"
)

type DivideItem struct {
	Move  common.Move
	Nodes int
}

type DivideResult struct {
	Items   []DivideItem
	Nodes   int
	Elapsed time.Duration
}

// Divide counts the perft leaves below every root move, threads moves at a time.
func Divide(ctx context.Context, p *common.Position, depth, threads int) (DivideResult, error) {
	var start = time.Now()
	if depth <= 0 {
		return DivideResult{Nodes: 1, Elapsed: time.Since(start)}, nil
	}
	var ml = p.GenerateMoves()
	var items = make([]DivideItem, len(ml))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for i := range ml {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items[i] = DivideItem{
				Move:  ml[i],
				Nodes: common.Perft(&ml[i].Next, depth-1),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DivideResult{}, err
	}

	var result = DivideResult{Items: items}
	for _, item := range items {
		result.Nodes += item.Nodes
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

// Print writes the per-move counts in the usual divide format.
func (r *DivideResult) Print(logger *log.Logger) {
	for _, item := range r.Items {
		logger.Printf("%v: %d", item.Move, item.Nodes)
	}
	logger.Printf("nodes %d time %v", r.Nodes, r.Elapsed)
}
