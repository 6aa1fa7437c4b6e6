package engine

import (
	"context"
	"time"
)

type simpleTimeManager struct {
	start  time.Time
	limits LimitsType
	ctx    context.Context
	cancel context.CancelFunc
}

func newSimpleTimeManager(ctx context.Context, start time.Time, limits LimitsType) *simpleTimeManager {
	var tm = &simpleTimeManager{
		start:  start,
		limits: limits,
	}
	if limits.MoveTime > 0 {
		tm.ctx, tm.cancel = context.WithDeadline(ctx, start.Add(limits.MoveTime))
	} else {
		tm.ctx, tm.cancel = context.WithCancel(ctx)
	}
	return tm
}

func (tm *simpleTimeManager) OnNodesChanged(nodes int64) {
	if tm.limits.Nodes > 0 && nodes >= tm.limits.Nodes {
		tm.cancel()
	}
}

func (tm *simpleTimeManager) IsDone() bool {
	select {
	case <-tm.ctx.Done():
		return true
	default:
		return false
	}
}

func (tm *simpleTimeManager) Close() {
	tm.cancel()
}
