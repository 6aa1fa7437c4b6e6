package trainer

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// endRound closes an evaluation round: the active feature with the smallest weight
// extends its streak, and a streak of TallyLimit rounds sends it to the reserve.
func (t *Trainer) endRound() {
	t.rounds++
	var active = t.evaluator.Active()
	for _, index := range active {
		t.usage[index]++
	}

	t.weights = t.evaluator.ActiveWeights(t.weights[:0])
	var pos = floats.MinIdx(t.weights)
	var feature = active[pos]
	if feature == t.streakFeature {
		t.streak++
	} else {
		t.streakFeature = feature
		t.streak = 1
	}
	if t.options.TallyLimit > 0 && t.streak >= t.options.TallyLimit {
		if benched, promoted, ok := t.evaluator.Rotate(pos); ok {
			t.rotations++
			t.logger.Printf("trainer: benched %v, promoted %v",
				t.evaluator.Feature(benched).Tag, t.evaluator.Feature(promoted).Tag)
		}
		t.streakFeature = -1
		t.streak = 0
	}

	if t.options.ReportInterval > 0 && t.rounds%t.options.ReportInterval == 0 {
		t.logUsage()
	}
}

func (t *Trainer) logUsage() {
	var sb strings.Builder
	for i, n := range t.usage {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v:%d", t.evaluator.Feature(i).Tag, n)
	}
	t.logger.Printf("trainer: usage after %d rounds: %v", t.rounds, sb.String())
}
