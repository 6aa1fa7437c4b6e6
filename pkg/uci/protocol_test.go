package uci

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/CheckersGo/pkg/engine"
	"github.com/ChizhovVadim/CheckersGo/pkg/eval"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// runSession feeds commands to a running protocol, waits for the search to answer
// and returns everything written.
func runSession(t *testing.T, protocol *Protocol, commands ...string) string {
	t.Helper()
	var in, w = io.Pipe()
	var out syncBuffer
	var done = make(chan struct{})
	go func() {
		defer close(done)
		protocol.Run(log.New(io.Discard, "", 0), in, &out)
	}()
	for _, command := range commands {
		_, err := io.WriteString(w, command+"\n")
		require.NoError(t, err)
	}
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "bestmove")
	}, 10*time.Second, 10*time.Millisecond)
	_, err := io.WriteString(w, "quit\n")
	require.NoError(t, err)
	<-done
	return out.String()
}

func TestProtocol(t *testing.T) {
	var eng = engine.NewEngine(eval.NewDefaultEvaluator(nil))
	var protocol = New("checkers", "test", eng, []Option{
		&IntOption{Name: "Depth", Min: 0, Max: 20, Value: &eng.Options.Depth},
	})

	var s = runSession(t, protocol,
		"setoption name Depth value 2",
		"uci",
		"isready",
		"position startpos moves 9-14 22-18",
		"d",
		"go depth 3",
	)

	require.Contains(t, s, "option name Depth type spin default 2 min 0 max 20")
	require.Contains(t, s, "option name AvoidRepetition type check default false")
	require.Contains(t, s, "uciok")
	require.Contains(t, s, "readyok")
	require.Contains(t, s, "W:W1,2,3,4,5,6,7,8,10,11,12,14:B18,21")
	require.Equal(t, 2, eng.Options.Depth)
	require.NotContains(t, s, "bestmove (none)")
}

func TestAvoidRepetition(t *testing.T) {
	var eng = engine.NewEngine(eval.NewDefaultEvaluator(nil))
	var protocol = New("checkers", "test", eng, nil)

	// the kings shuffle back to the start; 1-5 would repeat the second position
	var s = runSession(t, protocol,
		"setoption name AvoidRepetition value true",
		"position fen W:WK1:BK32 moves 1-5 32-28 5-1 28-32",
		"go depth 2",
	)

	require.True(t, protocol.avoidRepetition)
	require.Contains(t, s, "bestmove 1-6")
}

func TestOptionErrors(t *testing.T) {
	var depth = 3
	var flag bool
	var intOption = &IntOption{Name: "Depth", Min: 0, Max: 20, Value: &depth}
	var boolOption = &BoolOption{Name: "Flag", Value: &flag}

	require.Error(t, intOption.Set("21"))
	require.Error(t, intOption.Set("x"))
	require.Equal(t, 3, depth)
	require.Error(t, boolOption.Set("maybe"))
	require.NoError(t, boolOption.Set("true"))
	require.True(t, flag)
}

func TestParseLimits(t *testing.T) {
	var limits = parseLimits(strings.Fields("depth 5 nodes 1000 movetime 250"))
	require.Equal(t, engine.LimitsType{Depth: 5, Nodes: 1000, MoveTime: 250 * time.Millisecond}, limits)
}
