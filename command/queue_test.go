package command

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	c := NewClient(q)

	require.NoError(t, c.Caption("one", 0))
	require.NoError(t, c.Caption("two", 1))
	require.NoError(t, c.Disappear("fish"))
	assert.Equal(t, 3, q.Len())

	cmd, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "one", cmd.(Caption).Text)

	cmd, _ = q.Pop()
	assert.Equal(t, 1, cmd.(Caption).Pos)

	cmd, _ = q.Pop()
	assert.Equal(t, KindDisappear, cmd.Kind())
	assert.Equal(t, "fish", cmd.(Disappear).Name)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueReadySignal(t *testing.T) {
	q := NewQueue()
	select {
	case <-q.Ready():
		t.Fatal("Expected no signal on empty queue")
	default:
	}

	c := NewClient(q)
	c.Title("a.png")
	c.Title("b.png")

	// Wakeups coalesce into one pending signal
	<-q.Ready()
	select {
	case <-q.Ready():
		t.Fatal("Expected coalesced signal")
	default:
	}
	assert.Equal(t, 2, q.Len())
}

func TestQueueClose(t *testing.T) {
	q := NewQueue()
	c := NewClient(q)
	require.NoError(t, c.Speech("hello", "en"))

	q.Close()
	q.Close()
	assert.ErrorIs(t, c.Character('x'), ErrClosed)

	select {
	case <-q.Done():
	default:
		t.Fatal("Expected Done to be closed")
	}

	assert.False(t, q.Drained(), "pending command survives close")
	cmd, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "hello", cmd.(Speech).Text)
	assert.True(t, q.Drained())
}

func TestConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers, perProducer = 8, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			c := NewClient(q)
			for i := 0; i < perProducer; i++ {
				c.SubCaption("x", p*perProducer+i)
			}
		}(p)
	}
	wg.Wait()

	// Per-producer order is preserved
	last := make(map[int]int)
	count := 0
	for {
		cmd, ok := q.Pop()
		if !ok {
			break
		}
		pos := cmd.(SubCaption).Pos
		p := pos / perProducer
		if prev, seen := last[p]; seen {
			assert.Greater(t, pos, prev)
		}
		last[p] = pos
		count++
	}
	assert.Equal(t, producers*perProducer, count)
}

func TestCommandIdentity(t *testing.T) {
	q := NewQueue()
	c := NewClient(q)
	c.Appear("a.png", "anago")
	c.Appear("a.png", "anago")

	a, _ := q.Pop()
	b, _ := q.Pop()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "appear", a.Kind().String())
}
