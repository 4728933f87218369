package ident

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canonicalShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// parts splits a cluster time id into its timestamp and sequence fields.
func parts(t *testing.T, id string) (int64, uint8) {
	t.Helper()
	digits := strings.ReplaceAll(id, "-", "")
	require.Len(t, digits, 32)

	micros, err := strconv.ParseInt(digits[:14], 16, 64)
	require.NoError(t, err)
	sequence, err := strconv.ParseUint(digits[14:16], 16, 8)
	require.NoError(t, err)

	return micros, uint8(sequence)
}

func TestUUID(t *testing.T) {
	g := NewGenerator()

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := g.UUID()
		assert.Regexp(t, canonicalShape, id)
		assert.False(t, seen[id], "duplicated id %s", id)
		seen[id] = true

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	}
}

func TestClusterTime(t *testing.T) {
	t.Run("Shape", func(t *testing.T) {
		g := NewGenerator()
		id := g.ClusterTime()
		assert.Regexp(t, canonicalShape, id)

		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("EmbedsTimestamp", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)
		g := NewGenerator(WithClock(fixedClock(now)))

		micros, sequence := parts(t, g.ClusterTime())
		assert.Equal(t, now.UnixMicro(), micros)
		assert.Equal(t, uint8(1), sequence)
	})

	t.Run("SuccessiveIdsSort", func(t *testing.T) {
		g := NewGenerator()

		ids := make([]string, 1000)
		for i := range ids {
			ids[i] = g.ClusterTime()
		}

		for i := 1; i < len(ids); i++ {
			assert.Less(t, ids[i-1], ids[i])
		}
	})

	t.Run("SequenceWrapsAround", func(t *testing.T) {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		g := NewGenerator(WithClock(fixedClock(now)))

		ids := make([]string, 256)
		for i := range ids {
			ids[i] = g.ClusterTime()
		}

		for i, id := range ids[:255] {
			micros, sequence := parts(t, id)
			assert.Equal(t, now.UnixMicro(), micros)
			assert.Equal(t, uint8(i+1), sequence)
		}

		micros, sequence := parts(t, ids[255])
		assert.Equal(t, uint8(0), sequence, "sequence must wrap from ff to 00")
		assert.Equal(t, now.UnixMicro()+1, micros, "wrap within one microsecond moves time forward")

		assert.True(t, sort.StringsAreSorted(ids))
	})

	t.Run("SequenceWrapsAcrossDistinctTimestamps", func(t *testing.T) {
		tick := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time {
			tick = tick.Add(time.Microsecond)
			return tick
		}
		g := NewGenerator(WithClock(clock))

		seen := map[string]bool{}
		var sequences []uint8
		for i := 0; i < 300; i++ {
			id := g.ClusterTime()
			assert.False(t, seen[id])
			seen[id] = true
			_, sequence := parts(t, id)
			sequences = append(sequences, sequence)
		}

		assert.Equal(t, uint8(255), sequences[254])
		assert.Equal(t, uint8(0), sequences[255])
		assert.Equal(t, uint8(1), sequences[256])
	})

	t.Run("ClockStepsBack", func(t *testing.T) {
		times := []time.Time{
			time.Unix(100, 0),
			time.Unix(50, 0),
			time.Unix(100, 0),
		}
		idx := 0
		clock := func() time.Time {
			now := times[idx]
			idx++
			return now
		}
		g := NewGenerator(WithClock(clock))

		first := g.ClusterTime()
		second := g.ClusterTime()
		third := g.ClusterTime()

		assert.Less(t, first, second)
		assert.Less(t, second, third)
	})

	t.Run("ConcurrentUse", func(t *testing.T) {
		g := NewGenerator()

		const goroutines = 50
		const perGoroutine = 200

		var mu sync.Mutex
		seen := map[string]bool{}
		var wg sync.WaitGroup
		wg.Add(goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < perGoroutine; j++ {
					id := g.ClusterTime()
					mu.Lock()
					seen[id] = true
					mu.Unlock()
				}
			}()
		}

		wg.Wait()
		assert.Len(t, seen, goroutines*perGoroutine, fmt.Sprintf("expected %d unique ids", goroutines*perGoroutine))
	})
}
