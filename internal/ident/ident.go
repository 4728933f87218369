// Package ident generates the identifiers substituted into bound text values:
// random UUIDs and time-ordered "cluster time" ids.
package ident

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// timestampDigits is the number of hex digits used for the microsecond
// timestamp of a cluster time id. 14 digits last until the year 4253.
const timestampDigits = 14

type generatorOption func(*Generator)

// WithClock replaces the wall clock used for cluster time ids.
func WithClock(now func() time.Time) generatorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator produces identifiers. It owns the one-byte sequence counter of
// cluster time ids, and is safe for concurrent use.
type Generator struct {
	now func() time.Time

	mu         sync.Mutex
	sequence   uint8
	lastMicros int64
}

// NewGenerator creates a Generator with its sequence counter at zero.
func NewGenerator(options ...generatorOption) *Generator {
	g := &Generator{
		now: time.Now,
	}

	for _, option := range options {
		option(g)
	}

	return g
}

// UUID returns a random (version 4) UUID in its canonical lowercase form,
// e.g. "550e8400-e29b-41d4-a716-446655440000".
func (g *Generator) UUID() string {
	return uuid.NewString()
}

// ClusterTime returns an id that sorts lexicographically by creation time.
//
// The 32 hex digits are the microseconds since the Unix epoch (14 digits),
// the sequence counter (2 digits, wrapping from ff to 00) and 16 random
// digits, grouped 8-4-4-4-12 like a UUID.
//
// The (timestamp, sequence) prefix never goes backwards for a Generator: a
// clock that steps back reuses the last timestamp, and a sequence wrap within
// one microsecond moves the timestamp forward by one.
func (g *Generator) ClusterTime() string {
	micros, sequence := g.next()

	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	digits := fmt.Sprintf("%0*x%02x%s", timestampDigits, micros, sequence, random[:16])

	return digits[0:8] + "-" + digits[8:12] + "-" + digits[12:16] + "-" + digits[16:20] + "-" + digits[20:32]
}

// next advances the sequence counter and returns it with the timestamp to
// embed.
func (g *Generator) next() (int64, uint8) {
	micros := g.now().UnixMicro()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sequence++
	if micros < g.lastMicros {
		micros = g.lastMicros
	}
	if micros == g.lastMicros && g.sequence == 0 {
		micros++
	}
	g.lastMicros = micros

	return micros, g.sequence
}
