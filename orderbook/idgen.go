package orderbook

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// IDGenerator mints order identifiers for callers that do not bring their
// own. The engine itself never generates ids; requests carry them.
type IDGenerator interface {
	NewID() uuid.UUID
}

// UUIDGenerator is the canonical mode: random, globally unique ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() uuid.UUID { return uuid.New() }

// SequenceGenerator is the reduced mode for environments without a
// global-uniqueness requirement: ids are assigned from a counter and
// packed into the UUID's low bytes. Matching semantics are identical in
// both modes. Not safe for concurrent use; one generator per feed.
type SequenceGenerator struct {
	last uint64
}

func (g *SequenceGenerator) NewID() uuid.UUID {
	g.last++
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], g.last)
	return id
}
