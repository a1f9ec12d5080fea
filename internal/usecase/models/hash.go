package models

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Hash returns a stable sha256 hex digest over every field of u. Structurally
// equal use cases hash equally; the encoding is length-prefixed so adjacent
// fields cannot collide by shifting bytes between them.
func (u *UseCase) Hash() string {
	h := sha256.New()
	writeString(h, u.id)
	writeString(h, u.title)
	writeString(h, u.primaryActor)
	writeString(h, string(u.goalLevel))
	writeString(h, u.designScope)
	writeString(h, u.trigger)
	writeStrings(h, u.preconditions)
	writeStrings(h, u.postconditions)
	writeStrings(h, u.successGuarantees)
	writeSteps(h, u.mainScenario.steps)
	writeInt(h, int64(len(u.extensions)))
	for _, e := range u.extensions {
		writeString(h, e.condition)
		writeInt(h, int64(e.branchPoint))
		writeSteps(h, e.steps)
	}
	writeStrings(h, u.stakeholders)
	return hex.EncodeToString(h.Sum(nil))
}

func writeInt(h hash.Hash, v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, _ = h.Write(buf[:])
}

func writeString(h hash.Hash, s string) {
	writeInt(h, int64(len(s)))
	_, _ = h.Write([]byte(s))
}

func writeStrings(h hash.Hash, values []string) {
	writeInt(h, int64(len(values)))
	for _, v := range values {
		writeString(h, v)
	}
}

func writeSteps(h hash.Hash, steps []Step) {
	writeInt(h, int64(len(steps)))
	for _, s := range steps {
		writeInt(h, int64(s.number))
		writeString(h, s.actor)
		writeString(h, s.action)
	}
}
