package utils

import (
	"crypto/rand"
	mathrand "math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Picker chooses an index in [0, n). Response variation selection goes
// through it so tests can pin the choice.
type Picker interface {
	Intn(n int) int
}

type randomPicker struct{}

// NewRandomPicker returns a Picker backed by the auto-seeded math/rand/v2
// source, safe for concurrent use.
func NewRandomPicker() Picker {
	return randomPicker{}
}

func (randomPicker) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return mathrand.Intn(n)
}

// FixedPicker always returns the same index, clamped into range.
type FixedPicker int

func (p FixedPicker) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(p)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
