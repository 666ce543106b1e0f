package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// NewSessionID returns a new unique ID for a palette session.
func NewSessionID() string {
	return generator.MustGenerate()
}
