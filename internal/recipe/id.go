package recipe

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewID mints a recipe identifier: the current Unix time in unpadded
// lowercase hex followed by exactly six lowercase hex digits of randomness.
// The time prefix makes ids lexicographically sortable by creation time and
// the random suffix makes asset file names unguessable.
//
// The time component is not fixed-width: ids will stop sorting correctly
// when the hex seconds value grows another digit (year 2106). Known
// limitation, kept for byte-compatibility with existing rows.
//
// Uniqueness is not enforced here; the store's primary key rejects the
// (vanishingly unlikely) same-second collision.
func NewID() string {
	return strconv.FormatInt(time.Now().Unix(), 16) + randomSuffix()
}

func randomSuffix() string {
	var b [3]byte
	// rand.Read never returns an error; it crashes the program if the
	// kernel's random source is unavailable.
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
