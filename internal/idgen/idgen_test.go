package idgen

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoID_LengthAndAlphabet(t *testing.T) {
	g, err := NewNanoID(MatchIDLength)
	require.NoError(t, err)

	urlSafe := regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.NewID()
		assert.Len(t, id, MatchIDLength)
		assert.Regexp(t, urlSafe, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestNanoID_InvalidLength(t *testing.T) {
	_, err := NewNanoID(1)
	assert.Error(t, err)
}

func TestUUID(t *testing.T) {
	id := UUID{}.NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}
