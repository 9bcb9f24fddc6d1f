package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateGameID(t *testing.T) {
	a := GenerateGameID()
	b := GenerateGameID()

	assert.NotEqual(t, a, b)
	assert.True(t, IsGameID(a))
	assert.False(t, IsGameID("not-a-game"))
}
