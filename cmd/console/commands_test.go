package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DIFFICULTY_FILE", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, "", "levels")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1\tnegamax\tdepth 1", lines[0])
	assert.Equal(t, "5\tbestfirst\tdepth 5", lines[4])
}

func TestPlayCommandHotSeat(t *testing.T) {
	out, err := execute(t, "0\n1\n0\n1\n0\n1\n0\n", "play", "--mode", "human", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Player 1 wins!")
}

func TestPlayCommandRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "", "play", "--mode", "online")
	assert.Error(t, err)

	_, err = execute(t, "", "play", "--level", "7")
	assert.Error(t, err)
}
