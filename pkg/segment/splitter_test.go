package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	s, err := NewSplitter()
	require.NoError(t, err)

	got := s.Split("The storm hit at noon. Mr. Smith was not at home.  Nobody was hurt!")
	assert.Equal(t, []string{
		"The storm hit at noon.",
		"Mr. Smith was not at home.",
		"Nobody was hurt!",
	}, got)
}

func TestSplitEmpty(t *testing.T) {
	s, err := NewSplitter()
	require.NoError(t, err)

	assert.Empty(t, s.Split("   "))
}
