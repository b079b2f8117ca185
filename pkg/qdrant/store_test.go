package qdrant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}

func TestPointID(t *testing.T) {
	a := PointID("fake:bow", "apple")
	assert.Equal(t, a, PointID("fake:bow", "apple"))
	assert.NotEqual(t, a, PointID("fake:bow", "banana"))
	assert.NotEqual(t, a, PointID("other:model", "apple"))

	// The separator keeps ("ab", "c") and ("a", "bc") apart.
	assert.NotEqual(t, PointID("ab", "c"), PointID("a", "bc"))

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestSaveRejectsMismatchedLengths(t *testing.T) {
	s := NewVectorStore(&Client{cfg: &Config{Collection: "c"}, logger: nopLogger{}})
	err := s.Save(t.Context(), "fake:bow", []string{"apple"}, nil)
	assert.ErrorContains(t, err, "1 documents but 0 vectors")
}
