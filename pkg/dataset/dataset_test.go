package dataset

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	in := "{\"document\":\"a ||||| b\",\"summary\":\"s1\"}\n\n" +
		"{\"document\":\"<c> & d\",\"summary\":\"s2\"}\n"

	examples, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, Example{Document: "a ||||| b", Summary: "s1"}, examples[0])

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, examples))
	assert.Equal(t,
		"{\"document\":\"a ||||| b\",\"summary\":\"s1\"}\n{\"document\":\"<c> & d\",\"summary\":\"s2\"}\n",
		buf.String())
}

func TestReadWriteKeepsExtraFields(t *testing.T) {
	in := `{"id":"mn-7","document":"a ||||| b","meta":{"source":"multi_news","n":2},"summary":"s1"}` + "\n"

	examples, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, "a ||||| b", examples[0].Document)
	assert.Equal(t, "s1", examples[0].Summary)
	assert.JSONEq(t, `"mn-7"`, string(examples[0].Extra["id"]))

	perturbed, err := WithInputs(examples, []string{"b"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, perturbed))
	assert.Equal(t,
		`{"document":"b","summary":"s1","id":"mn-7","meta":{"source":"multi_news","n":2}}`+"\n",
		buf.String())
}

func TestReadRejectsNonStringDocument(t *testing.T) {
	_, err := Read(strings.NewReader(`{"document":3,"summary":"s"}`))
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.ErrorContains(t, err, "document")
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("{\"document\":\"a\"}\nnot json\n"))
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.ErrorContains(t, err, "line 2")
}

func TestInputsTargets(t *testing.T) {
	examples := []Example{{Document: "d1", Summary: "s1"}, {Document: "d2", Summary: "s2"}}
	assert.Equal(t, []string{"d1", "d2"}, Inputs(examples))
	assert.Equal(t, []string{"s1", "s2"}, Targets(examples))

	out, err := WithInputs(examples, []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, []Example{{Document: "p1", Summary: "s1"}, {Document: "p2", Summary: "s2"}}, out)
	assert.Equal(t, "d1", examples[0].Document)

	_, err = WithInputs(examples, []string{"p1"})
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "out.jsonl")
	s := NewSources(nil)

	want := []Example{{Document: "x <doc> y", Summary: "z"}}
	require.NoError(t, s.Save(ctx, path, want))

	got, err := s.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.Load(ctx, filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

type memObjects struct {
	bucket  string
	objects map[string][]byte
}

func (m *memObjects) Bucket() string { return m.bucket }

func (m *memObjects) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memObjects) Put(_ context.Context, key string, r io.Reader, _ int64) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.objects[key] = data
	return int64(len(data)), nil
}

func TestObjectSource(t *testing.T) {
	ctx := context.Background()
	objects := &memObjects{bucket: "open-mds", objects: map[string][]byte{}}
	s := NewSources(objects)

	want := []Example{{Document: "a", Summary: "b"}}
	require.NoError(t, s.Save(ctx, "s3://open-mds/multinews/test.jsonl", want))
	assert.Contains(t, objects.objects, "multinews/test.jsonl")

	got, err := s.Load(ctx, "s3://open-mds/multinews/test.jsonl")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.Load(ctx, "s3://other/test.jsonl")
	assert.ErrorContains(t, err, "outside bucket")

	_, err = s.Load(ctx, "s3://open-mds/")
	assert.ErrorContains(t, err, "no object key")
}

func TestObjectSourceWithoutStore(t *testing.T) {
	_, err := NewSources(nil).Load(context.Background(), "s3://open-mds/x.jsonl")
	assert.ErrorIs(t, err, ErrNoObjectStore)
}
