package schemaregistry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/open-mds/pkg/runs"
)

// fakeRegistry answers subject registration with a fixed ID and counts calls.
func fakeRegistry(t *testing.T, id int) (*httptest.Server, *int32) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/subjects/open-mds.runs-value/versions", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, RunEventSchema, body["schema"])

		w.Header().Set("Content-Type", registryMediaType)
		_ = json.NewEncoder(w).Encode(map[string]int{"id": id})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestAvroEncoderRoundTrip(t *testing.T) {
	srv, calls := fakeRegistry(t, 42)
	cfg := Config{URL: srv.URL, Subject: "open-mds.runs-value", Timeout: time.Second}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	enc, err := NewAvroEncoder(client, cfg)
	require.NoError(t, err)

	event := runs.Event{
		RunID:         "3f1a",
		Perturbation:  "backtranslation",
		Strategy:      "worst-case",
		PerturbedFrac: 0.25,
		Seed:          7,
		Examples:      12,
		Input:         "s3://bucket/in.jsonl",
		Output:        "out.jsonl",
		FinishedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := enc.Encode(context.Background(), event)
	require.NoError(t, err)

	id, _, err := DecodeSchemaID(data)
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	got, err := enc.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, event.RunID, got.RunID)
	assert.Equal(t, event.Perturbation, got.Perturbation)
	assert.Equal(t, event.Seed, got.Seed)
	assert.Equal(t, event.Examples, got.Examples)
	assert.True(t, event.FinishedAt.Equal(got.FinishedAt))

	_, err = enc.Encode(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestRegistryErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_code":42201,"message":"Invalid schema"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	cfg := Config{URL: srv.URL, Subject: "open-mds.runs-value"}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	enc, err := NewAvroEncoder(client, cfg)
	require.NoError(t, err)

	_, err = enc.Register(context.Background())
	assert.ErrorContains(t, err, "status 422")
}

func TestDecodeSchemaID(t *testing.T) {
	id, payload, err := DecodeSchemaID(append(EncodeSchemaID(258), 'x'))
	require.NoError(t, err)
	assert.Equal(t, 258, id)
	assert.Equal(t, []byte("x"), payload)

	_, _, err = DecodeSchemaID([]byte{0, 1})
	assert.ErrorIs(t, err, ErrInvalidWireFormat)

	_, _, err = DecodeSchemaID([]byte{1, 0, 0, 0, 1})
	assert.ErrorIs(t, err, ErrInvalidWireFormat)
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
