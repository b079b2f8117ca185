package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/open-mds/pkg/dataset"
	"github.com/Aleph-Alpha/open-mds/pkg/perturb"
)

func TestParseFlagsRequiresLocations(t *testing.T) {
	_, err := parseFlags([]string{"-perturbation", "deletion"}, io.Discard)
	assert.ErrorContains(t, err, "-input and -output are required")
}

func TestApplyFlags(t *testing.T) {
	o, err := parseFlags([]string{
		"-perturbation", "deletion",
		"-frac", "0.3",
		"-seed", "7",
		"-dataset", "multi_news",
		"-input", "in.jsonl",
		"-output", "out.jsonl",
	}, io.Discard)
	require.NoError(t, err)

	var cfg appConfig
	require.NoError(t, applyFlags(&cfg, o))
	assert.Equal(t, perturb.Deletion, cfg.Perturb.Perturbation)
	assert.Equal(t, perturb.Random, cfg.Perturb.Strategy)
	assert.Equal(t, "|||||", cfg.Perturb.DocSepToken)
	require.NotNil(t, cfg.Perturb.Seed)
	assert.Equal(t, int64(7), *cfg.Perturb.Seed)
}

func TestApplyFlagsSepOverridesPreset(t *testing.T) {
	o, err := parseFlags([]string{
		"-perturbation", "sorting", "-dataset", "ms2", "-sep", "<doc>",
		"-input", "a", "-output", "b",
	}, io.Discard)
	require.NoError(t, err)

	var cfg appConfig
	require.NoError(t, applyFlags(&cfg, o))
	assert.Equal(t, "<doc>", cfg.Perturb.DocSepToken)
	assert.Nil(t, cfg.Perturb.Seed)
}

func TestApplyFlagsErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown preset":       {"-perturbation", "sorting", "-dataset", "cnn"},
		"unknown perturbation": {"-perturbation", "shuffle", "-sep", "|"},
		"missing frac":         {"-perturbation", "addition", "-sep", "|"},
		"missing separator":    {"-perturbation", "sorting"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			o, err := parseFlags(append(args, "-input", "a", "-output", "b"), io.Discard)
			require.NoError(t, err)
			var cfg appConfig
			assert.Error(t, applyFlags(&cfg, o))
		})
	}
}

func TestApplyFlagsRejectsUnknownEmbeddingStore(t *testing.T) {
	o, err := parseFlags([]string{"-perturbation", "sorting", "-sep", "|", "-input", "a", "-output", "b"}, io.Discard)
	require.NoError(t, err)

	cfg := appConfig{Features: features{EmbeddingStore: "memcached"}}
	assert.ErrorContains(t, applyFlags(&cfg, o), "memcached")

	cfg.Features.EmbeddingStore = storeRedis
	assert.NoError(t, applyFlags(&cfg, o))

	cfg.Features.RunLedger = "sqlite"
	assert.ErrorContains(t, applyFlags(&cfg, o), "sqlite")

	cfg.Features.RunLedger = ledgerMariaDB
	cfg.Features.KafkaAvro = true
	assert.ErrorContains(t, applyFlags(&cfg, o), "kafka_events")
}

func TestLoadConfigLayers(t *testing.T) {
	t.Setenv("ZAP_LOGGER_LEVEL", "debug")
	t.Setenv("PERTURB_STRATEGY", "best-case")
	t.Setenv("EMBEDDING_MODEL", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
embedding:
  model: from-file
features:
  embedding_store: redis
`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, perturb.BestCase, cfg.Perturb.Strategy)
	assert.Equal(t, "from-file", cfg.Embedding.Model)
	assert.Equal(t, "redis", cfg.Features.EmbeddingStore)
	assert.Equal(t, "open-mds:emb:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "open_mds", cfg.Metrics.Namespace)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "test.jsonl")
	output := filepath.Join(dir, "out", "test.deletion.jsonl")

	examples := []dataset.Example{
		{Document: "a ||||| b ||||| c ||||| d", Summary: "s1"},
		{Document: "e ||||| f", Summary: "s2"},
	}
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, dataset.Write(f, examples))
	require.NoError(t, f.Close())

	err = run(context.Background(), []string{
		"-perturbation", "deletion",
		"-frac", "0.5",
		"-seed", "1",
		"-dataset", "multi_news",
		"-input", input,
		"-output", output,
	}, io.Discard)
	require.NoError(t, err)

	f, err = os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	got, err := dataset.Read(f)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 2, perturb.NumDocs(got[0].Document, "|||||"))
	assert.Equal(t, 1, perturb.NumDocs(got[1].Document, "|||||"))
	assert.Equal(t, "s1", got[0].Summary)
	for _, doc := range perturb.SplitDocs(got[0].Document, "|||||") {
		assert.True(t, strings.Contains("abcd", doc))
	}
}
