package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservations(t *testing.T) {
	m := NewMetrics(Config{Namespace: "open_mds", ServiceName: "perturb"})

	m.ObservePerturbation("deletion", "random", 2)
	m.ObservePerturbation("deletion", "random", 3)
	m.ObserveCacheLookup(true)
	m.ObserveCacheLookup(false)
	m.ObserveCacheLookup(false)
	m.ObserveCapabilityCall("embedding", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.perturbations.WithLabelValues("deletion", "random")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.documentsPerturbed.WithLabelValues("deletion")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.capabilityDuration))

	expected := `
# HELP open_mds_perturbations_total Number of perturbed examples
# TYPE open_mds_perturbations_total counter
open_mds_perturbations_total{perturbation="deletion",service="perturb",strategy="random"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "open_mds_perturbations_total"))
}

func TestServerIsOptional(t *testing.T) {
	assert.Nil(t, NewMetrics(Config{}).Server)
	assert.Equal(t, ":9100", NewMetrics(Config{Address: ":9100"}).Server.Addr)
}
