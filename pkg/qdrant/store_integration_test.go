package qdrant

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
)

type qdrantContainer struct {
	testcontainers.Container
	Host string
	Port int
}

func setupQdrantContainer(ctx context.Context) (*qdrantContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        "qdrant/qdrant:v1.11.0",
		Env:          map[string]string{"QDRANT__SERVICE__GRPC_PORT": "6334"},
		ExposedPorts: []string{"6334/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"6334/tcp": []nat.PortBinding{{HostPort: strconv.Itoa(port)}},
			}
		},
		WaitingFor: wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, "6334")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	// gRPC accepts connections slightly before the service answers health checks.
	time.Sleep(2 * time.Second)

	return &qdrantContainer{Container: c, Host: host, Port: mapped.Int()}, nil
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func TestVectorStoreWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	qc, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := qc.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var store embedcache.Store
	var vs *VectorStore

	app := fxtest.New(t,
		fx.Provide(
			func() *Config {
				return &Config{
					Endpoint:   qc.Host,
					Port:       qc.Port,
					Collection: "test_embeddings",
					VectorSize: 3,
				}
			},
			func() Logger { return nopLogger{} },
		),
		FXModule,
		fx.Populate(&store, &vs),
	)
	app.RequireStart()
	defer app.RequireStop()

	t.Run("EnsureCollectionIsIdempotent", func(t *testing.T) {
		assert.NoError(t, vs.EnsureCollection(ctx))
	})

	t.Run("LookupBeforeSave", func(t *testing.T) {
		got, err := store.Lookup(ctx, "fake:bow", []string{"apple", "banana"})
		require.NoError(t, err)
		assert.Equal(t, [][]float32{nil, nil}, got)
	})

	t.Run("SaveThenLookup", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "fake:bow",
			[]string{"apple", "banana"},
			[][]float32{{1, 0, 0}, {0.8, 0.6, 0}},
		))

		got, err := store.Lookup(ctx, "fake:bow", []string{"banana", "cherry", "apple", "banana"})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.InDeltaSlice(t, []float32{0.8, 0.6, 0}, got[0], 1e-6)
		assert.Nil(t, got[1])
		assert.InDeltaSlice(t, []float32{1, 0, 0}, got[2], 1e-6)
		assert.InDeltaSlice(t, []float32{0.8, 0.6, 0}, got[3], 1e-6)
	})

	t.Run("EmbeddersDoNotShareVectors", func(t *testing.T) {
		got, err := store.Lookup(ctx, "other:model", []string{"apple"})
		require.NoError(t, err)
		assert.Nil(t, got[0])
	})
}
