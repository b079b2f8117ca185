package main

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/database"
	"github.com/Aleph-Alpha/open-mds/pkg/dataset"
	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
	"github.com/Aleph-Alpha/open-mds/pkg/embedding"
	"github.com/Aleph-Alpha/open-mds/pkg/kafka"
	"github.com/Aleph-Alpha/open-mds/pkg/logger"
	"github.com/Aleph-Alpha/open-mds/pkg/mariadb"
	"github.com/Aleph-Alpha/open-mds/pkg/metrics"
	"github.com/Aleph-Alpha/open-mds/pkg/minio"
	"github.com/Aleph-Alpha/open-mds/pkg/perturb"
	"github.com/Aleph-Alpha/open-mds/pkg/postgres"
	"github.com/Aleph-Alpha/open-mds/pkg/qdrant"
	"github.com/Aleph-Alpha/open-mds/pkg/rabbit"
	"github.com/Aleph-Alpha/open-mds/pkg/redis"
	"github.com/Aleph-Alpha/open-mds/pkg/runs"
	"github.com/Aleph-Alpha/open-mds/pkg/schemaregistry"
	"github.com/Aleph-Alpha/open-mds/pkg/segment"
	"github.com/Aleph-Alpha/open-mds/pkg/tracer"
	"github.com/Aleph-Alpha/open-mds/pkg/translation"
)

// components is what a run pulls out of the container.
type components struct {
	fx.In

	Logger     *logger.Logger
	Perturber  *perturb.Perturber
	Sources    *dataset.Sources
	Ledger     *database.Ledger `optional:"true"`
	Publishers []runs.Publisher `group:"run_publishers"`
}

// loggerAdapters exposes the zap logger under each package's Logger interface.
var loggerAdapters = fx.Provide(
	func(l *logger.Logger) perturb.Logger { return l },
	func(l *logger.Logger) metrics.Logger { return l },
	func(l *logger.Logger) tracer.Logger { return l },
	func(l *logger.Logger) qdrant.Logger { return l },
	func(l *logger.Logger) redis.Logger { return l },
	func(l *logger.Logger) minio.Logger { return l },
	func(l *logger.Logger) postgres.Logger { return l },
	func(l *logger.Logger) mariadb.Logger { return l },
	func(l *logger.Logger) rabbit.Logger { return l },
	func(l *logger.Logger) kafka.Logger { return l },
)

// appOptions assembles the fx graph. Capabilities are only wired when the
// configured perturbation and strategy need them, so a random deletion run
// never dials an embedding or translation service.
func appOptions(cfg appConfig, target *components) []fx.Option {
	opts := []fx.Option{
		fx.NopLogger,
		fx.Supply(cfg.Logger, cfg.Metrics, cfg.Tracer, cfg.Cache, cfg.Perturb),
		logger.FXModule,
		loggerAdapters,
		metrics.FXModule,
		tracer.FXModule,
		embedcache.FXModule,
		perturb.FXModule,
		dataset.FXModule,
	}

	if cfg.Perturb.Strategy != perturb.Random {
		embeddingCfg := cfg.Embedding
		opts = append(opts, fx.Supply(&embeddingCfg), embedding.FXModule)

		switch cfg.Features.EmbeddingStore {
		case storeQdrant:
			qdrantCfg := cfg.Qdrant
			opts = append(opts, fx.Supply(&qdrantCfg), qdrant.FXModule)
		case storeRedis:
			opts = append(opts, fx.Supply(cfg.Redis), redis.FXModule)
		}
	}

	if cfg.Perturb.Perturbation == perturb.Backtranslation {
		translationCfg := cfg.Translation
		opts = append(opts, fx.Supply(&translationCfg), translation.FXModule, segment.FXModule)
	}

	if cfg.Features.ObjectStore {
		opts = append(opts, fx.Supply(cfg.Minio), minio.FXModule)
	}
	switch cfg.Features.RunLedger {
	case ledgerPostgres:
		opts = append(opts, fx.Supply(cfg.Postgres), postgres.FXModule)
	case ledgerMariaDB:
		opts = append(opts, fx.Supply(cfg.MariaDB), mariadb.FXModule)
	}
	if cfg.Features.RabbitEvents {
		opts = append(opts, fx.Supply(cfg.Rabbit), rabbit.FXModule)
	}
	if cfg.Features.KafkaEvents {
		opts = append(opts, fx.Supply(cfg.Kafka), kafka.FXModule)
		if cfg.Features.KafkaAvro {
			opts = append(opts, fx.Supply(cfg.Registry), schemaregistry.FXModule)
		}
	}

	return append(opts, fx.Invoke(func(c components) { *target = c }))
}
