package app

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movedata/internal/config"
	"movedata/internal/db"
	"movedata/internal/decode"
	"movedata/internal/export"
	"movedata/internal/movebank"
	redisstore "movedata/internal/redis"
	"movedata/internal/repository"
	"movedata/internal/service"
)

// App wires the ingestion pipeline dependencies.
type App struct {
	service *service.IngestService
	db      *sql.DB
	redis   *redis.Client
	influx  *export.InfluxWriter
	cfg     *config.Config
	logger  *zap.Logger
}

// New constructs application components. Postgres, redis and Influx are each
// optional: leaving their config empty disables that path.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{cfg: cfg, logger: logger}

	client := movebank.NewClient(cfg.Movebank.BaseURL, cfg.Movebank.Username, cfg.Movebank.Password, logger)

	var store service.SampleStore
	if cfg.Database.DSN != "" {
		pool, err := db.NewPostgres(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		app.db = pool
		store = repository.NewSampleRepository(pool)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = rdb
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		client.UseCache(redisstore.NewResponseCache(rdb, ttl))
	}

	var sink service.TimeSeriesSink
	if cfg.Influx.URL != "" && cfg.Influx.Token != "" {
		app.influx = export.NewInfluxWriter(cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket, logger)
		sink = app.influx
	}

	decoder := decode.NewAccelerationDecoder(
		decode.Unit(cfg.Decode.Unit),
		decode.Sensitivity(cfg.Decode.Sensitivity),
		logger,
	)
	normalizer := decode.NewGPSNormalizer(logger)

	app.service = service.NewIngestService(client, decoder, normalizer, store, sink, logger)
	return app, nil
}

// Run executes one study-wide ingestion cycle.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Export.Dir != "" {
		if err := os.MkdirAll(a.cfg.Export.Dir, 0o755); err != nil {
			return err
		}
	}
	return a.service.IngestStudy(ctx, a.cfg.Movebank.StudyID, a.cfg.Export.Dir)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.influx != nil {
		a.influx.Close()
	}
}
