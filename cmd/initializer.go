package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"kasiBack/internal/config"
	"kasiBack/internal/handlers"
	"kasiBack/internal/ratelimit"
	"kasiBack/internal/repositories"
	"kasiBack/internal/services"
)

// listingStore is the repository surface the application wires: the
// service's read methods plus a health ping.
type listingStore interface {
	services.ListingRepository
	Ping(ctx context.Context) error
}

type application struct {
	errorLog       *log.Logger
	infoLog        *log.Logger
	searchHandler  *handlers.SearchHandler
	searchService  *services.SearchService
	limiter        ratelimit.Limiter
	trustedProxies []*net.IPNet
	store          listingStore
	closers        []func()
}

func initializeApp(ctx context.Context, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	app := &application{errorLog: errorLog, infoLog: infoLog}
	logger := logAdapter{info: infoLog, err: errorLog}

	trusted, err := config.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}
	app.trustedProxies = trusted

	store, err := app.openStore(ctx, cfg)
	if err != nil {
		app.close()
		return nil, err
	}
	app.store = store

	checks := map[string]handlers.Pinger{"store": store}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.closers = append(app.closers, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			errorLog.Printf("redis ping %s: %v (rate limiting fails open)", cfg.Redis.Addr, err)
		}
		checks["redis"] = redisPinger{rdb: rdb}
		if cfg.RateLimit.RequestsPerMinute > 0 {
			app.limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.RequestsPerMinute, time.Minute)
		}
	} else if cfg.RateLimit.RequestsPerMinute > 0 {
		app.limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	app.searchService = &services.SearchService{
		Repo:            store,
		Parallel:        cfg.ParallelSearch(),
		SuggestionLimit: cfg.Search.SuggestionLimit,
		Timeout:         cfg.Search.Timeout,
	}
	app.searchHandler = &handlers.SearchHandler{
		Service:      app.searchService,
		Logger:       logger,
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		Checks:       checks,
	}

	return app, nil
}

func (app *application) openStore(ctx context.Context, cfg config.Config) (listingStore, error) {
	switch cfg.Database.Driver {
	case "mongo":
		client, err := repositories.NewMongoClient(ctx, cfg.Database.URL, cfg.Database.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { disconnectMongo(client) })

		repo := &repositories.MongoListingRepository{
			DB:              client.Database(cfg.Database.Name),
			UsersCollection: cfg.Database.UsersCollection,
		}
		if cfg.Database.EnsureIndexes {
			if err := repo.EnsureIndexes(ctx); err != nil {
				return nil, err
			}
			app.infoLog.Printf("listing indexes ensured on %s", cfg.Database.Name)
		}
		return repo, nil
	default:
		dialect, err := repositories.DialectFor(cfg.Database.Driver)
		if err != nil {
			return nil, err
		}
		db, err := openDB(dialect.Name, cfg.Database.URL, cfg.Database.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = db.Close() })
		return &repositories.SQLListingRepository{DB: db, Dialect: dialect}, nil
	}
}

func (app *application) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}

func openDB(driver, dsn string, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	db.SetMaxIdleConns(maxIdle)
	return db, nil
}

func disconnectMongo(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}

type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
