package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/postgres"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/storyverse/server/activity"
	"github.com/storyverse/server/config"
	"github.com/storyverse/server/logging"
	"github.com/storyverse/server/milestones"
	"github.com/storyverse/server/store"
)

// app holds everything a command needs. Close waits for pending milestone
// mails and releases it.
type app struct {
	cfg      *config.Config
	log      logging.Logger
	activity *activity.Service

	firebase *firebase.App
	auth     *auth.Client
	closers  []func() error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		log: logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel),
	}

	st, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := []activity.Option{
		activity.WithLocation(loc),
		activity.WithLookbackDays(cfg.StreakLookbackDays),
		activity.WithMaxStreakDays(cfg.StreakMaxDays),
		activity.WithMinWordCount(cfg.MinWordCount),
	}

	if cfg.MailgunEnabled() {
		users, err := a.authClient(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		notifier := milestones.NewMailgun(cfg.MailgunDomain, cfg.MailgunKey, users, cfg.MailgunSender, cfg.MailgunTemplate, a.log)
		opts = append(opts, activity.WithMilestoneNotifier(notifier, cfg.MilestoneEvery))
	}

	a.activity = activity.NewService(st, a.log, opts...)
	return a, nil
}

func (a *app) Close() {
	if a.activity != nil {
		a.activity.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	switch a.cfg.StoreBackend {
	case config.BackendFirestore:
		fb, err := a.firebaseApp(ctx)
		if err != nil {
			return nil, err
		}
		client, err := fb.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return store.NewFirestoreStore(client), nil

	case config.BackendPostgres:
		conn, err := DB(a.cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return store.NewPostgresStore(conn, a.log), nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping %s: %w", a.cfg.RedisAddr, err)
		}
		a.closers = append(a.closers, rdb.Close)
		return store.NewRedisStore(rdb), nil

	default:
		a.log.Warn(ctx, "using in-memory store; activity is lost on exit")
		return store.NewMemoryStore(), nil
	}
}

func (a *app) firebaseApp(ctx context.Context) (*firebase.App, error) {
	if a.firebase != nil {
		return a.firebase, nil
	}

	var opts []option.ClientOption
	if a.cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(a.cfg.FirebaseCredentialsFile))
	}

	var fbConfig *firebase.Config
	if a.cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: a.cfg.FirebaseProjectID}
	}

	fb, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: %w", err)
	}
	a.firebase = fb
	return fb, nil
}

func (a *app) authClient(ctx context.Context) (*auth.Client, error) {
	if a.auth != nil {
		return a.auth, nil
	}

	fb, err := a.firebaseApp(ctx)
	if err != nil {
		return nil, err
	}
	client, err := fb.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	a.auth = client
	return client, nil
}

// DB opens the Postgres database. DATABASE_URL is used as-is; otherwise the
// connection goes through the Cloud SQL dialer.
func DB(cfg *config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL != "" {
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("DB: %w", err)
		}
		return conn, nil
	}

	if cfg.CloudSQLConnectionName == "" || cfg.CloudSQLUser == "" {
		return nil, fmt.Errorf("DB: %w: set DATABASE_URL or CLOUDSQL_CONNECTION_NAME and CLOUDSQL_USER", config.ErrInvalid)
	}

	dbURI := fmt.Sprintf("host=%s dbname=%s user=%s password=%s sslmode=disable",
		cfg.CloudSQLConnectionName, cfg.CloudSQLDatabaseName, cfg.CloudSQLUser, cfg.CloudSQLPassword)
	conn, err := sql.Open("cloudsqlpostgres", dbURI)
	if err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}

	return conn, nil
}
