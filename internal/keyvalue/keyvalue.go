// Package keyvalue is the durable key/value layer the store persists its
// collections into. Self-contained mode keeps everything in a local sqlite
// file; otherwise records live in redis.
package keyvalue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"furstream/internal/models"
)

type KV struct {
	sugar         *zap.SugaredLogger
	selfContained bool
	db            *sql.DB
	redisClient   *redis.Client
	redisCtx      context.Context
}

func setPragmaValues(db *sql.DB) error {
	// these next 2 extremely speed up performance of sqlite
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA synchronous = normal"); err != nil {
		return err
	}

	return nil
}

func Setup(cfg *models.ConfigFile, sugar *zap.SugaredLogger) (*KV, error) {
	kv := &KV{
		sugar:         sugar,
		selfContained: cfg.SelfContained,
		redisCtx:      context.Background(),
	}

	if cfg.SelfContained {
		db, err := sql.Open("sqlite", cfg.SqlitePath)
		if err != nil {
			return nil, err
		}

		if err := setPragmaValues(db); err != nil {
			return nil, err
		}

		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS keyvalue (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`)
		if err != nil {
			return nil, err
		}

		kv.db = db
		return kv, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(kv.redisCtx).Err(); err != nil {
		return nil, err
	}

	kv.redisClient = rdb
	return kv, nil
}

func (kv *KV) Get(key string) (string, error) {
	debugText := fmt.Sprintf("Getting value of key [%s]", key)
	if kv.selfContained {
		kv.sugar.Debugf("%s from sqlite", debugText)

		var value string
		err := kv.db.QueryRow("SELECT value FROM keyvalue WHERE key = ?", key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		} else if err != nil {
			return "", err
		}

		return value, nil
	}

	kv.sugar.Debugf("%s from redis", debugText)

	value, err := kv.redisClient.Get(kv.redisCtx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return value, nil
}

func (kv *KV) Set(key string, value string) error {
	debugText := fmt.Sprintf("Setting value of key [%s]", key)
	if kv.selfContained {
		kv.sugar.Debugf("%s in sqlite", debugText)

		_, err := kv.db.Exec(`
			INSERT INTO keyvalue (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		return err
	}

	kv.sugar.Debugf("%s in redis", debugText)
	_, err := kv.redisClient.Set(kv.redisCtx, key, value, 0).Result()
	return err
}

func (kv *KV) Close() error {
	if kv.selfContained {
		return kv.db.Close()
	}
	return kv.redisClient.Close()
}

// Load reads the record under key into a value of type T. Absent, unreadable
// or corrupt records fall back to the supplied default; loading never fails.
func Load[T any](kv *KV, key string, fallback T) T {
	raw, err := kv.Get(key)
	if err != nil {
		kv.sugar.Errorf("reading key [%s]: %v", key, err)
		return fallback
	}
	if raw == "" {
		return fallback
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		kv.sugar.Errorf("parsing key [%s]: %v", key, err)
		return fallback
	}
	return out
}

// Save serializes data and stores the whole record under key. Failed writes
// are logged and dropped; the next successful write reconciles.
func Save(kv *KV, key string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		kv.sugar.Errorf("serializing key [%s]: %v", key, err)
		return
	}

	if err := kv.Set(key, string(raw)); err != nil {
		kv.sugar.Errorf("writing key [%s]: %v", key, err)
	}
}
