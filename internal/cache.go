package internal

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var rdb *redis.Client
var cacheCtx = context.Background()
var memCache *cache.Cache

var memoryDataExpiration = 10 * time.Second

var redisInitialized bool

// InitCache initializes the two-tier cache: a short-lived in-memory tier in
// front of redis. With dryRun set the redis tier stays disabled and only the
// memory tier is used.
func InitCache(redisURI string, redisPassword string, redisDB int, dryRun string) {
	memCache = cache.New(memoryDataExpiration, 20*time.Second)

	if dryRun == "True" || dryRun == "true" {
		zap.S().Infof("Running cache in DRY_RUN mode, redis tier disabled")
		return
	}

	options := redis.Options{
		Addr:     redisURI,
		Password: redisPassword,
		DB:       redisDB,
	}
	zap.S().Debugf("Initializing redis cache at %s (db %d)", options.Addr, options.DB)

	rdb = redis.NewClient(&options)
	redisInitialized = true
}

// InitMemcache sets up the memory tier only. Used by tests.
func InitMemcache() {
	memCache = cache.New(memoryDataExpiration, 20*time.Second)
	rdb = nil
	redisInitialized = false
}

func IsRedisAvailable() bool {
	if !redisInitialized {
		zap.S().Warn("Redis is not initialized")
		return false
	}
	if rdb != nil {
		timeout, cancel := context.WithTimeout(cacheCtx, time.Second*10)
		defer cancel()
		statusCmd := rdb.Ping(timeout)

		if statusCmd != nil && statusCmd.Val() == "PONG" {
			return true
		}
		zap.S().Debugf("Redis Error: %s", statusCmd)
	}
	return false
}

// GetTiered attempts to get key from the memory cache, falling back to redis
// on a miss.
func GetTiered(key string) (cached bool, value interface{}) {
	if memCache == nil {
		return false, nil
	}
	value, cached = memCache.Get(key)
	if cached {
		return
	}
	if rdb == nil {
		return false, nil
	}

	d := time.Now().Add(memoryDataExpiration)
	ctx, cancel := context.WithDeadline(context.Background(), d)
	defer cancel()

	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false, nil
	}

	// Write back to the memory tier.
	memCache.SetDefault(key, raw)
	return true, raw
}

// SetTiered sets both tiers; the expiration applies to the redis tier only,
// the memory tier keeps its short default.
func SetTiered(key string, value interface{}, redisExpiration time.Duration) {
	if memCache == nil {
		return
	}
	memCache.SetDefault(key, value)
	if rdb != nil {
		rdb.Set(cacheCtx, key, value, redisExpiration)
	}
}
