// db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
)

var RedisClient *redis.Client

func InitRedis(ctx context.Context) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func nonceKey(action, userID, token string) string {
	return fmt.Sprintf("nonce:%s:%s:%s", action, userID, token)
}

// IssueNonce stores a random token bound to (action, userID). The token stays
// valid until ttl elapses; verifying it does not consume it.
func IssueNonce(ctx context.Context, action, userID string, ttl time.Duration) (string, error) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	if err := RedisClient.Set(ctx, nonceKey(action, userID, token), "1", ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store nonce: %w", err)
	}
	logger.Debug("Nonce issued", zap.String("action", action), zap.String("userID", userID))
	return token, nil
}

func VerifyNonce(ctx context.Context, action, userID, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	n, err := RedisClient.Exists(ctx, nonceKey(action, userID, token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to verify nonce: %w", err)
	}
	return n == 1, nil
}

func CacheProduct(ctx context.Context, product *model.Product) error {
	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	key := fmt.Sprintf("product:%s", product.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	if err := RedisClient.Set(ctx, key, productJSON, defaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache product: %w", err)
	}

	logger.Debug("Product cached successfully", zap.String("productID", string(product.ID)))
	return nil
}

func GetCachedProduct(ctx context.Context, productID model.ProductID) (*model.Product, error) {
	key := fmt.Sprintf("product:%s", productID)
	productJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Product not found in cache", zap.String("productID", string(productID)))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

func DeleteCachedProduct(ctx context.Context, productID model.ProductID) error {
	key := fmt.Sprintf("product:%s", productID)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete product from cache: %w", err)
	}
	logger.Debug("Product deleted from cache", zap.String("productID", string(productID)))
	return nil
}

// RateLimit implements a sliding window over a sorted set per key.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
