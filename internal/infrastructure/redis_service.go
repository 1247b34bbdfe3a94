package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"stock-tracker-api/internal/domain/entities"
)

// RedisOptions selects the Redis instance. URL wins over Host/Port when set.
type RedisOptions struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisService caches public user profiles. When Redis is unreachable at startup the
// service runs disabled: reads miss and writes are dropped.
type RedisService struct {
	client *redis.Client
}

// cachedProfile never carries credentials.
type cachedProfile struct {
	Id        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	AvatarURL *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRedisService(ctx context.Context, opts RedisOptions) *RedisService {
	if opts.URL != "" {
		opt, err := redis.ParseURL(opts.URL)
		if err == nil {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				log.Printf("[redis] connection with REDIS_URL failed: %v", err)
			} else {
				log.Println("[redis] connected using REDIS_URL")
				return &RedisService{client: client}
			}
		} else {
			log.Printf("[redis] invalid REDIS_URL: %v", err)
		}
	}

	if opts.Host == "" {
		return NewDisabledRedisService()
	}
	port := opts.Port
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, port),
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] connection failed: %v; profile cache disabled", err)
		_ = client.Close()
		return NewDisabledRedisService()
	}

	log.Printf("[redis] connected at %s:%s", opts.Host, port)
	return &RedisService{client: client}
}

func NewDisabledRedisService() *RedisService {
	return &RedisService{client: nil}
}

// NewRedisServiceWithClient wraps an existing client.
func NewRedisServiceWithClient(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

func (r *RedisService) Enabled() bool {
	return r.client != nil
}

func profileKey(userId uint) string {
	return fmt.Sprintf("profile:%d", userId)
}

// GetProfile returns (nil, nil) on a cache miss.
func (r *RedisService) GetProfile(ctx context.Context, userId uint) (*entities.User, error) {
	if r.client == nil {
		return nil, nil
	}
	data, err := r.client.Get(ctx, profileKey(userId)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var profile cachedProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, err
	}

	return &entities.User{
		Id:        profile.Id,
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt,
	}, nil
}

func (r *RedisService) SetProfile(ctx context.Context, user *entities.User, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	data, err := json.Marshal(cachedProfile{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKey(user.Id), data, ttl).Err()
}

func (r *RedisService) DeleteProfile(ctx context.Context, userId uint) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, profileKey(userId)).Err()
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
