package cache

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis"
	log "github.com/sirupsen/logrus"

	"github.com/michael123610/codesnippet-hub/models"
)

// SnippetCache is the cache layer consulted before the database.
// Entries expire on their own TTL; mutations additionally invalidate
// the affected keys. A cache failure is never fatal to a request -
// callers log it and fall through to storage.
type SnippetCache interface {
	GetList(key string) (*models.SnippetList, bool)
	SetList(key string, list *models.SnippetList)
	// InvalidateLists drops every cached listing result. Listing keys
	// are indexed in a Redis set so invalidation is a membership sweep,
	// not a keyspace scan.
	InvalidateLists()

	GetSnippet(id uint) (*models.SnippetDetail, bool)
	SetSnippet(id uint, detail *models.SnippetDetail)
	DeleteSnippet(id uint)

	GetTags() ([]models.Tag, bool)
	SetTags(tags []models.Tag)
	GetPopularTags(limit int) ([]models.Tag, bool)
	SetPopularTags(limit int, tags []models.Tag)
}

type redisCache struct {
	client     *redis.Client
	ttl        time.Duration
	popularTTL time.Duration
}

func NewRedisCache(client *redis.Client) SnippetCache {
	ttl := time.Hour
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}
	return &redisCache{
		client:     client,
		ttl:        ttl,
		popularTTL: 30 * time.Minute,
	}
}

func (c *redisCache) get(key string, out interface{}) bool {
	raw, err := c.client.Get(key).Result()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).WithField("key", key).Error("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.WithError(err).WithField("key", key).Error("cache entry corrupt, dropping")
		c.client.Del(key)
		return false
	}
	return true
}

func (c *redisCache) set(key string, val interface{}, ttl time.Duration) {
	raw, err := json.Marshal(val)
	if err != nil {
		log.WithError(err).WithField("key", key).Error("cache marshal failed")
		return
	}
	if err := c.client.Set(key, raw, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Error("cache write failed")
	}
}

func (c *redisCache) GetList(key string) (*models.SnippetList, bool) {
	var list models.SnippetList
	if !c.get(key, &list) {
		return nil, false
	}
	return &list, true
}

func (c *redisCache) SetList(key string, list *models.SnippetList) {
	c.set(key, list, c.ttl)
	// Index the key so InvalidateLists can find it later. The index
	// outlives expired entries; deleting a gone key is a no-op.
	if err := c.client.SAdd(keyListIndex, key).Err(); err != nil {
		log.WithError(err).WithField("key", key).Error("cache list index update failed")
	}
}

func (c *redisCache) InvalidateLists() {
	keys, err := c.client.SMembers(keyListIndex).Result()
	if err != nil {
		log.WithError(err).Error("cache list invalidation failed")
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(keys...).Err(); err != nil {
			log.WithError(err).Error("cache list invalidation failed")
			return
		}
	}
	if err := c.client.Del(keyListIndex).Err(); err != nil {
		log.WithError(err).Error("cache list index reset failed")
	}
}

func (c *redisCache) GetSnippet(id uint) (*models.SnippetDetail, bool) {
	var detail models.SnippetDetail
	if !c.get(SnippetKey(id), &detail) {
		return nil, false
	}
	return &detail, true
}

func (c *redisCache) SetSnippet(id uint, detail *models.SnippetDetail) {
	c.set(SnippetKey(id), detail, c.ttl)
}

func (c *redisCache) DeleteSnippet(id uint) {
	if err := c.client.Del(SnippetKey(id)).Err(); err != nil {
		log.WithError(err).WithField("snippet_id", id).Error("cache delete failed")
	}
}

func (c *redisCache) GetTags() ([]models.Tag, bool) {
	var tags []models.Tag
	if !c.get(keyAllTags, &tags) {
		return nil, false
	}
	return tags, true
}

func (c *redisCache) SetTags(tags []models.Tag) {
	c.set(keyAllTags, tags, c.ttl)
}

func (c *redisCache) GetPopularTags(limit int) ([]models.Tag, bool) {
	var tags []models.Tag
	if !c.get(PopularTagsKey(limit), &tags) {
		return nil, false
	}
	return tags, true
}

func (c *redisCache) SetPopularTags(limit int, tags []models.Tag) {
	c.set(PopularTagsKey(limit), tags, c.popularTTL)
}
