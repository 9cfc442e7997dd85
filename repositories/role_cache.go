// repositories/role_cache.go
package repositories

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

const roleCacheTTL = 5 * time.Minute

// RoleCache caches role -> user id lookups in Redis. Lifecycle operations
// re-query the user collection on every transition; the cache keeps that
// cheap while user writes invalidate the affected roles explicitly, so a
// role change is visible on the next transition.
type RoleCache struct {
	client *redis.Client
}

// NewRoleCache wraps a Redis client. A nil client disables caching; every
// method becomes a no-op miss.
func NewRoleCache(client *redis.Client) *RoleCache {
	return &RoleCache{client: client}
}

func roleCacheKey(role models.Role) string {
	return "crm:role-users:" + string(role)
}

// Get returns the cached ids for a role, or (nil, false) on miss.
func (c *RoleCache) Get(ctx context.Context, role models.Role) ([]primitive.ObjectID, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	hexes, err := c.client.SMembers(ctx, roleCacheKey(role)).Result()
	if err != nil || len(hexes) == 0 {
		return nil, false
	}
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if h == "-" { // sentinel for a cached empty role
			return []primitive.ObjectID{}, true
		}
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// Put stores the ids for a role.
func (c *RoleCache) Put(ctx context.Context, role models.Role, ids []primitive.ObjectID) {
	if c == nil || c.client == nil {
		return
	}
	key := roleCacheKey(role)
	members := make([]interface{}, 0, len(ids)+1)
	if len(ids) == 0 {
		members = append(members, "-")
	}
	for _, id := range ids {
		members = append(members, id.Hex())
	}
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, roleCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("role cache: put %s failed: %v", role, err)
	}
}

// Invalidate drops the cached entries for the given roles. Called whenever
// a user create, update or delete could change role membership.
func (c *RoleCache) Invalidate(ctx context.Context, roles ...models.Role) {
	if c == nil || c.client == nil || len(roles) == 0 {
		return
	}
	keys := make([]string, len(roles))
	for i, role := range roles {
		keys[i] = roleCacheKey(role)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("role cache: invalidate failed: %v", err)
	}
}

// InvalidateAll drops every cached role.
func (c *RoleCache) InvalidateAll(ctx context.Context) {
	c.Invalidate(ctx,
		models.RoleCEO, models.RoleSuperadmin, models.RoleMD,
		models.RoleManager, models.RoleHOD, models.RoleAgent)
}
