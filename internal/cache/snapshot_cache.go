package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clearcomply/internal/model"
)

// SnapshotCache handles Redis persistence of engine snapshots. It satisfies
// the engine's ProgressStore interface.
type SnapshotCache interface {
	Save(ctx context.Context, snap *model.Snapshot) error
	Load(ctx context.Context, assessmentID string) (*model.Snapshot, error)
}

type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(client *redis.Client) SnapshotCache {
	return &snapshotCache{
		client: client,
		ttl:    7 * 24 * time.Hour, // Abandoned sessions expire after a week
	}
}

func (c *snapshotCache) key(assessmentID string) string {
	return fmt.Sprintf("assessment:%s:snapshot", assessmentID)
}

func (c *snapshotCache) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(snap.AssessmentID), data, c.ttl).Err()
}

func (c *snapshotCache) Load(ctx context.Context, assessmentID string) (*model.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key(assessmentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
