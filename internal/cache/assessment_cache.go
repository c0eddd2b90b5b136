package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clearcomply/internal/model"
)

// AssessmentCache handles Redis operations for assessment lifecycle metadata
type AssessmentCache interface {
	SetMeta(ctx context.Context, meta *model.AssessmentMeta) error
	GetMeta(ctx context.Context, assessmentID string) (*model.AssessmentMeta, error)
	SetStatus(ctx context.Context, assessmentID string, status model.AssessmentStatus) error
	ListByHost(ctx context.Context, hostID string) ([]*model.AssessmentMeta, error)
}

type assessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAssessmentCache creates a new assessment cache
func NewAssessmentCache(client *redis.Client) AssessmentCache {
	return &assessmentCache{
		client: client,
		ttl:    7 * 24 * time.Hour,
	}
}

func (c *assessmentCache) metaKey(assessmentID string) string {
	return fmt.Sprintf("assessment:%s:meta", assessmentID)
}

func (c *assessmentCache) hostKey(hostID string) string {
	return fmt.Sprintf("host:%s:assessments", hostID)
}

func (c *assessmentCache) SetMeta(ctx context.Context, meta *model.AssessmentMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.metaKey(meta.ID), data, c.ttl).Err(); err != nil {
		return err
	}
	if meta.HostID != "" {
		if err := c.client.SAdd(ctx, c.hostKey(meta.HostID), meta.ID).Err(); err != nil {
			return err
		}
		return c.client.Expire(ctx, c.hostKey(meta.HostID), c.ttl).Err()
	}
	return nil
}

func (c *assessmentCache) GetMeta(ctx context.Context, assessmentID string) (*model.AssessmentMeta, error) {
	data, err := c.client.Get(ctx, c.metaKey(assessmentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var meta model.AssessmentMeta
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *assessmentCache) SetStatus(ctx context.Context, assessmentID string, status model.AssessmentStatus) error {
	meta, err := c.GetMeta(ctx, assessmentID)
	if err != nil {
		return err
	}
	if meta == nil {
		return fmt.Errorf("assessment %s not found", assessmentID)
	}
	meta.Status = status
	if status == model.AssessmentCompleted && meta.CompletedAt == nil {
		now := time.Now().UTC()
		meta.CompletedAt = &now
	}
	return c.SetMeta(ctx, meta)
}

func (c *assessmentCache) ListByHost(ctx context.Context, hostID string) ([]*model.AssessmentMeta, error) {
	ids, err := c.client.SMembers(ctx, c.hostKey(hostID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	metas := make([]*model.AssessmentMeta, 0, len(ids))
	for _, id := range ids {
		meta, err := c.GetMeta(ctx, id)
		if err != nil {
			return nil, err
		}
		if meta == nil {
			// Meta expired ahead of the index entry.
			continue
		}
		metas = append(metas, meta)
	}
	return metas, nil
}
