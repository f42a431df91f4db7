// internal/storage/cache.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"credit-risk-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// AssessmentCache keeps the latest assessment per subject in Redis so
// repeat lookups skip the database.
type AssessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAssessmentCache(client *redis.Client, ttl time.Duration) *AssessmentCache {
	return &AssessmentCache{client: client, ttl: ttl}
}

func companyKey(name string) string {
	return "assessment:company:" + name
}

func individualKey(name string) string {
	return "assessment:individual:" + name
}

// SetLatestCompany stores the most recent company assessment.
func (c *AssessmentCache) SetLatestCompany(ctx context.Context, rec *models.CompanyAssessment) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal company assessment: %w", err)
	}
	return c.client.Set(ctx, companyKey(rec.CompanyName), data, c.ttl).Err()
}

// GetLatestCompany returns the cached assessment, or nil on a miss.
func (c *AssessmentCache) GetLatestCompany(ctx context.Context, name string) (*models.CompanyAssessment, error) {
	val, err := c.client.Get(ctx, companyKey(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec models.CompanyAssessment
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal cached company assessment: %w", err)
	}
	return &rec, nil
}

// SetLatestIndividual stores the most recent individual assessment.
func (c *AssessmentCache) SetLatestIndividual(ctx context.Context, rec *models.IndividualAssessment) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal individual assessment: %w", err)
	}
	return c.client.Set(ctx, individualKey(rec.FullName), data, c.ttl).Err()
}

// GetLatestIndividual returns the cached assessment, or nil on a miss.
func (c *AssessmentCache) GetLatestIndividual(ctx context.Context, name string) (*models.IndividualAssessment, error) {
	val, err := c.client.Get(ctx, individualKey(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec models.IndividualAssessment
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal cached individual assessment: %w", err)
	}
	return &rec, nil
}
