package praise

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/painscope/internal/interfaces"
	"golang.org/x/sync/singleflight"
)

// Anchors holds the embedded praise and complaint reference texts.
type Anchors struct {
	Praise    []float32
	Complaint []float32
}

// AnchorCache embeds the two anchor texts at most once for its lifetime.
// Concurrent first calls share one backend request; failures are not cached.
type AnchorCache struct {
	service       interfaces.EmbeddingService
	praiseText    string
	complaintText string

	mu      sync.RWMutex
	anchors *Anchors
	sf      singleflight.Group
}

// NewAnchorCache creates a cache for the given anchor texts
func NewAnchorCache(service interfaces.EmbeddingService, praiseText, complaintText string) *AnchorCache {
	return &AnchorCache{
		service:       service,
		praiseText:    praiseText,
		complaintText: complaintText,
	}
}

// Get returns the cached anchors, embedding them on first use.
func (c *AnchorCache) Get(ctx context.Context) (*Anchors, error) {
	c.mu.RLock()
	if c.anchors != nil {
		anchors := c.anchors
		c.mu.RUnlock()
		return anchors, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("anchors", func() (interface{}, error) {
		c.mu.RLock()
		cached := c.anchors
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		vectors, err := c.service.EmbedBatch(ctx, []string{c.praiseText, c.complaintText})
		if err != nil {
			return nil, fmt.Errorf("failed to embed anchors: %w", err)
		}
		if len(vectors) != 2 || len(vectors[0]) == 0 || len(vectors[0]) != len(vectors[1]) {
			return nil, fmt.Errorf("embedding backend returned unusable anchor vectors")
		}

		anchors := &Anchors{Praise: vectors[0], Complaint: vectors[1]}
		c.mu.Lock()
		c.anchors = anchors
		c.mu.Unlock()
		return anchors, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Anchors), nil
}
