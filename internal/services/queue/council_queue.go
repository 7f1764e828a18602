package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	queuePkg "github.com/jwebster45206/kingdom-council/pkg/queue"
)

// requestsKey is the global list all workers consume from.
const requestsKey = "council-requests"

// CouncilQueue manages the queue of background work for games:
// round advances and deferred issue resolutions.
type CouncilQueue struct {
	client *Client
}

func NewCouncilQueue(client *Client) *CouncilQueue {
	return &CouncilQueue{
		client: client,
	}
}

// EnqueueRequest adds a request to the global queue
func (cq *CouncilQueue) EnqueueRequest(ctx context.Context, req *queuePkg.Request) error {
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}

	if err := cq.client.rdb.RPush(ctx, requestsKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue request: %w", err)
	}
	return nil
}

// DequeueRequest removes and returns the next request from the global queue.
// Returns nil if queue is empty.
func (cq *CouncilQueue) DequeueRequest(ctx context.Context) (*queuePkg.Request, error) {
	result, err := cq.client.rdb.LPop(ctx, requestsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Queue is empty
		}
		return nil, fmt.Errorf("failed to dequeue request: %w", err)
	}

	req, err := queuePkg.FromJSON([]byte(result))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	return req, nil
}

// BlockingDequeueRequest blocks until a request is available or the
// timeout elapses. Returns nil on timeout.
func (cq *CouncilQueue) BlockingDequeueRequest(ctx context.Context, timeout time.Duration) (*queuePkg.Request, error) {
	result, err := cq.client.rdb.BLPop(ctx, timeout, requestsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Timed out waiting
		}
		return nil, fmt.Errorf("failed to dequeue request: %w", err)
	}

	// BLPop returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BLPop result: %v", result)
	}

	req, err := queuePkg.FromJSON([]byte(result[1]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	return req, nil
}

// Depth returns the number of requests in the global queue
func (cq *CouncilQueue) Depth(ctx context.Context) (int, error) {
	count, err := cq.client.rdb.LLen(ctx, requestsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return int(count), nil
}
