// Package export hands playlist export requests to a durable queue. The
// pipeline is fire-and-forget: the request returns once the broker has
// the job, and a separate worker drains the queue out of process.
package export

import (
	"context"
	"encoding/json"
	"fmt"

	"OpenMusic/core/access"
)

// Queue is the routing key export jobs are published under.
const Queue = "export:playlist"

// job is the descriptor the downstream worker consumes.
type job struct {
	UserID      string `json:"userId"`
	PlaylistID  string `json:"playlistId"`
	TargetEmail string `json:"targetEmail"`
}

// Dispatcher accepts export requests and enqueues them.
type Dispatcher struct {
	access    *access.Evaluator
	publisher Publisher
}

// NewDispatcher creates an export dispatcher.
func NewDispatcher(evaluator *access.Evaluator, publisher Publisher) *Dispatcher {
	return &Dispatcher{access: evaluator, publisher: publisher}
}

// Request enqueues an export job for the playlist. The requester must
// be the owner or a collaborator. There is no duplicate suppression:
// re-issuing the same request creates an independent job.
func (d *Dispatcher) Request(ctx context.Context, playlistID, requesterID, targetEmail string) error {
	if err := d.access.RequireAccess(ctx, playlistID, requesterID); err != nil {
		return err
	}

	body, err := json.Marshal(job{
		UserID:      requesterID,
		PlaylistID:  playlistID,
		TargetEmail: targetEmail,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal export job: %w", err)
	}

	return d.publisher.Publish(ctx, Queue, body)
}
