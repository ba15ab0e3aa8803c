package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key patterns for live round state.
func roundStateKey(matchID string) string    { return "match:" + matchID + ":round" }
func gablakTimerKey(matchID string) string   { return "match:" + matchID + ":gablak_deadline" }
func qaydTimerKey(matchID string) string     { return "match:" + matchID + ":qayd_deadline" }

// deadlineGracePeriod mirrors the phaseGracePeriod: the TTL on a
// deadline key runs slightly past the displayed deadline so a host polling
// loop always observes the key still present at the exact deadline instant.
const deadlineGracePeriod = 2 * time.Second

// SetRoundState stores the live round state JSON.
func (c *Client) SetRoundState(ctx context.Context, matchID string, state json.RawMessage) error {
	return c.rdb.Set(ctx, roundStateKey(matchID), []byte(state), 0).Err()
}

// GetRoundState retrieves the live round state JSON.
func (c *Client) GetRoundState(ctx context.Context, matchID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, roundStateKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get round state: %w", err)
	}
	return json.RawMessage(data), nil
}

// SetGablakDeadline arms a TTL key a host polling loop can use to notice a
// Gablak hijack window closing even if no further bid ever arrives.
func (c *Client) SetGablakDeadline(ctx context.Context, matchID string, deadline time.Time) error {
	return setDeadline(ctx, c, gablakTimerKey(matchID), deadline)
}

// ClearGablakDeadline removes the Gablak timer key.
func (c *Client) ClearGablakDeadline(ctx context.Context, matchID string) error {
	return c.rdb.Del(ctx, gablakTimerKey(matchID)).Err()
}

// SetQaydDeadline arms the equivalent TTL key for a Qayd hold window.
func (c *Client) SetQaydDeadline(ctx context.Context, matchID string, deadline time.Time) error {
	return setDeadline(ctx, c, qaydTimerKey(matchID), deadline)
}

// ClearQaydDeadline removes the Qayd timer key.
func (c *Client) ClearQaydDeadline(ctx context.Context, matchID string) error {
	return c.rdb.Del(ctx, qaydTimerKey(matchID)).Err()
}

func setDeadline(ctx context.Context, c *Client, key string, deadline time.Time) error {
	ttl := time.Until(deadline) + deadlineGracePeriod
	if ttl <= 0 {
		ttl = time.Second
	}
	return c.rdb.Set(ctx, key, deadline.Unix(), ttl).Err()
}

// DeleteRoundData removes all Redis data for a match's in-progress round,
// called once the round's result has been durably written by MatchRepository.
func (c *Client) DeleteRoundData(ctx context.Context, matchID string) error {
	return c.rdb.Del(ctx, roundStateKey(matchID), gablakTimerKey(matchID), qaydTimerKey(matchID)).Err()
}
