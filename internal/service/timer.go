package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MatchTimerListener listens for Redis keyspace notifications on expired
// Gablak/Qayd deadline keys and triggers the matching timeout check on the
// owning MatchService, adapted from the TimerListener
// (internal/service/timer.go): same keyspace-notification-plus-polling-
// fallback shape, same ctx-cancelable goroutine pair.
type MatchTimerListener struct {
	rdb      *redis.Client
	services map[string]*MatchService
}

// NewMatchTimerListener creates a MatchTimerListener. services is consulted
// by match ID each time a deadline key expires or the poller fires.
func NewMatchTimerListener(rdb *redis.Client, services map[string]*MatchService) *MatchTimerListener {
	return &MatchTimerListener{rdb: rdb, services: services}
}

// Start begins listening for expired key events and runs a polling fallback.
func (t *MatchTimerListener) Start(ctx context.Context) {
	go t.listenKeyspace(ctx)
	t.pollLoop(ctx)
}

func (t *MatchTimerListener) listenKeyspace(ctx context.Context) {
	pubsub := t.rdb.PSubscribe(ctx, "__keyevent@0__:expired")
	defer pubsub.Close()

	log.Info().Msg("match timer listener started")
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			t.handleExpiry(ctx, msg.Payload)
		}
	}
}

// pollLoop is the fallback for environments without keyspace notifications
// enabled: every tick it re-checks every known match's deadlines directly
// against the Coordinator's own clock rather than relying on Redis having
// fired an event.
func (t *MatchTimerListener) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	log.Info().Msg("match deadline poller started (1s interval)")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("match deadline poller stopped")
			return
		case <-ticker.C:
			for matchID, svc := range t.services {
				if err := svc.PollGablakTimeout(ctx); err != nil {
					log.Error().Err(err).Str("matchId", matchID).Msg("gablak timeout poll failed")
				}
				if err := svc.PollQaydTimeout(ctx); err != nil {
					log.Error().Err(err).Str("matchId", matchID).Msg("qayd timeout poll failed")
				}
			}
		}
	}
}

// handleExpiry reacts immediately to a deadline key expiring, rather than
// waiting for the next poll tick.
func (t *MatchTimerListener) handleExpiry(ctx context.Context, key string) {
	if !strings.HasPrefix(key, "match:") {
		return
	}
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return
	}
	matchID, kind := parts[1], parts[2]
	svc, ok := t.services[matchID]
	if !ok {
		return
	}
	switch kind {
	case "gablak_deadline":
		if err := svc.PollGablakTimeout(ctx); err != nil {
			log.Error().Err(err).Str("matchId", matchID).Msg("gablak timeout failed after key expiry")
		}
	case "qayd_deadline":
		if err := svc.PollQaydTimeout(ctx); err != nil {
			log.Error().Err(err).Str("matchId", matchID).Msg("qayd timeout failed after key expiry")
		}
	}
}
