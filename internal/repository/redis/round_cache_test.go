package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func newMockClient(t *testing.T) (*Client, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	return NewClientFromPool(rdb), mock
}

func TestSetAndGetRoundState(t *testing.T) {
	c, mock := newMockClient(t)
	state := json.RawMessage(`{"phase":"PlayingGame"}`)

	mock.ExpectSet(roundStateKey("m-1"), []byte(state), 0).SetVal("OK")
	if err := c.SetRoundState(context.Background(), "m-1", state); err != nil {
		t.Fatalf("SetRoundState: %v", err)
	}

	mock.ExpectGet(roundStateKey("m-1")).SetVal(string(state))
	got, err := c.GetRoundState(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("GetRoundState: %v", err)
	}
	if string(got) != string(state) {
		t.Errorf("expected %s, got %s", state, got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetRoundStateReturnsNilOnMiss(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectGet(roundStateKey("m-2")).RedisNil()

	got, err := c.GetRoundState(context.Background(), "m-2")
	if err != nil {
		t.Fatalf("GetRoundState: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on cache miss, got %s", got)
	}
}

func TestSetGablakDeadlineUsesGraceTTL(t *testing.T) {
	c, mock := newMockClient(t)
	deadline := time.Now().Add(5 * time.Second)

	mock.Regexp().ExpectSet(gablakTimerKey("m-1"), `\d+`, `.*`).SetVal("OK")
	if err := c.SetGablakDeadline(context.Background(), "m-1", deadline); err != nil {
		t.Fatalf("SetGablakDeadline: %v", err)
	}
}

func TestDeleteRoundDataRemovesAllKeys(t *testing.T) {
	c, mock := newMockClient(t)
	mock.ExpectDel(roundStateKey("m-1"), gablakTimerKey("m-1"), qaydTimerKey("m-1")).SetVal(3)

	if err := c.DeleteRoundData(context.Background(), "m-1"); err != nil {
		t.Fatalf("DeleteRoundData: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
