package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/domain"
)

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("decoding event: %v", err)
		}
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubBroadcastFansOut(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := NewClient(hub, nil, uuid.New())
	second := NewClient(hub, nil, uuid.New())
	hub.register <- first
	hub.register <- second

	evt, err := NewEvent(EventTypePostDeleted, PostDeletedPayload{ID: uuid.New()})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	hub.Broadcast(evt)

	for _, c := range []*Client{first, second} {
		got := recvEvent(t, c)
		if got.Type != EventTypePostDeleted {
			t.Fatalf("event type = %q, want %q", got.Type, EventTypePostDeleted)
		}
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, uuid.New())
	hub.register <- client
	hub.unregister <- client

	evt, _ := NewEvent(EventTypePostNew, PostPayload{})
	hub.Broadcast(evt)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("unregistered client received an event")
		}
		// channel closed, as expected
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected the send channel to be closed")
	}
}

func TestNotifierEventShapes(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, uuid.New())
	hub.register <- client

	notifier := NewHubNotifier(hub)
	post := &domain.Post{ID: uuid.New(), UserID: uuid.New(), Text: "hi", Name: "A", Likes: []domain.Like{}, CreatedAt: time.Now()}
	notifier.NotifyNewPost(post)

	evt := recvEvent(t, client)
	if evt.Type != EventTypePostNew {
		t.Fatalf("event type = %q, want %q", evt.Type, EventTypePostNew)
	}
	var payload PostPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload.Text != "hi" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	likes := []domain.Like{{UserID: uuid.New(), CreatedAt: time.Now()}}
	notifier.NotifyLikes(post.ID, likes)

	evt = recvEvent(t, client)
	if evt.Type != EventTypePostLikes {
		t.Fatalf("event type = %q, want %q", evt.Type, EventTypePostLikes)
	}
	var likesPayload PostLikesPayload
	if err := json.Unmarshal(evt.Payload, &likesPayload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if likesPayload.PostID != post.ID || len(likesPayload.Likes) != 1 {
		t.Fatalf("unexpected payload %+v", likesPayload)
	}
}
