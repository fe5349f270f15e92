package ws

import (
	"log"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewPost(post *domain.Post) {
	evt, err := NewEvent(EventTypePostNew, PostPayload{Post: *post})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}

func (n *HubNotifier) NotifyDeletedPost(postID uuid.UUID) {
	evt, err := NewEvent(EventTypePostDeleted, PostDeletedPayload{ID: postID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}

func (n *HubNotifier) NotifyLikes(postID uuid.UUID, likes []domain.Like) {
	evt, err := NewEvent(EventTypePostLikes, PostLikesPayload{PostID: postID, Likes: likes})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}
