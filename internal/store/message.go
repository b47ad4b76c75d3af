package store

import (
	"sync"
	"time"

	"flower-storefront/internal/model"

	"github.com/google/uuid"
)

// MessageStore keeps toasts until they expire.
type MessageStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []model.Message
}

func NewMessageStore(ttl time.Duration) *MessageStore {
	return &MessageStore{ttl: ttl, now: time.Now}
}

func (s *MessageStore) Push(success bool, text string) model.Message {
	msg := model.Message{
		ID:        uuid.NewString(),
		Type:      model.MessageDanger,
		Title:     "錯誤",
		Text:      text,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if success {
		msg.Type = model.MessageSuccess
		msg.Title = "成功"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, msg)
	return msg
}

// List returns live toasts, dropping expired ones.
func (s *MessageStore) List() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	live := s.items[:0]
	for _, m := range s.items {
		if now.Before(m.ExpiresAt) {
			live = append(live, m)
		}
	}
	s.items = live
	out := make([]model.Message, len(live))
	copy(out, live)
	return out
}

func (s *MessageStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}
