package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/models"
	"github.com/skillswap/skillswap-server/internal/repository"
)

// ChatService handles business logic for conversation messages. The
// conversation key is the friendship ID of the two participants.
type ChatService struct {
	messageRepo *repository.MessageRepository
	notifier    Notifier
}

// NewChatService creates a new ChatService.
func NewChatService(messageRepo *repository.MessageRepository, notifier Notifier) *ChatService {
	return &ChatService{messageRepo: messageRepo, notifier: notifier}
}

// SendMessage appends a message to a conversation and broadcasts it to the
// conversation room. The sender's own connections receive the echo too;
// clients render from the echo rather than inserting optimistically.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, senderID primitive.ObjectID, content string) (*models.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	stored, err := s.messageRepo.InsertMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	go s.notifier.BroadcastRoom(conversationID.Hex(), "receive_message", stored)

	return stored, nil
}

// GetConversation returns a conversation's messages in chronological order.
func (s *ChatService) GetConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	return s.messageRepo.GetConversation(ctx, conversationID)
}
