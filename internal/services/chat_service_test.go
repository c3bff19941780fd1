package services

import (
	"errors"
	"testing"

	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/testutil"
	"marketplace_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_CreateChatIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewChatService(repositories.NewChatRepository(), repositories.NewUserRepository(), nil)
	alice := testutil.CreateUser(t, db, models.UserRoleBrand, "Alice")
	bob := testutil.CreateUser(t, db, models.UserRoleInfluencer, "Bob")

	chat, created, err := svc.CreateChat(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, chat.Participants, 2)

	again, created, err := svc.CreateChat(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, chat.ID, again.ID)

	_, _, err = svc.CreateChat(db, alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrChatWithSelf)

	_, _, err = svc.CreateChat(db, alice.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrRecipientGone)
}

func TestChatService_SendMessagePersistsThenPublishes(t *testing.T) {
	db := testutil.NewTestDB(t)
	publisher := &recordingPublisher{}
	svc := NewChatService(repositories.NewChatRepository(), repositories.NewUserRepository(), publisher)
	alice := testutil.CreateUser(t, db, models.UserRoleBrand, "Alice")
	bob := testutil.CreateUser(t, db, models.UserRoleInfluencer, "Bob")
	eve := testutil.CreateUser(t, db, models.UserRoleInfluencer, "Eve")

	chat, _, err := svc.CreateChat(db, alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := svc.SendMessage(db, alice.ID, chat.ID, "Hello Bob", "conn-1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.SenderID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, chat.ID, publisher.events[0].chatID)
	assert.Equal(t, "conn-1", publisher.events[0].origin)
	assert.Equal(t, msg.ID, publisher.events[0].event.Message.ID)
	assert.Equal(t, "Hello Bob", publisher.events[0].event.Message.Content)

	messages, err := svc.GetMessages(db, bob.ID, chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Hello Bob", messages[0].Content)

	_, err = svc.SendMessage(db, eve.ID, chat.ID, "intrude", "")
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	_, err = svc.GetMessages(db, eve.ID, chat.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	_, err = svc.GetMessages(db, eve.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrChatNotFound)
	assert.Len(t, publisher.events, 1)

	chats, err := svc.ListChats(db, bob.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.WithinDuration(t, msg.Timestamp, chats[0].LastMessageAt, 0)

	none, err := svc.ListChats(db, eve.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestChatService_PublishFailureDoesNotFailSend(t *testing.T) {
	db := testutil.NewTestDB(t)
	publisher := &recordingPublisher{err: errors.New("relay down")}
	svc := NewChatService(repositories.NewChatRepository(), repositories.NewUserRepository(), publisher)
	alice := testutil.CreateUser(t, db, models.UserRoleBrand, "Alice")
	bob := testutil.CreateUser(t, db, models.UserRoleInfluencer, "Bob")

	chat, _, err := svc.CreateChat(db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(db, bob.ID, chat.ID, "still stored", "")
	require.NoError(t, err)

	messages, err := svc.GetMessages(db, alice.ID, chat.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
