package services

import (
	"strings"
	"testing"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/models"
	"github.com/communitypulse/backend/internal/realtime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFlagNotifiesModerators(t *testing.T) {
	db := newTestDB(t)
	hub := realtime.NewHub()
	svc := NewFlagService(db, hub)

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	post := createPost(t, db, author.ID, strings.Repeat("long post content ", 20))

	modConn := &recordConn{}
	userConn := &recordConn{}
	hub.Register(modConn, moderator.ID, models.RoleModerator)
	hub.Register(userConn, author.ID, models.RoleUser)

	flag, err := svc.Create(flagger.ID, &dto.CreateFlagRequest{
		PostID:         post.ID,
		ReasonCategory: "harassment",
		ReasonText:     "targets another member",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FlagPending, flag.Status)
	assert.Equal(t, flagger.ID, flag.FlaggedBy)

	require.Len(t, modConn.frames, 1)
	assert.Equal(t, realtime.EventNewFlag, modConn.frames[0].Event)
	event := modConn.frames[0].Data.(realtime.NewFlagEvent)
	assert.Equal(t, flag.ID, event.FlagID)
	assert.Equal(t, "harassment", event.Reason)
	assert.Equal(t, flagger.Name, event.FlaggedBy)
	assert.Len(t, event.PostContent, 103)
	assert.True(t, strings.HasSuffix(event.PostContent, "..."))

	// Regular users are not on the moderation channel.
	assert.Empty(t, userConn.frames)
}

func TestCreateFlagDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFlagService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	other := createUser(t, db, models.RoleUser, 0)
	post := createPost(t, db, author.ID, "post")

	req := &dto.CreateFlagRequest{PostID: post.ID, ReasonCategory: "spam"}

	_, err := svc.Create(flagger.ID, req)
	require.NoError(t, err)

	_, err = svc.Create(flagger.ID, req)
	assert.ErrorIs(t, err, ErrDuplicateFlag)

	// A different user can still flag the same post.
	_, err = svc.Create(other.ID, req)
	require.NoError(t, err)
}

func TestCreateFlagValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFlagService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	post := createPost(t, db, author.ID, "post")

	_, err := svc.Create(flagger.ID, &dto.CreateFlagRequest{PostID: post.ID, ReasonCategory: "rudeness"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.Create(flagger.ID, &dto.CreateFlagRequest{
		PostID:         post.ID,
		ReasonCategory: "spam",
		ReasonText:     strings.Repeat("x", 501),
	})
	assert.ErrorIs(t, err, ErrReasonTooLong)

	_, err = svc.Create(flagger.ID, &dto.CreateFlagRequest{PostID: uuid.New(), ReasonCategory: "spam"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestMyFlagsListsOwnFlagsOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewFlagService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	other := createUser(t, db, models.RoleUser, 0)
	postA := createPost(t, db, author.ID, "post a")
	postB := createPost(t, db, author.ID, "post b")

	createPendingFlag(t, db, postA.ID, flagger.ID)
	createPendingFlag(t, db, postB.ID, flagger.ID)
	createPendingFlag(t, db, postA.ID, other.ID)

	flags, err := svc.MyFlags(flagger.ID)
	require.NoError(t, err)
	assert.Len(t, flags, 2)
	for _, f := range flags {
		assert.Equal(t, flagger.ID, f.FlaggedBy)
		require.NotNil(t, f.Post)
	}
}
