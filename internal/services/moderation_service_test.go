package services

import (
	"testing"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/models"
	"github.com/communitypulse/backend/internal/realtime"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordConn struct {
	frames []realtime.Envelope
}

func (r *recordConn) WriteJSON(v interface{}) error {
	r.frames = append(r.frames, v.(realtime.Envelope))
	return nil
}

func TestActionApproveRewardsAuthor(t *testing.T) {
	db := newTestDB(t)
	hub := realtime.NewHub()
	svc := NewModerationService(db, hub)

	author := createUser(t, db, models.RoleUser, 10)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	post := createPost(t, db, author.ID, "innocent post")
	flag := createPendingFlag(t, db, post.ID, flagger.ID)

	updated, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{
		Action: models.ActionApprove,
		Reason: "content is fine",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FlagApproved, updated.Status)

	var freshAuthor models.User
	require.NoError(t, db.First(&freshAuthor, "id = ?", author.ID).Error)
	assert.Equal(t, 15, freshAuthor.ReputationScore)

	// Post stays visible on approve.
	var freshPost models.Post
	require.NoError(t, db.First(&freshPost, "id = ?", post.ID).Error)
	assert.Equal(t, models.PostActive, freshPost.Status)

	var logs []models.ModerationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionApprove, logs[0].Action)
	assert.Equal(t, moderator.ID, logs[0].ModeratorID)
}

func TestActionRemovePenalizesAuthorAndHidesPost(t *testing.T) {
	db := newTestDB(t)
	hub := realtime.NewHub()
	svc := NewModerationService(db, hub)

	author := createUser(t, db, models.RoleUser, 25)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	post := createPost(t, db, author.ID, "bad post")
	flag := createPendingFlag(t, db, post.ID, flagger.ID)

	updated, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{
		Action: models.ActionRemove,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FlagRemoved, updated.Status)

	var freshPost models.Post
	require.NoError(t, db.First(&freshPost, "id = ?", post.ID).Error)
	assert.Equal(t, models.PostRemoved, freshPost.Status)

	var freshAuthor models.User
	require.NoError(t, db.First(&freshAuthor, "id = ?", author.ID).Error)
	assert.Equal(t, 15, freshAuthor.ReputationScore)
}

func TestActionRemoveFloorsReputationAtZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 3)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	post := createPost(t, db, author.ID, "bad post")
	flag := createPendingFlag(t, db, post.ID, flagger.ID)

	_, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{Action: models.ActionRemove})
	require.NoError(t, err)

	var freshAuthor models.User
	require.NoError(t, db.First(&freshAuthor, "id = ?", author.ID).Error)
	assert.Equal(t, 0, freshAuthor.ReputationScore)
}

func TestActionEscalateLeavesReputationAndPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 10)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	post := createPost(t, db, author.ID, "edge case post")
	flag := createPendingFlag(t, db, post.ID, flagger.ID)

	updated, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{Action: models.ActionEscalate})
	require.NoError(t, err)
	assert.Equal(t, models.FlagEscalated, updated.Status)

	var freshAuthor models.User
	require.NoError(t, db.First(&freshAuthor, "id = ?", author.ID).Error)
	assert.Equal(t, 10, freshAuthor.ReputationScore)

	var freshPost models.Post
	require.NoError(t, db.First(&freshPost, "id = ?", post.ID).Error)
	assert.Equal(t, models.PostActive, freshPost.Status)
}

func TestSecondActionOnSameFlagConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 10)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	post := createPost(t, db, author.ID, "contested post")
	flag := createPendingFlag(t, db, post.ID, flagger.ID)

	_, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{Action: models.ActionApprove})
	require.NoError(t, err)

	_, err = svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{Action: models.ActionRemove})
	assert.ErrorIs(t, err, ErrFlagProcessed)

	// The losing action left no trace: one log entry, one reward, post intact.
	var logs []models.ModerationLog
	require.NoError(t, db.Find(&logs).Error)
	assert.Len(t, logs, 1)

	var freshAuthor models.User
	require.NoError(t, db.First(&freshAuthor, "id = ?", author.ID).Error)
	assert.Equal(t, 15, freshAuthor.ReputationScore)

	var freshPost models.Post
	require.NoError(t, db.First(&freshPost, "id = ?", post.ID).Error)
	assert.Equal(t, models.PostActive, freshPost.Status)
}

func TestActionNotifiesPostAuthor(t *testing.T) {
	db := newTestDB(t)
	hub := realtime.NewHub()
	svc := NewModerationService(db, hub)

	author := createUser(t, db, models.RoleUser, 10)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	post := createPost(t, db, author.ID, "bad post")
	flag := createPendingFlag(t, db, post.ID, flagger.ID)

	authorConn := &recordConn{}
	strangerConn := &recordConn{}
	hub.Register(authorConn, author.ID, models.RoleUser)
	hub.Register(strangerConn, flagger.ID, models.RoleUser)

	_, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{
		Action: models.ActionRemove,
		Reason: "violates guidelines",
	})
	require.NoError(t, err)

	require.Len(t, authorConn.frames, 1)
	assert.Equal(t, realtime.EventModerationAction, authorConn.frames[0].Event)
	event := authorConn.frames[0].Data.(realtime.ModerationActionEvent)
	assert.Equal(t, models.ActionRemove, event.Action)
	assert.Equal(t, post.ID, event.PostID)
	assert.Equal(t, moderator.Name, event.Moderator)

	assert.Empty(t, strangerConn.frames)
}

func TestActionRejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)
	regular := createUser(t, db, models.RoleUser, 0)
	post := createPost(t, db, author.ID, "post")
	flag := createPendingFlag(t, db, post.ID, flagger.ID)

	_, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{Action: "obliterate"})
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = svc.Action(regular.ID, flag.ID, &dto.ModerationActionRequest{Action: models.ActionApprove})
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = svc.Action(moderator.ID, uuid.New(), &dto.ModerationActionRequest{Action: models.ActionApprove})
	assert.ErrorIs(t, err, ErrFlagNotFound)
}

func TestQueueFiltersAndCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 0)
	flaggers := []*models.User{
		createUser(t, db, models.RoleUser, 0),
		createUser(t, db, models.RoleUser, 0),
		createUser(t, db, models.RoleUser, 0),
	}
	post := createPost(t, db, author.ID, "much flagged post")

	createPendingFlag(t, db, post.ID, flaggers[0].ID)
	createPendingFlag(t, db, post.ID, flaggers[1].ID)
	processed := createPendingFlag(t, db, post.ID, flaggers[2].ID)
	require.NoError(t, db.Model(processed).Update("status", models.FlagApproved).Error)

	queue, err := svc.Queue("", "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, queue.Flags, 2)
	assert.EqualValues(t, 2, queue.Total)
	assert.EqualValues(t, 2, queue.Pending)

	all, err := svc.Queue("all", "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, all.Flags, 3)
	assert.EqualValues(t, 3, all.Total)
	assert.EqualValues(t, 2, all.Pending)
}

func TestQueueIncludesLatestAnalysis(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	post := createPost(t, db, author.ID, "risky post")
	createPendingFlag(t, db, post.ID, flagger.ID)

	require.NoError(t, db.Create(&models.AIAnalysis{
		ID:          uuid.New(),
		PostID:      post.ID,
		Type:        models.AnalysisText,
		Labels:      []byte(`["spam"]`),
		Scores:      []byte(`{"spam":0.7}`),
		OverallRisk: 0.7,
	}).Error)

	queue, err := svc.Queue("", "risk_score", 1, 20)
	require.NoError(t, err)
	require.Len(t, queue.Flags, 1)
	require.NotNil(t, queue.Flags[0].AIAnalysis)
	assert.InDelta(t, 0.7, queue.Flags[0].AIAnalysis.OverallRisk, 1e-9)
}

func TestLogsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db, realtime.NewHub())

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)

	for i := 0; i < 3; i++ {
		post := createPost(t, db, author.ID, "post")
		flag := createPendingFlag(t, db, post.ID, flagger.ID)
		_, err := svc.Action(moderator.ID, flag.ID, &dto.ModerationActionRequest{Action: models.ActionApprove})
		require.NoError(t, err)
	}

	logs, err := svc.Logs(1, 50)
	require.NoError(t, err)
	assert.Len(t, logs.Logs, 3)
	assert.EqualValues(t, 3, logs.Total)
}
