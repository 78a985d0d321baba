package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/sitegrade/models"
)

func TestCreate(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("https://example.com")

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, models.StatusPending, sess.Status)
	assert.Equal(t, 0, sess.Progress)
	assert.Equal(t, "Analysis queued", sess.Message)

	got, ok := s.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)
}

func TestGet_UnknownID(t *testing.T) {
	s := NewStore(time.Hour)
	_, ok := s.Get("no-such-session")
	assert.False(t, ok)
}

func TestUpdate_ProgressNeverMovesBackwards(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("https://example.com")

	s.Update(sess.ID, models.StatusRunning, 55, "Scoring quality dimensions...")
	s.Update(sess.ID, models.StatusRunning, 35, "stale update arriving late")

	got, _ := s.Get(sess.ID)
	assert.Equal(t, 55, got.Progress)
	// The rest of the late update still lands; only progress is pinned.
	assert.Equal(t, "stale update arriving late", got.Message)
}

func TestUpdate_TerminalSessionsAreImmutable(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("https://example.com")
	result := &models.AnalysisResult{SessionID: sess.ID, OverallScore: 80}

	s.Complete(sess.ID, result)
	s.Update(sess.ID, models.StatusRunning, 10, "should be ignored")
	s.Fail(sess.ID, "should also be ignored")

	got, _ := s.Get(sess.ID)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, "Analysis completed", got.Message)
	require.NotNil(t, got.Result)
	assert.Equal(t, 80, got.Result.OverallScore)
}

func TestComplete(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("https://example.com")

	s.Update(sess.ID, models.StatusRunning, 90, "Generating recommendations...")
	s.Complete(sess.ID, &models.AnalysisResult{SessionID: sess.ID})

	got, _ := s.Get(sess.ID)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.NotNil(t, got.Result)
}

func TestFail(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("https://example.com")

	s.Update(sess.ID, models.StatusRunning, 15, "Fetching website content...")
	s.Fail(sess.ID, "Could not reach this website")

	got, _ := s.Get(sess.ID)
	assert.Equal(t, models.StatusError, got.Status)
	assert.Equal(t, "Could not reach this website", got.Message)
	assert.Equal(t, 15, got.Progress)
	assert.Nil(t, got.Result)

	// A completion arriving after failure must not resurrect the session.
	s.Complete(sess.ID, &models.AnalysisResult{})
	got, _ = s.Get(sess.ID)
	assert.Equal(t, models.StatusError, got.Status)
	assert.Nil(t, got.Result)
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Create("https://example.com")

	before, _ := s.Get(sess.ID)
	s.Update(sess.ID, models.StatusRunning, 35, "Extracting page content...")
	after, _ := s.Get(sess.ID)

	// The snapshot taken before the update is untouched.
	assert.Equal(t, 0, before.Progress)
	assert.Equal(t, 35, after.Progress)
}

func TestLen(t *testing.T) {
	s := NewStore(time.Hour)
	assert.Equal(t, 0, s.Len())

	s.Create("https://one.example.com")
	s.Create("https://two.example.com")
	assert.Equal(t, 2, s.Len())
}
