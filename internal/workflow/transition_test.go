package workflow

import (
	"testing"

	"interior-request-server/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_NewToInProgress(t *testing.T) {
	out, err := Transition(model.StatusNew, Request{Target: model.StatusInProgress, Comment: "  measuring on Monday "})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, out.Status)
	require.NotNil(t, out.Comment)
	assert.Equal(t, "measuring on Monday", *out.Comment)
	assert.False(t, out.AttachDesign)
}

func TestTransition_InProgressNeedsComment(t *testing.T) {
	for _, comment := range []string{"", "   ", "\n\t"} {
		_, err := Transition(model.StatusNew, Request{Target: model.StatusInProgress, Comment: comment})
		assert.ErrorIs(t, err, ErrCommentRequired, "comment=%q", comment)
	}
}

func TestTransition_CompletedNeedsDesignImage(t *testing.T) {
	_, err := Transition(model.StatusNew, Request{Target: model.StatusCompleted, Comment: "done"})
	assert.ErrorIs(t, err, ErrDesignImageRequired)

	out, err := Transition(model.StatusNew, Request{Target: model.StatusCompleted, HasDesignImage: true})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, out.Status)
	assert.True(t, out.AttachDesign)
	assert.Nil(t, out.Comment, "empty comment keeps the previous one")
}

func TestTransition_StaffNoteStaysNew(t *testing.T) {
	out, err := Transition(model.StatusNew, Request{Target: model.StatusNew, Comment: "call the client"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, out.Status)
	require.NotNil(t, out.Comment)

	out, err = Transition(model.StatusNew, Request{Target: model.StatusNew})
	require.NoError(t, err)
	assert.Nil(t, out.Comment)
}

func TestTransition_LockedStates(t *testing.T) {
	for _, from := range []model.ApplicationStatus{model.StatusInProgress, model.StatusCompleted} {
		for _, to := range model.ApplicationStatuses {
			_, err := Transition(from, Request{Target: to, Comment: "x", HasDesignImage: true})
			assert.ErrorIs(t, err, ErrStatusLocked, "%s -> %s", from, to)
		}
	}
}

func TestTransition_UnknownTarget(t *testing.T) {
	_, err := Transition(model.StatusNew, Request{Target: "archived"})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
