package commentapp

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plume/internal/adapters/memory"
)

func TestAddRejectsEmptyText(t *testing.T) {
	store := memory.NewStore()
	svc := NewCommentService(store.Comments())
	author := store.SeedUser("olga", "olga@example.com")
	postID := uuid.Must(uuid.NewV4()).String()

	for _, text := range []string{"", "   "} {
		_, err := svc.Add(context.Background(), postID, author.ID.String(), text)
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Equal(t, 0, store.CommentCount())
}

func TestAddAndListByPost(t *testing.T) {
	store := memory.NewStore()
	svc := NewCommentService(store.Comments())
	author := store.SeedUser("olga", "olga@example.com")
	postID := uuid.Must(uuid.NewV4()).String()
	otherPost := uuid.Must(uuid.NewV4()).String()

	ctx := context.Background()
	first, err := svc.Add(ctx, postID, author.ID.String(), "first")
	require.NoError(t, err)
	require.NotNil(t, first.Author)
	assert.Equal(t, "olga", first.Author.Username)

	_, err = svc.Add(ctx, postID, author.ID.String(), "second")
	require.NoError(t, err)
	_, err = svc.Add(ctx, otherPost, author.ID.String(), "elsewhere")
	require.NoError(t, err)

	comments, err := svc.ListByPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text, "newest first")
	assert.Equal(t, "first", comments[1].Text)
}
