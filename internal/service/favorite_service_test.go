package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music-catalog/internal/model"
	"music-catalog/internal/repository/memory"
	"music-catalog/pkg/apierror"
	"music-catalog/pkg/objectid"
)

func TestFavoriteService(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	catalog := NewCatalogService(store.Artists(), store.Albums(), store.Tracks(), nil)
	svc := NewFavoriteService(store.Favorites(), store.Artists(), store.Albums(), store.Tracks(), nil)

	artist, err := catalog.CreateArtist(ctx, model.CreateArtistRequest{Name: "Sade", Grammy: ptr(4), Hidden: ptr(false)})
	require.NoError(t, err)

	alice := model.Identity{UserID: objectid.New(), Role: model.RoleViewer}
	bob := model.Identity{UserID: objectid.New(), Role: model.RoleAdmin}

	t.Run("invalid category", func(t *testing.T) {
		_, err := svc.Add(ctx, alice, "playlist", artist.ID)
		assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))

		_, err = svc.List(ctx, alice, "playlist", model.Page{})
		assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := svc.Add(ctx, alice, "album", objectid.New())
		assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	})

	favorite, err := svc.Add(ctx, alice, "artist", artist.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, favorite.UserID)
	assert.Equal(t, model.ArtistTarget(artist.ID), favorite.Target)

	t.Run("duplicate favorite conflicts", func(t *testing.T) {
		_, err := svc.Add(ctx, alice, "artist", artist.ID)
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apierror.KindConflict, apiErr.Kind)
		assert.Equal(t, MsgFavoriteExists, apiErr.Message)
	})

	t.Run("another user's favorite is not found", func(t *testing.T) {
		err := svc.Remove(ctx, bob, favorite.ID)
		assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	})

	t.Run("lists are scoped to the caller", func(t *testing.T) {
		own, err := svc.List(ctx, alice, "artist", model.Page{})
		require.NoError(t, err)
		require.Len(t, own, 1)
		assert.Equal(t, "Sade", own[0].Name)

		others, err := svc.List(ctx, bob, "artist", model.Page{})
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("uppercase ids match", func(t *testing.T) {
		_, err := svc.Add(ctx, alice, "artist", strings.ToUpper(artist.ID))
		assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	})

	require.NoError(t, svc.Remove(ctx, alice, strings.ToUpper(favorite.ID)))
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(svc.Remove(ctx, alice, favorite.ID)))
}
