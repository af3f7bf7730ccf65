package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/blend"
	"github.com/Kerem-Haeger/filmhive/internal/collections"
	"github.com/Kerem-Haeger/filmhive/internal/config"
	"github.com/Kerem-Haeger/filmhive/internal/log"
	"github.com/Kerem-Haeger/filmhive/internal/session"
	"github.com/Kerem-Haeger/filmhive/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultConfig()
	logger := log.NullLogger()
	sess := session.NewService(cfg, logger)
	client := api.NewClient(cfg.Server.URL, sess, logger)
	cache, err := store.NewStore("", "")
	require.NoError(t, err)
	favs := collections.NewFavorites(client, cache, sess, logger)
	wls := collections.NewWatchlists(client, cache, sess, logger)
	return NewModel(cfg, logger, sess, client, cache, favs, wls, blend.NewService(client, logger))
}

func TestSetViewClearsNotifications(t *testing.T) {
	m := newTestModel(t)

	m.notifier.Error("could not save favourite")
	m.notifier.Success("Added to Watchlist.", func() {}, 0)

	m.setView(ViewBlend)

	assert.Empty(t, m.notifier.Err(), "error banner must not survive navigation")
	assert.Nil(t, m.notifier.Notice(), "pending notice must not survive navigation")
}

func TestSetViewSameViewKeepsNotifications(t *testing.T) {
	m := newTestModel(t)

	m.notifier.Success("Added to favourites.", nil, 0)
	m.setView(m.view)

	assert.NotNil(t, m.notifier.Notice(), "staying put keeps the notice")
}
