package main

import (
	"testing"

	"github.com/leighmacdonald/roster-tui/internal/store"
	"github.com/stretchr/testify/require"
)

func TestParseMigrateAction(t *testing.T) {
	action, err := parseMigrateAction("up")
	require.NoError(t, err)
	require.Equal(t, store.MigrateUp, action)

	action, err = parseMigrateAction("down")
	require.NoError(t, err)
	require.Equal(t, store.MigrateDn, action)

	_, err = parseMigrateAction("sideways")
	require.ErrorIs(t, err, errMigrateAction)
}
