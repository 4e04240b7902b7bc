package internal

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/flash"
)

func TestRecoverToHome(t *testing.T) {
	env := newTestEnv(t)
	ep := RecoverToHome(func(ctx context.Context, request interface{}) (interface{}, error) {
		panic("boom")
	})
	resp, err := ep(env.ctx(), nil)
	require.NoError(t, err)
	redirect, ok := resp.(redirectResponse)
	require.True(t, ok)
	assert.Equal(t, "/", redirect.Location)
	assert.Equal(t, flash.KindError, redirect.Notice.Kind)

	entry := env.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.Data["panic"])
}

func TestRecoverToHomePassesResults(t *testing.T) {
	env := newTestEnv(t)
	ep := RecoverToHome(func(ctx context.Context, request interface{}) (interface{}, error) {
		return page(tplHome, request), nil
	})
	resp, err := ep(env.ctx(), "data")
	require.NoError(t, err)
	assert.Equal(t, page(tplHome, "data"), resp)
}
