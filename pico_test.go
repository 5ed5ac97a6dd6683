package pico

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picolabs/pico/ai/mock"
	"github.com/picolabs/pico/conversation"
	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/retrieval"
)

func openTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := Open("", WithInMemory(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func TestOpen(t *testing.T) {
	t.Run("create new engine", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		engine, err := Open(tmpDir, WithAIProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.Store())
		assert.NotNil(t, engine.Repository())
		assert.NotNil(t, engine.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the data directory should be
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		engine, err := Open(tmpFile, WithAIProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEngine_Close(t *testing.T) {
	engine, err := Open("", WithInMemory(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	assert.NoError(t, engine.Close())
}

func TestEngine_FactoryMethods(t *testing.T) {
	engine := openTestEngine(t)

	t.Run("can create pipeline", func(t *testing.T) {
		pipeline, err := engine.NewPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
	})

	t.Run("can create session", func(t *testing.T) {
		session, err := engine.NewSession()
		require.NoError(t, err)
		require.NotNil(t, session)
	})

	t.Run("can create loader", func(t *testing.T) {
		loader, err := engine.NewLoader()
		require.NoError(t, err)
		require.NotNil(t, loader)
		loader.Release()
	})

	t.Run("can create reindexer", func(t *testing.T) {
		reindexer := engine.NewReindexer(nil, os.Stderr)
		require.NotNil(t, reindexer)
	})
}

func TestEngine_EndToEndTurn(t *testing.T) {
	engine := openTestEngine(t)
	ctx := context.Background()

	_, err := engine.Store().Upsert(ctx, []string{"The capital of Italy is Rome."}, core.SourceManual)
	require.NoError(t, err)

	// Local-only pipeline keeps the test off the network.
	pipeline, err := engine.NewPipeline(retrieval.WithWebFallback(nil))
	require.NoError(t, err)

	session, err := conversation.NewSession(pipeline, mock.NewMockChat())
	require.NoError(t, err)

	reply, err := session.Turn(ctx, "capital of Italy")
	require.NoError(t, err)
	assert.Equal(t, "The capital of Italy is Rome.", reply)
}

func TestEngine_SessionUsesPersona(t *testing.T) {
	persona := conversation.DefaultPersona()
	persona.Name = "Ada"
	engine, err := Open("", WithInMemory(),
		WithAIProvider(mock.NewMockProvider()),
		WithEnginePersona(persona))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	session, err := engine.NewSession()
	require.NoError(t, err)
	assert.Contains(t, session.History()[0].Content, "You are Ada")
}
