package service

import (
	"context"
	"testing"
	"time"
	"upscaler/internal/core/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	a, err := NewKey()
	require.NoError(t, err)
	b, err := NewKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	id, err := uuid.FromString(a)
	require.NoError(t, err)
	assert.Equal(t, byte(uuid.V4), id.Version())
}

func TestSessionsGet(t *testing.T) {
	s := NewSessions(&fakeConverter{}, &fakeUpscaler{}, time.Hour)

	w1 := s.Get("a")
	w2 := s.Get("a")
	w3 := s.Get("b")

	assert.Same(t, w1, w2)
	assert.NotSame(t, w1, w3)
	assert.Equal(t, 2, s.Len())
}

func TestSessionsSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(&fakeConverter{}, &fakeUpscaler{}, 10*time.Minute)
	s.now = func() time.Time { return now }

	stale := s.Get("stale")
	require.NoError(t, stale.SelectImage(context.Background(), jpegUpload("photo.jpg")))

	now = now.Add(8 * time.Minute)
	s.Get("fresh")

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, domain.NoImage, stale.Snapshot().Phase)

	assert.NotSame(t, stale, s.Get("stale"))
	assert.Equal(t, 2, s.Len())
}

func TestSessionsJanitorStops(t *testing.T) {
	s := NewSessions(&fakeConverter{}, &fakeUpscaler{}, time.Nanosecond)
	s.Get("a")

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		s.Janitor(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
