package serial

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/proddesc/pkg/proddesc/domain"
)

type slowLanguageModel struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (s *slowLanguageModel) Name() string { return "slow" }

func (s *slowLanguageModel) Complete(ctx context.Context, prompt string) (string, error) {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		seen := s.maxInFlight.Load()
		if current <= seen || s.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}
	time.Sleep(s.delay)
	return prompt, nil
}

func (s *slowLanguageModel) PromptFormatter() domain.PromptFormatter { return nil }

func (s *slowLanguageModel) ResponseExtractor() domain.ResponseExtractor { return nil }

func TestLanguageModel_OneCallAtATime(t *testing.T) {
	wrapped := &slowLanguageModel{delay: 10 * time.Millisecond}
	model := NewLanguageModel(wrapped)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := model.Complete(context.Background(), "prompt")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, wrapped.maxInFlight.Load())
	assert.Equal(t, "slow", model.Name())
}

func TestLanguageModel_WaitingRespectsContext(t *testing.T) {
	wrapped := &slowLanguageModel{delay: 200 * time.Millisecond}
	model := NewLanguageModel(wrapped)
	go func() {
		_, _ = model.Complete(context.Background(), "first")
	}()
	require.Eventually(t, func() bool { return wrapped.inFlight.Load() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := model.Complete(ctx, "second")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type slowVisionModel struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (s *slowVisionModel) Name() string { return "slow-vision" }

func (s *slowVisionModel) Caption(ctx context.Context, grid *domain.PixelGrid) (string, error) {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		seen := s.maxInFlight.Load()
		if current <= seen || s.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	return "a mug", nil
}

func TestVisionModel_OneCallAtATime(t *testing.T) {
	wrapped := &slowVisionModel{}
	model := NewVisionModel(wrapped)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			caption, err := model.Caption(context.Background(), nil)
			assert.NoError(t, err)
			assert.Equal(t, "a mug", caption)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, wrapped.maxInFlight.Load())
}

func TestLanguageModel_ReleasesAfterCall(t *testing.T) {
	model := NewLanguageModel(&slowLanguageModel{})

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		_, err := model.Complete(ctx, "prompt")
		cancel()
		require.NoError(t, err)
	}
}
