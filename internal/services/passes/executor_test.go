package passes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuator/internal/domain"
	"valuator/internal/ports"
)

func TestExecutor_Timeout(t *testing.T) {
	blocking := generatorFunc(func(ctx context.Context, _ ports.GenerationRequest) (domain.PassResult, error) {
		<-ctx.Done()
		return domain.PassResult{}, ctx.Err()
	})

	ex := NewExecutor(blocking, 20*time.Millisecond, nil)
	_, elapsed, err := ex.Execute(context.Background(), Lookup(domain.NumericPass(1)), ports.GenerationRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPassExecution))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
}

func TestExecutor_StampsResult(t *testing.T) {
	ex := NewExecutor(&stubGenerator{}, 0, nil)
	res, _, err := ex.Execute(context.Background(), Lookup(domain.NumericPass(3)), ports.GenerationRequest{UseWebSearch: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultOK, res.Kind)
	assert.False(t, res.GeneratedAt.IsZero())
}

type generatorFunc func(ctx context.Context, req ports.GenerationRequest) (domain.PassResult, error)

func (f generatorFunc) Generate(ctx context.Context, req ports.GenerationRequest) (domain.PassResult, error) {
	return f(ctx, req)
}
