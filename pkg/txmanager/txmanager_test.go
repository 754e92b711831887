package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ctxInTx возвращает контекст с активной транзакцией: run не открывает
// вложенную транзакцию и выполняет fn напрямую, что позволяет прогнать
// цикл повторов DoSerializable без подключения к БД
func ctxInTx() context.Context {
	return context.WithValue(context.Background(), txKey{}, (*sql.Tx)(nil))
}

func serializationErr() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	var retries []int
	m := NewTransactionManager(nil, WithOnRetry(func(attempt int) {
		retries = append(retries, attempt)
	}))

	calls := 0
	err := m.DoSerializable(ctxInTx(), func(ctx context.Context) error {
		calls++
		return serializationErr()
	})

	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, maxSerializableAttempts, calls)
	assert.Equal(t, []int{1, 2, 3}, retries)
}

func TestDoSerializable_SucceedsAfterTransientConflict(t *testing.T) {
	var retries []int
	m := NewTransactionManager(nil, WithOnRetry(func(attempt int) {
		retries = append(retries, attempt)
	}))

	calls := 0
	err := m.DoSerializable(ctxInTx(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return serializationErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{1}, retries)
}

func TestDoSerializable_DeadlockIsRetryable(t *testing.T) {
	m := NewTransactionManager(nil)

	calls := 0
	err := m.DoSerializable(ctxInTx(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: "40P01"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_NonRetryableReturnsImmediately(t *testing.T) {
	onRetryCalled := false
	m := NewTransactionManager(nil, WithOnRetry(func(int) {
		onRetryCalled = true
	}))

	bizErr := errors.New("booking conflict")
	calls := 0
	err := m.DoSerializable(ctxInTx(), func(ctx context.Context) error {
		calls++
		return bizErr
	})

	assert.ErrorIs(t, err, bizErr)
	assert.NotErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 1, calls)
	assert.False(t, onRetryCalled)
}

func TestDoSerializable_OtherPqErrorIsNotRetryable(t *testing.T) {
	m := NewTransactionManager(nil)

	calls := 0
	err := m.DoSerializable(ctxInTx(), func(ctx context.Context) error {
		calls++
		// 23505 - unique_violation: бизнес-конфликт, а не транзиентный сбой
		return &pq.Error{Code: "23505"}
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_WrappedPqErrorIsRetryable(t *testing.T) {
	// Репозитории оборачивают ошибки драйвера через %w - повтор должен
	// распознавать pq.Error и внутри цепочки
	m := NewTransactionManager(nil)

	calls := 0
	err := m.DoSerializable(ctxInTx(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.Join(errors.New("repo: execute update"), serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRun_NestedCallReusesTransaction(t *testing.T) {
	// Вложенный вызов не открывает новую транзакцию: fn получает
	// тот же контекст с той же транзакцией
	m := NewTransactionManager(nil)
	outer := ctxInTx()

	var inner context.Context
	err := m.Do(outer, func(ctx context.Context) error {
		inner = ctx
		return nil
	})

	require.NoError(t, err)
	assert.True(t, IsInTransaction(inner))
	assert.Equal(t, outer, inner)
}

func TestGetExecutor_Fallback(t *testing.T) {
	db := &sql.DB{}

	// Без транзакции в контексте возвращается fallback
	assert.Equal(t, Executor(db), GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	// С транзакцией - она сама
	assert.NotEqual(t, Executor(db), GetExecutor(ctxInTx(), db))
	assert.True(t, IsInTransaction(ctxInTx()))
}
