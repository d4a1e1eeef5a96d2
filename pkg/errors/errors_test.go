package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
	}{
		{
			name:     "undefined table",
			err:      &pgconn.PgError{Code: "42P01", Message: `relation "users" does not exist`},
			wantKind: KindUndefinedTable,
		},
		{
			name:     "other postgres error",
			err:      &pgconn.PgError{Code: "42601", Message: "syntax error"},
			wantKind: KindQuery,
		},
		{
			name:     "wrapped postgres error",
			err:      fmt.Errorf("gorm: %w", &pgconn.PgError{Code: "42P01"}),
			wantKind: KindUndefinedTable,
		},
		{
			name:     "network error",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: stderrors.New("connection refused")},
			wantKind: KindUnavailable,
		},
		{
			name:     "canceled",
			err:      fmt.Errorf("query: %w", context.Canceled),
			wantKind: KindCanceled,
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			wantKind: KindCanceled,
		},
		{
			name:     "unknown",
			err:      stderrors.New("boom"),
			wantKind: KindQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("list users", tt.err)
			require.Error(t, err)

			var se *StoreError
			require.True(t, stderrors.As(err, &se))
			assert.Equal(t, tt.wantKind, se.Kind)
			assert.Equal(t, "list users", se.Op)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestClassify_NilAndIdempotent(t *testing.T) {
	assert.NoError(t, Classify("op", nil))

	first := Classify("inner", &pgconn.PgError{Code: "42P01"})
	second := Classify("outer", fmt.Errorf("wrapped: %w", first))
	assert.Same(t, first, second)
}

func TestHTTPStatusOf(t *testing.T) {
	kinds := []Kind{KindQuery, KindUnavailable, KindUndefinedTable, KindCanceled}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			err := &StoreError{Kind: k, Op: "op"}
			assert.Equal(t, http.StatusInternalServerError, HTTPStatusOf(err))
			assert.Equal(t, "Server Error", err.PublicMessage())
		})
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatusOf(stderrors.New("plain")))
}

func TestStoreError_Error(t *testing.T) {
	err := &StoreError{Kind: KindUndefinedTable, Op: "list users", Err: stderrors.New("missing")}
	assert.Equal(t, "list users: undefined_table: missing", err.Error())

	assert.Equal(t, "ping: unavailable", (&StoreError{Kind: KindUnavailable, Op: "ping"}).Error())
}
