package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "postgres duplicate key", err: errors.New(`ERROR: duplicate key value violates unique constraint "hub_skus_pkey" (SQLSTATE 23505)`), want: true},
		{name: "sqlite unique constraint", err: errors.New("UNIQUE constraint failed: hub_skus.hub_id, hub_skus.sku"), want: true},
		{name: "named constraint match", err: errors.New(`duplicate key value violates unique constraint "idx_users_username"`), constraint: "idx_users_username", want: true},
		{name: "named constraint mismatch", err: errors.New(`duplicate key value violates unique constraint "hub_skus_pkey"`), constraint: "idx_users_username", want: false},
		{name: "unrelated error", err: errors.New("connection refused"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v, %q) = %v, want %v", tc.err, tc.constraint, got, tc.want)
			}
		})
	}
}
