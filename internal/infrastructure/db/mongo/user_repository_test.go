package mongo

import (
	"errors"
	"strings"
	"testing"

	"github.com/nexaa/auth-service/internal/core/domain"
)

func TestDuplicateField(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		want error
	}{
		{
			name: "username index violation",
			msg:  `write exception: write errors: [E11000 duplicate key error collection: nexaa.users index: uniq_username_ci dup key: { username: "johndoe" }]`,
			want: domain.ErrUsernameTaken,
		},
		{
			name: "email index violation",
			msg:  `write exception: write errors: [E11000 duplicate key error collection: nexaa.users index: uniq_email dup key: { email: "john@example.com" }]`,
			want: domain.ErrEmailTaken,
		},
		{
			// The key value must not influence attribution.
			name: "email index with username-like address",
			msg:  `write exception: write errors: [E11000 duplicate key error collection: nexaa.users index: uniq_email dup key: { email: "username@example.com" }]`,
			want: domain.ErrEmailTaken,
		},
		{
			name: "unrecognised duplicate defaults to email",
			msg:  `E11000 duplicate key error`,
			want: domain.ErrEmailTaken,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := duplicateField(errors.New(tc.msg))
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStoreErrKeepsDetailServerSide(t *testing.T) {
	err := storeErr("find user", errors.New("connection refused"))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store sentinel, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected driver detail in server-side error, got %v", err)
	}
}
