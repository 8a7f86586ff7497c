package services

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/itherhq/ither/app/models"
	"github.com/itherhq/ither/session"
	"github.com/itherhq/ither/store"
)

// signInAs points the session at a user with a minimal profile.
func signInAs(sess *session.Session, uid, nickname string) {
	sess.SignIn(uid)
	sess.SetProfile(&models.UserProfile{UserID: uid, Nickname: nickname, Role: "engineer"})
}

func memStore[T store.Record](kind string, seeds []T) *store.MemStore[T] {
	return store.NewMemStore(store.MemConfig[T]{Kind: kind, Seeds: seeds})
}

func noLog() zerolog.Logger {
	return zerolog.Nop()
}

func mustCreate(t *testing.T, fn func() (string, error)) {
	t.Helper()
	if _, err := fn(); err != nil {
		t.Fatalf("seed record: %v", err)
	}
}
