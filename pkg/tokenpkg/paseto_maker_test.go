package tokenpkg

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/peerwallet/peerwallet/pkg/randompkg"
)

func TestPasetoMakerRoundTrip(t *testing.T) {
	t.Parallel()

	maker, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker(randompkg.String(32)) returned error: %v", err)
	}

	username := randompkg.Owner()
	duration := time.Minute

	token, created, err := maker.CreateToken(username, duration)
	if err != nil {
		t.Fatalf("maker.CreateToken(%v, %v) returned error: %v", username, duration, err)
	}

	if token == "" {
		t.Fatal("token is empty, want non-empty")
	}

	verified, err := maker.VerifyToken(token)
	if err != nil {
		t.Fatalf("maker.VerifyToken(token) returned error: %v", err)
	}

	want := &Payload{
		Username:  username,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	ignoreID := cmpopts.IgnoreFields(Payload{}, "ID")
	delta := cmpopts.EquateApproxTime(time.Second)

	if diff := cmp.Diff(want, verified, ignoreID, delta); diff != "" {
		t.Errorf("maker.VerifyToken(token) returned unexpected difference (-want +got):\n%s", diff)
	}

	// The verified payload must carry the id minted at creation.
	if verified.ID != created.ID {
		t.Errorf("verified.ID = %v, created.ID = %v, want equal", verified.ID, created.ID)
	}

	if verified.ID == uuid.Nil {
		t.Error("verified.ID is nil uuid, want non-nil")
	}
}

func TestPasetoMakerExpiredToken(t *testing.T) {
	t.Parallel()

	maker, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker(randompkg.String(32)) returned error: %v", err)
	}

	token, _, err := maker.CreateToken(randompkg.Owner(), -time.Minute)
	if err != nil {
		t.Fatalf("maker.CreateToken(username, -time.Minute) returned error: %v", err)
	}

	if _, err := maker.VerifyToken(token); err != ErrExpiredToken {
		t.Errorf("maker.VerifyToken(token) returned error %v, want %v", err, ErrExpiredToken)
	}
}

func TestNewPasetoMakerShortKey(t *testing.T) {
	t.Parallel()

	if _, err := NewPasetoMaker(randompkg.String(16)); err == nil {
		t.Error("NewPasetoMaker(randompkg.String(16)) returned nil error, want error")
	}
}

func TestPasetoMakerTamperedToken(t *testing.T) {
	t.Parallel()

	maker, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker(randompkg.String(32)) returned error: %v", err)
	}

	otherMaker, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker(randompkg.String(32)) returned error: %v", err)
	}

	token, _, err := otherMaker.CreateToken(randompkg.Owner(), time.Minute)
	if err != nil {
		t.Fatalf("otherMaker.CreateToken(username, time.Minute) returned error: %v", err)
	}

	if _, err := maker.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("maker.VerifyToken(token) returned error %v, want %v", err, ErrInvalidToken)
	}
}
