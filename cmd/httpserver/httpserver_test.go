package httpserver

import (
	"context"
	"errors"
	"testing"
)

type closablePublisher struct {
	closed   bool
	closeErr error
}

func (p *closablePublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (p *closablePublisher) Close() error {
	p.closed = true
	return p.closeErr
}

func TestClose(t *testing.T) {
	t.Parallel()

	t.Run("ClosesPublisher", func(t *testing.T) {
		t.Parallel()

		publisher := &closablePublisher{}
		server := &Server{publisher: publisher}

		if err := server.Close(); err != nil {
			t.Fatalf("server.Close() returned error: %v", err)
		}

		if !publisher.closed {
			t.Error("server.Close() did not close the publisher")
		}
	})

	t.Run("PublisherCloseErr", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("flush failed")
		publisher := &closablePublisher{closeErr: wantErr}
		server := &Server{publisher: publisher}

		if err := server.Close(); !errors.Is(err, wantErr) {
			t.Errorf("server.Close() error = %v, want %v", err, wantErr)
		}
	})

	t.Run("NonClosingPublisher", func(t *testing.T) {
		t.Parallel()

		server := &Server{publisher: noClosePublisher{}}

		if err := server.Close(); err != nil {
			t.Errorf("server.Close() returned error: %v", err)
		}
	})
}

type noClosePublisher struct{}

func (noClosePublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}
