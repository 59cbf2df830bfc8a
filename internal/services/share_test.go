package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/abrezinsky/derbybracket/internal/errors"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/services"
)

func TestShareService_BracketURL(t *testing.T) {
	f := newTournamentFixture(t)
	f.create(t, 4)
	ctx := context.Background()
	share := services.NewShareService(logger.Discard(), f.svc, f.settings)

	_, err := share.BracketURL(ctx, "spring")
	if !errors.IsKind(err, errors.ErrConflict) {
		t.Fatalf("expected conflict without base_url, got %v", err)
	}

	if err := f.settings.SetBaseURL(ctx, "http://192.168.1.10:8081/"); err != nil {
		t.Fatalf("SetBaseURL failed: %v", err)
	}
	link, err := share.BracketURL(ctx, "spring")
	if err != nil {
		t.Fatalf("BracketURL failed: %v", err)
	}
	if link != "http://192.168.1.10:8081/bracket/spring" {
		t.Errorf("unexpected link %q", link)
	}

	_, err = share.BracketURL(ctx, "missing")
	if !errors.IsKind(err, errors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestShareService_BracketQRCode(t *testing.T) {
	f := newTournamentFixture(t)
	f.create(t, 4)
	ctx := context.Background()
	f.settings.SetBaseURL(ctx, "http://bracket.local")
	share := services.NewShareService(logger.Discard(), f.svc, f.settings)

	png, err := share.BracketQRCode(ctx, "spring", 0)
	if err != nil {
		t.Fatalf("BracketQRCode failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG data")
	}

	for _, size := range []int{10, services.MaxQRSize + 1} {
		if _, err := share.BracketQRCode(ctx, "spring", size); !errors.IsKind(err, errors.ErrInvalidInput) {
			t.Errorf("size %d: expected invalid input, got %v", size, err)
		}
	}
}
