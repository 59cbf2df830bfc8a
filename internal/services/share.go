package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/derbybracket/internal/errors"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/models"
)

// Default and maximum edge length of generated QR images, in pixels
const (
	DefaultQRSize = 256
	MaxQRSize     = 1024
)

// TournamentGetter loads a tournament by id
type TournamentGetter interface {
	Get(ctx context.Context, id string) (*models.Tournament, error)
}

// BaseURLSource supplies the public base URL of the server
type BaseURLSource interface {
	GetBaseURL(ctx context.Context) (string, error)
}

// ShareService builds public links to bracket pages
type ShareService struct {
	log         logger.Logger
	tournaments TournamentGetter
	settings    BaseURLSource
}

// NewShareService creates a new ShareService
func NewShareService(log logger.Logger, tournaments TournamentGetter, settings BaseURLSource) *ShareService {
	return &ShareService{log: log, tournaments: tournaments, settings: settings}
}

// BracketURL returns the public URL of a tournament's bracket page
func (s *ShareService) BracketURL(ctx context.Context, id string) (string, error) {
	if _, err := s.tournaments.Get(ctx, id); err != nil {
		return "", err
	}
	baseURL, err := s.settings.GetBaseURL(ctx)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read base_url")
	}
	if baseURL == "" {
		return "", errors.Conflict("base_url not configured")
	}
	return fmt.Sprintf("%s/bracket/%s", strings.TrimSuffix(baseURL, "/"), url.PathEscape(id)), nil
}

// BracketQRCode renders a PNG QR code linking to the bracket page
func (s *ShareService) BracketQRCode(ctx context.Context, id string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultQRSize
	}
	if size < 64 || size > MaxQRSize {
		return nil, errors.InvalidInputf("QR size must be between 64 and %d", MaxQRSize)
	}
	link, err := s.BracketURL(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode QR code")
	}
	s.log.Debug("QR code generated", "tournament_id", id, "url", link)
	return png, nil
}
