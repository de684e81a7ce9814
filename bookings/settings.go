package bookings

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"silpa/apperr"
	"silpa/models"

	"github.com/disintegration/imaging"
)

// DefaultContestName labels the event until an admin renames it.
const DefaultContestName = "Competition Event"

const logoDir = "static/branding"
const logoWidth = 512

// Settings returns the app settings singleton, creating defaults on first
// access.
func (l *Ledger) Settings(ctx context.Context) (*models.AppSettings, error) {
	settings, err := l.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.ContestName == "" {
		settings.ContestName = DefaultContestName
	}
	return settings, nil
}

// UpdateContestName renames the event.
func (l *Ledger) UpdateContestName(ctx context.Context, name string) (*models.AppSettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.BadRequest("contestName is required")
	}
	settings, err := l.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	settings.ContestName = name
	if err := l.store.SaveSettings(ctx, *settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveLogo stores an uploaded contest logo, downscaled to a fixed width, and
// records its public path in the settings.
func (l *Ledger) SaveLogo(ctx context.Context, file multipart.File) (*models.AppSettings, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return nil, apperr.BadRequest("unsupported image format")
	}
	if img.Bounds().Dx() > logoWidth {
		img = imaging.Resize(img, logoWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(logoDir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(logoDir, "logo.png")
	if err := imaging.Save(img, path); err != nil {
		return nil, fmt.Errorf("save logo: %w", err)
	}

	settings, err := l.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	settings.LogoPath = "/" + filepath.ToSlash(path)
	if err := l.store.SaveSettings(ctx, *settings); err != nil {
		return nil, err
	}
	return settings, nil
}
