package profile

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	apperrors "linkhub/internal/pkg/errors"
)

const (
	avatarQuality = 85
	avatarURLPath = "/uploads/avatars/"

	// MaxAvatarPixels caps decoded width*height. Compressed input can be tiny
	// while decoding to gigabytes.
	MaxAvatarPixels = 40_000_000
)

var avatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AvatarStore writes processed avatars below Dir/avatars.
type AvatarStore struct {
	Dir      string
	Size     int
	MaxBytes int64
}

func NewAvatarStore(dir string, size int, maxBytes int64) *AvatarStore {
	return &AvatarStore{Dir: dir, Size: size, MaxBytes: maxBytes}
}

// Check rejects unsupported types and oversized uploads before reading them.
func (s *AvatarStore) Check(contentType string, size int64) error {
	if _, ok := avatarTypes[contentType]; !ok {
		return apperrors.Validation("Invalid file type. Only JPEG, PNG, and WebP are allowed.")
	}
	if size > s.MaxBytes {
		return apperrors.Validation(fmt.Sprintf("File too large. Maximum size is %dMB.", s.MaxBytes>>20))
	}
	return nil
}

// Save stores data and returns its public URL. If the image cannot be
// processed the original bytes are kept.
func (s *AvatarStore) Save(data []byte, contentType string) (string, error) {
	if err := s.Check(contentType, int64(len(data))); err != nil {
		return "", err
	}

	dir := filepath.Join(s.Dir, "avatars")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ".jpg"
	out, err := ProcessAvatar(data, s.Size)
	if _, ok := apperrors.AsValidation(err); ok {
		return "", err
	}
	if err != nil {
		log.Warn().Err(err).Str("content_type", contentType).Msg("avatar processing failed, storing original")
		name = uuid.New().String() + avatarTypes[contentType]
		out = data
	}

	if err := os.WriteFile(filepath.Join(dir, name), out, 0644); err != nil {
		return "", err
	}
	return avatarURLPath + name, nil
}

// ProcessAvatar crops the centre square of the image, scales it to size×size
// and encodes it as JPEG.
func ProcessAvatar(data []byte, size int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxAvatarPixels {
		return nil, apperrors.Validation("Image dimensions are too large")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}

	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side == 0 {
		return nil, fmt.Errorf("decode avatar: empty image")
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: avatarQuality}); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}
