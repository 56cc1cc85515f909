package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/record"
)

// MaxImageBytes caps an uploaded preview.
const MaxImageBytes = 5 << 20

var (
	ErrImageTooLarge = errors.New("image is too large")
	ErrNotAnImage    = errors.New("upload is not an image")
)

type MenuService struct {
	*Screen[domain.MenuItem]
}

func NewMenuService(s *record.Screen[domain.MenuItem]) *MenuService {
	return &MenuService{Screen: newScreen(s, nil, validateMenuItem)}
}

func validateMenuItem(d *record.Record[domain.MenuItem], _ *domain.MenuItem) error {
	m := &d.Payload
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
	m.Description = strings.TrimSpace(m.Description)
	return m.Validate(d.IsNew())
}

// AttachImage reads an upload into a data URL and stores it as the image of
// the draft opened with generation gen. If that draft was cancelled,
// submitted or replaced while the upload was read, the preview is dropped
// and record.ErrStaleDraft is returned.
func (s *MenuService) AttachImage(gen uint64, contentType string, r io.Reader) (record.Record[domain.MenuItem], error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return record.Record[domain.MenuItem]{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return record.Record[domain.MenuItem]{}, ErrImageTooLarge
	}
	url, err := dataURL(contentType, data)
	if err != nil {
		return record.Record[domain.MenuItem]{}, err
	}
	return s.ChangeAt(gen, func(m *domain.MenuItem) { m.Image = url })
}

func dataURL(contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotAnImage
	}
	ct := strings.TrimSpace(contentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, ct)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
