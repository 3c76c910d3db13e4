package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"

	"github.com/linkiq/linkiq/services/profile/internal/model"
)

const (
	DefaultQRSize = 512
	MinQRSize     = 128
	MaxQRSize     = 1024
)

// PreviewURL is the address a printed QR code points visitors to.
func (s *PublicPageService) PreviewURL(username string) string {
	return s.PageBaseURL + "/preview/" + url.PathEscape(username)
}

// QRCode renders a PNG QR code of the user's public page. size is the
// image width in pixels, 0 picks DefaultQRSize and other values are
// clamped to [MinQRSize, MaxQRSize].
func (s *PublicPageService) QRCode(ctx context.Context, username string, size int) ([]byte, error) {
	username = model.NormalizeUsername(username)
	if username != DemoUsername {
		p, err := s.Profiles.GetPublic(ctx, username)
		if err != nil {
			return nil, err
		}
		username = p.Username
	}

	q, err := qrcode.New(s.PreviewURL(username), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return q.PNG(qrSize(size))
}

func qrSize(n int) int {
	switch {
	case n == 0:
		return DefaultQRSize
	case n < MinQRSize:
		return MinQRSize
	case n > MaxQRSize:
		return MaxQRSize
	}
	return n
}
