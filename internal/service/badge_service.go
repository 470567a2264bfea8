package service

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"net/http"
	"strings"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/hameema-git/ramzan-challange/internal/dto"
	"github.com/hameema-git/ramzan-challange/pkg/apperror"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
	"github.com/hameema-git/ramzan-challange/pkg/storage"
)

const (
	badgeSize   = 800
	badgeFooter = "Ramzan Global Challenge 2026"
)

// badgeTier picks the medal palette for a rank.
type badgeTier struct {
	Label string
	Inner string
	Outer string
}

func tierForRank(rank int) badgeTier {
	switch rank {
	case 1:
		return badgeTier{Label: "GOLD", Inner: "#facc15", Outer: "#d97706"}
	case 2:
		return badgeTier{Label: "SILVER", Inner: "#e5e7eb", Outer: "#9ca3af"}
	case 3:
		return badgeTier{Label: "BRONZE", Inner: "#f59e0b", Outer: "#78350f"}
	default:
		return badgeTier{Label: "PARTICIPANT", Inner: "#065f46", Outer: "#047857"}
	}
}

// BadgeService renders shareable achievement badges as PNGs.
type BadgeService interface {
	// GlobalBadge draws the caller's standing on the global board.
	GlobalBadge(ctx context.Context, userID uuid.UUID) ([]byte, error)
	// GroupBadge draws the caller's standing within one of their groups.
	GroupBadge(ctx context.Context, userID uuid.UUID, groupID string) ([]byte, error)
	// UploadBadge pushes a rendered badge to image storage and returns
	// its public URL. Only available when storage is configured.
	UploadBadge(ctx context.Context, userID uuid.UUID, png []byte) (string, error)
}

type badgeService struct {
	leaderboard LeaderboardService
	groups      GroupService
	images      storage.ImageStorage

	titleFace  font.Face
	bodyFace   font.Face
	smallFace  font.Face
	pointsFace font.Face
}

func NewBadgeService(leaderboard LeaderboardService, groups GroupService, images storage.ImageStorage) (BadgeService, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse badge title font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse badge body font: %w", err)
	}

	s := &badgeService{
		leaderboard: leaderboard,
		groups:      groups,
		images:      images,
	}

	if s.titleFace, err = opentype.NewFace(bold, &opentype.FaceOptions{Size: 52, DPI: 72}); err != nil {
		return nil, err
	}
	if s.bodyFace, err = opentype.NewFace(regular, &opentype.FaceOptions{Size: 30, DPI: 72}); err != nil {
		return nil, err
	}
	if s.smallFace, err = opentype.NewFace(regular, &opentype.FaceOptions{Size: 22, DPI: 72}); err != nil {
		return nil, err
	}
	if s.pointsFace, err = opentype.NewFace(bold, &opentype.FaceOptions{Size: 64, DPI: 72}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *badgeService) GlobalBadge(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	board, err := s.leaderboard.Recomputed(ctx)
	if err != nil {
		return nil, err
	}

	entry := FindEntry(board.Entries, userID)
	if entry == nil {
		return nil, apperror.New(http.StatusNotFound,
			"record at least one day to earn a badge", apperror.ErrNotFound)
	}

	return s.render(entry, "")
}

func (s *badgeService) GroupBadge(ctx context.Context, userID uuid.UUID, groupID string) ([]byte, error) {
	detail, err := s.groups.Detail(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	entry := FindEntry(detail.Leaderboard, userID)
	if entry == nil {
		return nil, apperror.New(http.StatusNotFound,
			"record at least one day to earn a badge", apperror.ErrNotFound)
	}

	return s.render(entry, detail.Group.Name)
}

func (s *badgeService) UploadBadge(ctx context.Context, userID uuid.UUID, png []byte) (string, error) {
	if s.images == nil {
		return "", apperror.New(http.StatusNotFound, "badge sharing is not configured", apperror.ErrNotFound)
	}

	url, err := s.images.UploadImage(ctx, bytes.NewReader(png), "badges", userID.String())
	if err != nil {
		logger.Log.Error("badge upload failed", logger.Err(err))
		return "", apperror.ErrInternal
	}

	return url, nil
}

// render draws the 800x800 badge: night-sky background, a starfield
// seeded by the user so it is stable across downloads, and a medal disc
// colored by rank.
func (s *badgeService) render(entry *dto.LeaderboardEntry, groupName string) ([]byte, error) {
	tier := tierForRank(entry.Rank)

	dc := gg.NewContext(badgeSize, badgeSize)
	dc.SetHexColor("#022c22")
	dc.Clear()

	rng := rand.New(rand.NewSource(int64(entry.UserID.ID())))
	dc.SetHexColor("#fefce8")
	for i := 0; i < 40; i++ {
		x := rng.Float64() * badgeSize
		y := rng.Float64() * badgeSize
		dc.DrawCircle(x, y, 0.8+rng.Float64()*1.4)
		dc.Fill()
	}

	grad := gg.NewRadialGradient(400, 300, 20, 400, 300, 180)
	grad.AddColorStop(0, hexColor(tier.Inner))
	grad.AddColorStop(1, hexColor(tier.Outer))
	dc.SetFillStyle(grad)
	dc.DrawCircle(400, 300, 180)
	dc.Fill()

	dc.SetHexColor("#fefce8")
	dc.SetFontFace(s.pointsFace)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", entry.TotalPoints), 400, 280, 0.5, 0.5)
	dc.SetFontFace(s.smallFace)
	dc.DrawStringAnchored("POINTS", 400, 335, 0.5, 0.5)

	dc.SetFontFace(s.titleFace)
	dc.DrawStringAnchored(strings.ToUpper(entry.Name), 400, 545, 0.5, 0.5)

	dc.SetFontFace(s.bodyFace)
	dc.SetHexColor("#a7f3d0")
	dc.DrawStringAnchored(entry.Location, 400, 595, 0.5, 0.5)

	dc.SetHexColor("#fefce8")
	line := fmt.Sprintf("%s  ·  RANK #%d", tier.Label, entry.Rank)
	dc.DrawStringAnchored(line, 400, 650, 0.5, 0.5)

	dc.SetFontFace(s.smallFace)
	dc.SetHexColor("#a7f3d0")
	footer := badgeFooter
	if groupName != "" {
		footer = groupName + "  ·  " + badgeFooter
	}
	dc.DrawStringAnchored(footer, 400, 750, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode badge png: %w", err)
	}

	return buf.Bytes(), nil
}

func hexColor(hex string) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
