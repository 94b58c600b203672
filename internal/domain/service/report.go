package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/utils/calendar"
	"github.com/clubhub-dev/clubhub/internal/domain/utils/location"
	qr "github.com/clubhub-dev/clubhub/pkg/qrcode"
	"github.com/xuri/excelize/v2"
)

type exportPostStorage interface {
	Get(ctx context.Context, id uint) (*entity.Post, error)
}

type exportJoinStorage interface {
	GetByPostID(ctx context.Context, postID uint) ([]entity.Join, error)
}

// ExportService renders posts into downloadable formats.
type ExportService struct {
	posts     exportPostStorage
	joins     exportJoinStorage
	qrCFG     qr.Config
	publicURL string
	now       func() time.Time
}

func NewExportService(posts exportPostStorage, joins exportJoinStorage, qrCFG qr.Config, publicURL string) *ExportService {
	return &ExportService{
		posts:     posts,
		joins:     joins,
		qrCFG:     qrCFG,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// Calendar returns the post as an iCalendar document with a single event.
// A post without a start date has no calendar.
func (s *ExportService) Calendar(ctx context.Context, postID uint) ([]byte, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.DateStart.IsZero() {
		return nil, fmt.Errorf("%w: post %d has no start date", errorz.ErrNotFound, postID)
	}
	return calendar.ExportPostToICS(*post, s.now())
}

// JoinLink is the absolute URL a QR code for the post points to.
func (s *ExportService) JoinLink(postID uint) string {
	return fmt.Sprintf("%s/posts/%d/join", s.publicURL, postID)
}

func (s *ExportService) QR(ctx context.Context, postID uint) ([]byte, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.qrCFG.WithContent(s.JoinLink(postID)).Generate()
}

// JoinsXLSX builds a spreadsheet of everyone who joined the post. Only the author may export.
func (s *ExportService) JoinsXLSX(ctx context.Context, user *entity.User, postID uint) ([]byte, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err = authorizeMutate(user, post); err != nil {
		return nil, err
	}

	joins, err := s.joins.GetByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get joins of post %d: %w", postID, err)
	}

	buf, err := joinsToXLSX(joins)
	if err != nil {
		return nil, fmt.Errorf("build joins spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func joinsToXLSX(joins []entity.Join) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Sheet1"
	_ = f.SetCellValue(sheet, "A1", "Username")
	_ = f.SetCellValue(sheet, "B1", "Joined")
	for i, join := range joins {
		row := strconv.Itoa(i + 2)
		_ = f.SetCellValue(sheet, "A"+row, join.User.Username)
		_ = f.SetCellValue(sheet, "B"+row, join.DateJoined.In(location.Location()).Format("2006-01-02 15:04"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
