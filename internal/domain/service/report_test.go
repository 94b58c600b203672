package service

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	qr "github.com/clubhub-dev/clubhub/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExportFixture() (*ExportService, *FakeJoinStorage) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	posts := NewFakePostStorage(
		&entity.Post{ID: 3, Title: "Hike", Content: "x", AuthorID: 1, DateStart: start},
		&entity.Post{ID: 5, Title: "Someday", Content: "x", AuthorID: 1},
	)
	joins := &FakeJoinStorage{}
	cfg := qr.Default
	cfg.Size = 128
	return NewExportService(posts, joins, cfg, "https://clubs.example.com/"), joins
}

func TestExportService_Calendar(t *testing.T) {
	svc, _ := newExportFixture()

	data, err := svc.Calendar(context.Background(), 3)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Hike")

	assert.Equal(t, 1, strings.Count(string(data), "BEGIN:VEVENT"))

	_, err = svc.Calendar(context.Background(), 4)
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	_, err = svc.Calendar(context.Background(), 5)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestExportService_QR(t *testing.T) {
	svc, _ := newExportFixture()
	assert.Equal(t, "https://clubs.example.com/posts/3/join", svc.JoinLink(3))

	data, err := svc.QR(context.Background(), 3)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	_, err = svc.QR(context.Background(), 4)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestExportService_JoinsXLSX(t *testing.T) {
	ctx := context.Background()
	svc, joins := newExportFixture()
	joins.GetByPostIDFunc = func(_ context.Context, postID uint) ([]entity.Join, error) {
		return []entity.Join{
			{UserID: 2, PostID: postID, User: entity.User{Username: "bob"}, DateJoined: time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)},
			{UserID: 3, PostID: postID, User: entity.User{Username: "carol"}},
		}, nil
	}

	_, err := svc.JoinsXLSX(ctx, &entity.User{ID: 2}, 3)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, err = svc.JoinsXLSX(ctx, nil, 3)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	data, err := svc.JoinsXLSX(ctx, &entity.User{ID: 1}, 3)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Username", rows[0][0])
	assert.Equal(t, "bob", rows[1][0])
	assert.Equal(t, "2026-05-02 08:30", rows[1][1])
	assert.Equal(t, "carol", rows[2][0])
}
