package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "portfolio.db")

	s, err := Open(path)
	req.NoError(err)
	req.NoError(s.Close())

	s, err = Open(path)
	req.NoError(err)
	req.NoError(s.Close())
}

func TestStats_CountsVisitorsAndSlideEvents(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

	// Given two visitors today, one last week and one last month
	req.NoError(s.RecordVisit(ctx, "aaaa", "ua", "/", now.Add(-time.Hour)))
	req.NoError(s.RecordVisit(ctx, "aaaa", "ua", "/", now.Add(-2*time.Hour)))
	req.NoError(s.RecordVisit(ctx, "bbbb", "ua", "/", now.Add(-3*24*time.Hour)))
	req.NoError(s.RecordVisit(ctx, "cccc", "ua", "/", now.Add(-30*24*time.Hour)))

	// And some slideshow activity
	req.NoError(s.RecordSlideEvent(ctx, "redmesa", "next", now))
	req.NoError(s.RecordSlideEvent(ctx, "redmesa", "goto", now))
	req.NoError(s.RecordSlideEvent(ctx, "planty", "prev", now.Add(-time.Minute)))

	stats, err := s.Stats(ctx, now)

	req.NoError(err)
	req.EqualValues(4, stats.TotalVisitors)
	req.EqualValues(3, stats.UniqueVisitors)
	req.EqualValues(2, stats.VisitorsToday)
	req.EqualValues(3, stats.VisitorsThisWeek)
	req.EqualValues(3, stats.TotalSlideEvents)
	req.Len(stats.TopSlideshows, 2)
	req.Equal("redmesa", stats.TopSlideshows[0].Project)
	req.EqualValues(2, stats.TopSlideshows[0].Events)
	req.Equal(now, stats.TopSlideshows[0].LastAt)
	req.Len(stats.RecentVisitors, 4)
	req.Equal(now.Add(-time.Hour), stats.RecentVisitors[0].Timestamp)
}

func TestCleanup_RemovesOldVisitors(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Now()

	req.NoError(s.RecordVisit(ctx, "old", "", "/", now.Add(-2*Retention)))
	req.NoError(s.RecordVisit(ctx, "new", "", "/", now))

	removed, err := s.Cleanup(ctx, now.Add(-Retention))

	req.NoError(err)
	req.EqualValues(1, removed)
	visitors, err := s.RecentVisitors(ctx, 10)
	req.NoError(err)
	req.Len(visitors, 1)
	req.Equal("new", visitors[0].HashedIP)
}
