package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"legal_editor_app_go/models"
	"legal_editor_app_go/services/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heightPerByte measures one pixel per byte of content
func heightPerByte() pagination.Measurer {
	return pagination.MeasurerFunc(func(ctx context.Context, content string) (pagination.Measurement, error) {
		breaks, err := pagination.CountPageBreaks(content)
		if err != nil {
			return pagination.Measurement{}, err
		}
		return pagination.Measurement{Height: len(content), Breaks: breaks}, nil
	})
}

func newTestDocumentService() *DocumentService {
	return NewDocumentService(heightPerByte(), 10*time.Millisecond, "A4")
}

func TestDocumentServiceCreate(t *testing.T) {
	svc := newTestDocumentService()

	session, err := svc.Create("", "<p>Hello</p><script>x</script>")
	require.NoError(t, err)

	doc := session.Document()
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, models.DefaultDocumentTitle, doc.Title)
	assert.Equal(t, uint64(1), doc.Revision)
	assert.NotContains(t, doc.Content, "script")
	assert.Equal(t, 1, svc.Count())

	// The initial content is measured after the settle delay
	require.Eventually(t, func() bool {
		return session.Paginator.Current().Revision == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDocumentServiceCreateLayout(t *testing.T) {
	svc := NewDocumentService(heightPerByte(), time.Millisecond, "letter")
	session, err := svc.Create("Lease", "")
	require.NoError(t, err)

	assert.Equal(t, models.PageSizeLetter, session.Document().PageSize)
	assert.Equal(t, 856, session.Paginator.Layout().ContentHeight())
}

func TestDocumentServiceGet(t *testing.T) {
	svc := newTestDocumentService()

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	session, err := svc.Create("NDA", "")
	require.NoError(t, err)
	got, err := svc.Get(session.Document().ID)
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestDocumentServiceUpdateContent(t *testing.T) {
	svc := newTestDocumentService()
	session, err := svc.Create("NDA", "<p>a</p>")
	require.NoError(t, err)
	id := session.Document().ID

	content := "<p>" + strings.Repeat("x", 2000) + "</p>" + pagination.PageBreakHTML
	rev, err := svc.UpdateContent(id, content)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), rev)

	require.Eventually(t, func() bool {
		return session.Paginator.Current().Revision == 2
	}, time.Second, 5*time.Millisecond)
	set := session.Paginator.Current()
	assert.Equal(t, 1, set.Measurement.Breaks)
	assert.Equal(t, 3, set.Count)

	_, err = svc.UpdateContent("missing", "x")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentServiceConcurrentUpdates(t *testing.T) {
	svc := newTestDocumentService()
	session, err := svc.Create("NDA", "")
	require.NoError(t, err)
	id := session.Document().ID

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateContent(id, "<p>edit</p>")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(21), session.Document().Revision)
	require.Eventually(t, func() bool {
		return session.Paginator.Current().Revision == 21
	}, time.Second, 5*time.Millisecond)
}

func TestDocumentServiceSetTitle(t *testing.T) {
	svc := newTestDocumentService()
	session, err := svc.Create("NDA", "")
	require.NoError(t, err)
	id := session.Document().ID

	require.NoError(t, svc.SetTitle(id, "  Master Services Agreement  "))
	assert.Equal(t, "Master Services Agreement", session.Document().Title)

	require.NoError(t, svc.SetTitle(id, "   "))
	assert.Equal(t, models.DefaultDocumentTitle, session.Document().Title)

	require.NoError(t, svc.SetTitle(id, strings.Repeat("é", MaxTitleLength+10)))
	assert.Equal(t, MaxTitleLength, len([]rune(session.Document().Title)))

	assert.ErrorIs(t, svc.SetTitle("missing", "x"), ErrDocumentNotFound)
}

func TestDocumentServiceReportMeasurement(t *testing.T) {
	svc := NewDocumentService(heightPerByte(), time.Hour, "A4")
	session, err := svc.Create("NDA", "<p>a</p>")
	require.NoError(t, err)
	id := session.Document().ID
	_, err = svc.UpdateContent(id, "<p>b</p>")
	require.NoError(t, err)

	applied, err := svc.ReportMeasurement(id, 2, pagination.Measurement{Height: 2000})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 3, session.Paginator.Current().Count)

	// A late reading of revision 1 must not replace revision 2
	applied, err = svc.ReportMeasurement(id, 1, pagination.Measurement{Height: 10})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 3, session.Paginator.Current().Count)

	_, err = svc.ReportMeasurement(id, 3, pagination.Measurement{Height: 10})
	assert.ErrorIs(t, err, ErrUnknownRevision)
	_, err = svc.ReportMeasurement(id, 0, pagination.Measurement{Height: 10})
	assert.ErrorIs(t, err, ErrUnknownRevision)

	_, err = svc.ReportMeasurement(id, 2, pagination.Measurement{Height: -1})
	assert.Error(t, err)
}

func TestDocumentServiceMeasureTimeout(t *testing.T) {
	deadlines := make(chan time.Duration, 1)
	svc := NewDocumentService(pagination.MeasurerFunc(func(ctx context.Context, content string) (pagination.Measurement, error) {
		if deadline, ok := ctx.Deadline(); ok {
			deadlines <- time.Until(deadline)
		}
		<-ctx.Done()
		return pagination.Measurement{}, ctx.Err()
	}), time.Millisecond, "A4")
	svc.MeasureTimeout = 50 * time.Millisecond

	session, err := svc.Create("NDA", "<p>a</p>")
	require.NoError(t, err)

	select {
	case left := <-deadlines:
		assert.LessOrEqual(t, left, 50*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("measurement never started")
	}
	// A timed out measurement leaves the initial page set in place
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, uint64(0), session.Paginator.Current().Revision)
}

func TestDocumentServiceBrowserReadingBeatsServerEstimate(t *testing.T) {
	svc := NewDocumentService(pagination.NewHeuristicMeasurer(pagination.A4Layout()), 10*time.Millisecond, "A4")
	session, err := svc.Create("NDA", "<p>a</p>")
	require.NoError(t, err)
	id := session.Document().ID

	rev, err := svc.UpdateContent(id, "<p>b</p>")
	require.NoError(t, err)
	require.Equal(t, uint64(2), rev)

	// The server estimate of revision 2 lands before the browser reports
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, uint64(2), session.Paginator.Current().Revision)
	require.Equal(t, 1, session.Paginator.Current().Count)

	applied, err := svc.ReportMeasurement(id, 2, pagination.Measurement{Height: 2000})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 3, session.Paginator.Current().Count)
	assert.Equal(t, pagination.SourceRendered, session.Paginator.Current().Measurement.Source)

	// A second reading of the same revision is a no-op
	applied, err = svc.ReportMeasurement(id, 2, pagination.Measurement{Height: 10})
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestDocumentServiceCleanupIdleSessions(t *testing.T) {
	svc := newTestDocumentService()
	stale, err := svc.Create("old", "")
	require.NoError(t, err)
	fresh, err := svc.Create("new", "")
	require.NoError(t, err)

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-48 * time.Hour)
	stale.mu.Unlock()

	stale.RecordExport("documents/" + stale.Document().ID + "/exports/a.html")

	closed := svc.CleanupIdleSessions(24 * time.Hour)
	require.Len(t, closed, 1)
	assert.Same(t, stale, closed[0])
	assert.Equal(t, []string{"documents/" + stale.Document().ID + "/exports/a.html"}, closed[0].Exports())
	assert.Equal(t, 1, svc.Count())

	_, err = svc.Get(stale.Document().ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, err = svc.Get(fresh.Document().ID)
	assert.NoError(t, err)
}
