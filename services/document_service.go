package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"legal_editor_app_go/models"
	"legal_editor_app_go/services/pagination"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrUnknownRevision  = errors.New("measurement refers to an unknown revision")
)

// MaxTitleLength bounds the header title set through the settings form
const MaxTitleLength = 200

// DocumentSession pairs an open document with the paginator of its page set
type DocumentSession struct {
	mu       sync.RWMutex
	doc      *models.Document
	lastSeen time.Time
	exports  []string // storage keys of archived exports

	Paginator *pagination.Paginator
}

// Document returns a copy of the session's document
func (s *DocumentSession) Document() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.doc
}

// RecordExport remembers an archived export so it is deleted with the session
func (s *DocumentSession) RecordExport(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports = append(s.exports, key)
}

// Exports returns the storage keys of the session's archived exports
func (s *DocumentSession) Exports() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.exports...)
}

func (s *DocumentSession) touch() {
	s.lastSeen = time.Now()
}

// DocumentService keeps the open editor sessions in memory
type DocumentService struct {
	mu       sync.RWMutex
	sessions map[string]*DocumentSession

	measurer pagination.Measurer
	delay    time.Duration
	pageSize string

	// MeasureTimeout bounds each deferred measurement; zero keeps the default
	MeasureTimeout time.Duration
	// Debug logs every page set replacement
	Debug bool
}

// Documents is the global document service instance
var Documents *DocumentService

// NewDocumentService creates an empty session registry
func NewDocumentService(measurer pagination.Measurer, delay time.Duration, pageSize string) *DocumentService {
	return &DocumentService{
		sessions: make(map[string]*DocumentSession),
		measurer: measurer,
		delay:    delay,
		pageSize: pageSize,
	}
}

// Create opens a new session. The initial content counts as the first
// change, so the page set is measured right after creation.
func (s *DocumentService) Create(title, content string) (*DocumentSession, error) {
	doc := models.NewDocument(title, SanitizeContent(content), s.pageSize)

	layout, err := pagination.LayoutForPageSize(doc.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page layout: %w", err)
	}
	opts := []pagination.Option{pagination.WithDelay(s.delay)}
	if s.MeasureTimeout > 0 {
		opts = append(opts, pagination.WithMeasureTimeout(s.MeasureTimeout))
	}
	if s.Debug {
		id := doc.ID
		opts = append(opts, pagination.WithOnChange(func(set *pagination.PageSet) {
			log.Printf("[DEBUG] Document %s: revision %d, %s height %dpx, %d breaks, %d pages",
				id, set.Revision, set.Measurement.Source, set.Measurement.Height, set.Measurement.Breaks, set.Count)
		}))
	}
	paginator, err := pagination.NewPaginator(layout, s.measurer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create paginator: %w", err)
	}

	doc.Revision = 1
	session := &DocumentSession{doc: doc, Paginator: paginator}
	session.touch()

	s.mu.Lock()
	s.sessions[doc.ID] = session
	s.mu.Unlock()

	paginator.Notify(pagination.Snapshot{Revision: doc.Revision, Content: doc.Content})
	return session, nil
}

// Get returns an open session
func (s *DocumentService) Get(id string) (*DocumentSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDocumentNotFound
	}

	session.mu.Lock()
	session.touch()
	session.mu.Unlock()
	return session, nil
}

// UpdateContent stores a content change and schedules re-measurement.
// It returns the new revision.
func (s *DocumentService) UpdateContent(id, content string) (uint64, error) {
	session, err := s.Get(id)
	if err != nil {
		return 0, err
	}

	session.mu.Lock()
	session.doc.Content = SanitizeContent(content)
	session.doc.Revision++
	session.doc.UpdatedAt = time.Now()
	snap := pagination.Snapshot{Revision: session.doc.Revision, Content: session.doc.Content}
	session.mu.Unlock()

	session.Paginator.Notify(snap)
	return snap.Revision, nil
}

// SetTitle changes the title shown in page headers
func (s *DocumentService) SetTitle(id, title string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	title = strings.TrimSpace(title)
	if r := []rune(title); len(r) > MaxTitleLength {
		title = string(r[:MaxTitleLength])
	}
	if title == "" {
		title = models.DefaultDocumentTitle
	}

	session.mu.Lock()
	session.doc.Title = title
	session.doc.UpdatedAt = time.Now()
	session.mu.Unlock()
	return nil
}

// ReportMeasurement applies a measurement taken by the browser editor.
// Browser readings are rendered heights, so they replace a server estimate
// of the same revision. It reports whether the page set was replaced;
// readings for revisions older than the current page set are dropped.
func (s *DocumentService) ReportMeasurement(id string, revision uint64, m pagination.Measurement) (bool, error) {
	session, err := s.Get(id)
	if err != nil {
		return false, err
	}

	session.mu.RLock()
	known := session.doc.Revision
	session.mu.RUnlock()
	if revision == 0 || revision > known {
		return false, ErrUnknownRevision
	}

	m.Source = pagination.SourceRendered
	return session.Paginator.Apply(revision, m)
}

// Count returns the number of open sessions
func (s *DocumentService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanupIdleSessions closes sessions untouched for longer than maxIdle
// and returns them, so their archived exports can be released
func (s *DocumentService) CleanupIdleSessions(maxIdle time.Duration) []*DocumentSession {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	var closed []*DocumentSession
	for id, session := range s.sessions {
		session.mu.RLock()
		idle := session.lastSeen.Before(cutoff)
		session.mu.RUnlock()
		if idle {
			delete(s.sessions, id)
			closed = append(closed, session)
		}
	}
	if len(closed) > 0 {
		log.Printf("Closed %d idle document sessions", len(closed))
	}
	return closed
}
