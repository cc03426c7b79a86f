package store

import (
	"database/sql"
	"testing"

	"seolens/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s := &Store{path: ":memory:"}
	var err error
	s.DB, err = sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := s.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	return s
}

func sampleDigest() *models.AnalysisDigest {
	return &models.AnalysisDigest{
		Domain: "example.com",
		Pages: []models.PageAnalysis{
			{
				Signals: models.PageSignals{URL: "https://example.com/", Title: "Home", BodyCharCount: 900},
				Score:   models.ScoreResult{ComprehensiveScore: 72},
			},
			{
				Signals: models.PageSignals{URL: "https://example.com/about", Title: "About", BodyCharCount: 500},
				Score:   models.ScoreResult{ComprehensiveScore: 58},
			},
		},
		Summary: models.SiteStructureSummary{
			PageCount:         2,
			DepthDistribution: map[int]int{0: 1, 1: 1},
			AvgInternalLinks:  3,
			AvgBodyChars:      700,
		},
	}
}

func TestSaveAndGetSession(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	sessionID, err := s.SaveSession("https://example.com/", sampleDigest())
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if sessionID == 0 {
		t.Fatal("SaveSession() returned 0 ID")
	}

	sess, digest, err := s.GetSession(sessionID)
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}

	if sess.Domain != "example.com" {
		t.Errorf("Domain = %q, want %q", sess.Domain, "example.com")
	}
	if sess.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", sess.PageCount)
	}
	if sess.AvgScore != 65 {
		t.Errorf("AvgScore = %v, want 65", sess.AvgScore)
	}
	if sess.MinScore != 58 || sess.MaxScore != 72 {
		t.Errorf("Min/Max = %v/%v, want 58/72", sess.MinScore, sess.MaxScore)
	}

	if len(digest.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(digest.Pages))
	}
	if digest.Pages[0].Signals.URL != "https://example.com/" {
		t.Errorf("first page URL = %q", digest.Pages[0].Signals.URL)
	}
	if digest.Pages[0].Score.ComprehensiveScore != 72 {
		t.Errorf("first page score = %v, want 72", digest.Pages[0].Score.ComprehensiveScore)
	}
	if digest.Summary.DepthDistribution[1] != 1 {
		t.Errorf("summary depth distribution not preserved: %v", digest.Summary.DepthDistribution)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	if _, _, err := s.GetSession(42); err == nil {
		t.Error("expected error for missing session")
	}
}

func TestListSessions(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	for i := 0; i < 3; i++ {
		if _, err := s.SaveSession("https://example.com/", sampleDigest()); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	sessions, err := s.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	// Most recent first.
	if sessions[0].SessionID <= sessions[1].SessionID {
		t.Errorf("sessions not ordered newest first: %d then %d", sessions[0].SessionID, sessions[1].SessionID)
	}

	limited, err := s.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d sessions with limit 2", len(limited))
	}
}

func TestListSessionsEmpty(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	sessions, err := s.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions, want 0", len(sessions))
	}
}
