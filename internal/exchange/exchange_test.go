package exchange

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bbtrack/bbtrack/internal/model"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleSessions() []model.Session {
	return []model.Session{
		{
			ID: "s1", UserID: "u1", Name: "Session 2", CreatedAt: now,
			Buys: []model.Buy{
				{ID: "b1", SessionID: "s1", UserID: "u1", Game: "Mental",
					Cost: 40, Win: 200, Profit: 160, Multiplier: 5,
					BigWin: true, CreatedAt: now.Add(time.Minute)},
			},
		},
		{ID: "s2", UserID: "u1", Name: "Session 1", CreatedAt: now.Add(-time.Hour)},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSessions(), now); err != nil {
		t.Fatalf("Write: %v", err)
	}

	doc, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Version != DocumentVersion {
		t.Errorf("version: want %d, got %d", DocumentVersion, doc.Version)
	}
	if doc.ExportedAt != "2025-06-15T12:00:00Z" {
		t.Errorf("exportedAt: got %q", doc.ExportedAt)
	}
	if len(doc.Sessions) != 2 {
		t.Fatalf("sessions: want 2, got %d", len(doc.Sessions))
	}

	b := doc.Sessions[0].BonusBuys[0]
	if b.Game != "Mental" || !b.BigWin {
		t.Errorf("buy fields: %+v", b)
	}
	if cost, ok := b.Cost.(float64); !ok || cost != 40 {
		t.Errorf("cost: want 40, got %T %v", b.Cost, b.Cost)
	}
	if b.CreatedAt != "2025-06-15T12:01:00Z" {
		t.Errorf("createdAt: got %q", b.CreatedAt)
	}
}

func TestRead_RejectsMalformed(t *testing.T) {
	cases := []struct {
		name, payload string
	}{
		{"not json", "not json at all"},
		{"missing sessions", `{"version": 1}`},
		{"future version", `{"version": 2, "sessions": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.payload)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// Hand-written documents are accepted with fields missing and amounts as
// strings; defaults mirror what any other raw row gets.
func TestMaterialize_Defaults(t *testing.T) {
	doc, err := Read(strings.NewReader(`{
		"sessions": [
			{"bonusBuys": [{"cost": "25", "win": 100}]}
		]
	}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var n int
	newID := func() string { n++; return fmt.Sprintf("id-%d", n) }
	sessions := Materialize(doc, "u9", now, newID)

	if len(sessions) != 1 {
		t.Fatalf("sessions: want 1, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Name != "Imported Session" {
		t.Errorf("name fallback: got %q", s.Name)
	}
	if s.UserID != "u9" || !s.CreatedAt.Equal(now) {
		t.Errorf("ownership/timestamp: %+v", s)
	}

	b := s.Buys[0]
	if b.SessionID != s.ID || b.UserID != "u9" {
		t.Errorf("buy ownership: %+v", b)
	}
	if b.Cost != 25 || b.Win != 100 || b.Profit != 75 || b.Multiplier != 4 {
		t.Errorf("buy amounts: %+v", b)
	}
	if b.Game != "Unknown" {
		t.Errorf("game fallback: got %q", b.Game)
	}
}

// Importing never reuses ids from the file: the same document twice means
// two distinct copies.
func TestMaterialize_FreshIDs(t *testing.T) {
	doc := &Document{Sessions: []SessionDoc{
		{ID: "file-session", BonusBuys: []BuyDoc{{ID: "file-buy", Cost: 1.0, Win: 0.0}}},
	}}

	var n int
	newID := func() string { n++; return fmt.Sprintf("id-%d", n) }
	sessions := Materialize(doc, "u1", now, newID)

	if sessions[0].ID == "file-session" {
		t.Error("session id from file was reused")
	}
	if sessions[0].Buys[0].ID == "file-buy" {
		t.Error("buy id from file was reused")
	}
}
