// Package exchange reads and writes the portable JSON session document used
// by export and import. The document is forgiving on the way in: amounts may
// be numbers or strings and most fields may be missing, with the same
// defaulting rules as any other raw row.
package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bbtrack/bbtrack/internal/model"
	"github.com/bbtrack/bbtrack/internal/stats"
)

// DocumentVersion is the only format version written or accepted today.
const DocumentVersion = 1

// Document is the top-level export payload.
type Document struct {
	Version    int          `json:"version"`
	ExportedAt string       `json:"exportedAt"`
	Sessions   []SessionDoc `json:"sessions"`
}

// SessionDoc is one exported session with its buys inline.
type SessionDoc struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatedAt string   `json:"createdAt"`
	BonusBuys []BuyDoc `json:"bonusBuys"`
}

// BuyDoc is one exported buy. Cost and Win stay untyped so documents written
// by hand or by other tools still import.
type BuyDoc struct {
	ID        string `json:"id"`
	Game      string `json:"game"`
	Cost      any    `json:"cost"`
	Win       any    `json:"win"`
	BigWin    bool   `json:"bigWin"`
	CreatedAt string `json:"createdAt"`
}

// Write serializes the given sessions as an indented document.
func Write(w io.Writer, sessions []model.Session, exportedAt time.Time) error {
	doc := Document{
		Version:    DocumentVersion,
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Sessions:   make([]SessionDoc, 0, len(sessions)),
	}
	for _, s := range sessions {
		sd := SessionDoc{
			ID:        s.ID,
			Name:      s.Name,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
			BonusBuys: make([]BuyDoc, 0, len(s.Buys)),
		}
		for _, b := range s.Buys {
			sd.BonusBuys = append(sd.BonusBuys, BuyDoc{
				ID:        b.ID,
				Game:      b.Game,
				Cost:      b.Cost,
				Win:       b.Win,
				BigWin:    b.BigWin,
				CreatedAt: b.CreatedAt.Format(time.RFC3339),
			})
		}
		doc.Sessions = append(doc.Sessions, sd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Read parses and validates a document. A payload without a sessions array
// is rejected; an unknown version is rejected rather than half-imported.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if doc.Sessions == nil {
		return nil, fmt.Errorf("invalid document: expected a sessions array")
	}
	if doc.Version != 0 && doc.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	return &doc, nil
}

// Materialize turns a document into sessions owned by the given user, ready
// for storage. Imported records always get fresh ids from newID so importing
// the same file twice adds two copies instead of silently overwriting.
func Materialize(doc *Document, userID string, now time.Time, newID func() string) []model.Session {
	out := make([]model.Session, 0, len(doc.Sessions))
	for _, sd := range doc.Sessions {
		s := model.Session{
			ID:        newID(),
			UserID:    userID,
			Name:      sd.Name,
			CreatedAt: parseTime(sd.CreatedAt, now),
		}
		if s.Name == "" {
			s.Name = "Imported Session"
		}
		for _, bd := range sd.BonusBuys {
			b := stats.Normalize(model.RawBuy{
				ID:        newID(),
				SessionID: s.ID,
				UserID:    userID,
				Game:      bd.Game,
				Cost:      bd.Cost,
				Win:       bd.Win,
				BigWin:    bd.BigWin,
				CreatedAt: bd.CreatedAt,
			}, now)
			s.Buys = append(s.Buys, b)
		}
		out = append(out, s)
	}
	return out
}

func parseTime(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fallback
	}
	return t
}
