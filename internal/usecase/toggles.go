package usecase

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"AXRadar/internal/domain/models"
)

// ErrInvalidToggle rejects a toggle argument outside its domain.
var ErrInvalidToggle = errors.New("invalid toggle value")

// ProgramExpansion is how many program trading rows are shown.
type ProgramExpansion string

const (
	ExpansionTop5 ProgramExpansion = "top5"
	ExpansionAll  ProgramExpansion = "all"
)

// ToggleSnapshot is a copy of the view-mode flags.
type ToggleSnapshot struct {
	SectorTab        models.SectorTab `json:"sectorTab"`
	ProgramExpansion ProgramExpansion `json:"programExpansion"`
	SellPopup        string           `json:"sellPopup,omitempty"`
	StockDetail      string           `json:"stockDetail,omitempty"`
}

// ToggleState holds the dashboard's view-mode flags. Every operation touches
// one flag; opens and closes are idempotent.
type ToggleState struct {
	mu sync.RWMutex
	s  ToggleSnapshot
}

func NewToggleState() *ToggleState {
	return &ToggleState{s: ToggleSnapshot{
		SectorTab:        models.SectorTabForeign,
		ProgramExpansion: ExpansionTop5,
	}}
}

func (t *ToggleState) Snapshot() ToggleSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.s
}

// SetSectorTab accepts "foreign" or "institution" ("inst" is an alias).
func (t *ToggleState) SetSectorTab(mode string) error {
	var tab models.SectorTab
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case string(models.SectorTabForeign):
		tab = models.SectorTabForeign
	case string(models.SectorTabInstitution), "inst":
		tab = models.SectorTabInstitution
	default:
		return fmt.Errorf("%w: sector tab %q", ErrInvalidToggle, mode)
	}
	t.mu.Lock()
	t.s.SectorTab = tab
	t.mu.Unlock()
	return nil
}

// ToggleProgramExpansion flips between top5 and all and returns the new mode.
func (t *ToggleState) ToggleProgramExpansion() ProgramExpansion {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.s.ProgramExpansion == ExpansionAll {
		t.s.ProgramExpansion = ExpansionTop5
	} else {
		t.s.ProgramExpansion = ExpansionAll
	}
	return t.s.ProgramExpansion
}

// OpenSellPopup opens the sell list of one broker (MS, JP or GS).
func (t *ToggleState) OpenSellPopup(key string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if _, ok := lookupInstitution(key); !ok {
		return fmt.Errorf("%w: institution %q", ErrInvalidToggle, key)
	}
	t.mu.Lock()
	t.s.SellPopup = key
	t.mu.Unlock()
	return nil
}

func (t *ToggleState) CloseSellPopup() {
	t.mu.Lock()
	t.s.SellPopup = ""
	t.mu.Unlock()
}

// OpenStockDetail records code as the open detail. Blank codes and the
// literals "undefined" and "null" are rejected.
func (t *ToggleState) OpenStockDetail(code string) error {
	code = strings.TrimSpace(code)
	if !ValidStockCode(code) {
		return fmt.Errorf("%w: stock code %q", ErrInvalidToggle, code)
	}
	t.mu.Lock()
	t.s.StockDetail = code
	t.mu.Unlock()
	return nil
}

func (t *ToggleState) CloseStockDetail() {
	t.mu.Lock()
	t.s.StockDetail = ""
	t.mu.Unlock()
}

// ValidStockCode reports whether code can be opened as a detail. Codes end
// up in the upstream path, so path and query separators are rejected.
func ValidStockCode(code string) bool {
	code = strings.TrimSpace(code)
	switch code {
	case "", "undefined", "null":
		return false
	}
	return !strings.ContainsAny(code, "/?#")
}
