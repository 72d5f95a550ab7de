package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"vellashop/internal/domain"
	applog "vellashop/internal/log"
	"vellashop/internal/repos"
)

// CartService owns the per-session carts. The in-memory lines are the source
// of truth for rendering; the sqlite snapshot is a best-effort mirror written
// after every mutation. Carts from earlier sessions are restored lazily on
// first touch. Concurrent requests for the same session are serialized by a
// single mutex; snapshot writes are last-write-wins.
type CartService struct {
	mu      sync.Mutex
	carts   map[string][]domain.CartLine
	loaded  map[string]bool
	repo    *repos.CartRepo
	catalog *repos.CatalogRepo
}

func NewCartService(repo *repos.CartRepo, catalog *repos.CatalogRepo) *CartService {
	return &CartService{
		carts:   map[string][]domain.CartLine{},
		loaded:  map[string]bool{},
		repo:    repo,
		catalog: catalog,
	}
}

// Catalog exposes the injected read-only catalog.
func (s *CartService) Catalog() *repos.CatalogRepo { return s.catalog }

// LineID derives the composite line identifier: product id plus a canonical
// serialization of the variant selection ("none" when absent). json.Marshal
// emits map keys in sorted order, which makes the serialization canonical.
func LineID(productID int, variant map[string]string) string {
	if len(variant) == 0 {
		return fmt.Sprintf("%d-none", productID)
	}
	b, _ := json.Marshal(variant)
	return fmt.Sprintf("%d-%s", productID, b)
}

// Lines returns the cart's line items in insertion order.
func (s *CartService) Lines(sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(sessionID)
	out := make([]domain.CartLine, len(s.carts[sessionID]))
	copy(out, s.carts[sessionID])
	return out
}

// ItemCount is the total number of units across the cart's lines.
func (s *CartService) ItemCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(sessionID)
	n := 0
	for _, l := range s.carts[sessionID] {
		n += l.Quantity
	}
	return n
}

// Add puts qty units of a product (with the given variant selection) into the
// cart. An existing line with the same composite id is incremented; otherwise
// a new line is appended. Unknown products are rejected.
func (s *CartService) Add(sessionID string, productID int, variant map[string]string, qty int) error {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return fmt.Errorf("product %d not in catalog", productID)
	}
	if qty < 1 {
		qty = 1
	}
	id := LineID(productID, variant)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(sessionID)
	lines := s.carts[sessionID]
	merged := false
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{ID: id, Product: p, Quantity: qty, Variant: variant})
	}
	s.carts[sessionID] = lines
	s.persist(sessionID)
	return nil
}

// UpdateQuantity sets a line's quantity exactly; anything below 1 removes the
// line. Updating an absent line is a no-op.
func (s *CartService) UpdateQuantity(sessionID, lineID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(sessionID)
	if qty < 1 {
		s.removeLocked(sessionID, lineID)
		s.persist(sessionID)
		return
	}
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = qty
			break
		}
	}
	s.persist(sessionID)
}

func (s *CartService) Remove(sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(sessionID)
	s.removeLocked(sessionID, lineID)
	s.persist(sessionID)
}

func (s *CartService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded[sessionID] = true
	s.carts[sessionID] = nil
	s.persist(sessionID)
}

// Restore replaces the cart with lines rebuilt from a snapshot, re-resolving
// each product from the catalog. Entries whose product id no longer resolves
// are dropped. When nothing resolves the existing cart is left untouched, so
// a stale shared link can never wipe a cart. Returns the number of restored
// lines.
func (s *CartService) Restore(sessionID string, snapshot []domain.SnapshotLine) int {
	lines := s.resolve(snapshot)
	if len(lines) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded[sessionID] = true
	s.carts[sessionID] = lines
	s.persist(sessionID)
	return len(lines)
}

// Snapshot returns the minimized persisted form of the cart.
func (s *CartService) Snapshot(sessionID string) []domain.SnapshotLine {
	lines := s.Lines(sessionID)
	out := make([]domain.SnapshotLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, domain.SnapshotLine{ID: l.ID, ProductID: l.Product.ID, Quantity: l.Quantity, Variant: l.Variant})
	}
	return out
}

func (s *CartService) removeLocked(sessionID, lineID string) {
	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == lineID {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

func (s *CartService) resolve(snapshot []domain.SnapshotLine) []domain.CartLine {
	var lines []domain.CartLine
	for _, sl := range snapshot {
		p, ok := s.catalog.Get(sl.ProductID)
		if !ok {
			continue // catalogs change over time; stale refs are not an error
		}
		if sl.Quantity < 1 {
			continue
		}
		id := sl.ID
		if id == "" {
			id = LineID(sl.ProductID, sl.Variant)
		}
		lines = append(lines, domain.CartLine{ID: id, Product: p, Quantity: sl.Quantity, Variant: sl.Variant})
	}
	return lines
}

// ensureLoaded restores the session's snapshot from sqlite on first touch.
// A missing or corrupt snapshot simply leaves the cart empty. Caller holds mu.
func (s *CartService) ensureLoaded(sessionID string) {
	if s.loaded[sessionID] {
		return
	}
	s.loaded[sessionID] = true
	payload, ok, err := s.repo.Load(sessionID)
	if err != nil {
		applog.Warn("cart.load.fail", err, map[string]any{"session": sessionID})
		return
	}
	if !ok {
		return
	}
	var snapshot []domain.SnapshotLine
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		applog.Warn("cart.load.corrupt", err, map[string]any{"session": sessionID})
		return
	}
	s.carts[sessionID] = s.resolve(snapshot)
}

// persist mirrors the cart to sqlite. Failures are logged and swallowed: the
// in-memory cart stays authoritative. Caller holds mu.
func (s *CartService) persist(sessionID string) {
	lines := s.carts[sessionID]
	snapshot := make([]domain.SnapshotLine, 0, len(lines))
	for _, l := range lines {
		snapshot = append(snapshot, domain.SnapshotLine{ID: l.ID, ProductID: l.Product.ID, Quantity: l.Quantity, Variant: l.Variant})
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		applog.Warn("cart.save.fail", err, map[string]any{"session": sessionID})
		return
	}
	if err := s.repo.Save(sessionID, string(payload)); err != nil {
		applog.Warn("cart.save.fail", err, map[string]any{"session": sessionID})
	}
}
