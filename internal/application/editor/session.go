package editor

import (
	"sync"
	"time"

	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/internal/domain/document"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/totals"
)

// Session es la celda mutable de una factura: un único dueño (el shell) que
// reemplaza el valor completo en cada cambio. Las sesiones no comparten estado.
type Session struct {
	id string

	mu       sync.Mutex
	inv      entity.Invoice
	locale   document.Locale
	lastSeen time.Time

	surface *export.Surface
}

// Snapshot copia consistente de la factura y sus totales.
type Snapshot struct {
	ID      string
	Locale  document.Locale
	Invoice entity.Invoice
	Totals  entity.InvoiceTotals
}

// ID identificador de la sesión.
func (s *Session) ID() string { return s.id }

// Surface vista previa de la sesión.
func (s *Session) Surface() *export.Surface { return s.surface }

// Snapshot lee el estado actual.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	inv := s.inv
	inv.LineItems = append([]entity.LineItem(nil), s.inv.LineItems...)
	return Snapshot{ID: s.id, Locale: s.locale, Invoice: inv, Totals: totals.ForInvoice(inv)}
}

// apply reemplaza la factura por fn(actual). Si fn falla el estado no cambia.
// after corre con el lock tomado y el nuevo estado ya aplicado.
func (s *Session) apply(now time.Time, fn func(entity.Invoice) (entity.Invoice, error), after func(Snapshot) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now

	next, err := fn(s.inv)
	if err != nil {
		return s.snapshotLocked(), err
	}
	s.inv = next
	snap := s.snapshotLocked()
	if after != nil {
		if err := after(snap); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
