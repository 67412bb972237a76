// Package editor es la frontera del shell de presentación: sesiones en memoria,
// coerción de la entrada del formulario y la política de mínimo una línea. El
// núcleo (invoice, totals, document) no conoce nada de esto.
package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/document"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoice"
	"github.com/jhoicas/facturador/pkg/logger"
)

// Service casos de uso del editor de facturas.
type Service struct {
	store         *Store
	factory       *invoice.Factory
	exporter      *export.Service
	defaultLocale document.Locale
	log           *logger.Logger
}

// NewService construye el caso de uso. defaultLocale se normaliza; vacío o
// desconocido cae en inglés.
func NewService(store *Store, factory *invoice.Factory, exporter *export.Service, defaultLocale string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:         store,
		factory:       factory,
		exporter:      exporter,
		defaultLocale: document.ResolveLocale(defaultLocale),
		log:           log.WithComponent("editor"),
	}
}

// Store sesiones del servicio.
func (s *Service) Store() *Store { return s.store }

func (s *Service) now() time.Time { return s.factory.Clock() }

// Create abre una sesión nueva con la factura semilla.
func (s *Service) Create(locale string) (Snapshot, error) {
	lang := s.defaultLocale
	if strings.TrimSpace(locale) != "" {
		lang = document.ResolveLocale(locale)
	}
	id := newSessionID()
	sess := &Session{
		id:       id,
		inv:      s.factory.New(),
		locale:   lang,
		lastSeen: s.now(),
		surface:  export.NewSurface(id),
	}
	snap := sess.Snapshot()
	if err := s.exporter.Refresh(sess.surface, snap.Invoice, snap.Totals, string(lang)); err != nil {
		sess.surface.Close()
		return Snapshot{}, fmt.Errorf("editor: crear sesión: %w", err)
	}
	s.store.add(sess)
	s.log.Info().Str("session", id).Str("locale", string(lang)).Str("invoice", snap.Invoice.InvoiceNumber).Msg("sesión creada")
	return snap, nil
}

// Get estado actual de la sesión.
func (s *Service) Get(id string) (Snapshot, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.touch(s.now())
	return sess.Snapshot(), nil
}

// Close termina la sesión.
func (s *Service) Close(id string) error {
	if !s.store.Delete(id) {
		return fmt.Errorf("editor: sesión %q: %w", id, domain.ErrSessionNotFound)
	}
	s.log.Info().Str("session", id).Msg("sesión cerrada")
	return nil
}

// SetField reemplaza un campo de cabecera.
func (s *Service) SetField(id, field string, raw json.RawMessage) (Snapshot, error) {
	return s.mutate(id, func(inv entity.Invoice) (entity.Invoice, error) {
		return setField(inv, field, raw)
	})
}

// AddLineItem agrega una línea vacía y la devuelve.
func (s *Service) AddLineItem(id string) (entity.LineItem, Snapshot, error) {
	snap, err := s.mutate(id, func(inv entity.Invoice) (entity.Invoice, error) {
		return s.factory.AddLineItem(inv), nil
	})
	if err != nil {
		return entity.LineItem{}, snap, err
	}
	items := snap.Invoice.LineItems
	return items[len(items)-1], snap, nil
}

// UpdateLineItem aplica un cambio parcial a una línea. Un id desconocido no
// cambia nada.
func (s *Service) UpdateLineItem(id, itemID string, in dto.UpdateLineItemRequest) (Snapshot, error) {
	patch, err := toPatch(in)
	if err != nil {
		return Snapshot{}, err
	}
	return s.mutate(id, func(inv entity.Invoice) (entity.Invoice, error) {
		return invoice.UpdateLineItem(inv, itemID, patch), nil
	})
}

// RemoveLineItem quita una línea. La factura conserva siempre al menos una:
// quitar la última devuelve domain.ErrLastLineItem.
func (s *Service) RemoveLineItem(id, itemID string) (Snapshot, error) {
	return s.mutate(id, func(inv entity.Invoice) (entity.Invoice, error) {
		if _, ok := invoice.FindLineItem(inv, itemID); ok && len(inv.LineItems) <= 1 {
			return inv, fmt.Errorf("editor: quitar %q: %w", itemID, domain.ErrLastLineItem)
		}
		return invoice.RemoveLineItem(inv, itemID), nil
	})
}

// Reset vuelve a la factura semilla con número y fecha nuevos.
func (s *Service) Reset(id string) (Snapshot, error) {
	return s.mutate(id, func(entity.Invoice) (entity.Invoice, error) {
		return s.factory.Reset(), nil
	})
}

// RegenerateInvoiceNumber asigna un número de factura nuevo.
func (s *Service) RegenerateInvoiceNumber(id string) (Snapshot, error) {
	return s.mutate(id, func(inv entity.Invoice) (entity.Invoice, error) {
		return s.factory.RegenerateInvoiceNumber(inv), nil
	})
}

// Document vista estructurada. locale, si viene, pasa a ser el de la sesión.
func (s *Service) Document(id, locale string) (document.Document, error) {
	_, sess, err := s.withLocale(id, locale)
	if err != nil {
		return document.Document{}, err
	}
	return sess.surface.View().Document, nil
}

// Preview markup de la vista previa, el mismo que produce la exportación HTML.
func (s *Service) Preview(id, locale string) ([]byte, error) {
	_, sess, err := s.withLocale(id, locale)
	if err != nil {
		return nil, err
	}
	return sess.surface.View().Markup, nil
}

// ExportHTML genera el archivo HTML autocontenido.
func (s *Service) ExportHTML(id, locale string, opts export.Options) (export.Result, error) {
	snap, _, err := s.withLocale(id, locale)
	if err != nil {
		return export.Result{}, err
	}
	return s.exporter.ExportMarkup(snap.Invoice, snap.Totals, string(snap.Locale), opts)
}

// ExportPDF encola la exportación de páginas fijas de la vista previa y espera
// el resultado. Si ctx vence, la exportación sigue en su cola pero el llamador
// deja de esperarla.
func (s *Service) ExportPDF(ctx context.Context, id, locale string, opts export.Options) (export.Result, error) {
	_, sess, err := s.withLocale(id, locale)
	if err != nil {
		return export.Result{}, err
	}
	return s.exporter.ExportFixedLayout(context.WithoutCancel(ctx), sess.surface, opts).Wait(ctx)
}

// Sweep cierra las sesiones inactivas por más de ttl.
func (s *Service) Sweep(ttl time.Duration) int {
	ids := s.store.Sweep(s.now(), ttl)
	for _, id := range ids {
		s.log.Info().Str("session", id).Dur("ttl", ttl).Msg("sesión expirada")
	}
	return len(ids)
}

// mutate aplica fn a la factura de la sesión y vuelve a renderizar su vista previa.
func (s *Service) mutate(id string, fn func(entity.Invoice) (entity.Invoice, error)) (Snapshot, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.apply(s.now(), fn, s.refresher(sess))
}

// withLocale aplica la preferencia de locale (si viene) y devuelve el estado.
func (s *Service) withLocale(id, locale string) (Snapshot, *Session, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return Snapshot{}, nil, err
	}
	if strings.TrimSpace(locale) == "" {
		sess.touch(s.now())
		return sess.Snapshot(), sess, nil
	}
	lang := document.ResolveLocale(locale)
	snap, err := sess.apply(s.now(), func(inv entity.Invoice) (entity.Invoice, error) {
		sess.locale = lang
		return inv, nil
	}, s.refresher(sess))
	return snap, sess, err
}

// refresher vuelve a renderizar la superficie. Un fallo aquí no deshace el
// cambio: se registra y la exportación lo reportará.
func (s *Service) refresher(sess *Session) func(Snapshot) error {
	return func(snap Snapshot) error {
		if err := s.exporter.Refresh(sess.surface, snap.Invoice, snap.Totals, string(snap.Locale)); err != nil {
			s.log.Warn().Err(err).Str("session", sess.id).Msg("no se pudo actualizar la vista previa")
		}
		return nil
	}
}

func toPatch(in dto.UpdateLineItemRequest) (entity.LineItemPatch, error) {
	patch := entity.LineItemPatch{
		MaterialNo:  in.MaterialNo,
		Description: in.Description,
	}
	if present(in.Quantity) {
		v, _ := rawText(in.Quantity)
		q := ParseQuantity(v)
		patch.Quantity = &q
	}
	if present(in.Price) {
		v, _ := rawText(in.Price)
		p := ParsePrice(v)
		patch.Price = &p
	}
	if in.Unit != nil {
		u := entity.Unit(*in.Unit)
		if !u.Valid() {
			return patch, invalid("unidad %q no soportada", *in.Unit)
		}
		patch.Unit = &u
	}
	return patch, nil
}
