package export

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/facturador/internal/domain/document"
)

// ErrSurfaceClosed la superficie ya no acepta exportaciones.
var ErrSurfaceClosed = errors.New("export: superficie cerrada")

const defaultQueueSize = 8

// Surface es la presentación visual de la factura de una sesión (la vista
// previa). Las exportaciones de páginas fijas sobre una misma superficie se
// ejecutan de a una, en orden de llegada, por un único worker.
type Surface struct {
	id string

	mu     sync.RWMutex
	doc    document.Document
	markup []byte

	qmu     sync.Mutex
	closed  bool
	senders sync.WaitGroup // submits aceptados que aún no entregaron su trabajo
	queue   chan job
	stop    chan struct{}
	done    chan struct{}
}

type job struct {
	ctx     context.Context
	run     func(ctx context.Context, view View) (Result, error)
	pending *Pending
}

// NewSurface crea la superficie y arranca su worker.
func NewSurface(id string) *Surface {
	s := &Surface{
		id:    id,
		queue: make(chan job, defaultQueueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.worker()
	return s
}

// ID identificador de la superficie.
func (s *Surface) ID() string { return s.id }

// Update reemplaza la presentación. Un trabajo en curso conserva la vista que
// tomó al empezar.
func (s *Surface) Update(doc document.Document, markup []byte) {
	s.mu.Lock()
	s.doc = doc
	s.markup = markup
	s.mu.Unlock()
}

// View copia de la presentación actual.
func (s *Surface) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{Document: s.doc, Markup: append([]byte(nil), s.markup...)}
}

// Close deja de aceptar trabajos; los ya encolados se completan. No espera a
// que se libere lugar en la cola.
func (s *Surface) Close() {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.stop)
}

// Closed se cierra cuando el worker terminó todos los trabajos pendientes.
func (s *Surface) Closed() <-chan struct{} { return s.done }

// submit encola el trabajo. El envío bloquea si la cola está llena pero nunca
// con qmu tomado; si la superficie se cierra mientras espera devuelve
// ErrSurfaceClosed.
func (s *Surface) submit(ctx context.Context, run func(ctx context.Context, view View) (Result, error)) (*Pending, error) {
	s.qmu.Lock()
	if s.closed {
		s.qmu.Unlock()
		return nil, ErrSurfaceClosed
	}
	s.senders.Add(1)
	s.qmu.Unlock()
	defer s.senders.Done()

	p := newPending()
	select {
	case s.queue <- job{ctx: ctx, run: run, pending: p}:
		return p, nil
	case <-s.stop:
		return nil, ErrSurfaceClosed
	}
}

func (s *Surface) worker() {
	defer close(s.done)
	for {
		select {
		case j := <-s.queue:
			s.run(j)
		case <-s.stop:
			// los envíos en curso terminan antes de cerrar la cola
			go func() {
				s.senders.Wait()
				close(s.queue)
			}()
			for j := range s.queue {
				s.run(j)
			}
			return
		}
	}
}

func (s *Surface) run(j job) {
	res, err := j.run(j.ctx, s.View())
	j.pending.resolve(res, err)
}

// Pending resultado futuro de una exportación asíncrona.
type Pending struct {
	done chan struct{}
	res  Result
	err  error
}

func newPending() *Pending { return &Pending{done: make(chan struct{})} }

// failedPending resultado ya resuelto con err.
func failedPending(err error) *Pending {
	p := newPending()
	p.resolve(Result{}, err)
	return p
}

func (p *Pending) resolve(res Result, err error) {
	p.res, p.err = res, err
	close(p.done)
}

// Done se cierra cuando la exportación terminó.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait espera el resultado. Si ctx vence antes, devuelve ctx.Err(); la
// exportación en curso no se interrumpe.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	select {
	case <-p.done:
		return p.res, p.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
