package registro

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// Borrador estado en memoria de un registro de muestra en curso. No se
// persiste: si el envío final no ocurre, el borrador se descarta sin efectos.
type Borrador struct {
	ID                 string
	CreadoPor          string // documento del administrador dueño del borrador
	CreadoEn           time.Time
	Campos             *dto.CamposMuestra
	Cliente            *entity.Usuario
	FirmaAdministrador string
	FirmaCliente       string
}

// ListoParaEnviar indica si el borrador cumple todas las precondiciones del
// envío: campos capturados, cliente resuelto y ambas firmas presentes.
func (b *Borrador) ListoParaEnviar() bool {
	return b.Campos != nil && b.Cliente != nil &&
		b.FirmaAdministrador != "" && b.FirmaCliente != ""
}

// ttlBorrador vida máxima de un borrador. La captura es presencial y dura
// minutos; un borrador más viejo quedó abandonado y se descarta.
const ttlBorrador = time.Hour

// borradorStore almacén en memoria de borradores. El mutex cubre el mapa y los
// borradores mismos: toda lectura sale como copia y toda escritura pasa por
// modificar, con el lock tomado.
type borradorStore struct {
	mu         sync.Mutex
	ttl        time.Duration
	borradores map[string]*Borrador
}

func newBorradorStore(ttl time.Duration) *borradorStore {
	return &borradorStore{ttl: ttl, borradores: make(map[string]*Borrador)}
}

func (s *borradorStore) crear(creadoPor string) *Borrador {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgarVencidos()
	b := &Borrador{
		ID:        uuid.New().String(),
		CreadoPor: creadoPor,
		CreadoEn:  time.Now(),
	}
	s.borradores[b.ID] = b
	copia := *b
	return &copia
}

// purgarVencidos elimina los borradores que superaron el TTL. El llamador debe
// tener tomado s.mu.
func (s *borradorStore) purgarVencidos() {
	limite := time.Now().Add(-s.ttl)
	for id, b := range s.borradores {
		if b.CreadoEn.Before(limite) {
			delete(s.borradores, id)
		}
	}
}

// buscar localiza un borrador vigente; uno vencido cuenta como inexistente.
// El llamador debe tener tomado s.mu.
func (s *borradorStore) buscar(id string) (*Borrador, error) {
	b, ok := s.borradores[id]
	if ok && time.Since(b.CreadoEn) > s.ttl {
		delete(s.borradores, id)
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("%w: borrador %s", domain.ErrNotFound, id)
	}
	return b, nil
}

// obtener devuelve una copia del borrador, segura de leer sin el lock.
func (s *borradorStore) obtener(id string) (*Borrador, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.buscar(id)
	if err != nil {
		return nil, err
	}
	copia := *b
	return &copia, nil
}

// modificar ejecuta fn sobre el borrador con el lock tomado. Las escrituras a
// campos de un borrador ocurren únicamente aquí.
func (s *borradorStore) modificar(id string, fn func(*Borrador) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.buscar(id)
	if err != nil {
		return err
	}
	return fn(b)
}

func (s *borradorStore) eliminar(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.borradores, id)
}
