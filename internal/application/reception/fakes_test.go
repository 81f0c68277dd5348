package reception_test

import (
	"context"
	"strings"

	"github.com/henry-diagnostics/taller-api/internal/application/reception"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con semántica transaccional
//
// fakeTx toma un snapshot del store antes de ejecutar el callback y lo
// restaura si este devuelve error, igual que el rollback de Postgres. Así las
// pruebas verifican la atomicidad real de los flujos, no solo el error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	customers     map[string]*entity.Customer
	vehicles      map[string]*entity.Vehicle
	opportunities map[string]*entity.Opportunity
	services      map[string]*entity.Service
}

func newMemStore() *memStore {
	return &memStore{
		customers:     make(map[string]*entity.Customer),
		vehicles:      make(map[string]*entity.Vehicle),
		opportunities: make(map[string]*entity.Opportunity),
		services:      make(map[string]*entity.Service),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.customers {
		cp := *v
		c.customers[k] = &cp
	}
	for k, v := range s.vehicles {
		cp := *v
		c.vehicles[k] = &cp
	}
	for k, v := range s.opportunities {
		cp := *v
		c.opportunities[k] = &cp
	}
	for k, v := range s.services {
		cp := *v
		c.services[k] = &cp
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.customers = snap.customers
	s.vehicles = snap.vehicles
	s.opportunities = snap.opportunities
	s.services = snap.services
}

// fakeTx implementa reception.TxRunner sobre el store en memoria.
type fakeTx struct {
	store *memStore
	// oppRepo permite inyectar un repo de oportunidades instrumentado
	// (p.ej. para simular una carrera de conversión).
	oppRepo repository.OpportunityRepository
}

var _ reception.TxRunner = (*fakeTx)(nil)

func (t *fakeTx) Run(_ context.Context, fn func(
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	oppRepo repository.OpportunityRepository,
	serviceRepo repository.ServiceRepository,
) error) error {
	snap := t.store.snapshot()
	oppRepo := t.oppRepo
	if oppRepo == nil {
		oppRepo = &fakeOppRepo{store: t.store}
	}
	err := fn(
		&fakeCustomerRepo{store: t.store},
		&fakeVehicleRepo{store: t.store},
		oppRepo,
		&fakeServiceRepo{store: t.store},
	)
	if err != nil {
		t.store.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ store *memStore }

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	for _, existing := range r.store.customers {
		if existing.Telefono == c.Telefono {
			return domain.ErrDuplicatePhone
		}
	}
	cp := *c
	r.store.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, telefono string) (*entity.Customer, error) {
	for _, c := range r.store.customers {
		if c.Telefono == telefono {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Search(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.store.customers {
		if f.Nombre != "" && !strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(f.Nombre)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, id string, patch repository.CustomerPatch) error {
	c, ok := r.store.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Nombre != nil {
		c.Nombre = *patch.Nombre
	}
	if patch.Telefono != nil {
		c.Telefono = *patch.Telefono
	}
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	delete(r.store.customers, id)
	return nil
}

type fakeVehicleRepo struct{ store *memStore }

func (r *fakeVehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	for _, existing := range r.store.vehicles {
		if existing.Activo && existing.PlacaActual == v.PlacaActual {
			return domain.ErrDuplicatePlate
		}
	}
	cp := *v
	r.store.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	v, ok := r.store.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByVIN(_ context.Context, vin string) (*entity.Vehicle, error) {
	for _, v := range r.store.vehicles {
		if v.VIN != nil && *v.VIN == vin {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVehicleRepo) Search(_ context.Context, _ repository.VehicleFilter) ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	for _, v := range r.store.vehicles {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, id string, patch repository.VehiclePatch) error {
	v, ok := r.store.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Kilometraje != nil {
		v.Kilometraje = *patch.Kilometraje
	}
	return nil
}

func (r *fakeVehicleRepo) Deactivate(_ context.Context, id string) error {
	v, ok := r.store.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Activo = false
	return nil
}

func (r *fakeVehicleRepo) PlateInUse(_ context.Context, placa, excludeVehicleID string) (bool, error) {
	for id, v := range r.store.vehicles {
		if v.Activo && v.PlacaActual == placa && id != excludeVehicleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVehicleRepo) ChangePlate(_ context.Context, vehicleID, placaNueva string, _ *string) error {
	v, ok := r.store.vehicles[vehicleID]
	if !ok {
		return domain.ErrNotFound
	}
	v.PlacaActual = placaNueva
	return nil
}

func (r *fakeVehicleRepo) ListPlateHistory(_ context.Context, _ string) ([]*entity.PlateHistory, error) {
	return nil, nil
}

func (r *fakeVehicleRepo) CountActiveByCustomer(_ context.Context, customerID string) (int, error) {
	n := 0
	for _, v := range r.store.vehicles {
		if v.Activo && v.CustomerID != nil && *v.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

type fakeOppRepo struct {
	store *memStore
	// hideConverted hace que GetByID reporte la oportunidad como no
	// convertida aunque el store diga lo contrario. Simula la ventana de
	// carrera entre el SELECT y el UPDATE condicional.
	hideConverted bool
}

func (r *fakeOppRepo) Create(_ context.Context, o *entity.Opportunity) error {
	cp := *o
	r.store.opportunities[o.ID] = &cp
	return nil
}

func (r *fakeOppRepo) GetByID(_ context.Context, id string) (*entity.Opportunity, error) {
	o, ok := r.store.opportunities[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	if r.hideConverted {
		cp.ConvertedToServiceID = nil
	}
	return &cp, nil
}

func (r *fakeOppRepo) GetDetail(ctx context.Context, id string) (*entity.OpportunityDetail, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	detail := &entity.OpportunityDetail{Opportunity: *o}
	if o.CustomerID != nil {
		detail.Customer, _ = (&fakeCustomerRepo{store: r.store}).GetByID(ctx, *o.CustomerID)
	}
	if o.VehicleID != nil {
		detail.Vehicle, _ = (&fakeVehicleRepo{store: r.store}).GetByID(ctx, *o.VehicleID)
	}
	return detail, nil
}

func (r *fakeOppRepo) List(_ context.Context, _ repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	var out []*entity.Opportunity
	for _, o := range r.store.opportunities {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOppRepo) Update(_ context.Context, id string, patch repository.OpportunityPatch) error {
	o, ok := r.store.opportunities[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Estado != nil {
		o.Estado = *patch.Estado
	}
	return nil
}

func (r *fakeOppRepo) UpdateEstado(_ context.Context, id, estado string) error {
	o, ok := r.store.opportunities[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Estado = estado
	return nil
}

func (r *fakeOppRepo) SetCita(_ context.Context, id string, cita repository.CitaUpdate) error {
	o, ok := r.store.opportunities[id]
	if !ok {
		return domain.ErrNotFound
	}
	fecha := cita.Fecha
	o.TieneCita = true
	o.OrigenCita = &cita.Origen
	o.CitaFecha = &fecha
	o.CitaHora = &cita.Hora
	o.CitaDescripcionBreve = &cita.DescripcionBreve
	o.CitaNombreContacto = &cita.NombreContacto
	o.CitaTelefonoContacto = &cita.TelefonoContacto
	o.Estado = entity.OppAgendado
	return nil
}

func (r *fakeOppRepo) MarkConverted(_ context.Context, id, serviceID, customerID, vehicleID string) (bool, error) {
	o, ok := r.store.opportunities[id]
	if !ok {
		return false, nil
	}
	if o.ConvertedToServiceID != nil {
		return false, nil
	}
	o.ConvertedToServiceID = &serviceID
	o.CustomerID = &customerID
	o.VehicleID = &vehicleID
	o.TieneCita = false
	o.Estado = entity.OppEnProceso
	return true, nil
}

type fakeServiceRepo struct{ store *memStore }

func (r *fakeServiceRepo) Create(_ context.Context, s *entity.Service) error {
	cp := *s
	r.store.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*entity.Service, error) {
	s, ok := r.store.services[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) GetDetail(ctx context.Context, id string) (*entity.ServiceDetail, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	detail := &entity.ServiceDetail{Service: *s}
	detail.Customer, _ = (&fakeCustomerRepo{store: r.store}).GetByID(ctx, s.CustomerID)
	detail.Vehicle, _ = (&fakeVehicleRepo{store: r.store}).GetByID(ctx, s.VehicleID)
	return detail, nil
}

func (r *fakeServiceRepo) List(_ context.Context, _ repository.ServiceFilter) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range r.store.services {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeServiceRepo) UpdateEstado(_ context.Context, id, estado string) error {
	s, ok := r.store.services[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Estado = estado
	return nil
}
