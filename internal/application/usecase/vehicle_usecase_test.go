package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// vehStore estado compartido de vehículos e historial de placas.
type vehStore struct {
	vehicles map[string]*entity.Vehicle
	history  []*entity.PlateHistory
}

type vehSnapshot struct {
	vehicles map[string]*entity.Vehicle
	history  []*entity.PlateHistory
}

func (s *vehStore) snapshot() vehSnapshot {
	vehicles := make(map[string]*entity.Vehicle, len(s.vehicles))
	for k, v := range s.vehicles {
		vehicles[k] = v
	}
	history := make([]*entity.PlateHistory, len(s.history))
	copy(history, s.history)
	return vehSnapshot{vehicles: vehicles, history: history}
}

func (s *vehStore) restore(snap vehSnapshot) {
	s.vehicles = snap.vehicles
	s.history = snap.history
}

// stubVehicleRepo repositorio en memoria sobre vehStore. Con failHistory el
// cambio de placa aplica el UPDATE pero falla el alta del historial, como
// haría una conexión perdida entre statements.
type stubVehicleRepo struct {
	st          *vehStore
	failHistory bool
}

func (r *stubVehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	cp := *v
	r.st.vehicles[v.ID] = &cp
	return nil
}

func (r *stubVehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	v, ok := r.st.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *stubVehicleRepo) GetByVIN(_ context.Context, vin string) (*entity.Vehicle, error) {
	for _, v := range r.st.vehicles {
		if v.VIN != nil && *v.VIN == vin {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubVehicleRepo) Search(_ context.Context, _ repository.VehicleFilter) ([]*entity.Vehicle, error) {
	out := make([]*entity.Vehicle, 0, len(r.st.vehicles))
	for _, v := range r.st.vehicles {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubVehicleRepo) Update(_ context.Context, id string, _ repository.VehiclePatch) error {
	if _, ok := r.st.vehicles[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *stubVehicleRepo) Deactivate(_ context.Context, id string) error {
	v, ok := r.st.vehicles[id]
	if !ok {
		return domain.ErrVehicleNotFound
	}
	cp := *v
	cp.Activo = false
	r.st.vehicles[id] = &cp
	return nil
}

func (r *stubVehicleRepo) PlateInUse(_ context.Context, placa, excludeVehicleID string) (bool, error) {
	for _, v := range r.st.vehicles {
		if v.Activo && v.PlacaActual == placa && v.ID != excludeVehicleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVehicleRepo) ChangePlate(_ context.Context, vehicleID, placaNueva string, motivo *string) error {
	v, ok := r.st.vehicles[vehicleID]
	if !ok {
		return domain.ErrVehicleNotFound
	}
	anterior := v.PlacaActual
	cp := *v
	cp.PlacaActual = placaNueva
	r.st.vehicles[vehicleID] = &cp
	if r.failHistory {
		return errors.New("insert plate history: conexión perdida")
	}
	r.st.history = append(r.st.history, &entity.PlateHistory{
		ID:            "hist-" + placaNueva,
		VehicleID:     vehicleID,
		PlacaAnterior: anterior,
		PlacaNueva:    placaNueva,
		Motivo:        motivo,
	})
	return nil
}

func (r *stubVehicleRepo) ListPlateHistory(_ context.Context, vehicleID string) ([]*entity.PlateHistory, error) {
	var out []*entity.PlateHistory
	for _, h := range r.st.history {
		if h.VehicleID == vehicleID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) CountActiveByCustomer(_ context.Context, customerID string) (int, error) {
	count := 0
	for _, v := range r.st.vehicles {
		if v.Activo && v.CustomerID != nil && *v.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

// stubVehicleTx toma un snapshot antes del callback y lo restaura si este
// falla, con la misma semántica de rollback que la transacción real.
type stubVehicleTx struct {
	st   *vehStore
	repo *stubVehicleRepo
}

func (f *stubVehicleTx) Run(_ context.Context, fn func(
	repository.CustomerRepository,
	repository.VehicleRepository,
	repository.OpportunityRepository,
	repository.ServiceRepository,
) error) error {
	snap := f.st.snapshot()
	if err := fn(nil, f.repo, nil, nil); err != nil {
		f.st.restore(snap)
		return err
	}
	return nil
}

func newVehicleTestUseCase(failHistory bool) (*VehicleUseCase, *vehStore) {
	st := &vehStore{vehicles: map[string]*entity.Vehicle{}}
	repo := &stubVehicleRepo{st: st, failHistory: failHistory}
	return NewVehicleUseCase(repo, &stubVehicleTx{st: st, repo: repo}), st
}

func seedVehiculo(st *vehStore, id, placa string) {
	st.vehicles[id] = &entity.Vehicle{
		ID:          id,
		Marca:       "Nissan",
		Modelo:      "Versa",
		Anio:        2019,
		PlacaActual: placa,
		Activo:      true,
	}
}

func TestVehicleChangePlate_ActualizaYRegistraHistorial(t *testing.T) {
	uc, st := newVehicleTestUseCase(false)
	seedVehiculo(st, "v-1", "ABC-123")

	motivo := "placas robadas"
	out, err := uc.ChangePlate(context.Background(), "v-1", dto.ChangePlateRequest{
		PlacaNueva: "XYZ-789",
		Motivo:     &motivo,
	})
	require.NoError(t, err)
	assert.Equal(t, "XYZ-789", out.PlacaActual)

	require.Len(t, st.history, 1)
	assert.Equal(t, "ABC-123", st.history[0].PlacaAnterior)
	assert.Equal(t, "XYZ-789", st.history[0].PlacaNueva)
}

func TestVehicleChangePlate_FalloEnHistorial_RevierteLaPlaca(t *testing.T) {
	uc, st := newVehicleTestUseCase(true)
	seedVehiculo(st, "v-1", "ABC-123")

	_, err := uc.ChangePlate(context.Background(), "v-1", dto.ChangePlateRequest{PlacaNueva: "NUEVA-9"})
	require.Error(t, err)

	// Sin entrada de historial no debe quedar tampoco la placa nueva.
	assert.Equal(t, "ABC-123", st.vehicles["v-1"].PlacaActual)
	assert.Empty(t, st.history)
}

func TestVehicleChangePlate_PlacaEnUso_Conflicto(t *testing.T) {
	uc, st := newVehicleTestUseCase(false)
	seedVehiculo(st, "v-1", "ABC-123")
	seedVehiculo(st, "v-2", "XYZ-789")

	_, err := uc.ChangePlate(context.Background(), "v-1", dto.ChangePlateRequest{PlacaNueva: "XYZ-789"})
	require.ErrorIs(t, err, domain.ErrDuplicatePlate)
	assert.Equal(t, "ABC-123", st.vehicles["v-1"].PlacaActual)
	assert.Empty(t, st.history)
}

func TestVehicleChangePlate_PlacaVacia_Rechaza(t *testing.T) {
	uc, st := newVehicleTestUseCase(false)
	seedVehiculo(st, "v-1", "ABC-123")

	_, err := uc.ChangePlate(context.Background(), "v-1", dto.ChangePlateRequest{PlacaNueva: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "ABC-123", st.vehicles["v-1"].PlacaActual)
}
