package reception_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/application/reception"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newTestUseCase() (*reception.UseCase, *memStore) {
	store := newMemStore()
	uc := reception.NewUseCase(&fakeTx{store: store}, &fakeServiceRepo{store: store})
	return uc, store
}

func seedCustomer(store *memStore, id, nombre, telefono string) {
	store.customers[id] = &entity.Customer{
		ID: id, Nombre: nombre, Telefono: telefono, WhatsApp: telefono,
	}
}

func seedVehicle(store *memStore, id, placa, customerID string) {
	store.vehicles[id] = &entity.Vehicle{
		ID: id, Marca: "Nissan", Modelo: "Versa", Anio: 2019,
		PlacaActual: placa, CustomerID: &customerID, Activo: true,
	}
}

func seedOppConCita(store *memStore, id string, customerID, vehicleID *string) *entity.Opportunity {
	fecha := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	sugerido := "Cambio de balatas"
	precio := decimal.NewFromInt(1800)
	opp := &entity.Opportunity{
		ID:               id,
		CustomerID:       customerID,
		VehicleID:        vehicleID,
		Estado:           entity.OppAgendado,
		Prioridad:        entity.PrioridadMedia,
		ServicioSugerido: &sugerido,
		PrecioEstimado:   &precio,
		TieneCita:        true,
		CitaFecha:        &fecha,
	}
	store.opportunities[id] = opp
	return opp
}

func walkInNuevo(accion string) dto.WalkInRequest {
	km := 45000
	return dto.WalkInRequest{
		ClienteNuevo: &dto.NuevoClienteInput{
			Nombre:   "María Torres",
			Telefono: "5551234567",
		},
		VehiculoNuevo: &dto.NuevoVehiculoInput{
			Marca:       "Honda",
			Modelo:      "Civic",
			Anio:        2021,
			PlacaActual: "ABC-123-D",
			Kilometraje: &km,
		},
		Accion: accion,
		ServicioInmediato: &dto.ServicioInmediatoInput{
			TipoServicio: "Afinación mayor",
		},
		Cita: &dto.CitaWalkInInput{
			Fecha:            "2026-09-05",
			Hora:             "10:30",
			DescripcionBreve: "Revisión de frenos",
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Walk-in
// ──────────────────────────────────────────────────────────────────────────────

func TestWalkIn_ServicioInmediato_CreaClienteVehiculoYServicio(t *testing.T) {
	uc, store := newTestUseCase()

	out, err := uc.ProcessWalkIn(context.Background(), walkInNuevo(dto.AccionServicioInmediato))
	require.NoError(t, err)
	require.NotNil(t, out.Service)
	assert.Nil(t, out.Opportunity, "servicio inmediato no debe crear oportunidad")

	assert.Len(t, store.customers, 1)
	assert.Len(t, store.vehicles, 1)
	assert.Len(t, store.services, 1)

	service := store.services[out.Service.ID]
	require.NotNil(t, service)
	assert.Equal(t, entity.ServicioCotizado, service.Estado)
	assert.Equal(t, "Afinación mayor", service.TipoServicio)
	assert.Equal(t, "Afinación mayor", service.Descripcion,
		"la descripción omitida hereda el tipo de servicio")
	assert.True(t, service.Precio.IsZero(), "precio omitido debe quedar en cero")
	assert.Equal(t, out.CustomerID, service.CustomerID)
	assert.Equal(t, out.VehicleID, service.VehicleID)

	customer := store.customers[out.CustomerID]
	require.NotNil(t, customer)
	assert.Equal(t, customer.Telefono, customer.WhatsApp,
		"WhatsApp omitido debe igualar al teléfono")

	vehicle := store.vehicles[out.VehicleID]
	require.NotNil(t, vehicle)
	require.NotNil(t, vehicle.CustomerID)
	assert.Equal(t, out.CustomerID, *vehicle.CustomerID,
		"el vehículo nuevo queda ligado al cliente resuelto")
	assert.True(t, vehicle.Activo)
}

func TestWalkIn_SinPayloadDeCliente_NoInsertaNada(t *testing.T) {
	uc, store := newTestUseCase()

	in := walkInNuevo(dto.AccionServicioInmediato)
	in.ClienteNuevo = nil // ni id existente ni alta inline

	_, err := uc.ProcessWalkIn(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.customers, "una petición malformada no debe insertar filas")
	assert.Empty(t, store.vehicles)
	assert.Empty(t, store.services)
}

func TestWalkIn_PlacaDuplicada_RevierteAltaDeCliente(t *testing.T) {
	uc, store := newTestUseCase()
	seedCustomer(store, "c-1", "Pedro Gómez", "5559990000")
	seedVehicle(store, "v-1", "ABC-123-D", "c-1")

	// Mismo número de placa que el vehículo activo existente
	_, err := uc.ProcessWalkIn(context.Background(), walkInNuevo(dto.AccionServicioInmediato))
	assert.ErrorIs(t, err, domain.ErrDuplicatePlate)

	assert.Len(t, store.customers, 1,
		"el alta del cliente nuevo debe revertirse junto con el fallo del vehículo")
	assert.Len(t, store.vehicles, 1)
	assert.Empty(t, store.services)
}

func TestWalkIn_AgendarCita_CreaOportunidadAgendada(t *testing.T) {
	uc, store := newTestUseCase()

	out, err := uc.ProcessWalkIn(context.Background(), walkInNuevo(dto.AccionAgendarCita))
	require.NoError(t, err)
	require.NotNil(t, out.Opportunity)
	assert.Nil(t, out.Service, "agendar cita no debe abrir servicio")
	assert.Empty(t, store.services)

	opp := store.opportunities[out.Opportunity.ID]
	require.NotNil(t, opp)
	assert.True(t, opp.TieneCita)
	assert.Equal(t, entity.OppAgendado, opp.Estado)
	require.NotNil(t, opp.OrigenCita)
	assert.Equal(t, entity.CitaOrigenWalkIn, *opp.OrigenCita)
	require.NotNil(t, opp.CitaFecha)
	assert.Equal(t, "2026-09-05", opp.CitaFecha.Format("2006-01-02"))

	// Contacto copiado del cliente recién creado
	require.NotNil(t, opp.CitaNombreContacto)
	assert.Equal(t, "María Torres", *opp.CitaNombreContacto)
	require.NotNil(t, opp.CitaTelefonoContacto)
	assert.Equal(t, "5551234567", *opp.CitaTelefonoContacto)

	// La descripción breve queda como servicio sugerido para la recepción
	require.NotNil(t, opp.ServicioSugerido)
	assert.Equal(t, "Revisión de frenos", *opp.ServicioSugerido)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión a cita
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertToCita_AgendaSobreOportunidadContactada(t *testing.T) {
	uc, store := newTestUseCase()
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	customerID := "c-1"
	sugerido := "Cambio de aceite"
	store.opportunities["o-1"] = &entity.Opportunity{
		ID: "o-1", CustomerID: &customerID,
		Estado: entity.OppContactado, Prioridad: entity.PrioridadAlta,
		ServicioSugerido: &sugerido,
	}

	out, err := uc.ConvertToCita(context.Background(), dto.ConvertToCitaRequest{
		OpportunityID: "o-1",
		CitaFecha:     "2026-09-10",
		CitaHora:      "09:00",
	})
	require.NoError(t, err)
	assert.True(t, out.TieneCita)
	assert.Equal(t, entity.OppAgendado, out.Estado)

	opp := store.opportunities["o-1"]
	require.NotNil(t, opp.OrigenCita)
	assert.Equal(t, entity.CitaOrigenOpportunity, *opp.OrigenCita)
	require.NotNil(t, opp.CitaDescripcionBreve)
	assert.Equal(t, "Cambio de aceite", *opp.CitaDescripcionBreve,
		"la descripción breve hereda el servicio sugerido")
	require.NotNil(t, opp.CitaNombreContacto)
	assert.Equal(t, "Laura Díaz", *opp.CitaNombreContacto)
}

func TestConvertToCita_SinClienteVinculado_Rechaza(t *testing.T) {
	uc, store := newTestUseCase()
	store.opportunities["o-1"] = &entity.Opportunity{
		ID: "o-1", Estado: entity.OppContactado, Prioridad: entity.PrioridadMedia,
	}

	_, err := uc.ConvertToCita(context.Background(), dto.ConvertToCitaRequest{
		OpportunityID: "o-1",
		CitaFecha:     "2026-09-10",
		CitaHora:      "09:00",
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.False(t, store.opportunities["o-1"].TieneCita)
}

func TestConvertToCita_OportunidadInexistente_Rechaza(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.ConvertToCita(context.Background(), dto.ConvertToCitaRequest{
		OpportunityID: "no-existe",
		CitaFecha:     "2026-09-10",
		CitaHora:      "09:00",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción de cliente citado
// ──────────────────────────────────────────────────────────────────────────────

func TestRecepcionar_HeredaDatosDeLaOportunidad(t *testing.T) {
	uc, store := newTestUseCase()
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	seedVehicle(store, "v-1", "XYZ-987-A", "c-1")
	customerID, vehicleID := "c-1", "v-1"
	seedOppConCita(store, "o-1", &customerID, &vehicleID)

	out, err := uc.Recepcionar(context.Background(), "o-1", dto.RecepcionarRequest{})
	require.NoError(t, err)
	require.NotNil(t, out.Service)
	require.NotNil(t, out.Opportunity)

	service := store.services[out.Service.ID]
	require.NotNil(t, service)
	assert.Equal(t, entity.ServicioCotizado, service.Estado)
	assert.Equal(t, "Cambio de balatas", service.TipoServicio,
		"el tipo omitido hereda el servicio sugerido")
	assert.Equal(t, "Cambio de balatas", service.Descripcion)
	assert.True(t, service.Precio.Equal(decimal.NewFromInt(1800)),
		"el precio omitido hereda el estimado de la oportunidad")
	require.NotNil(t, service.OpportunityID)
	assert.Equal(t, "o-1", *service.OpportunityID)

	opp := store.opportunities["o-1"]
	assert.Equal(t, entity.OppEnProceso, opp.Estado)
	assert.Nil(t, opp.ConvertedToServiceID,
		"recepcionar no marca la oportunidad como convertida")
}

func TestRecepcionar_OverridesDelMostrador(t *testing.T) {
	uc, store := newTestUseCase()
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	seedVehicle(store, "v-1", "XYZ-987-A", "c-1")
	customerID, vehicleID := "c-1", "v-1"
	seedOppConCita(store, "o-1", &customerID, &vehicleID)

	tipo := "Diagnóstico eléctrico"
	precio := decimal.NewFromInt(2500)
	out, err := uc.Recepcionar(context.Background(), "o-1", dto.RecepcionarRequest{
		TipoServicio:    &tipo,
		PrecioEstimado:  &precio,
		UsuarioMecanico: "m-7",
	})
	require.NoError(t, err)

	service := store.services[out.Service.ID]
	assert.Equal(t, "Diagnóstico eléctrico", service.TipoServicio)
	assert.True(t, service.Precio.Equal(precio))
	require.NotNil(t, service.MechanicID)
	assert.Equal(t, "m-7", *service.MechanicID)
}

func TestRecepcionar_SinCita_Rechaza(t *testing.T) {
	uc, store := newTestUseCase()
	customerID := "c-1"
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	store.opportunities["o-1"] = &entity.Opportunity{
		ID: "o-1", CustomerID: &customerID,
		Estado: entity.OppPendiente, Prioridad: entity.PrioridadMedia,
	}

	_, err := uc.Recepcionar(context.Background(), "o-1", dto.RecepcionarRequest{})
	assert.ErrorIs(t, err, domain.ErrSinCita)
	assert.Empty(t, store.services)
}

func TestRecepcionar_CitaSinVehiculo_Rechaza(t *testing.T) {
	uc, store := newTestUseCase()
	customerID := "c-1"
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	seedOppConCita(store, "o-1", &customerID, nil)

	_, err := uc.Recepcionar(context.Background(), "o-1", dto.RecepcionarRequest{})
	assert.ErrorIs(t, err, domain.ErrCitaIncompleta)
	assert.Empty(t, store.services, "una cita incompleta no debe abrir orden")
	assert.Equal(t, entity.OppAgendado, store.opportunities["o-1"].Estado)
}

func TestRecepcionar_OportunidadInexistente_Rechaza(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Recepcionar(context.Background(), "no-existe", dto.RecepcionarRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Ida y vuelta: la cita agendada por walk-in se recepciona sin overrides y la
// orden hereda la descripción breve capturada en mostrador.
func TestWalkIn_AgendarLuegoRecepcionar_RoundTrip(t *testing.T) {
	uc, store := newTestUseCase()

	out, err := uc.ProcessWalkIn(context.Background(), walkInNuevo(dto.AccionAgendarCita))
	require.NoError(t, err)
	require.NotNil(t, out.Opportunity)

	recep, err := uc.Recepcionar(context.Background(), out.Opportunity.ID, dto.RecepcionarRequest{})
	require.NoError(t, err)

	service := store.services[recep.Service.ID]
	require.NotNil(t, service)
	assert.Equal(t, "Revisión de frenos", service.TipoServicio)
	assert.Equal(t, "Revisión de frenos", service.Descripcion)
	assert.Equal(t, out.CustomerID, service.CustomerID)
	assert.Equal(t, out.VehicleID, service.VehicleID)
	assert.Equal(t, entity.OppEnProceso, store.opportunities[out.Opportunity.ID].Estado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión administrativa a servicio
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertToService_CreaServicioYMarcaConvertida(t *testing.T) {
	uc, store := newTestUseCase()
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	seedVehicle(store, "v-1", "XYZ-987-A", "c-1")
	seedOppConCita(store, "o-1", nil, nil)

	customerID, vehicleID := "c-1", "v-1"
	out, err := uc.ConvertToService(context.Background(), "o-1", dto.ConvertToServiceRequest{
		TipoServicio: "Cambio de balatas",
		CustomerID:   &customerID,
		VehicleID:    &vehicleID,
	})
	require.NoError(t, err)

	service := store.services[out.ID]
	require.NotNil(t, service)
	assert.Equal(t, entity.ServicioAutorizado, service.Estado)
	assert.True(t, service.Precio.Equal(decimal.NewFromInt(1800)),
		"el precio omitido hereda el estimado de la oportunidad")

	opp := store.opportunities["o-1"]
	require.NotNil(t, opp.ConvertedToServiceID)
	assert.Equal(t, out.ID, *opp.ConvertedToServiceID)
	assert.False(t, opp.TieneCita, "la conversión consume la cita")
	assert.Equal(t, entity.OppEnProceso, opp.Estado)
	require.NotNil(t, opp.CustomerID)
	assert.Equal(t, "c-1", *opp.CustomerID)
}

func TestConvertToService_AltaInlineDeClienteYVehiculo(t *testing.T) {
	uc, store := newTestUseCase()
	seedOppConCita(store, "o-1", nil, nil)

	out, err := uc.ConvertToService(context.Background(), "o-1", dto.ConvertToServiceRequest{
		TipoServicio: "Afinación",
		NewCustomer: &dto.NuevoClienteInput{
			Nombre:   "Jorge Ruiz",
			Telefono: "5553331111",
		},
		NewVehicle: &dto.NuevoVehiculoInput{
			Marca:       "Mazda",
			Modelo:      "3",
			Anio:        2020,
			PlacaActual: "QWE-456-R",
		},
	})
	require.NoError(t, err)

	assert.Len(t, store.customers, 1)
	assert.Len(t, store.vehicles, 1)
	service := store.services[out.ID]
	require.NotNil(t, service)

	opp := store.opportunities["o-1"]
	require.NotNil(t, opp.CustomerID)
	assert.Equal(t, service.CustomerID, *opp.CustomerID,
		"la oportunidad queda vinculada al cliente dado de alta inline")
}

func TestConvertToService_SegundaConversion_Conflicto(t *testing.T) {
	uc, store := newTestUseCase()
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	seedVehicle(store, "v-1", "XYZ-987-A", "c-1")
	seedOppConCita(store, "o-1", nil, nil)

	customerID, vehicleID := "c-1", "v-1"
	in := dto.ConvertToServiceRequest{
		TipoServicio: "Cambio de balatas",
		CustomerID:   &customerID,
		VehicleID:    &vehicleID,
	}
	_, err := uc.ConvertToService(context.Background(), "o-1", in)
	require.NoError(t, err)

	_, err = uc.ConvertToService(context.Background(), "o-1", in)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.Len(t, store.services, 1, "la doble conversión no debe crear segundo servicio")
}

// La carrera real: dos peticiones leen la oportunidad sin convertir y ambas
// insertan su servicio; solo una gana el UPDATE condicional y la perdedora
// debe revertir su insert completo.
func TestConvertToService_CarreraPerdida_RevierteServicio(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	seedVehicle(store, "v-1", "XYZ-987-A", "c-1")
	opp := seedOppConCita(store, "o-1", nil, nil)
	ya := "s-previa"
	opp.ConvertedToServiceID = &ya

	// GetByID reporta la oportunidad como no convertida: la petición pasa la
	// guarda rápida pero pierde el UPDATE condicional.
	tx := &fakeTx{store: store, oppRepo: &fakeOppRepo{store: store, hideConverted: true}}
	uc := reception.NewUseCase(tx, &fakeServiceRepo{store: store})

	customerID, vehicleID := "c-1", "v-1"
	_, err := uc.ConvertToService(context.Background(), "o-1", dto.ConvertToServiceRequest{
		TipoServicio: "Cambio de balatas",
		CustomerID:   &customerID,
		VehicleID:    &vehicleID,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.Empty(t, store.services, "el servicio de la petición perdedora debe revertirse")
	assert.Equal(t, "s-previa", *store.opportunities["o-1"].ConvertedToServiceID)
}

func TestConvertToService_SinCita_Rechaza(t *testing.T) {
	uc, store := newTestUseCase()
	customerID := "c-1"
	seedCustomer(store, "c-1", "Laura Díaz", "5557770000")
	store.opportunities["o-1"] = &entity.Opportunity{
		ID: "o-1", CustomerID: &customerID,
		Estado: entity.OppContactado, Prioridad: entity.PrioridadMedia,
	}

	vehicleID := "v-1"
	_, err := uc.ConvertToService(context.Background(), "o-1", dto.ConvertToServiceRequest{
		TipoServicio: "Afinación",
		CustomerID:   &customerID,
		VehicleID:    &vehicleID,
	})
	assert.ErrorIs(t, err, domain.ErrSinCita)
	assert.Empty(t, store.services)
}

func TestConvertToService_PeticionInvalida_Rechaza(t *testing.T) {
	uc, store := newTestUseCase()
	seedOppConCita(store, "o-1", nil, nil)

	// Sin tipo de servicio ni cliente
	_, err := uc.ConvertToService(context.Background(), "o-1", dto.ConvertToServiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.services)
	assert.Empty(t, store.customers)
}
