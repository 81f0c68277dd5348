package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	"github.com/henry-diagnostics/taller-api/internal/domain/repository"
)

// OpportunityUseCase casos de uso de oportunidades y sus notas de seguimiento.
type OpportunityUseCase struct {
	repo     repository.OpportunityRepository
	noteRepo repository.OpportunityNoteRepository
}

// NewOpportunityUseCase construye el caso de uso.
func NewOpportunityUseCase(repo repository.OpportunityRepository, noteRepo repository.OpportunityNoteRepository) *OpportunityUseCase {
	return &OpportunityUseCase{repo: repo, noteRepo: noteRepo}
}

// Create registra una oportunidad de seguimiento (sin cita).
func (uc *OpportunityUseCase) Create(ctx context.Context, in dto.CreateOpportunityRequest, usuarioID string) (*dto.OpportunityResponse, error) {
	prioridad := in.Prioridad
	switch prioridad {
	case "":
		prioridad = entity.PrioridadMedia
	case entity.PrioridadAlta, entity.PrioridadMedia, entity.PrioridadBaja:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	opp := &entity.Opportunity{
		ID:               uuid.New().String(),
		VehicleID:        in.VehicleID,
		CustomerID:       in.CustomerID,
		BranchID:         in.BranchID,
		Estado:           entity.OppPendiente,
		Prioridad:        prioridad,
		ServicioSugerido: in.ServicioSugerido,
		Descripcion:      in.Descripcion,
		PrecioEstimado:   in.PrecioEstimado,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if usuarioID != "" {
		opp.UsuarioCreador = &usuarioID
	}
	if err := uc.repo.Create(ctx, opp); err != nil {
		return nil, err
	}
	return dto.OpportunityFromEntity(opp), nil
}

// CreateAppointment cita rápida: oportunidad agendada solo con datos de
// contacto, sin cliente ni vehículo vinculados todavía.
func (uc *OpportunityUseCase) CreateAppointment(ctx context.Context, in dto.CreateAppointmentRequest, usuarioID string) (*dto.OpportunityResponse, error) {
	if len(in.Validate()) > 0 {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := time.Parse("2006-01-02", in.CitaFecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	origen := entity.CitaOrigenManual
	now := time.Now()
	opp := &entity.Opportunity{
		ID:                   uuid.New().String(),
		Estado:               entity.OppAgendado,
		Prioridad:            entity.PrioridadMedia,
		ServicioSugerido:     &in.CitaDescripcionBreve,
		TieneCita:            true,
		OrigenCita:           &origen,
		CitaFecha:            &fecha,
		CitaHora:             &in.CitaHora,
		CitaDescripcionBreve: &in.CitaDescripcionBreve,
		CitaNombreContacto:   &in.CitaNombreContacto,
		CitaTelefonoContacto: &in.CitaTelefonoContacto,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if usuarioID != "" {
		opp.UsuarioCreador = &usuarioID
	}
	if err := uc.repo.Create(ctx, opp); err != nil {
		return nil, err
	}
	return dto.OpportunityFromEntity(opp), nil
}

// GetByID devuelve la oportunidad con cliente/vehículo o ErrNotFound.
func (uc *OpportunityUseCase) GetByID(ctx context.Context, id string) (*dto.OpportunityResponse, error) {
	detail, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return dto.OpportunityDetailFromEntity(detail), nil
}

// List lista oportunidades con filtros.
func (uc *OpportunityUseCase) List(ctx context.Context, f repository.OpportunityFilter) ([]*dto.OpportunityResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OpportunityResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.OpportunityFromEntity(o))
	}
	return out, nil
}

// Agenda citas agendadas de un día.
func (uc *OpportunityUseCase) Agenda(ctx context.Context, fecha time.Time) ([]*dto.OpportunityResponse, error) {
	conCita := true
	return uc.List(ctx, repository.OpportunityFilter{
		ConCita:   &conCita,
		CitaFecha: &fecha,
		Limit:     200,
	})
}

// Update actualización parcial. El estado, si viene, debe ser válido.
func (uc *OpportunityUseCase) Update(ctx context.Context, id string, in dto.OpportunityPatchRequest) (*dto.OpportunityResponse, error) {
	if in.Estado != nil && !validOppEstado(*in.Estado) {
		return nil, domain.ErrInvalidInput
	}
	if in.Prioridad != nil {
		switch *in.Prioridad {
		case entity.PrioridadAlta, entity.PrioridadMedia, entity.PrioridadBaja:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	patch := repository.OpportunityPatch{
		Estado:           in.Estado,
		Prioridad:        in.Prioridad,
		ServicioSugerido: in.ServicioSugerido,
		Descripcion:      in.Descripcion,
		PrecioEstimado:   in.PrecioEstimado,
		VehicleID:        in.VehicleID,
		CustomerID:       in.CustomerID,
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// AddNote agrega una nota de seguimiento (append-only).
func (uc *OpportunityUseCase) AddNote(ctx context.Context, opportunityID string, in dto.AddNoteRequest, usuarioID string) (*dto.NoteResponse, error) {
	if in.TipoContacto == "" {
		return nil, domain.ErrInvalidInput
	}
	opp, err := uc.repo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, domain.ErrNotFound
	}
	note := &entity.OpportunityNote{
		ID:             uuid.New().String(),
		OpportunityID:  opportunityID,
		TipoContacto:   in.TipoContacto,
		Resultado:      in.Resultado,
		Nota:           in.Nota,
		UsuarioCreador: usuarioID,
		CreatedAt:      time.Now(),
	}
	if in.SeguimientoFecha != nil {
		f, err := time.Parse("2006-01-02", *in.SeguimientoFecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		note.SeguimientoFecha = &f
	}
	if err := uc.noteRepo.Append(ctx, note); err != nil {
		return nil, err
	}
	return dto.NoteFromEntity(note), nil
}

// ListNotes notas de seguimiento de la oportunidad.
func (uc *OpportunityUseCase) ListNotes(ctx context.Context, opportunityID string) ([]*dto.NoteResponse, error) {
	list, err := uc.noteRepo.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NoteFromEntity(n))
	}
	return out, nil
}

func validOppEstado(estado string) bool {
	switch estado {
	case entity.OppPendiente, entity.OppContactado, entity.OppAgendado,
		entity.OppEnProceso, entity.OppCompletado, entity.OppPerdido:
		return true
	}
	return false
}
