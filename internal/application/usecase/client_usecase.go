package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ClientUseCase casos de uso de clientes.
type ClientUseCase struct {
	repo          repository.ClientRepository
	vehicles      repository.VehicleRepository
	interventions repository.InterventionRepository
	invoices      repository.InvoiceRepository
	tx            repository.TxRunner
	audit         *Auditor
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(
	repo repository.ClientRepository,
	vehicles repository.VehicleRepository,
	interventions repository.InterventionRepository,
	invoices repository.InvoiceRepository,
	tx repository.TxRunner,
	audit *Auditor,
) *ClientUseCase {
	return &ClientUseCase{
		repo:          repo,
		vehicles:      vehicles,
		interventions: interventions,
		invoices:      invoices,
		tx:            tx,
		audit:         audit,
	}
}

func validateClient(in dto.ClientRequest) error {
	v := domain.Violations{}
	switch entity.ClientType(in.Type) {
	case entity.ClientIndividual:
		v.Required("first_name", in.FirstName, "Le prénom est requis")
		v.Required("last_name", in.LastName, "Le nom est requis")
	case entity.ClientCompany:
		v.Required("company_name", in.CompanyName, "La raison sociale est requise")
		v.Required("registration_number", in.RegistrationNumber, "Le numéro RCC est requis")
		if in.PaymentTermDays < 0 || in.PaymentTermDays > entity.MaxPaymentTermDays {
			v.Add("payment_term_days", fmt.Sprintf("Le délai de paiement doit être compris entre 0 et %d jours", entity.MaxPaymentTermDays))
		}
	default:
		v.Add("type", "Type de client invalide")
	}
	v.Email("email", in.Email, "L'email est requis", "L'email n'est pas valide")
	v.Required("phone", in.Phone, "Le téléphone est requis")
	return v.Err()
}

// applyClient copia los campos del request; los particulares no tienen datos de sociedad.
func applyClient(c *entity.Client, in dto.ClientRequest) {
	c.Type = entity.ClientType(in.Type)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.PostalCode = strings.TrimSpace(in.PostalCode)
	c.City = strings.TrimSpace(in.City)
	c.Notes = in.Notes
	if c.Type == entity.ClientCompany {
		c.FirstName, c.LastName = "", ""
		c.CompanyName = strings.TrimSpace(in.CompanyName)
		c.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
		c.PaymentTermDays = in.PaymentTermDays
		return
	}
	c.FirstName = strings.TrimSpace(in.FirstName)
	c.LastName = strings.TrimSpace(in.LastName)
	c.CompanyName, c.RegistrationNumber = "", ""
	c.PaymentTermDays = 0
}

// Create valida y crea el cliente; la auditoría se escribe en la misma transacción.
func (uc *ClientUseCase) Create(ctx context.Context, actor Actor, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := validateClient(in); err != nil {
		return nil, err
	}
	now := time.Now()
	client := &entity.Client{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyClient(client, in)

	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Clients.Create(ctx, client); err != nil {
			return err
		}
		return r.Audit.Append(ctx, NewAuditEntry(actor, ActionCreate, "client", client.ID, client.DisplayName()))
	})
	if err != nil {
		return nil, err
	}
	out := clientToResponse(client)
	return &out, nil
}

func (uc *ClientUseCase) load(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := clientToResponse(c)
	return &out, nil
}

// List lista clientes con búsqueda y paginación.
func (uc *ClientUseCase) List(ctx context.Context, search, clientType string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ClientFilter{
		Search: strings.TrimSpace(search),
		Type:   entity.ClientType(clientType),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, clientToResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Detail ficha del cliente: vehículos, intervenciones, facturas y saldo pendiente.
func (uc *ClientUseCase) Detail(ctx context.Context, id string) (*dto.ClientDetailResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicles, err := uc.vehicles.List(ctx, repository.VehicleFilter{ClientID: id})
	if err != nil {
		return nil, err
	}
	interventions, err := uc.interventions.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoices.List(ctx, repository.InvoiceFilter{ClientID: id})
	if err != nil {
		return nil, err
	}

	out := &dto.ClientDetailResponse{
		Client:        clientToResponse(c),
		Vehicles:      make([]dto.VehicleResponse, 0, len(vehicles)),
		Interventions: make([]dto.InterventionListItem, 0, len(interventions)),
		Invoices:      make([]dto.InvoiceSummary, 0, len(invoices)),
		TotalInvoiced: decimal.Zero,
		TotalPaid:     decimal.Zero,
		Balance:       decimal.Zero,
	}
	for _, v := range vehicles {
		out.Vehicles = append(out.Vehicles, vehicleToResponse(v))
	}
	for _, iv := range interventions {
		out.Interventions = append(out.Interventions, InterventionListItem(iv))
	}
	for _, inv := range invoices {
		out.Invoices = append(out.Invoices, InvoiceSummary(inv))
		out.TotalInvoiced = out.TotalInvoiced.Add(inv.TotalTTC)
		if inv.PaymentStatus == entity.PaymentPaid {
			out.TotalPaid = out.TotalPaid.Add(inv.TotalTTC)
		} else {
			out.Balance = out.Balance.Add(inv.TotalTTC)
		}
	}
	return out, nil
}

// Update modifica el cliente (last-write-wins).
func (uc *ClientUseCase) Update(ctx context.Context, actor Actor, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := validateClient(in); err != nil {
		return nil, err
	}
	client, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	applyClient(client, in)
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actor, ActionUpdate, "client", client.ID, client.DisplayName())
	out := clientToResponse(client)
	return &out, nil
}

// Delete elimina el cliente si no tiene vehículos registrados.
func (uc *ClientUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	client, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	vehicles, err := uc.vehicles.List(ctx, repository.VehicleFilter{ClientID: id, Limit: 1})
	if err != nil {
		return err
	}
	if len(vehicles) > 0 {
		return fmt.Errorf("%w: el cliente tiene vehículos registrados", domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, actor, ActionDelete, "client", id, client.DisplayName())
	return nil
}
