package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ClientFilter criterios del listado de clientes. Search busca en nombres, razón social, email y teléfono.
type ClientFilter struct {
	Search string
	Type   entity.ClientType
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, int, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
