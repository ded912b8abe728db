package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/jhoicas/Taller-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	ctx   = context.Background()
	admin = Actor{UserID: "u-admin", Role: "admin"}
)

func newStore() (*memory.Store, *Auditor) {
	st := memory.NewStore()
	return st, NewAuditor(st.Audit(), logger.Nop())
}

func newClientUC(st *memory.Store, audit *Auditor) *ClientUseCase {
	return NewClientUseCase(st.Clients(), st.Vehicles(), st.Interventions(), st.Invoices(), st, audit)
}

func seedClient(st *memory.Store, id string) *entity.Client {
	c := &entity.Client{
		ID: id, Type: entity.ClientIndividual, FirstName: "Karim", LastName: "Bennani",
		Email: "karim@example.ma", Phone: "0612345678", CreatedAt: time.Now(),
	}
	_ = st.Clients().Create(ctx, c)
	return c
}

func seedVehicle(st *memory.Store, id, clientID, plate string) *entity.Vehicle {
	v := &entity.Vehicle{
		ID: id, ClientID: clientID, Plate: plate, Make: "Dacia", Model: "Logan",
		Year: 2019, Odometer: 85000, Status: entity.VehicleActive,
	}
	_ = st.Vehicles().Create(ctx, v)
	return v
}

func seedCatalog(st *memory.Store) {
	five := decimal.NewFromInt(5)
	st.SeedCatalog(
		[]entity.Category{{ID: "cat-1", Name: "Entretien", WithArticle: true}},
		[]entity.Article{
			{ID: "A", CategoryID: "cat-1", Reference: "FH-01", Designation: "Filtre à huile", SalePriceHT: decimal.NewFromInt(80)},
			{ID: "B", CategoryID: "cat-1", Reference: "HM-5W30", Designation: "Huile moteur 5W30", SalePriceHT: decimal.NewFromInt(120)},
			{ID: "C", CategoryID: "cat-1", Reference: "FA-02", Designation: "Filtre à air", SalePriceHT: decimal.NewFromInt(60)},
		},
		[]entity.Offer{{ID: "O1", CategoryID: "cat-1", Code: "VID", Name: "Vidange", Price: decimal.NewFromInt(180), DiscountPct: decimal.NewFromInt(10)}},
		[]entity.OfferArticle{
			{Article: entity.Article{ID: "A", Reference: "FH-01", Designation: "Filtre à huile", SalePriceHT: decimal.NewFromInt(80)}, OfferID: "O1"},
			{Article: entity.Article{ID: "B", Reference: "HM-5W30", Designation: "Huile moteur 5W30", SalePriceHT: decimal.NewFromInt(120)}, OfferID: "O1", SpecificDiscountPct: &five},
		},
	)
}
