package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/usecase"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
)

func repuesto(id string, stock, reserved int) *entity.Product {
	return &entity.Product{
		ID:         id,
		Name:       "Repuesto " + id,
		CostPrice:  decimal.NewFromInt(10),
		StockLevel: stock, ReservedStock: reserved,
	}
}

func ordenAbierta(id string) *entity.RepairJob {
	return &entity.RepairJob{
		ID:            id,
		CustomerName:  "Carlos",
		DeviceBrand:   "Samsung",
		DeviceModel:   "A52",
		ReportedIssue: "no enciende",
		Status:        entity.RepairStatusPendiente,
		EstimatedCost: dec("25"),
	}
}

func newRepairEnv(products []*entity.Product, jobs []*entity.RepairJob) (*usecase.RepairUseCase, *fakeProductRepo, *fakeRepairRepo) {
	productRepo := newFakeProductRepo(products...)
	repairRepo := newFakeRepairRepo(jobs...)
	uc := usecase.NewRepairUseCase(&fakeTxRunner{products: productRepo, repairs: repairRepo}, repairRepo)
	return uc, productRepo, repairRepo
}

func TestRepair_CrearOrdenIniciaPendiente(t *testing.T) {
	uc, _, _ := newRepairEnv(nil, nil)

	resp, err := uc.Create(dto.CreateRepairRequest{
		CustomerName:  "Carlos",
		DeviceModel:   "A52",
		ReportedIssue: "pantalla rota",
		EstimatedCost: dec("25"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RepairStatusPendiente, resp.Status)
	assert.True(t, resp.Balance.Equal(dec("25")), "sin abonos el saldo es el costo estimado")
	assert.Regexp(t, `^R-\d{6}-\d{4}$`, resp.ID)
}

func TestRepair_ReservarRepuestosApartaStock(t *testing.T) {
	uc, productRepo, repairRepo := newRepairEnv(
		[]*entity.Product{repuesto("P-1", 5, 0)},
		[]*entity.RepairJob{ordenAbierta("R-1")},
	)

	resp, err := uc.ReserveParts(context.Background(), "R-1", dto.ReservePartsRequest{
		Parts: []dto.ReservePartRequest{{ProductID: "P-1", Quantity: 2}},
	})
	require.NoError(t, err)

	p, _ := productRepo.GetByID("P-1")
	assert.Equal(t, 5, p.StockLevel, "reservar no descuenta el stock físico")
	assert.Equal(t, 2, p.ReservedStock, "reservar incrementa el apartado")

	require.Len(t, resp.ReservedParts, 1)
	assert.Equal(t, 2, resp.ReservedParts[0].Quantity)

	// Reservar de nuevo el mismo repuesto acumula en la misma entrada.
	resp, err = uc.ReserveParts(context.Background(), "R-1", dto.ReservePartsRequest{
		Parts: []dto.ReservePartRequest{{ProductID: "P-1", Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, resp.ReservedParts, 1)
	assert.Equal(t, 3, resp.ReservedParts[0].Quantity)

	j, _ := repairRepo.GetByID("R-1")
	require.Len(t, j.ReservedParts, 1)
}

func TestRepair_ReservaInsuficienteAbortaElLoteCompleto(t *testing.T) {
	uc, productRepo, _ := newRepairEnv(
		[]*entity.Product{repuesto("P-1", 5, 0), repuesto("P-2", 1, 0)},
		[]*entity.RepairJob{ordenAbierta("R-1")},
	)

	_, err := uc.ReserveParts(context.Background(), "R-1", dto.ReservePartsRequest{
		Parts: []dto.ReservePartRequest{
			{ProductID: "P-1", Quantity: 2},
			{ProductID: "P-2", Quantity: 3},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, _ := productRepo.GetByID("P-1")
	assert.Equal(t, 0, p1.ReservedStock, "el lote falla completo: nada queda apartado")
}

func TestRepair_ReservaRespetaDanadosYApartados(t *testing.T) {
	p := repuesto("P-1", 5, 2)
	p.DamagedStock = 2 // disponible real: 5-2-2 = 1
	uc, _, _ := newRepairEnv([]*entity.Product{p}, []*entity.RepairJob{ordenAbierta("R-1")})

	_, err := uc.ReserveParts(context.Background(), "R-1", dto.ReservePartsRequest{
		Parts: []dto.ReservePartRequest{{ProductID: "P-1", Quantity: 2}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "lo dañado y lo ya apartado no se puede reservar")
}

func TestRepair_LiberarRepuestoDevuelveElApartado(t *testing.T) {
	job := ordenAbierta("R-1")
	job.ReservedParts = []entity.ReservedPart{{ProductID: "P-1", ProductName: "Repuesto P-1", Quantity: 2}}
	uc, productRepo, _ := newRepairEnv([]*entity.Product{repuesto("P-1", 5, 2)}, []*entity.RepairJob{job})

	resp, err := uc.ReleasePart(context.Background(), "R-1", "P-1")
	require.NoError(t, err)
	assert.Empty(t, resp.ReservedParts)

	p, _ := productRepo.GetByID("P-1")
	assert.Equal(t, 0, p.ReservedStock)
	assert.Equal(t, 5, p.StockLevel, "liberar no toca el stock físico")
}

func TestRepair_EliminarOrdenLiberaTodosLosRepuestos(t *testing.T) {
	job := ordenAbierta("R-1")
	job.ReservedParts = []entity.ReservedPart{
		{ProductID: "P-1", ProductName: "Repuesto P-1", Quantity: 2},
		{ProductID: "P-2", ProductName: "Repuesto P-2", Quantity: 1},
	}
	uc, productRepo, repairRepo := newRepairEnv(
		[]*entity.Product{repuesto("P-1", 5, 2), repuesto("P-2", 3, 1)},
		[]*entity.RepairJob{job},
	)

	require.NoError(t, uc.Delete(context.Background(), "R-1"))

	p1, _ := productRepo.GetByID("P-1")
	p2, _ := productRepo.GetByID("P-2")
	assert.Equal(t, 0, p1.ReservedStock)
	assert.Equal(t, 0, p2.ReservedStock)

	j, _ := repairRepo.GetByID("R-1")
	assert.Nil(t, j, "la orden debe desaparecer")
}

func TestRepair_TransicionesSoloHaciaAdelante(t *testing.T) {
	job := ordenAbierta("R-1")
	job.Status = entity.RepairStatusEnReparacion
	uc, _, _ := newRepairEnv(nil, []*entity.RepairJob{job})

	resp, err := uc.UpdateStatus("R-1", dto.UpdateRepairStatusRequest{Status: entity.RepairStatusListo})
	require.NoError(t, err)
	assert.Equal(t, entity.RepairStatusListo, resp.Status)

	_, err = uc.UpdateStatus("R-1", dto.UpdateRepairStatusRequest{Status: entity.RepairStatusPendiente})
	require.ErrorIs(t, err, domain.ErrInvalidTransition, "retroceder de estado no está permitido")

	_, err = uc.UpdateStatus("R-1", dto.UpdateRepairStatusRequest{Status: entity.RepairStatusCompletado})
	require.ErrorIs(t, err, domain.ErrInvalidTransition, "Completado solo lo estampa el cobro")
}
