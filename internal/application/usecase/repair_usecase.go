package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/id"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// TxRunner es la porción del corredor de transacciones que necesita la
// reserva de repuestos: apartar o liberar stock toca la fila del producto y
// la orden a la vez, y eso solo puede pasar dentro de una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		repairRepo repository.RepairJobRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// RepairUseCase casos de uso de órdenes de reparación. El cobro y el
// reembolso de reparaciones viven en el paquete de ventas; aquí va el ciclo
// de vida de la orden y la reserva de repuestos.
type RepairUseCase struct {
	txRunner   TxRunner
	repairRepo repository.RepairJobRepository
}

// NewRepairUseCase construye el caso de uso.
func NewRepairUseCase(txRunner TxRunner, repairRepo repository.RepairJobRepository) *RepairUseCase {
	return &RepairUseCase{txRunner: txRunner, repairRepo: repairRepo}
}

// Create registra una orden nueva en estado Pendiente.
func (uc *RepairUseCase) Create(in dto.CreateRepairRequest) (*dto.RepairResponse, error) {
	if in.CustomerName == "" || in.DeviceModel == "" || in.ReportedIssue == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.EstimatedCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	job := &entity.RepairJob{
		ID:            id.NewRepair(now),
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		DeviceBrand:   in.DeviceBrand,
		DeviceModel:   in.DeviceModel,
		DeviceIMEI:    in.DeviceIMEI,
		ReportedIssue: in.ReportedIssue,
		Status:        entity.RepairStatusPendiente,
		EstimatedCost: in.EstimatedCost,
		CreatedAt:     now,
	}
	if err := uc.repairRepo.Create(job); err != nil {
		return nil, err
	}
	return toRepairResponse(job), nil
}

// GetByID obtiene una orden por ID.
func (uc *RepairUseCase) GetByID(jobID string) (*dto.RepairResponse, error) {
	job, err := uc.repairRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	return toRepairResponse(job), nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *RepairUseCase) List(status string, limit, offset int) (*dto.RepairListResponse, error) {
	if status != "" && !entity.ValidRepairStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repairRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RepairResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *toRepairResponse(j))
	}
	return &dto.RepairListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza los datos editables de la orden.
func (uc *RepairUseCase) Update(jobID string, in dto.UpdateRepairRequest) (*dto.RepairResponse, error) {
	job, err := uc.repairRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	if job.Status == entity.RepairStatusCompletado {
		return nil, domain.ErrConflict
	}
	if in.CustomerName != nil {
		job.CustomerName = *in.CustomerName
	}
	if in.CustomerPhone != nil {
		job.CustomerPhone = *in.CustomerPhone
	}
	if in.ReportedIssue != nil {
		job.ReportedIssue = *in.ReportedIssue
	}
	if in.EstimatedCost != nil {
		if in.EstimatedCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		job.EstimatedCost = *in.EstimatedCost
	}
	if err := uc.repairRepo.Update(job); err != nil {
		return nil, err
	}
	return toRepairResponse(job), nil
}

// UpdateStatus avanza el estado de la orden. Solo transiciones hacia
// adelante; Completado no se asigna a mano, lo estampa el cobro.
func (uc *RepairUseCase) UpdateStatus(jobID string, in dto.UpdateRepairStatusRequest) (*dto.RepairResponse, error) {
	if !entity.ValidRepairStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == entity.RepairStatusCompletado {
		return nil, domain.ErrInvalidTransition
	}
	job, err := uc.repairRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	if !entity.CanTransition(job.Status, in.Status) {
		return nil, domain.ErrInvalidTransition
	}
	job.Status = in.Status
	if err := uc.repairRepo.Update(job); err != nil {
		return nil, err
	}
	return toRepairResponse(job), nil
}

// ReserveParts aparta repuestos del inventario para la orden: incrementa
// ReservedStock de cada producto y anota el repuesto en la orden, en una
// sola transacción. Apartar más de lo disponible se rechaza.
func (uc *RepairUseCase) ReserveParts(ctx context.Context, jobID string, in dto.ReservePartsRequest) (*dto.RepairResponse, error) {
	if len(in.Parts) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range in.Parts {
		if p.ProductID == "" || p.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var updated *entity.RepairJob
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		repairRepo repository.RepairJobRepository,
		_ repository.SaleRepository,
	) error {
		job, err := repairRepo.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("reparación %s: %w", jobID, domain.ErrNotFound)
		}
		if job.Status == entity.RepairStatusCompletado {
			return domain.ErrConflict
		}

		for _, part := range in.Parts {
			product, err := productRepo.GetForUpdate(part.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %s: %w", part.ProductID, domain.ErrNotFound)
			}
			if product.IsCombo {
				return fmt.Errorf("producto %s es un combo: %w", part.ProductID, domain.ErrInvalidInput)
			}
			if product.AvailableStock() < part.Quantity {
				return fmt.Errorf("repuesto %s: %w", product.Name, domain.ErrInsufficientStock)
			}
			if err := productRepo.UpdateStocks(product.ID, product.StockLevel, product.ReservedStock+part.Quantity, product.DamagedStock); err != nil {
				return err
			}
			addReservedPart(job, product, part.Quantity)
		}
		if err := repairRepo.Update(job); err != nil {
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRepairResponse(updated), nil
}

// ReleasePart devuelve al inventario un repuesto apartado de la orden.
func (uc *RepairUseCase) ReleasePart(ctx context.Context, jobID, productID string) (*dto.RepairResponse, error) {
	var updated *entity.RepairJob
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		repairRepo repository.RepairJobRepository,
		_ repository.SaleRepository,
	) error {
		job, err := repairRepo.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("reparación %s: %w", jobID, domain.ErrNotFound)
		}
		if job.Status == entity.RepairStatusCompletado {
			return domain.ErrConflict
		}
		if err := releasePart(productRepo, job, productID); err != nil {
			return err
		}
		if err := repairRepo.Update(job); err != nil {
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRepairResponse(updated), nil
}

// Delete elimina una orden liberando primero todos sus repuestos apartados.
func (uc *RepairUseCase) Delete(ctx context.Context, jobID string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		repairRepo repository.RepairJobRepository,
		_ repository.SaleRepository,
	) error {
		job, err := repairRepo.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("reparación %s: %w", jobID, domain.ErrNotFound)
		}
		if job.Status == entity.RepairStatusCompletado {
			// Una orden completada ya consumió sus repuestos; es historial.
			return domain.ErrConflict
		}
		for len(job.ReservedParts) > 0 {
			if err := releasePart(productRepo, job, job.ReservedParts[0].ProductID); err != nil {
				return err
			}
		}
		return repairRepo.Delete(jobID)
	})
}

// addReservedPart suma cantidad a un repuesto ya anotado o agrega la entrada.
func addReservedPart(job *entity.RepairJob, product *entity.Product, qty int) {
	for i := range job.ReservedParts {
		if job.ReservedParts[i].ProductID == product.ID {
			job.ReservedParts[i].Quantity += qty
			return
		}
	}
	job.ReservedParts = append(job.ReservedParts, entity.ReservedPart{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    qty,
	})
}

// releasePart regresa las unidades apartadas de productID al disponible y
// quita la entrada de la orden. El clamp evita un reservado negativo si el
// inventario se corrigió a mano entre medio.
func releasePart(productRepo repository.ProductRepository, job *entity.RepairJob, productID string) error {
	idx := -1
	for i := range job.ReservedParts {
		if job.ReservedParts[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("repuesto %s no está apartado: %w", productID, domain.ErrNotFound)
	}
	part := job.ReservedParts[idx]

	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product != nil {
		reserved := product.ReservedStock - part.Quantity
		if reserved < 0 {
			reserved = 0
		}
		if err := productRepo.UpdateStocks(product.ID, product.StockLevel, reserved, product.DamagedStock); err != nil {
			return err
		}
	}
	job.ReservedParts = append(job.ReservedParts[:idx], job.ReservedParts[idx+1:]...)
	return nil
}

func toRepairResponse(j *entity.RepairJob) *dto.RepairResponse {
	resp := &dto.RepairResponse{
		ID:             j.ID,
		CustomerName:   j.CustomerName,
		CustomerPhone:  j.CustomerPhone,
		DeviceBrand:    j.DeviceBrand,
		DeviceModel:    j.DeviceModel,
		DeviceIMEI:     j.DeviceIMEI,
		ReportedIssue:  j.ReportedIssue,
		Status:         j.Status,
		EstimatedCost:  j.EstimatedCost,
		AmountPaid:     j.AmountPaid,
		Balance:        j.Balance(),
		IsPaid:         j.IsPaid,
		CreatedAt:      j.CreatedAt,
		CompletedAt:    j.CompletedAt,
		WarrantyEndsAt: j.WarrantyEndsAt,
	}
	for _, p := range j.ReservedParts {
		resp.ReservedParts = append(resp.ReservedParts, dto.ReservedPartResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
		})
	}
	return resp
}
