package request

import (
	"time"

	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase"
)

// OpenWizardRequest selects the wizard entry mode: an order id means "edit
// existing" (no local draft), empty means "compose new" with recovery.
type OpenWizardRequest struct {
	OrderID string `json:"order_id"`
}

type EquipmentRequest struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	Color         string `json:"color"`
	IMEI          string `json:"imei"`
	SerialNumber  string `json:"serial_number"`
	ReportedIssue string `json:"reported_issue"`
	PowersOn      bool   `json:"powers_on"`
}

type ChecklistItemRequest struct {
	Label   string `json:"label" binding:"required"`
	Checked bool   `json:"checked"`
}

type ChecklistRequest struct {
	EquipmentID string                 `json:"equipment_id" binding:"required"`
	Items       []ChecklistItemRequest `json:"items"`
}

type ServiceLineRequest struct {
	ServiceID string  `json:"service_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity" binding:"required"`
}

type ProductLineRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity" binding:"required"`
}

// DraftPatchRequest carries top-level draft field replacements. A present
// collection replaces the stored one wholesale; there are no deep merges.
type DraftPatchRequest struct {
	CustomerID            *string                `json:"customer_id"`
	TechnicianID          *string                `json:"technician_id"`
	Status                *string                `json:"status"`
	StartDate             *time.Time             `json:"start_date"`
	DeliveryEstimate      *time.Time             `json:"delivery_estimate"`
	ClearDeliveryEstimate bool                   `json:"clear_delivery_estimate"`
	WarrantyID            *string                `json:"warranty_id"`
	WarrantyDays          *int                   `json:"warranty_days"`
	Equipments            *[]EquipmentRequest    `json:"equipments"`
	Checklists            *[]ChecklistRequest    `json:"checklists"`
	Services              *[]ServiceLineRequest  `json:"services"`
	Products              *[]ProductLineRequest  `json:"products"`
	TechnicalFeedback     *string                `json:"technical_feedback"`
	Discount              *float64               `json:"discount"`
}

func (r DraftPatchRequest) ToPatch() usecase.DraftPatch {
	patch := usecase.DraftPatch{
		CustomerID:            r.CustomerID,
		TechnicianID:          r.TechnicianID,
		StartDate:             r.StartDate,
		DeliveryEstimate:      r.DeliveryEstimate,
		ClearDeliveryEstimate: r.ClearDeliveryEstimate,
		WarrantyID:            r.WarrantyID,
		WarrantyDays:          r.WarrantyDays,
		TechnicalFeedback:     r.TechnicalFeedback,
		Discount:              r.Discount,
	}

	if r.Status != nil {
		status := entities.OrderStatus(*r.Status)
		patch.Status = &status
	}

	if r.Equipments != nil {
		equipments := make([]entities.Equipment, 0, len(*r.Equipments))
		for _, eq := range *r.Equipments {
			equipments = append(equipments, entities.Equipment(eq))
		}
		patch.Equipments = &equipments
	}

	if r.Checklists != nil {
		checklists := make([]entities.Checklist, 0, len(*r.Checklists))
		for _, c := range *r.Checklists {
			items := make([]entities.ChecklistItem, 0, len(c.Items))
			for _, item := range c.Items {
				items = append(items, entities.ChecklistItem(item))
			}
			checklists = append(checklists, entities.Checklist{
				EquipmentID: c.EquipmentID,
				Items:       items,
			})
		}
		patch.Checklists = &checklists
	}

	if r.Services != nil {
		services := make([]entities.ServiceLineItem, 0, len(*r.Services))
		for _, s := range *r.Services {
			services = append(services, entities.ServiceLineItem{
				ServiceID: s.ServiceID,
				Name:      s.Name,
				UnitPrice: s.UnitPrice,
				Quantity:  s.Quantity,
			})
		}
		patch.Services = &services
	}

	if r.Products != nil {
		products := make([]entities.ProductLineItem, 0, len(*r.Products))
		for _, p := range *r.Products {
			products = append(products, entities.ProductLineItem{
				ProductID: p.ProductID,
				Name:      p.Name,
				UnitPrice: p.UnitPrice,
				Quantity:  p.Quantity,
			})
		}
		patch.Products = &products
	}

	return patch
}
