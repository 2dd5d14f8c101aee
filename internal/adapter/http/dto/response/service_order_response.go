package response

import (
	"time"

	"sisgenius/internal/domain/entities"
)

type EquipmentResponse struct {
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

type ChecklistItemResponse struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// ChecklistResponse carries the resolved equipment label next to the raw
// binding so list views never have to dereference indexes themselves. A
// checklist whose equipment no longer resolves renders as "unknown
// equipment" rather than failing.
type ChecklistResponse struct {
	EquipmentID    string                  `json:"equipment_id"`
	EquipmentIndex int                     `json:"equipment_index"`
	EquipmentLabel string                  `json:"equipment_label"`
	Items          []ChecklistItemResponse `json:"items"`
}

type LineItemResponse struct {
	CatalogID string  `json:"catalog_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type ServiceOrderResponse struct {
	ID                string              `json:"id"`
	Number            int64               `json:"number"`
	CustomerID        string              `json:"customer_id"`
	TechnicianID      string              `json:"technician_id"`
	Status            string              `json:"status"`
	StartDate         time.Time           `json:"start_date"`
	DeliveryEstimate  *time.Time          `json:"delivery_estimate,omitempty"`
	WarrantyID        string              `json:"warranty_id"`
	WarrantyDays      int                 `json:"warranty_days"`
	Equipments        []EquipmentResponse `json:"equipments"`
	Checklists        []ChecklistResponse `json:"checklists"`
	Services          []LineItemResponse  `json:"services"`
	Products          []LineItemResponse  `json:"products"`
	TechnicalFeedback string              `json:"technical_feedback"`
	Discount          float64             `json:"discount"`
	ServicesSubtotal  float64             `json:"services_subtotal"`
	ProductsSubtotal  float64             `json:"products_subtotal"`
	GrandTotal        float64             `json:"grand_total"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	equipments := make([]EquipmentResponse, 0, len(o.Equipments))
	for _, eq := range o.Equipments {
		equipments = append(equipments, EquipmentResponse(eq))
	}

	checklists := make([]ChecklistResponse, 0, len(o.Checklists))
	for _, c := range o.Checklists {
		items := make([]ChecklistItemResponse, 0, len(c.Items))
		for _, item := range c.Items {
			items = append(items, ChecklistItemResponse(item))
		}
		checklists = append(checklists, ChecklistResponse{
			EquipmentID:    c.EquipmentID,
			EquipmentIndex: c.EquipmentIndex,
			EquipmentLabel: equipmentLabel(o, c),
			Items:          items,
		})
	}

	services := make([]LineItemResponse, 0, len(o.Services))
	for _, s := range o.Services {
		services = append(services, LineItemResponse{
			CatalogID: s.ServiceID,
			Name:      s.Name,
			UnitPrice: s.UnitPrice,
			Quantity:  s.Quantity,
			Subtotal:  s.Subtotal(),
		})
	}

	products := make([]LineItemResponse, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, LineItemResponse{
			CatalogID: p.ProductID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  p.Quantity,
			Subtotal:  p.Subtotal(),
		})
	}

	return ServiceOrderResponse{
		ID:                o.ID,
		Number:            o.Number,
		CustomerID:        o.CustomerID,
		TechnicianID:      o.TechnicianID,
		Status:            string(o.Status),
		StartDate:         o.StartDate,
		DeliveryEstimate:  o.DeliveryEstimate,
		WarrantyID:        o.WarrantyID,
		WarrantyDays:      o.WarrantyDays,
		Equipments:        equipments,
		Checklists:        checklists,
		Services:          services,
		Products:          products,
		TechnicalFeedback: o.TechnicalFeedback,
		Discount:          o.Discount,
		ServicesSubtotal:  o.ServicesSubtotal(),
		ProductsSubtotal:  o.ProductsSubtotal(),
		GrandTotal:        o.GrandTotal(),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func FromServiceOrders(orders []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromServiceOrder(o))
	}
	return out
}

func equipmentLabel(o entities.ServiceOrder, c entities.Checklist) string {
	eq, err := o.ChecklistEquipment(c)
	if err != nil {
		return "unknown equipment"
	}
	label := eq.Brand
	if eq.Model != "" {
		if label != "" {
			label += " "
		}
		label += eq.Model
	}
	if label == "" {
		return "equipment"
	}
	return label
}
