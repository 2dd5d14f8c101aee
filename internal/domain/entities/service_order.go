package entities

import "time"

// OrderStatus represents the lifecycle state of a service order.
//
// Domain notes:
//   - The workflow is deliberately a complete graph: the console lets the
//     attendant move an order between any two states. The machine's job is
//     persisting the change atomically and coordinating the customer
//     notification, not restricting movement.

type OrderStatus string

const (
	OrderStatusQuote          OrderStatus = "quote"
	OrderStatusOpen           OrderStatus = "open"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusAwaitingParts  OrderStatus = "awaiting_parts"
	OrderStatusApproved       OrderStatus = "approved"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCanceled       OrderStatus = "canceled"
	OrderStatusWarrantyReturn OrderStatus = "warranty_return"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusQuote:          {},
	OrderStatusOpen:           {},
	OrderStatusInProgress:     {},
	OrderStatusAwaitingParts:  {},
	OrderStatusApproved:       {},
	OrderStatusCompleted:      {},
	OrderStatusCanceled:       {},
	OrderStatusWarrantyReturn: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// Equipment is one device handed in for repair.
//
// ID is a stable opaque identifier assigned when the entry is created and is
// the only value checklists may use to reference an equipment entry. The
// positional index of the entry inside ServiceOrder.Equipments is recomputed
// from ID after every mutation (see equipment_binding.go).
type Equipment struct {
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

type ChecklistItem struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Checklist is the entry-inspection record of a single equipment entry.
//
// EquipmentID is the source of truth for the binding. EquipmentIndex is kept
// on the wire for list-view rendering and is derived, never authoritative.
type Checklist struct {
	EquipmentID    string          `json:"equipment_id"`
	EquipmentIndex int             `json:"equipment_index"`
	Items          []ChecklistItem `json:"items"`
}

// ServiceLineItem is a labor line on the order.
//
// Name and UnitPrice are snapshots taken when the line was added; later
// catalog price changes must not retroactively alter committed orders.
type ServiceLineItem struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

func (i ServiceLineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// ProductLineItem is a parts/accessory line on the order. Same snapshot
// semantics as ServiceLineItem.
type ProductLineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

func (i ProductLineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// ServiceOrder is the committed work order persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - Number is the business-facing order number, assigned exactly once by
//     the sequence counter at commit time and immutable afterwards. It is
//     unique and monotonic but not necessarily contiguous (failed commits
//     burn numbers).
type ServiceOrder struct {
	ID                string            `json:"id"`
	Number            int64             `json:"number"`
	CustomerID        string            `json:"customer_id"`
	TechnicianID      string            `json:"technician_id"`
	Status            OrderStatus       `json:"status"`
	StartDate         time.Time         `json:"start_date"`
	DeliveryEstimate  *time.Time        `json:"delivery_estimate,omitempty"`
	WarrantyID        string            `json:"warranty_id"`
	WarrantyDays      int               `json:"warranty_days"`
	Equipments        []Equipment       `json:"equipments"`
	Checklists        []Checklist       `json:"checklists"`
	Services          []ServiceLineItem `json:"services"`
	Products          []ProductLineItem `json:"products"`
	TechnicalFeedback string            `json:"technical_feedback"`
	Discount          float64           `json:"discount"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (o ServiceOrder) ServicesSubtotal() float64 {
	total := 0.0
	for _, s := range o.Services {
		total += s.Subtotal()
	}
	return total
}

func (o ServiceOrder) ProductsSubtotal() float64 {
	total := 0.0
	for _, p := range o.Products {
		total += p.Subtotal()
	}
	return total
}

// GrandTotal is services + products minus the flat order-level discount.
// The discount applies once to the order, never per line.
func (o ServiceOrder) GrandTotal() float64 {
	return o.ServicesSubtotal() + o.ProductsSubtotal() - o.Discount
}

// Normalize fills absent optional collections and amounts with safe zero
// values so downstream steps never branch on nil.
func (o *ServiceOrder) Normalize() {
	if o.Equipments == nil {
		o.Equipments = []Equipment{}
	}
	if o.Checklists == nil {
		o.Checklists = []Checklist{}
	}
	if o.Services == nil {
		o.Services = []ServiceLineItem{}
	}
	if o.Products == nil {
		o.Products = []ProductLineItem{}
	}
	if !o.Status.Valid() {
		o.Status = OrderStatusOpen
	}
	if o.WarrantyDays <= 0 {
		o.WarrantyDays = DefaultWarrantyDays
	}
}
