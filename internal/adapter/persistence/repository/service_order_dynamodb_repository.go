package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "service_orders"

type equipmentItem struct {
	ID            string `dynamodbav:"id"`
	Category      string `dynamodbav:"category"`
	Subcategory   string `dynamodbav:"subcategory"`
	Brand         string `dynamodbav:"brand"`
	Model         string `dynamodbav:"model"`
	Color         string `dynamodbav:"color"`
	IMEI          string `dynamodbav:"imei"`
	SerialNumber  string `dynamodbav:"serial_number"`
	ReportedIssue string `dynamodbav:"reported_issue"`
	PowersOn      bool   `dynamodbav:"powers_on"`
}

type checklistEntryItem struct {
	Label   string `dynamodbav:"label"`
	Checked bool   `dynamodbav:"checked"`
}

type checklistItem struct {
	EquipmentID    string               `dynamodbav:"equipment_id"`
	EquipmentIndex int                  `dynamodbav:"equipment_index"`
	Items          []checklistEntryItem `dynamodbav:"items"`
}

type serviceLineItem struct {
	ServiceID string `dynamodbav:"service_id"`
	Name      string `dynamodbav:"name"`
	UnitPrice string `dynamodbav:"unit_price"`
	Quantity  int    `dynamodbav:"quantity"`
}

type productLineItem struct {
	ProductID string `dynamodbav:"product_id"`
	Name      string `dynamodbav:"name"`
	UnitPrice string `dynamodbav:"unit_price"`
	Quantity  int    `dynamodbav:"quantity"`
}

type serviceOrderItem struct {
	ID                string            `dynamodbav:"id"`
	Number            int64             `dynamodbav:"number"`
	CustomerID        string            `dynamodbav:"customer_id"`
	TechnicianID      string            `dynamodbav:"technician_id"`
	Status            string            `dynamodbav:"status"`
	StartDate         string            `dynamodbav:"start_date"`
	DeliveryEstimate  string            `dynamodbav:"delivery_estimate,omitempty"`
	WarrantyID        string            `dynamodbav:"warranty_id"`
	WarrantyDays      int               `dynamodbav:"warranty_days"`
	Equipments        []equipmentItem   `dynamodbav:"equipments"`
	Checklists        []checklistItem   `dynamodbav:"checklists"`
	Services          []serviceLineItem `dynamodbav:"services"`
	Products          []productLineItem `dynamodbav:"products"`
	TechnicalFeedback string            `dynamodbav:"technical_feedback"`
	Discount          string            `dynamodbav:"discount"`
	CreatedAt         string            `dynamodbav:"created_at"`
	UpdatedAt         string            `dynamodbav:"updated_at"`
}

// ServiceOrderDynamoRepository persists ServiceOrder aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The whole aggregate lives in one document: equipments, checklists and line
// items are nested lists, so a single GetItem reconstructs the order the way
// it was written.

type ServiceOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	it := toServiceOrderItem(o)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	orders := []entities.ServiceOrder{}

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it serviceOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromServiceOrderItem(it))
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return orders, nil
}

// Update rewrites every mutable field of the document. Number and created_at
// are immutable after commit and are deliberately absent from the update
// expression.
func (r *ServiceOrderDynamoRepository) Update(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	it := toServiceOrderItem(o)

	equipments, err := attributevalue.Marshal(it.Equipments)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	checklists, err := attributevalue.Marshal(it.Checklists)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	services, err := attributevalue.Marshal(it.Services)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	products, err := attributevalue.Marshal(it.Products)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	expr := "SET #customer_id = :customer_id, #technician_id = :technician_id, #status = :status, " +
		"#start_date = :start_date, #delivery_estimate = :delivery_estimate, #warranty_id = :warranty_id, " +
		"#warranty_days = :warranty_days, #equipments = :equipments, #checklists = :checklists, " +
		"#services = :services, #products = :products, #technical_feedback = :technical_feedback, " +
		"#discount = :discount, #updated_at = :updated_at"

	values := map[string]types.AttributeValue{
		":customer_id":        &types.AttributeValueMemberS{Value: it.CustomerID},
		":technician_id":      &types.AttributeValueMemberS{Value: it.TechnicianID},
		":status":             &types.AttributeValueMemberS{Value: it.Status},
		":start_date":         &types.AttributeValueMemberS{Value: it.StartDate},
		":delivery_estimate":  &types.AttributeValueMemberS{Value: it.DeliveryEstimate},
		":warranty_id":        &types.AttributeValueMemberS{Value: it.WarrantyID},
		":warranty_days":      &types.AttributeValueMemberN{Value: strconv.Itoa(it.WarrantyDays)},
		":equipments":         equipments,
		":checklists":         checklists,
		":services":           services,
		":products":           products,
		":technical_feedback": &types.AttributeValueMemberS{Value: it.TechnicalFeedback},
		":discount":           &types.AttributeValueMemberS{Value: it.Discount},
		":updated_at":         &types.AttributeValueMemberS{Value: it.UpdatedAt},
	}
	names := map[string]string{
		"#customer_id":        "customer_id",
		"#technician_id":      "technician_id",
		"#status":             "status",
		"#start_date":         "start_date",
		"#delivery_estimate":  "delivery_estimate",
		"#warranty_id":        "warranty_id",
		"#warranty_days":      "warranty_days",
		"#equipments":         "equipments",
		"#checklists":         "checklists",
		"#services":           "services",
		"#products":           "products",
		"#technical_feedback": "technical_feedback",
		"#discount":           "discount",
		"#updated_at":         "updated_at",
	}

	return r.update(ctx, o.ID, expr, values, names)
}

// UpdateStatus writes only the status plus the audit stamp, so concurrent
// edits to other fields made by another session are never clobbered.
func (r *ServiceOrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.ServiceOrder, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #status = :status, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}

	return r.update(ctx, id, expr, values, names)
}

func (r *ServiceOrderDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.ServiceOrder, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ServiceOrder{}, nil
		}
		return entities.ServiceOrder{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	equipments := make([]equipmentItem, 0, len(o.Equipments))
	for _, eq := range o.Equipments {
		equipments = append(equipments, equipmentItem(eq))
	}

	checklists := make([]checklistItem, 0, len(o.Checklists))
	for _, c := range o.Checklists {
		items := make([]checklistEntryItem, 0, len(c.Items))
		for _, entry := range c.Items {
			items = append(items, checklistEntryItem(entry))
		}
		checklists = append(checklists, checklistItem{
			EquipmentID:    c.EquipmentID,
			EquipmentIndex: c.EquipmentIndex,
			Items:          items,
		})
	}

	services := make([]serviceLineItem, 0, len(o.Services))
	for _, s := range o.Services {
		services = append(services, serviceLineItem{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			UnitPrice: floatToString(s.UnitPrice),
			Quantity:  s.Quantity,
		})
	}

	products := make([]productLineItem, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, productLineItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			UnitPrice: floatToString(p.UnitPrice),
			Quantity:  p.Quantity,
		})
	}

	deliveryEstimate := ""
	if o.DeliveryEstimate != nil {
		deliveryEstimate = o.DeliveryEstimate.UTC().Format(time.RFC3339Nano)
	}

	return serviceOrderItem{
		ID:                o.ID,
		Number:            o.Number,
		CustomerID:        o.CustomerID,
		TechnicianID:      o.TechnicianID,
		Status:            string(o.Status),
		StartDate:         o.StartDate.UTC().Format(time.RFC3339Nano),
		DeliveryEstimate:  deliveryEstimate,
		WarrantyID:        o.WarrantyID,
		WarrantyDays:      o.WarrantyDays,
		Equipments:        equipments,
		Checklists:        checklists,
		Services:          services,
		Products:          products,
		TechnicalFeedback: o.TechnicalFeedback,
		Discount:          floatToString(o.Discount),
		CreatedAt:         o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	equipments := make([]entities.Equipment, 0, len(it.Equipments))
	for _, eq := range it.Equipments {
		equipments = append(equipments, entities.Equipment(eq))
	}

	checklists := make([]entities.Checklist, 0, len(it.Checklists))
	for _, c := range it.Checklists {
		items := make([]entities.ChecklistItem, 0, len(c.Items))
		for _, entry := range c.Items {
			items = append(items, entities.ChecklistItem(entry))
		}
		checklists = append(checklists, entities.Checklist{
			EquipmentID:    c.EquipmentID,
			EquipmentIndex: c.EquipmentIndex,
			Items:          items,
		})
	}

	services := make([]entities.ServiceLineItem, 0, len(it.Services))
	for _, s := range it.Services {
		price, _ := strconv.ParseFloat(s.UnitPrice, 64)
		services = append(services, entities.ServiceLineItem{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			UnitPrice: price,
			Quantity:  s.Quantity,
		})
	}

	products := make([]entities.ProductLineItem, 0, len(it.Products))
	for _, p := range it.Products {
		price, _ := strconv.ParseFloat(p.UnitPrice, 64)
		products = append(products, entities.ProductLineItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			UnitPrice: price,
			Quantity:  p.Quantity,
		})
	}

	var deliveryEstimate *time.Time
	if it.DeliveryEstimate != "" {
		if t, err := time.Parse(time.RFC3339Nano, it.DeliveryEstimate); err == nil {
			deliveryEstimate = &t
		}
	}

	startDate, _ := time.Parse(time.RFC3339Nano, it.StartDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	discount, _ := strconv.ParseFloat(it.Discount, 64)

	return entities.ServiceOrder{
		ID:                it.ID,
		Number:            it.Number,
		CustomerID:        it.CustomerID,
		TechnicianID:      it.TechnicianID,
		Status:            entities.OrderStatus(it.Status),
		StartDate:         startDate,
		DeliveryEstimate:  deliveryEstimate,
		WarrantyID:        it.WarrantyID,
		WarrantyDays:      it.WarrantyDays,
		Equipments:        equipments,
		Checklists:        checklists,
		Services:          services,
		Products:          products,
		TechnicalFeedback: it.TechnicalFeedback,
		Discount:          discount,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}
