package ingestion

import (
	"github.com/pulseboard/data-ingestor/internal/types"
)

var orderStatusValues = func() []string {
	values := make([]string, len(types.OrderStatuses))
	for i, s := range types.OrderStatuses {
		values[i] = string(s)
	}
	return values
}()

var orderItemSchema = &ObjectSchema{
	Name: "OrderItem",
	Fields: []Field{
		{Name: "productId", Type: TypeString, Required: true},
		{Name: "productName", Type: TypeString, Required: true},
		{Name: "quantity", Type: TypeInteger, Required: true, Min: f64(1)},
		{Name: "unitPrice", Type: TypeNumber, Required: true, Min: f64(0)},
		{Name: "totalPrice", Type: TypeNumber, Required: true, Min: f64(0)},
	},
}

// orderSchema mirrors the published order ingestion contract.
// Built once; read-only afterwards.
var orderSchema = &ObjectSchema{
	Name: "OrderIngestionPayload",
	Fields: []Field{
		{Name: "id", Type: TypeString, Required: true},
		{Name: "customerId", Type: TypeString, Required: true},
		{Name: "orderDate", Type: TypeTimestamp, Required: true},
		{Name: "items", Type: TypeObjectArray, Required: true, MinItems: 1, Elem: orderItemSchema},
		{Name: "totalAmount", Type: TypeNumber, Required: true, Min: f64(0)},
		{Name: "currency", Type: TypeString, Required: true, ExactLen: 3},
		{Name: "status", Type: TypeString, Enum: orderStatusValues},
		{Name: "shippingAddress", Type: TypeObject, Object: addressSchema},
		{Name: "paymentMethod", Type: TypeString},
		{Name: "discountAmount", Type: TypeNumber},
		{Name: "shippingCost", Type: TypeNumber},
	},
}

// ValidateOrder validates an untrusted decoded JSON value and, when it
// satisfies the contract, builds the canonical record.
func ValidateOrder(input any) (*types.OrderRecord, types.FieldErrors) {
	doc, errs := orderSchema.Validate(input)
	if len(errs) > 0 {
		return nil, errs
	}

	record := &types.OrderRecord{
		ID:          doc["id"].(string),
		CustomerID:  doc["customerId"].(string),
		OrderDate:   doc["orderDate"].(string),
		TotalAmount: doc["totalAmount"].(float64),
		Currency:    doc["currency"].(string),
	}

	items := doc["items"].([]any)
	record.Items = make([]types.OrderItem, len(items))
	for i, raw := range items {
		item := raw.(map[string]any)
		record.Items[i] = types.OrderItem{
			ProductID:   item["productId"].(string),
			ProductName: item["productName"].(string),
			Quantity:    int(item["quantity"].(float64)),
			UnitPrice:   item["unitPrice"].(float64),
			TotalPrice:  item["totalPrice"].(float64),
		}
	}

	if status, ok := doc["status"].(string); ok {
		record.Status = types.OrderStatus(status)
	}
	if addr, ok := doc["shippingAddress"].(map[string]any); ok {
		record.ShippingAddress = decodeAddress(addr)
	}
	if method, ok := doc["paymentMethod"].(string); ok {
		record.PaymentMethod = &method
	}
	if discount, ok := doc["discountAmount"].(float64); ok {
		record.DiscountAmount = &discount
	}
	if shipping, ok := doc["shippingCost"].(float64); ok {
		record.ShippingCost = &shipping
	}
	record.Extra = extraFields(doc, orderSchema)

	return record, nil
}

func f64(v float64) *float64 {
	return &v
}
