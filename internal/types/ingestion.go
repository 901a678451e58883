package types

import (
	"encoding/json"
	"strings"
)

// ====== ENUMS ======

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// OrderStatuses lists every accepted status value, in declaration order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ====== CORE TYPES ======

// Address is the shared postal shape used by both record kinds.
// Every field is optional; pointers distinguish "absent" from an explicit
// empty string, which callers do send and expect echoed back.
type Address struct {
	Street  *string `json:"street,omitempty" bson:"street,omitempty"`
	City    *string `json:"city,omitempty" bson:"city,omitempty"`
	State   *string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Country *string `json:"country,omitempty" bson:"country,omitempty"`
}

// CustomerRecord is a customer payload that has passed schema validation.
// Declared fields are typed; anything else the caller sent rides along in
// Extra and is merged back on output, so unknown keys survive ingestion
// and storage untouched.
type CustomerRecord struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            *string        `json:"phone,omitempty"`
	Address          *Address       `json:"address,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	RegistrationDate *string        `json:"registrationDate,omitempty"`
	LastLoginDate    *string        `json:"lastLoginDate,omitempty"`
	Extra            map[string]any `json:"-"`
}

// Document flattens the record into the map that is stored and echoed.
// Declared fields win over Extra on key collision.
func (r *CustomerRecord) Document() map[string]any {
	doc := make(map[string]any, len(r.Extra)+8)
	for k, v := range r.Extra {
		doc[k] = v
	}
	doc["id"] = r.ID
	doc["name"] = r.Name
	doc["email"] = r.Email
	if r.Phone != nil {
		doc["phone"] = *r.Phone
	}
	if r.Address != nil {
		doc["address"] = r.Address
	}
	if r.Tags != nil {
		doc["tags"] = r.Tags
	}
	if r.RegistrationDate != nil {
		doc["registrationDate"] = *r.RegistrationDate
	}
	if r.LastLoginDate != nil {
		doc["lastLoginDate"] = *r.LastLoginDate
	}
	return doc
}

func (r *CustomerRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}

type OrderItem struct {
	ProductID   string  `json:"productId" bson:"productId"`
	ProductName string  `json:"productName" bson:"productName"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice" bson:"totalPrice"`
}

// OrderRecord is an order payload that has passed schema validation.
// Passthrough semantics match CustomerRecord.
type OrderRecord struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"customerId"`
	OrderDate       string         `json:"orderDate"`
	Items           []OrderItem    `json:"items"`
	TotalAmount     float64        `json:"totalAmount"`
	Currency        string         `json:"currency"`
	Status          OrderStatus    `json:"status,omitempty"`
	ShippingAddress *Address       `json:"shippingAddress,omitempty"`
	PaymentMethod   *string        `json:"paymentMethod,omitempty"`
	DiscountAmount  *float64       `json:"discountAmount,omitempty"`
	ShippingCost    *float64       `json:"shippingCost,omitempty"`
	Extra           map[string]any `json:"-"`
}

func (r *OrderRecord) Document() map[string]any {
	doc := make(map[string]any, len(r.Extra)+11)
	for k, v := range r.Extra {
		doc[k] = v
	}
	doc["id"] = r.ID
	doc["customerId"] = r.CustomerID
	doc["orderDate"] = r.OrderDate
	doc["items"] = r.Items
	doc["totalAmount"] = r.TotalAmount
	doc["currency"] = r.Currency
	if r.Status != "" {
		doc["status"] = r.Status
	}
	if r.ShippingAddress != nil {
		doc["shippingAddress"] = r.ShippingAddress
	}
	if r.PaymentMethod != nil {
		doc["paymentMethod"] = *r.PaymentMethod
	}
	if r.DiscountAmount != nil {
		doc["discountAmount"] = *r.DiscountAmount
	}
	if r.ShippingCost != nil {
		doc["shippingCost"] = *r.ShippingCost
	}
	return doc
}

func (r *OrderRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}

// ====== VALIDATION ERRORS ======

// FieldError names one schema violation: where it happened, why, and the
// machine-readable rule that fired.
type FieldError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

func (e FieldError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return strings.Join(e.Path, ".") + ": " + e.Message
}

// FieldErrors collects every violation found in one validation pass.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	switch len(e) {
	case 0:
		return "no validation errors"
	case 1:
		return e[0].Error()
	}
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// ====== STORAGE ERRORS ======

type StorageErrorKind string

const (
	StorageErrConnectivity StorageErrorKind = "connectivity"
	StorageErrPermission   StorageErrorKind = "permission"
	StorageErrUnspecified  StorageErrorKind = "unspecified"
)

// StorageError wraps a document-store failure with a coarse classification.
// The kind is for operator diagnostics only; callers translate any storage
// failure into the same generic client response.
type StorageError struct {
	Kind StorageErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	return "storage " + string(e.Kind) + " error: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ====== RESPONSE TYPES ======

type IngestResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ErrorResponse struct {
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors,omitempty"`
}
