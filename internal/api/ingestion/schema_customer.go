package ingestion

import (
	"github.com/pulseboard/data-ingestor/internal/types"
)

// customerSchema mirrors the published customer ingestion contract.
// Built once; read-only afterwards.
var customerSchema = &ObjectSchema{
	Name: "CustomerIngestionPayload",
	Fields: []Field{
		{Name: "id", Type: TypeString, Required: true},
		{Name: "name", Type: TypeString, Required: true},
		{Name: "email", Type: TypeString, Required: true, Email: true},
		{Name: "phone", Type: TypeString},
		{Name: "address", Type: TypeObject, Object: addressSchema},
		{Name: "tags", Type: TypeStringArray},
		{Name: "registrationDate", Type: TypeTimestamp},
		{Name: "lastLoginDate", Type: TypeTimestamp},
	},
}

var addressSchema = &ObjectSchema{
	Name: "Address",
	Fields: []Field{
		{Name: "street", Type: TypeString},
		{Name: "city", Type: TypeString},
		{Name: "state", Type: TypeString},
		{Name: "zipCode", Type: TypeString},
		{Name: "country", Type: TypeString},
	},
}

// ValidateCustomer validates an untrusted decoded JSON value and, when it
// satisfies the contract, builds the canonical record. The record is never
// constructed on failure.
func ValidateCustomer(input any) (*types.CustomerRecord, types.FieldErrors) {
	doc, errs := customerSchema.Validate(input)
	if len(errs) > 0 {
		return nil, errs
	}

	record := &types.CustomerRecord{
		ID:    doc["id"].(string),
		Name:  doc["name"].(string),
		Email: doc["email"].(string),
	}
	if phone, ok := doc["phone"].(string); ok {
		record.Phone = &phone
	}
	if addr, ok := doc["address"].(map[string]any); ok {
		record.Address = decodeAddress(addr)
	}
	if tags, ok := doc["tags"].([]any); ok {
		record.Tags = make([]string, len(tags))
		for i, t := range tags {
			record.Tags[i] = t.(string)
		}
	}
	if reg, ok := doc["registrationDate"].(string); ok {
		record.RegistrationDate = &reg
	}
	if last, ok := doc["lastLoginDate"].(string); ok {
		record.LastLoginDate = &last
	}
	record.Extra = extraFields(doc, customerSchema)

	return record, nil
}

func decodeAddress(doc map[string]any) *types.Address {
	addr := &types.Address{}
	if v, ok := doc["street"].(string); ok {
		addr.Street = &v
	}
	if v, ok := doc["city"].(string); ok {
		addr.City = &v
	}
	if v, ok := doc["state"].(string); ok {
		addr.State = &v
	}
	if v, ok := doc["zipCode"].(string); ok {
		addr.ZipCode = &v
	}
	if v, ok := doc["country"].(string); ok {
		addr.Country = &v
	}
	return addr
}

// extraFields splits the passthrough keys out of a canonical map.
func extraFields(doc map[string]any, schema *ObjectSchema) map[string]any {
	declared := make(map[string]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		declared[f.Name] = true
	}
	var extra map[string]any
	for key, value := range doc {
		if declared[key] {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = value
	}
	return extra
}
