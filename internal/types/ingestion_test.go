package types

import (
	"encoding/json"
	"testing"
)

func TestCustomerRecordDocumentMerge(t *testing.T) {
	emptyPhone := ""
	record := &CustomerRecord{
		ID:    "cust_1",
		Name:  "A",
		Email: "a@example.com",
		Phone: &emptyPhone,
		Extra: map[string]any{
			"loyalty_tier": "gold",
			// A passthrough key colliding with a declared field must not
			// shadow the validated value.
			"email": "spoofed@example.com",
		},
	}

	doc := record.Document()
	if doc["email"] != "a@example.com" {
		t.Errorf("declared field must win over passthrough: %v", doc["email"])
	}
	if doc["loyalty_tier"] != "gold" {
		t.Errorf("passthrough field lost: %v", doc)
	}
	if phone, present := doc["phone"]; !present || phone != "" {
		t.Errorf("explicit empty phone must be kept: %v", doc)
	}
	if _, present := doc["registrationDate"]; present {
		t.Error("absent optional fields must not appear in the document")
	}
}

func TestCustomerRecordMarshalMatchesDocument(t *testing.T) {
	record := &CustomerRecord{
		ID:    "cust_1",
		Name:  "A",
		Email: "a@example.com",
		Extra: map[string]any{"source": "shopify"},
	}

	raw, err := json.Marshal(record)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out["source"] != "shopify" || out["id"] != "cust_1" {
		t.Errorf("marshal dropped fields: %v", out)
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range OrderStatuses {
		if !status.IsValid() {
			t.Errorf("%q should be valid", status)
		}
	}
	if OrderStatus("archived").IsValid() {
		t.Error("unknown status accepted")
	}
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{
		{Path: []string{"items", "0", "quantity"}, Message: "too small", Code: "too_small"},
		{Path: []string{"currency"}, Message: "wrong length", Code: "too_big"},
	}
	want := "items.0.quantity: too small; currency: wrong length"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
