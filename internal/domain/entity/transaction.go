package entity

import (
	"github.com/Shubh-Pi/Transaction-management/internal/errs"
)

const maxDescriptionLen = 500

// validTypes enumerates the allowed transaction types.
var validTypes = map[string]bool{
	"received": true,
	"payment":  true,
	"print":    true,
}

// Transaction is a stored transaction record. Like Person it is an open
// JSON object: validated fields plus whatever else the client sent.
type Transaction map[string]any

// ID returns the store key for the transaction.
func (t Transaction) ID() string {
	return asString(t["id"])
}

// PersonID returns the id of the person the transaction references.
func (t Transaction) PersonID() string {
	return asString(t["personId"])
}

// BelongsTo reports whether the transaction references the given person.
func (t Transaction) BelongsTo(personID string) bool {
	pid, ok := t["personId"].(string)
	return ok && pid == personID
}

// Normalize ensures a new transaction meets all requirements, coercing
// amount to a number and sanitizing the description in place. An amount of
// zero fails the required-field check, the same as an absent one.
func (t Transaction) Normalize() error {
	if !present(t["id"]) || !present(t["personId"]) || !present(t["type"]) || !present(t["amount"]) {
		return errs.NewBadRequest("Missing required fields: id, personId, type, amount")
	}

	typ, ok := t["type"].(string)
	if !ok || !validTypes[typ] {
		return errs.NewBadRequest("Invalid transaction type. Must be: received, payment, or print")
	}

	amount, ok := parseAmount(t["amount"])
	if !ok || amount <= 0 {
		return errs.NewBadRequest("Amount must be a positive number")
	}
	t["amount"] = amount

	if present(t["description"]) {
		t["description"] = clipDescription(t["description"])
	}

	return nil
}

// Patch is a partial update for a transaction. A key that is absent from
// the map was not present in the request body and leaves the stored field
// untouched; every present key overwrites the stored value.
type Patch map[string]any

// Normalize validates the fields the patch provides, each on its own.
// Unlike create, amount is validated whenever the key is present, even
// with a zero or null value.
func (p Patch) Normalize() error {
	if v, ok := p["type"]; ok && present(v) {
		typ, isString := v.(string)
		if !isString || !validTypes[typ] {
			return errs.NewBadRequest("Invalid transaction type")
		}
	}

	if v, ok := p["amount"]; ok {
		amount, parsed := parseAmount(v)
		if !parsed || amount <= 0 {
			return errs.NewBadRequest("Amount must be a positive number")
		}
		p["amount"] = amount
	}

	if v, ok := p["description"]; ok && present(v) {
		p["description"] = clipDescription(v)
	}

	return nil
}

// Apply merges the patch over a stored transaction. Fields not named by
// the patch are preserved; the receiver and argument are left unchanged.
func (p Patch) Apply(t Transaction) Transaction {
	merged := make(Transaction, len(t)+len(p))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range p {
		merged[k] = v
	}
	return merged
}
