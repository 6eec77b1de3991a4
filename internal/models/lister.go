package models

import (
	"encoding/json"
	"strings"
)

// ListerKind discriminates who posted a listing.
type ListerKind int

const (
	ListerUnknown ListerKind = iota
	ListerDealer
	ListerUser
)

func (k ListerKind) String() string {
	switch k {
	case ListerDealer:
		return "dealer"
	case ListerUser:
		return "user"
	default:
		return "unknown"
	}
}

// Lister is the resolved form of a car's polymorphic lister reference.
// Kind is ListerUnknown (with empty ID) when neither reference is usable.
type Lister struct {
	Kind ListerKind
	ID   string
}

// ResolveLister resolves the dealer-or-user reference of a car.
// The explicit listerType tag wins when it names a populated reference;
// otherwise the kind is inferred from whichever reference field carries an ID,
// dealer first. Both empty yields ListerUnknown.
func ResolveLister(c *Car) Lister {
	dealerID := refID(c.Dealer)
	userID := refID(c.User)

	switch strings.ToLower(strings.TrimSpace(c.ListerType)) {
	case "dealer":
		if dealerID != "" {
			return Lister{Kind: ListerDealer, ID: dealerID}
		}
	case "user":
		if userID != "" {
			return Lister{Kind: ListerUser, ID: userID}
		}
	}

	if dealerID != "" {
		return Lister{Kind: ListerDealer, ID: dealerID}
	}
	if userID != "" {
		return Lister{Kind: ListerUser, ID: userID}
	}
	return Lister{Kind: ListerUnknown}
}

// refID extracts an identifier from a raw lister reference, which upstream
// sends either as a plain string or as an object with `_id`/`id`.
func refID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		ID    string `json:"_id"`
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.ID != "" {
			return strings.TrimSpace(obj.ID)
		}
		return strings.TrimSpace(obj.AltID)
	}
	return ""
}
