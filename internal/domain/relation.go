// Package domain holds the CRM entity model and the composed view
// aggregates. Aggregates are read-only snapshots assembled per request;
// they are never persisted and have no identity of their own.
package domain

import (
	"encoding/json"
	"fmt"
)

// RelationType discriminates the polymorphic attachment target of
// assignees, activities, and addresses.
type RelationType string

// Known relation types. Resolution sites switch exhaustively over these;
// anything else is rejected at decode time instead of resolving to a
// silent null.
const (
	RelationLead     RelationType = "lead"
	RelationContact  RelationType = "contact"
	RelationDeal     RelationType = "deal"
	RelationCustomer RelationType = "customer"
	RelationActivity RelationType = "activity"
)

// ParseRelationType validates a wire value.
func ParseRelationType(s string) (RelationType, error) {
	switch rt := RelationType(s); rt {
	case RelationLead, RelationContact, RelationDeal, RelationCustomer, RelationActivity:
		return rt, nil
	default:
		return "", fmt.Errorf("unrecognized relation type %q", s)
	}
}

// IsValid reports whether rt is one of the known relation types.
func (rt RelationType) IsValid() bool {
	_, err := ParseRelationType(string(rt))
	return err == nil
}

// UnmarshalJSON rejects unknown relation types at the decode boundary.
func (rt *RelationType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRelationType(s)
	if err != nil {
		return err
	}
	*rt = parsed
	return nil
}

// RelationRef is a (type, id) pair used for polymorphic attachment of
// secondary records to any of several primary entity kinds.
type RelationRef struct {
	Type RelationType `json:"relation_type"`
	ID   int64        `json:"relation_id"`
}

// Ref is shorthand for constructing a RelationRef.
func Ref(t RelationType, id int64) RelationRef {
	return RelationRef{Type: t, ID: id}
}

// RelatedEntity is the resolved target of a RelationRef: exactly one of the
// pointers is non-nil, matching Type.
type RelatedEntity struct {
	Type     RelationType `json:"type"`
	Lead     *Lead        `json:"lead,omitempty"`
	Contact  *Contact     `json:"contact,omitempty"`
	Deal     *Deal        `json:"deal,omitempty"`
	Customer *Customer    `json:"customer,omitempty"`
	Activity *Activity    `json:"activity,omitempty"`
}
