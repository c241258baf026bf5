package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Domain-specific ID types
type (
	OrderID         ID
	CustomerID      ID
	InventoryItemID ID
	DatasetID       ID
)

// String conversions for domain IDs
func (id OrderID) String() string         { return ID(id).String() }
func (id CustomerID) String() string      { return ID(id).String() }
func (id InventoryItemID) String() string { return ID(id).String() }
func (id DatasetID) String() string       { return ID(id).String() }

// ParseDatasetID parses a string into DatasetID
func ParseDatasetID(s string) (DatasetID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	return DatasetID(s), nil
}

// ParseInventoryItemID parses a string into InventoryItemID
func ParseInventoryItemID(s string) (InventoryItemID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("inventory item ID cannot be empty")
	}
	return InventoryItemID(s), nil
}
