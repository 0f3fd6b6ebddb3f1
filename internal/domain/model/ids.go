package model

import (
	"strings"

	"github.com/google/uuid"
)

func newID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:12]
}

// NewOrderID returns a fresh order identifier.
func NewOrderID() string { return newID("order") }

// NewBillID returns a fresh bill identifier.
func NewBillID() string { return newID("bill") }

// NewUserID returns a fresh user identifier.
func NewUserID() string { return newID("user") }

// NewMenuItemID returns a fresh catalog item identifier.
func NewMenuItemID() string { return newID("item") }
