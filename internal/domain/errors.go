package domain

import "fmt"

// Typed failures surfaced by the ledger and the workflows around it. Handlers
// match on these with errors.As to pick response codes; nothing here wraps a
// storage error.

// InsufficientStockError rejects a reservation that the available pool cannot
// satisfy at the instant it is serialized.
type InsufficientStockError struct {
	EquipmentID string
	Requested   int32
	Available   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for equipment %s: requested %d, available %d",
		e.EquipmentID, e.Requested, e.Available)
}

// EquipmentUnavailableError rejects a reservation before any counter is
// touched when the equipment's manual status override is not AVAILABLE.
type EquipmentUnavailableError struct {
	EquipmentID string
	Status      EquipmentStatus
}

func (e *EquipmentUnavailableError) Error() string {
	return fmt.Sprintf("equipment %s is not available for rental (status %s)", e.EquipmentID, e.Status)
}

// InvalidStateError rejects a transition from a terminal or mismatched order
// status. The rejected operation mutates nothing.
type InvalidStateError struct {
	OrderID string
	Status  RentalStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("rental order %s is in state %s", e.OrderID, e.Status)
}

// InvalidAdjustmentError rejects an adjustment before any write, either for
// bad input or because it would drive a counter negative.
type InvalidAdjustmentError struct {
	EquipmentID string
	Reason      string
}

func (e *InvalidAdjustmentError) Error() string {
	return fmt.Sprintf("invalid adjustment for equipment %s: %s", e.EquipmentID, e.Reason)
}

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ReferencedByActiveOrderError blocks deleting equipment that an active rental
// order still references.
type ReferencedByActiveOrderError struct {
	EquipmentID string
}

func (e *ReferencedByActiveOrderError) Error() string {
	return fmt.Sprintf("equipment %s is referenced by an active rental order", e.EquipmentID)
}

// ValidationError rejects malformed caller input (empty order, zero quantity,
// unknown billing period).
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
