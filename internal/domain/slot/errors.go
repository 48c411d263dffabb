package slot

import "github.com/BruksfildServices01/barber-slots/internal/httperr"

var (
	ErrSlotNotFound  = httperr.NotFoundErr("slot_not_found", "")
	ErrSlotTaken     = httperr.Conflict("slot_taken")
	ErrSlotExpired   = httperr.Conflict("slot_expired")
	ErrSlotOccupied  = httperr.Conflict("slot_occupied")
	ErrInvalidDate   = httperr.Validation("invalid_date")
	ErrInvalidPolicy = httperr.Validation("invalid_slot_policy")

	ErrNoMode        = httperr.Validation("batch_not_started")
	ErrInvalidMode   = httperr.Validation("invalid_batch_mode")
	ErrNotSelectable = httperr.Validation("slot_not_selectable")
	ErrNoSelection   = httperr.Validation("no_slots_selected")
	ErrPastSlot      = httperr.Validation("slot_in_past")
)
