package domain

import (
	"fmt"
	"strings"
)

type OrderEvent string

const (
	EventPay      OrderEvent = "pay"
	EventProcess  OrderEvent = "process"
	EventSuccess  OrderEvent = "success"
	EventComplete OrderEvent = "complete"
	EventFail     OrderEvent = "fail"
	EventCancel   OrderEvent = "cancel"
)

// Effect is a side effect the orchestrator runs after a transition is committed.
type Effect int

const (
	EffectNone Effect = iota
	EffectPurchaseGameCredit
)

type transition struct {
	from   []OrderStatus
	to     OrderStatus
	guard  func(o *Order) error
	effect func(o *Order) Effect
	// satisfied lists states in which the event has nothing left to do.
	satisfied []OrderStatus
}

var transitions = map[OrderEvent]transition{
	EventPay: {
		from:      []OrderStatus{OrderStatusPending},
		to:        OrderStatusPaid,
		satisfied: []OrderStatus{OrderStatusPaid, OrderStatusProcessing, OrderStatusSucceeded, OrderStatusCompleted},
	},
	EventProcess: {
		from:      []OrderStatus{OrderStatusPending, OrderStatusPaid},
		to:        OrderStatusProcessing,
		effect:    purchaseEffect,
		satisfied: []OrderStatus{OrderStatusProcessing, OrderStatusSucceeded, OrderStatusCompleted},
	},
	EventSuccess: {
		from:      []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusProcessing},
		to:        OrderStatusSucceeded,
		satisfied: []OrderStatus{OrderStatusSucceeded, OrderStatusCompleted},
	},
	EventComplete: {
		from:      []OrderStatus{OrderStatusSucceeded},
		to:        OrderStatusCompleted,
		satisfied: []OrderStatus{OrderStatusCompleted},
	},
	EventFail: {
		from:      []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusProcessing},
		to:        OrderStatusFailed,
		guard:     requireErrorMessage,
		satisfied: []OrderStatus{OrderStatusFailed},
	},
	EventCancel: {
		from:      []OrderStatus{OrderStatusPending},
		to:        OrderStatusCancelled,
		satisfied: []OrderStatus{OrderStatusCancelled},
	},
}

func purchaseEffect(o *Order) Effect {
	if !o.OrderType.RequiresVendorPurchase() || o.HasVendorReference() {
		return EffectNone
	}
	return EffectPurchaseGameCredit
}

func requireErrorMessage(o *Order) error {
	if strings.TrimSpace(o.ErrorMessage) == "" {
		return ErrFailReasonRequired
	}
	return nil
}

func contains(list []OrderStatus, s OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// CanFire reports whether event is legal from the current status.
func (o *Order) CanFire(event OrderEvent) bool {
	t, ok := transitions[event]
	return ok && contains(t.from, o.Status)
}

// Fire applies event to the order. The status is only changed when the
// event is legal and its guard passes. ErrTransitionNoop is returned when the
// order is already in a state that satisfies the event.
func (o *Order) Fire(event OrderEvent) (Effect, error) {
	t, ok := transitions[event]
	if !ok {
		return EffectNone, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, event)
	}
	if !contains(t.from, o.Status) {
		if contains(t.satisfied, o.Status) {
			return EffectNone, ErrTransitionNoop
		}
		return EffectNone, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, o.Status)
	}
	if t.guard != nil {
		if err := t.guard(o); err != nil {
			return EffectNone, err
		}
	}

	o.Status = t.to

	if t.effect != nil {
		return t.effect(o), nil
	}
	return EffectNone, nil
}

// FailWith stores reason and fires the fail event.
func (o *Order) FailWith(reason string) error {
	prev := o.ErrorMessage
	o.ErrorMessage = reason
	_, err := o.Fire(EventFail)
	if err != nil {
		o.ErrorMessage = prev
	}
	return err
}
