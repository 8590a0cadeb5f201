package services

import (
	"context"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

// PlaceholderImage is shown for requests without a photo.
const PlaceholderImage = "https://placehold.co/600x400?text=No+Photo"

type CardAction func(ctx context.Context, id domain.ID) error

// CardActions are optional; a nil action is not offered on the card.
type CardActions struct {
	Resolve CardAction
	Assign  CardAction
	Delete  CardAction
}

// RequestCard is the read model for a single request.
type RequestCard struct {
	Request  domain.ServiceRequest
	Customer domain.CustomerInfo
	actions  CardActions
}

func NewRequestCard(req domain.ServiceRequest, actions CardActions) RequestCard {
	return RequestCard{
		Request:  req,
		Customer: domain.ParseCustomerInfo(req.UserInfo),
		actions:  actions,
	}
}

func (c RequestCard) ID() domain.ID {
	return c.Request.ID
}

func (c RequestCard) Status() domain.RequestStatus {
	return c.Request.Status
}

func (c RequestCard) Urgency() domain.Urgency {
	return c.Customer.Urgency
}

func (c RequestCard) ImageURL() string {
	if c.Request.ImageURL == "" {
		return PlaceholderImage
	}
	return c.Request.ImageURL
}

func (c RequestCard) HasResolve() bool { return c.actions.Resolve != nil }
func (c RequestCard) HasAssign() bool  { return c.actions.Assign != nil }
func (c RequestCard) HasDelete() bool  { return c.actions.Delete != nil }

// CanResolve and CanAssign are false once the request is completed.
func (c RequestCard) CanResolve() bool {
	return c.HasResolve() && !c.Request.IsCompleted()
}

func (c RequestCard) CanAssign() bool {
	return c.HasAssign() && !c.Request.IsCompleted()
}

func (c RequestCard) CanDelete() bool {
	return c.HasDelete()
}

// AssignLabel reads "Reassign" once an operator is attached.
func (c RequestCard) AssignLabel() string {
	if c.Request.IsAssigned() {
		return "Reassign"
	}
	return "Assign"
}

func (c RequestCard) Resolve(ctx context.Context) error {
	if !c.CanResolve() {
		if c.Request.IsCompleted() {
			return domain.ErrRequestCompleted
		}
		return ErrActionUnavailable
	}
	return c.actions.Resolve(ctx, c.Request.ID)
}

func (c RequestCard) Assign(ctx context.Context) error {
	if !c.CanAssign() {
		if c.Request.IsCompleted() {
			return domain.ErrRequestCompleted
		}
		return ErrActionUnavailable
	}
	return c.actions.Assign(ctx, c.Request.ID)
}

func (c RequestCard) Delete(ctx context.Context) error {
	if !c.CanDelete() {
		return ErrActionUnavailable
	}
	return c.actions.Delete(ctx, c.Request.ID)
}
