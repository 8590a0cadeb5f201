package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/services"
	"github.com/AssiaOU26/Cars-front/test/mocks"
)

func noop(context.Context, domain.ID) error { return nil }

func TestRenderCard(t *testing.T) {
	req := mocks.CreateTestRequest("4", domain.StatusCompleted)
	req.UserInfo = mocks.CustomerBlock("Jane", "Ford Focus 2015", "555", "Hwy 1", "Overheating", domain.UrgencyEmergency)
	req.ContactName = "Bob's Towing"
	req.UserName = "ops"
	card := services.NewRequestCard(req, services.CardActions{Resolve: noop, Assign: noop})

	var out bytes.Buffer
	RenderCard(&out, card)

	text := out.String()
	assert.Contains(t, text, "#4 [Completed]")
	assert.Contains(t, text, "EMERGENCY")
	assert.Contains(t, text, "Jane")
	assert.Contains(t, text, "operator: Bob's Towing (by ops)")
	assert.Contains(t, text, services.PlaceholderImage)
	assert.Contains(t, text, "actions: (resolve) (reassign)")
}

func TestRenderCards_Empty(t *testing.T) {
	var out bytes.Buffer
	RenderCards(&out, nil)
	assert.Contains(t, out.String(), "No requests found.")
}

func TestRenderUsers(t *testing.T) {
	users := []domain.Account{
		mocks.CreateTestAccount("3", domain.RoleUser, ""),
		mocks.CreateTestAccount("2", domain.RoleAdmin, domain.AccountInactive),
	}
	actions := func(a domain.Account) []services.UserAction {
		if a.ID == "3" {
			return []services.UserAction{{Label: "Approve", Target: domain.AccountActive}}
		}
		return nil
	}

	var out bytes.Buffer
	RenderUsers(&out, users, actions)

	text := out.String()
	assert.Contains(t, text, "#3")
	assert.Contains(t, text, "actions: approve")
	assert.Contains(t, text, string(domain.AccountInactive))
}

func TestRenderPending(t *testing.T) {
	var out bytes.Buffer
	RenderPending(&out, domain.Identity{Email: "jo@example.com"})
	assert.Contains(t, out.String(), "Hi jo@example.com")
}

func TestToaster(t *testing.T) {
	var out bytes.Buffer
	toast := NewToaster(&out)

	toast.Success("saved")
	toast.Error("failed")

	assert.Equal(t, "✔ saved\n✖ failed\n", out.String())
}
