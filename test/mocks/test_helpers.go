package mocks

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

// testSigningKey signs tokens for tests; the client never verifies them.
var testSigningKey = []byte("cars-front-test-key")

// CreateTestToken returns a signed token carrying the given claims.
func CreateTestToken(claims jwt.MapClaims) string {
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	if err != nil {
		panic(fmt.Sprintf("sign test token: %v", err))
	}
	return token
}

// CreateStaffToken returns a token for an active account with role.
func CreateStaffToken(id any, role domain.Role) string {
	return CreateTestToken(jwt.MapClaims{
		"id":       id,
		"username": "staff",
		"email":    "staff@example.com",
		"role":     string(role),
		"status":   string(domain.AccountActive),
	})
}

// CustomerBlock builds a userInfo block in the format the create form writes.
func CustomerBlock(name, vehicle, phone, location, issue string, urgency domain.Urgency) string {
	return domain.ComposeCustomerInfo(domain.CustomerFields{
		Name:     name,
		Vehicle:  vehicle,
		Phone:    phone,
		Location: location,
	}, issue, urgency)
}

// CreateTestRequest creates a sample request for testing.
func CreateTestRequest(id string, status domain.RequestStatus) domain.ServiceRequest {
	return domain.ServiceRequest{
		ID:       domain.ID(id),
		Title:    "Flat tire",
		UserInfo: CustomerBlock("Jane Doe", "Toyota Corolla 2020", "555-1000", "Main St", "Flat tire", domain.UrgencyHigh),
		Status:   status,
	}
}

// CreateTestAccount creates a sample account for testing.
func CreateTestAccount(id string, role domain.Role, status domain.AccountStatus) domain.Account {
	return domain.Account{
		ID:       domain.ID(id),
		Username: "user" + id,
		Email:    "user" + id + "@example.com",
		Role:     role,
		Status:   status,
	}
}
