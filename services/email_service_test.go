package services

import (
	"car_configurator_server/structs/tables"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		31_650_000: "31,650,000",
		-1_500:     "-1,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatPrice(in))
	}
}

func TestDisabledEmailIsNoop(t *testing.T) {
	svc := NewEmailService(testLogger(), testConfig())
	assert.False(t, svc.Enabled())

	user := &tables.User{ID: uuid.New(), Email: "jane@example.com", Name: "Jane"}
	quote := &tables.Quote{ID: uuid.New(), Reference: "Q-ABC234", Total: 31_650_000}

	assert.NoError(t, svc.SendQuoteConfirmation(context.Background(), user, quote))
	assert.NoError(t, svc.SendWelcome(context.Background(), user))
}
