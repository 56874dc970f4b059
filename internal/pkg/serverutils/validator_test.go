package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loginPayload struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		payload loginPayload
		wantErr bool
	}{
		{"valid", loginPayload{EmployeeID: "EMP001", Password: "long-enough"}, false},
		{"missing employee id", loginPayload{Password: "long-enough"}, true},
		{"short password", loginPayload{EmployeeID: "EMP001", Password: "short"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
