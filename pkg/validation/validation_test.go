package validation

import (
	"testing"

	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructWithCustomTags(t *testing.T) {
	v := New(logger.Nop())

	type sample struct {
		Day      string `validate:"required,ymd"`
		From     string `validate:"omitempty,timestamp"`
		Modifier string `validate:"omitempty,modifier_type"`
		Discount string `validate:"omitempty,discount_type"`
		Status   string `validate:"omitempty,reservation_status"`
		Role     string `validate:"omitempty,user_role"`
	}

	tests := []struct {
		name      string
		in        sample
		wantField string
	}{
		{"valid", sample{Day: "2024-01-06", From: "2024-01-01T00:00:00Z", Modifier: "percent", Discount: "fixed", Status: "checked_in", Role: "staff"}, ""},
		{"bad day", sample{Day: "06/01/2024"}, "Day"},
		{"bad timestamp", sample{Day: "2024-01-06", From: "soon"}, "From"},
		{"bad modifier", sample{Day: "2024-01-06", Modifier: "multiply"}, "Modifier"},
		{"bad discount", sample{Day: "2024-01-06", Discount: "bogo"}, "Discount"},
		{"bad status", sample{Day: "2024-01-06", Status: "no_show"}, "Status"},
		{"bad role", sample{Day: "2024-01-06", Role: "owner"}, "Role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, &tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestPermissionKeys(t *testing.T) {
	v := New(logger.Nop())

	ok := model.RegisterRequest{
		Email: "staff@example.com", Password: "longenough", Name: "Staff",
		Permissions: map[string]bool{model.PermRooms: true},
	}
	assert.NoError(t, Struct(v, &ok))

	bad := ok
	bad.Permissions = map[string]bool{"root": true}
	assert.Error(t, Struct(v, &bad))
}

func TestValidationErrorsDetails(t *testing.T) {
	errs := ValidationErrors{{Field: "Name", Message: "Name is required"}}

	assert.Equal(t, map[string]any{"Name": "Name is required"}, errs.Details())
	assert.Contains(t, errs.Error(), "1 error(s)")
}
