package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateRegister(t *testing.T) {
	v := New()

	valid := RegisterRequest{
		Username: "sara",
		Email:    "sara@example.com",
		Password: "secret-pass",
		Role:     "student",
	}

	tests := []struct {
		name    string
		mutate  func(r *RegisterRequest)
		wantErr string
	}{
		{name: "valid student", mutate: func(r *RegisterRequest) {}},
		{
			name:   "valid teacher",
			mutate: func(r *RegisterRequest) { r.Role = "teacher"; r.Specialization = primitive.NewObjectID().Hex() },
		},
		{
			name:    "missing email",
			mutate:  func(r *RegisterRequest) { r.Email = "" },
			wantErr: "email",
		},
		{
			name:    "malformed email",
			mutate:  func(r *RegisterRequest) { r.Email = "not-an-email" },
			wantErr: "email",
		},
		{
			name:    "short password",
			mutate:  func(r *RegisterRequest) { r.Password = "short" },
			wantErr: "password",
		},
		{
			name:    "unknown role",
			mutate:  func(r *RegisterRequest) { r.Role = "principal" },
			wantErr: "role",
		},
		{
			name:    "teacher without specialization",
			mutate:  func(r *RegisterRequest) { r.Role = "teacher" },
			wantErr: "specialization",
		},
		{
			name:    "teacher with malformed specialization id",
			mutate:  func(r *RegisterRequest) { r.Role = "teacher"; r.Specialization = "not-hex" },
			wantErr: "specialization",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := v.ValidateRegister(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var ve ValidationErrors
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve)
			assert.Equal(t, tt.wantErr, ve[0].Field)
		})
	}
}

func TestObjectIDRule(t *testing.T) {
	v := New()

	ok := CommentCreateRequest{Content: "nice", Video: primitive.NewObjectID().Hex()}
	assert.NoError(t, v.Validate(&ok))

	bad := CommentCreateRequest{Content: "nice", Video: "zzz"}
	err := v.Validate(&bad)
	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "video", ve[0].Field)
	assert.Equal(t, "objectid", ve[0].Rule)
}

func TestFieldNamesUseJSONTags(t *testing.T) {
	v := New()

	err := v.Validate(&SpecializationCreateRequest{Name: "x"})
	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "specializationName", ve[0].Field)
}
