package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"required,min=2"`
	Code  string  `json:"code" validate:"number"`
	Role  *string `json:"role" validate:"omitempty,oneof=ADMIN OPERATOR"`
}

func TestStructUsesJSONNames(t *testing.T) {
	role := "BOSS"
	var verr Error
	Struct(&verr, sample{Email: "nope", Name: "a", Code: "12a", Role: &role})

	err := verr.Err()
	require.Error(t, err)

	issues, ok := Issues(err)
	require.True(t, ok)
	fields := map[string]string{}
	for _, issue := range issues {
		fields[issue.Field] = issue.Reason
	}
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Equal(t, "must be at least 2 characters", fields["name"])
	assert.Equal(t, "must contain only digits", fields["code"])
	assert.Equal(t, "must be one of ADMIN, OPERATOR", fields["role"])
}

func TestErrNilWithoutIssues(t *testing.T) {
	var verr Error
	Struct(&verr, sample{Email: "a@b.co", Name: "Ana", Code: "123"})
	assert.NoError(t, verr.Err())
}

func TestIssuesAreSortedByField(t *testing.T) {
	var verr Error
	verr.Add("salary", "is required")
	verr.Add("firstName", "is required")
	issues, ok := Issues(verr.Err())
	require.True(t, ok)
	assert.Equal(t, "firstName", issues[0].Field)
	assert.Equal(t, "salary", issues[1].Field)
}

func TestNumberAcceptsOnlyDigits(t *testing.T) {
	tests := []struct {
		code string
		ok   bool
	}{
		{"1020304050", true},
		{"-123", false},
		{"+123", false},
		{"12.5", false},
		{"1e5", false},
		{"12 34", false},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			var verr Error
			Struct(&verr, sample{Email: "a@b.co", Name: "Ana", Code: tc.code})
			if tc.ok {
				assert.NoError(t, verr.Err())
				return
			}
			issues, ok := Issues(verr.Err())
			require.True(t, ok)
			assert.Equal(t, []Issue{{Field: "code", Reason: "must contain only digits"}}, issues)
		})
	}
}
