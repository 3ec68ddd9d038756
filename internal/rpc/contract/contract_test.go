package contract

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_IsValid(t *testing.T) {
	require.NoError(t, Validate(All()))
}

// The declared surface of v1. Any change here is a contract change.
func TestAll_Snapshot(t *testing.T) {
	want := []string{
		"GET /api/v1/ (contract.Empty) -> contract.Profile",
		"POST /api/v1/auth/login (contract.LoginInput) -> contract.LoginOutput",
		"POST /api/v1/auth/logout (contract.Empty) -> contract.SuccessOutput",
		"POST /api/v1/auth/checkAdmin (contract.CheckAdminInput) -> contract.CheckAdminOutput",
		"GET /api/v1/user/getProfile (contract.Empty) -> contract.Profile",
		"POST /api/v1/user/updateProfile (contract.UpdateProfileInput) -> contract.SuccessOutput",
		"POST /api/v1/todo/create (contract.TodoInput) -> contract.MessageOutput",
		"GET /api/v1/todo/list (contract.Empty) -> contract.TodoList",
		"GET /api/v1/withdrawal/list (contract.Empty) -> contract.WithdrawalList",
		"GET /api/v1/merchant/list (contract.Empty) -> contract.MerchantList",
	}
	var got []string
	for _, d := range All() {
		got = append(got, d.String())
	}
	assert.Equal(t, want, got)
}

func TestEndpoint_Name(t *testing.T) {
	assert.Equal(t, "$get", Root.Name())
	assert.Equal(t, "auth.login", Auth.Login.Name())
	assert.Equal(t, "auth.checkAdmin", Auth.CheckAdmin.Name())
	assert.Equal(t, "todo.create", Todos.Create.Name())
	assert.Equal(t, "withdrawal.list", Withdrawals.List.Name())
}

func TestEndpoint_Access(t *testing.T) {
	assert.True(t, Auth.Login.Public)
	assert.True(t, Auth.CheckAdmin.Public)
	assert.False(t, Auth.Logout.Public)
	assert.False(t, User.GetProfile.Public)
	assert.ElementsMatch(t, []string{"admin", "accounting"}, Withdrawals.List.Roles)
	assert.ElementsMatch(t, []string{"admin", "merchant"}, Merchants.List.Roles)
}

func TestDescriptor_RolesAreCopied(t *testing.T) {
	d := Withdrawals.List.Descriptor()
	d.Roles[0] = "mutated"
	assert.Equal(t, "admin", Withdrawals.List.Roles[0])
}

func TestValidate_DuplicateName(t *testing.T) {
	ds := []Descriptor{Auth.Login.Descriptor(), Auth.Login.Descriptor()}
	assert.ErrorContains(t, Validate(ds), "duplicate endpoint name")
}

func TestValidate_DuplicateRoute(t *testing.T) {
	other := Endpoint[LoginInput, LoginOutput]{Resource: "auth", Operation: "signin", Method: http.MethodPost, Path: "/auth/login"}
	ds := []Descriptor{Auth.Login.Descriptor(), other.Descriptor()}
	assert.ErrorContains(t, Validate(ds), "duplicate route")
}

func TestValidate_GetWithInput(t *testing.T) {
	bad := Endpoint[LoginInput, LoginOutput]{Resource: "auth", Operation: "peek", Method: http.MethodGet, Path: "/auth/peek"}
	assert.ErrorContains(t, Validate([]Descriptor{bad.Descriptor()}), "must take Empty input")
}

func TestValidate_BadMethodAndPath(t *testing.T) {
	del := Endpoint[Empty, SuccessOutput]{Resource: "todo", Operation: "delete", Method: http.MethodDelete, Path: "/todo/delete"}
	assert.ErrorContains(t, Validate([]Descriptor{del.Descriptor()}), "unsupported method")

	rel := Endpoint[Empty, SuccessOutput]{Resource: "todo", Operation: "x", Method: http.MethodGet, Path: "todo/x"}
	assert.ErrorContains(t, Validate([]Descriptor{rel.Descriptor()}), "must start with /")
}

func TestValidate_NonStructShapes(t *testing.T) {
	bad := Endpoint[Empty, string]{Resource: "x", Operation: "y", Method: http.MethodGet, Path: "/x/y"}
	assert.ErrorContains(t, Validate([]Descriptor{bad.Descriptor()}), "must be structs")
}

func TestValidate_PublicWithRoles(t *testing.T) {
	bad := Endpoint[Empty, Profile]{Resource: "x", Operation: "y", Method: http.MethodGet, Path: "/x/y", Public: true, Roles: []string{"admin"}}
	assert.ErrorContains(t, Validate([]Descriptor{bad.Descriptor()}), "cannot require roles")
}

func TestDescriptor_Types(t *testing.T) {
	d := Auth.CheckAdmin.Descriptor()
	assert.Equal(t, reflect.TypeOf((*CheckAdminInput)(nil)).Elem(), d.Input)
	assert.Equal(t, reflect.TypeOf((*CheckAdminOutput)(nil)).Elem(), d.Output)
	assert.Equal(t, "checkAdmin", d.Operation())
}
