package contract

import "net/http"

// Role names mirrored from the user store; kept here so the contract has no
// dependency on server packages.
const (
	roleAdmin      = "admin"
	roleAccounting = "accounting"
	roleMerchant   = "merchant"
)

// Root is the "$get" operation on the API root: the caller's own profile.
var Root = Endpoint[Empty, Profile]{
	Operation: "$get", Method: http.MethodGet, Path: "/",
}

var Auth = struct {
	Login      Endpoint[LoginInput, LoginOutput]
	Logout     Endpoint[Empty, SuccessOutput]
	CheckAdmin Endpoint[CheckAdminInput, CheckAdminOutput]
}{
	Login: Endpoint[LoginInput, LoginOutput]{
		Resource: "auth", Operation: "login", Method: http.MethodPost, Path: "/auth/login", Public: true,
	},
	Logout: Endpoint[Empty, SuccessOutput]{
		Resource: "auth", Operation: "logout", Method: http.MethodPost, Path: "/auth/logout",
	},
	CheckAdmin: Endpoint[CheckAdminInput, CheckAdminOutput]{
		Resource: "auth", Operation: "checkAdmin", Method: http.MethodPost, Path: "/auth/checkAdmin", Public: true,
	},
}

var User = struct {
	GetProfile    Endpoint[Empty, Profile]
	UpdateProfile Endpoint[UpdateProfileInput, SuccessOutput]
}{
	GetProfile: Endpoint[Empty, Profile]{
		Resource: "user", Operation: "getProfile", Method: http.MethodGet, Path: "/user/getProfile",
	},
	UpdateProfile: Endpoint[UpdateProfileInput, SuccessOutput]{
		Resource: "user", Operation: "updateProfile", Method: http.MethodPost, Path: "/user/updateProfile",
	},
}

var Todos = Resource[TodoInput, MessageOutput, TodoList]{
	Create: Endpoint[TodoInput, MessageOutput]{
		Resource: "todo", Operation: "create", Method: http.MethodPost, Path: "/todo/create",
	},
	List: Endpoint[Empty, TodoList]{
		Resource: "todo", Operation: "list", Method: http.MethodGet, Path: "/todo/list",
	},
}

var Withdrawals = ListResource[WithdrawalList]{
	List: Endpoint[Empty, WithdrawalList]{
		Resource: "withdrawal", Operation: "list", Method: http.MethodGet, Path: "/withdrawal/list",
		Roles: []string{roleAdmin, roleAccounting},
	},
}

var Merchants = ListResource[MerchantList]{
	List: Endpoint[Empty, MerchantList]{
		Resource: "merchant", Operation: "list", Method: http.MethodGet, Path: "/merchant/list",
		Roles: []string{roleAdmin, roleMerchant},
	},
}

// All lists every endpoint of this contract version.
func All() []Descriptor {
	return []Descriptor{
		Root.Descriptor(),
		Auth.Login.Descriptor(),
		Auth.Logout.Descriptor(),
		Auth.CheckAdmin.Descriptor(),
		User.GetProfile.Descriptor(),
		User.UpdateProfile.Descriptor(),
		Todos.Create.Descriptor(),
		Todos.List.Descriptor(),
		Withdrawals.List.Descriptor(),
		Merchants.List.Descriptor(),
	}
}
