package client

import (
	"context"

	"github.com/pr1me-admin/internal/rpc/contract"
)

// RootClient calls operations on the API root.
type RootClient struct{ conn *conn }

// Get is the root "$get": the caller's own profile.
func (c RootClient) Get(ctx context.Context, s Session) (contract.Profile, error) {
	return call(ctx, c.conn, contract.Root, s, contract.Empty{})
}

// AuthClient calls the auth resource.
type AuthClient struct{ conn *conn }

func (c AuthClient) Login(ctx context.Context, s Session, in contract.LoginInput) (contract.LoginOutput, error) {
	return call(ctx, c.conn, contract.Auth.Login, s, in)
}

func (c AuthClient) Logout(ctx context.Context, s Session) (contract.SuccessOutput, error) {
	return call(ctx, c.conn, contract.Auth.Logout, s, contract.Empty{})
}

// CheckAdmin asks whether the credentials belong to an enabled administrator.
func (c AuthClient) CheckAdmin(ctx context.Context, s Session, in contract.CheckAdminInput) (contract.CheckAdminOutput, error) {
	return call(ctx, c.conn, contract.Auth.CheckAdmin, s, in)
}

// UserClient calls the user resource.
type UserClient struct{ conn *conn }

func (c UserClient) GetProfile(ctx context.Context, s Session) (contract.Profile, error) {
	return call(ctx, c.conn, contract.User.GetProfile, s, contract.Empty{})
}

func (c UserClient) UpdateProfile(ctx context.Context, s Session, in contract.UpdateProfileInput) (contract.SuccessOutput, error) {
	return call(ctx, c.conn, contract.User.UpdateProfile, s, in)
}

// ResourceClient calls a creatable, listable resource.
type ResourceClient[CreateIn, CreateOut, ListOut any] struct {
	conn *conn
	res  contract.Resource[CreateIn, CreateOut, ListOut]
}

func (c ResourceClient[CreateIn, CreateOut, ListOut]) Create(ctx context.Context, s Session, in CreateIn) (CreateOut, error) {
	return call(ctx, c.conn, c.res.Create, s, in)
}

func (c ResourceClient[CreateIn, CreateOut, ListOut]) List(ctx context.Context, s Session) (ListOut, error) {
	return call(ctx, c.conn, c.res.List, s, contract.Empty{})
}

// ListClient calls a read-only resource.
type ListClient[ListOut any] struct {
	conn *conn
	res  contract.ListResource[ListOut]
}

func (c ListClient[ListOut]) List(ctx context.Context, s Session) (ListOut, error) {
	return call(ctx, c.conn, c.res.List, s, contract.Empty{})
}
