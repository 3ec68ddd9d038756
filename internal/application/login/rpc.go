package login

import (
	"context"

	"github.com/pr1me-admin/internal/rpc/client"
	"github.com/pr1me-admin/internal/rpc/contract"
)

// RPCAdminChecker runs the administrative sign-in check on the RPC backend.
// The check is anonymous: no session exists yet. The browser's address is
// forwarded so the backend limits each admin separately.
type RPCAdminChecker struct {
	Client *client.Client
}

func (c RPCAdminChecker) CheckAdmin(ctx context.Context, userName, password string) (bool, error) {
	s := client.Session{ClientIP: RemoteIPFromContext(ctx)}
	out, err := c.Client.Auth.CheckAdmin(ctx, s, contract.CheckAdminInput{
		UserName: userName,
		Password: password,
	})
	if err != nil {
		return false, err
	}
	return out.OK, nil
}
