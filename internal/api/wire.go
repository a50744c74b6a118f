//go:build wireinject

package api

import (
	"testing"

	"github.com/google/wire"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/metrics"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/keys"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewClock,
	metrics.New,
	NewSeedManager,
	keys.NewDeriver,
	signer.NewService,
	NewApprovalQueue,
	NewGate,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewApprover, NoTest)
	return new(Server), nil
}

// InitNewServerWithApprover returns a new Server instance deciding sign requests with the given approver.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithApprover(
	_ config.Server,
	_ confirm.Approver,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
