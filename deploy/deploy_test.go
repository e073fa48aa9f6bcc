package deploy

import (
	"context"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// testBlockchain implements [Blockchain] interface for parameter checks only,
// any method call panics.
type testBlockchain struct {
	Blockchain
}

func TestDeployPrmValidation(t *testing.T) {
	var (
		ctx = context.Background()
		prm Prm
	)

	err := Deploy(ctx, prm)
	require.ErrorContains(t, err, "missing logger")

	prm.Logger = zaptest.NewLogger(t)

	err = Deploy(ctx, prm)
	require.ErrorContains(t, err, "missing blockchain client")

	prm.Blockchain = testBlockchain{}

	err = Deploy(ctx, prm)
	require.ErrorContains(t, err, "missing local account")

	acc, err := wallet.NewAccount()
	require.NoError(t, err)
	prm.LocalAccount = acc

	for _, name := range []string{"Platform", "Reputation", "Incentive", "Access", "Intelligence"} {
		err = Deploy(ctx, prm)
		require.ErrorContains(t, err, "missing "+name+" contract manifest")

		switch name {
		case "Platform":
			prm.PlatformContract.Manifest.Name = "CTI Platform"
		case "Reputation":
			prm.ReputationContract.Manifest.Name = "CTI Reputation"
		case "Incentive":
			prm.IncentiveContract.Manifest.Name = "CTI Incentive"
		case "Access":
			prm.AccessContract.Manifest.Name = "CTI Access"
		case "Intelligence":
			prm.IntelligenceContract.Manifest.Name = "CTI Intelligence"
		}
	}
}
