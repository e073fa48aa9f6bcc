package tests

import (
	"path"
	"testing"

	"github.com/ctinet-dev/cti-contract/contracts/intelligence/intelconst"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	platformPath     = "../contracts/platform"
	reputationPath   = "../contracts/reputation"
	incentivePath    = "../contracts/incentive"
	accessPath       = "../contracts/access"
	intelligencePath = "../contracts/intelligence"
)

// ctiContracts keeps hashes of a deployed contract set.
type ctiContracts struct {
	platform     util.Uint160
	reputation   util.Uint160
	incentive    util.Uint160
	access       util.Uint160
	intelligence util.Uint160
}

func compileContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

// deployCTIContracts deploys the full contract set with the committee as
// administrator. The Intelligence contract hash is deterministic for a fixed
// deployer, so leaf contracts receive it before it is deployed.
func deployCTIContracts(t *testing.T, e *neotest.Executor) ctiContracts {
	ctrPlatform := compileContract(t, e, platformPath)
	ctrReputation := compileContract(t, e, reputationPath)
	ctrIncentive := compileContract(t, e, incentivePath)
	ctrAccess := compileContract(t, e, accessPath)
	ctrIntelligence := compileContract(t, e, intelligencePath)

	e.DeployContract(t, ctrPlatform, []any{e.CommitteeHash, ctrIntelligence.Hash})
	e.DeployContract(t, ctrReputation, []any{e.CommitteeHash, ctrIntelligence.Hash})
	e.DeployContract(t, ctrIncentive, []any{e.CommitteeHash, ctrIntelligence.Hash})
	e.DeployContract(t, ctrAccess, []any{ctrIntelligence.Hash})
	e.DeployContract(t, ctrIntelligence, []any{
		ctrPlatform.Hash, ctrReputation.Hash, ctrIncentive.Hash, ctrAccess.Hash,
	})

	return ctiContracts{
		platform:     ctrPlatform.Hash,
		reputation:   ctrReputation.Hash,
		incentive:    ctrIncentive.Hash,
		access:       ctrAccess.Hash,
		intelligence: ctrIntelligence.Hash,
	}
}

func newCTIExecutor(t *testing.T) (*neotest.Executor, ctiContracts) {
	e := newExecutor(t)
	return e, deployCTIContracts(t, e)
}

func identityOf(s neotest.Signer) []byte {
	return s.ScriptHash().BytesBE()
}

func registerParticipant(t *testing.T, e *neotest.Executor, c ctiContracts, acc neotest.Signer) {
	inv := e.NewInvoker(c.intelligence, acc)
	inv.Invoke(t, nil, "registerParticipant",
		acc.ScriptHash(), "org-"+uuid.NewString())
}

// submitIntelligence runs a submission with typical STIX fixture content and
// returns the assigned record ID.
func submitIntelligence(t *testing.T, e *neotest.Executor, c ctiContracts, acc neotest.Signer,
	iocHash []byte, severity int64, confidence int64, expirationHours int64, fee int64) []byte {
	inv := e.NewInvoker(c.intelligence, acc)

	tx := inv.PrepareInvoke(t, "submitIntelligence",
		acc.ScriptHash(), iocHash, "malware", severity, confidence,
		"[file:hashes.'SHA-256' = '"+uuid.NewString()+"']",
		[]any{"T1055", "T1105"}, expirationHours, fee)
	e.AddNewBlock(t, tx)

	aer := e.CheckHalt(t, tx.Hash())
	id, err := aer.Stack[0].TryBytes()
	require.NoError(t, err)
	require.Len(t, id, 32)

	return id
}

// registeredValidator creates an account whose reputation has been raised by
// the administrator over the validation threshold.
func registeredValidator(t *testing.T, e *neotest.Executor, c ctiContracts) neotest.Signer {
	acc := e.NewAccount(t)
	registerParticipant(t, e, c, acc)

	repInv := e.CommitteeInvoker(c.reputation)
	repInv.Invoke(t, nil, "adjust", identityOf(acc),
		int64(intelconst.MinValidationReputation-intelconst.InitialReputation),
		"manual_adjustment", []byte{})

	return acc
}
