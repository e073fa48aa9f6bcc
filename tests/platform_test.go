package tests

import (
	"math/big"
	"testing"

	"github.com/ctinet-dev/cti-contract/contracts/intelligence/intelconst"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestPlatform_MutatorsRequireIntelligenceContract(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)
	inv := e.NewInvoker(c.platform, acc)

	inv.InvokeFail(t, "caller is not the intelligence contract",
		"addParticipant", identityOf(acc))
	inv.InvokeFail(t, "caller is not the intelligence contract",
		"recordSubmission", int64(intelconst.MinSubmissionFee))
	inv.InvokeFail(t, "caller is not the intelligence contract",
		"recordValidation")

	// Committee is the administrator, not the Intelligence contract.
	cInv := e.CommitteeInvoker(c.platform)
	cInv.InvokeFail(t, "caller is not the intelligence contract",
		"addParticipant", identityOf(acc))
}

func TestPlatform_Membership(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)
	inv := e.NewInvoker(c.platform, acc)

	inv.Invoke(t, stackitem.NewBool(false), "isParticipant", identityOf(acc))

	registerParticipant(t, e, c, acc)

	inv.Invoke(t, stackitem.NewBool(true), "isParticipant", identityOf(acc))

	// Second registration hits the duplicate membership check.
	intelInv := e.NewInvoker(c.intelligence, acc)
	intelInv.InvokeFail(t, "already registered", "registerParticipant",
		acc.ScriptHash(), "dup-org")
}

func TestPlatform_Stats(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)
	inv := e.NewInvoker(c.platform, acc)

	checkStats := func(t *testing.T, submissions, validations, fees int64) {
		s, err := inv.TestInvoke(t, "getStats")
		require.NoError(t, err)

		fields := s.Pop().Array()
		require.Len(t, fields, 3)
		require.Equal(t, submissions, fields[0].Value().(*big.Int).Int64())
		require.Equal(t, validations, fields[1].Value().(*big.Int).Int64())
		require.Equal(t, fees, fields[2].Value().(*big.Int).Int64())
	}

	checkStats(t, 0, 0, 0)

	registerParticipant(t, e, c, acc)
	submitIntelligence(t, e, c, acc, randomBytes(32), 5, 80, 24, intelconst.MinSubmissionFee)

	checkStats(t, 1, 0, intelconst.MinSubmissionFee)

	validator := registeredValidator(t, e, c)
	id := submitIntelligence(t, e, c, acc, randomBytes(32), 5, 80, 24, intelconst.MinSubmissionFee)
	e.NewInvoker(c.intelligence, validator).Invoke(t, nil, "validateIntelligence",
		validator.ScriptHash(), id, int64(75), true, "looks right")

	checkStats(t, 2, 1, 2*intelconst.MinSubmissionFee)
}

func TestPlatform_Admin(t *testing.T) {
	e, c := newCTIExecutor(t)

	inv := e.CommitteeInvoker(c.platform)
	inv.Invoke(t, stackitem.NewByteArray(e.CommitteeHash.BytesBE()), "admin")
}
