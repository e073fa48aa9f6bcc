package tests

import (
	"math/big"
	"testing"

	"github.com/ctinet-dev/cti-contract/contracts/intelligence/intelconst"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func profileOf(t *testing.T, e *neotest.Executor, c ctiContracts, acc neotest.Signer) []stackitem.Item {
	inv := e.CommitteeInvoker(c.intelligence)

	s, err := inv.TestInvoke(t, "getProfile", identityOf(acc))
	require.NoError(t, err)

	fields := s.Pop().Array()
	require.Len(t, fields, 7)
	return fields
}

func recordOf(t *testing.T, e *neotest.Executor, c ctiContracts, id []byte) []stackitem.Item {
	inv := e.CommitteeInvoker(c.intelligence)

	s, err := inv.TestInvoke(t, "getIntelligence", id)
	require.NoError(t, err)

	fields := s.Pop().Array()
	require.Len(t, fields, 12)
	return fields
}

func intField(t *testing.T, fields []stackitem.Item, i int) int64 {
	v, ok := fields[i].Value().(*big.Int)
	require.True(t, ok)
	return v.Int64()
}

func validate(t *testing.T, e *neotest.Executor, c ctiContracts, acc neotest.Signer,
	id []byte, quality int64, accurate bool) {
	inv := e.NewInvoker(c.intelligence, acc)
	inv.Invoke(t, nil, "validateIntelligence",
		acc.ScriptHash(), id, quality, accurate, "checked against internal telemetry")
}

func TestIntelligence_RegisterParticipant(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)

	t.Run("foreign witness", func(t *testing.T) {
		other := e.NewAccount(t)
		inv := e.NewInvoker(c.intelligence, other)
		inv.InvokeFail(t, "owner witness check failed", "registerParticipant",
			acc.ScriptHash(), "evil-org")
	})

	registerParticipant(t, e, c, acc)

	profile := profileOf(t, e, c, acc)
	require.Equal(t, acc.ScriptHash().BytesBE(), profile[0].Value().([]byte))
	require.Equal(t, int64(0), intField(t, profile, 2))
	require.Equal(t, int64(0), intField(t, profile, 3))
	require.Equal(t, int64(intelconst.DefaultAccessLevel), intField(t, profile, 4))
	require.Equal(t, int64(intelconst.InitialReputation), intField(t, profile, 6))

	platformInv := e.CommitteeInvoker(c.platform)
	platformInv.Invoke(t, stackitem.NewBool(true), "isParticipant", identityOf(acc))

	inv := e.NewInvoker(c.intelligence, acc)
	inv.InvokeFail(t, "already registered", "registerParticipant",
		acc.ScriptHash(), "second-org")
}

func TestIntelligence_Submit(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)
	inv := e.NewInvoker(c.intelligence, acc)
	ioc := randomBytes(32)

	submitArgs := func(severity, confidence, hours, fee int64) []any {
		return []any{acc.ScriptHash(), ioc, "phishing", severity, confidence,
			"[url:value = 'http://bad.example.com']", []any{"T1566"}, hours, fee}
	}

	inv.InvokeFail(t, "not found", "submitIntelligence",
		submitArgs(5, 80, 24, intelconst.MinSubmissionFee)...)

	registerParticipant(t, e, c, acc)

	t.Run("bad arguments", func(t *testing.T) {
		inv.InvokeFail(t, "value out of range", "submitIntelligence",
			submitArgs(11, 80, 24, intelconst.MinSubmissionFee)...)
		inv.InvokeFail(t, "value out of range", "submitIntelligence",
			submitArgs(-1, 80, 24, intelconst.MinSubmissionFee)...)
		inv.InvokeFail(t, "value out of range", "submitIntelligence",
			submitArgs(5, 0, 24, intelconst.MinSubmissionFee)...)
		inv.InvokeFail(t, "value out of range", "submitIntelligence",
			submitArgs(5, 101, 24, intelconst.MinSubmissionFee)...)
		inv.InvokeFail(t, "value out of range", "submitIntelligence",
			submitArgs(5, 80, -1, intelconst.MinSubmissionFee)...)
	})

	t.Run("fee floor", func(t *testing.T) {
		inv.InvokeFail(t, "insufficient submission fee", "submitIntelligence",
			submitArgs(5, 80, 24, intelconst.MinSubmissionFee-1)...)
	})

	id := submitIntelligence(t, e, c, acc, ioc, 5, 80, 24, intelconst.MinSubmissionFee)

	record := recordOf(t, e, c, id)
	require.Equal(t, ioc, record[0].Value().([]byte))
	require.Equal(t, int64(5), intField(t, record, 2))
	require.Equal(t, int64(80), intField(t, record, 3))
	require.Equal(t, acc.ScriptHash().BytesBE(), record[6].Value().([]byte))
	require.Equal(t, int64(0), intField(t, record, 9))
	require.Equal(t, false, record[11].Value().(bool))

	profile := profileOf(t, e, c, acc)
	require.Equal(t, int64(1), intField(t, profile, 2))

	t.Run("duplicate of own record", func(t *testing.T) {
		inv.InvokeFail(t, "duplicate entry", "submitIntelligence",
			submitArgs(5, 80, 24, intelconst.MinSubmissionFee)...)
	})

	t.Run("same IOC from another submitter", func(t *testing.T) {
		other := e.NewAccount(t)
		registerParticipant(t, e, c, other)

		otherID := submitIntelligence(t, e, c, other, ioc, 5, 80, 24, intelconst.MinSubmissionFee)
		require.NotEqual(t, id, otherID)
	})
}

func TestIntelligence_Validate(t *testing.T) {
	e, c := newCTIExecutor(t)

	submitter := e.NewAccount(t)
	registerParticipant(t, e, c, submitter)
	id := submitIntelligence(t, e, c, submitter, randomBytes(32), 5, 80, 168, intelconst.MinSubmissionFee)

	t.Run("unregistered validator", func(t *testing.T) {
		stranger := e.NewAccount(t)
		inv := e.NewInvoker(c.intelligence, stranger)
		inv.InvokeFail(t, "not found", "validateIntelligence",
			stranger.ScriptHash(), id, int64(75), true, "")
	})

	t.Run("fresh participant reputation gate", func(t *testing.T) {
		rookie := e.NewAccount(t)
		registerParticipant(t, e, c, rookie)

		inv := e.NewInvoker(c.intelligence, rookie)
		inv.InvokeFail(t, "insufficient reputation", "validateIntelligence",
			rookie.ScriptHash(), id, int64(75), true, "")
	})

	validator := registeredValidator(t, e, c)
	valInv := e.NewInvoker(c.intelligence, validator)

	t.Run("self validation", func(t *testing.T) {
		subInv := e.NewInvoker(c.intelligence, submitter)

		// Lift the submitter over the reputation gate first.
		repInv := e.CommitteeInvoker(c.reputation)
		repInv.Invoke(t, nil, "adjust", identityOf(submitter), int64(50),
			"manual_adjustment", []byte{})

		subInv.InvokeFail(t, "self validation", "validateIntelligence",
			submitter.ScriptHash(), id, int64(75), true, "")
	})

	t.Run("expired record", func(t *testing.T) {
		expiredID := submitIntelligence(t, e, c, submitter, randomBytes(32), 5, 80, 0, intelconst.MinSubmissionFee)
		valInv.InvokeFail(t, "intelligence expired", "validateIntelligence",
			validator.ScriptHash(), expiredID, int64(75), true, "")
	})

	t.Run("bad quality score", func(t *testing.T) {
		valInv.InvokeFail(t, "value out of range", "validateIntelligence",
			validator.ScriptHash(), id, int64(0), true, "")
		valInv.InvokeFail(t, "value out of range", "validateIntelligence",
			validator.ScriptHash(), id, int64(101), true, "")
	})

	validate(t, e, c, validator, id, 75, true)

	record := recordOf(t, e, c, id)
	require.Equal(t, int64(1), intField(t, record, 9))
	require.Equal(t, int64(75), intField(t, record, 10))
	require.Equal(t, false, record[11].Value().(bool))

	profile := profileOf(t, e, c, validator)
	require.Equal(t, int64(1), intField(t, profile, 3))
	require.Equal(t, int64(intelconst.MinValidationReputation+1), intField(t, profile, 6))

	t.Run("duplicate validation", func(t *testing.T) {
		valInv.InvokeFail(t, "duplicate entry", "validateIntelligence",
			validator.ScriptHash(), id, int64(60), false, "")
	})
}

func TestIntelligence_Verification(t *testing.T) {
	e, c := newCTIExecutor(t)

	submitter := e.NewAccount(t)
	registerParticipant(t, e, c, submitter)

	verified := func(id []byte) bool {
		return recordOf(t, e, c, id)[11].Value().(bool)
	}

	t.Run("average exactly at threshold", func(t *testing.T) {
		id := submitIntelligence(t, e, c, submitter, randomBytes(32), 7, 90, 168, intelconst.MinSubmissionFee)

		for i, quality := range []int64{70, 70, 70} {
			validate(t, e, c, registeredValidator(t, e, c), id, quality, true)

			expected := i == 2
			require.Equal(t, expected, verified(id), "validation %d", i+1)
		}
	})

	t.Run("truncated average below threshold", func(t *testing.T) {
		id := submitIntelligence(t, e, c, submitter, randomBytes(32), 7, 90, 168, intelconst.MinSubmissionFee)

		// 209/3 truncates to 69.
		for _, quality := range []int64{70, 70, 69} {
			validate(t, e, c, registeredValidator(t, e, c), id, quality, true)
		}
		require.False(t, verified(id))

		// 280/4 truncates to 70, the late validation still promotes.
		validate(t, e, c, registeredValidator(t, e, c), id, 71, true)
		require.True(t, verified(id))

		// Low scores never demote a verified record.
		validate(t, e, c, registeredValidator(t, e, c), id, 1, false)
		require.True(t, verified(id))
	})
}

func TestIntelligence_ValidationRewards(t *testing.T) {
	e, c := newCTIExecutor(t)

	incInv := e.CommitteeInvoker(c.incentive)
	incInv.Invoke(t, nil, "setRewardRate", intelconst.CategoryValidation, int64(50))
	incInv.Invoke(t, nil, "setRewardRate", intelconst.CategoryVerification, int64(500))
	incInv.Invoke(t, nil, "addFunds", int64(1000))

	submitter := e.NewAccount(t)
	registerParticipant(t, e, c, submitter)
	id := submitIntelligence(t, e, c, submitter, randomBytes(32), 7, 90, 168, intelconst.MinSubmissionFee)

	validator := registeredValidator(t, e, c)
	validate(t, e, c, validator, id, 80, true)

	incInv.Invoke(t, stackitem.Make(50), "pendingOf", identityOf(validator))

	t.Run("inaccurate validation earns nothing", func(t *testing.T) {
		sceptic := registeredValidator(t, e, c)
		validate(t, e, c, sceptic, id, 80, false)

		incInv.Invoke(t, stackitem.Make(0), "pendingOf", identityOf(sceptic))
	})

	// Third validation promotes the record and rewards the submitter.
	validate(t, e, c, registeredValidator(t, e, c), id, 80, true)
	require.True(t, recordOf(t, e, c, id)[11].Value().(bool))

	incInv.Invoke(t, stackitem.Make(500), "pendingOf", identityOf(submitter))

	t.Run("dry pool does not block validation", func(t *testing.T) {
		// 1000 - 50 - 50 - 500 = 400, below the verification rate.
		dryID := submitIntelligence(t, e, c, submitter, randomBytes(32), 7, 90, 168, intelconst.MinSubmissionFee)

		for _, quality := range []int64{90, 90, 90} {
			validate(t, e, c, registeredValidator(t, e, c), dryID, quality, true)
		}
		require.True(t, recordOf(t, e, c, dryID)[11].Value().(bool))

		// Submitter pending is unchanged, the pool could not pay twice.
		incInv.Invoke(t, stackitem.Make(500), "pendingOf", identityOf(submitter))
	})
}

func TestIntelligence_GrantAccess(t *testing.T) {
	e, c := newCTIExecutor(t)

	submitter := e.NewAccount(t)
	registerParticipant(t, e, c, submitter)
	subInv := e.NewInvoker(c.intelligence, submitter)

	requestor := e.NewAccount(t)
	registerParticipant(t, e, c, requestor)

	lowID := submitIntelligence(t, e, c, submitter, randomBytes(32), 2, 80, 168, intelconst.MinSubmissionFee)
	midID := submitIntelligence(t, e, c, submitter, randomBytes(32), 6, 80, 168, intelconst.MinSubmissionFee)
	highID := submitIntelligence(t, e, c, submitter, randomBytes(32), 9, 80, 168, intelconst.MinSubmissionFee)

	t.Run("non-submitter", func(t *testing.T) {
		inv := e.NewInvoker(c.intelligence, requestor)
		inv.InvokeFail(t, "not authorized", "grantAccess",
			requestor.ScriptHash(), lowID, identityOf(requestor), int64(24))
	})

	// Level 1 requestor reaches only low severity records.
	subInv.Invoke(t, nil, "grantAccess",
		submitter.ScriptHash(), lowID, identityOf(requestor), int64(24))
	subInv.InvokeFail(t, "insufficient access level", "grantAccess",
		submitter.ScriptHash(), midID, identityOf(requestor), int64(24))
	subInv.InvokeFail(t, "insufficient access level", "grantAccess",
		submitter.ScriptHash(), highID, identityOf(requestor), int64(24))

	subInv.Invoke(t, stackitem.NewBool(true), "verifyAccess", lowID, identityOf(requestor))
	subInv.Invoke(t, stackitem.NewBool(false), "verifyAccess", midID, identityOf(requestor))

	grant := e.CommitteeInvoker(c.access)
	s, err := grant.TestInvoke(t, "getCapability", lowID, identityOf(requestor))
	require.NoError(t, err)
	capFields := s.Pop().Array()
	require.Equal(t, true, capFields[3].Value().(bool))  // read
	require.Equal(t, false, capFields[4].Value().(bool)) // validate
	require.Equal(t, false, capFields[5].Value().(bool)) // share
	require.Equal(t, true, capFields[6].Value().(bool))  // comment

	t.Run("level follows reputation tier", func(t *testing.T) {
		repInv := e.CommitteeInvoker(c.reputation)
		repInv.Invoke(t, nil, "adjust", identityOf(requestor), int64(100),
			"manual_adjustment", []byte{})

		reqInv := e.NewInvoker(c.intelligence, requestor)
		reqInv.Invoke(t, nil, "updateAccessLevel", requestor.ScriptHash())

		profile := profileOf(t, e, c, requestor)
		require.Equal(t, int64(3), intField(t, profile, 4))

		subInv.Invoke(t, nil, "grantAccess",
			submitter.ScriptHash(), midID, identityOf(requestor), int64(24))
		subInv.Invoke(t, nil, "grantAccess",
			submitter.ScriptHash(), highID, identityOf(requestor), int64(24))
	})
}

func TestIntelligence_ListBySubmitter(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)
	registerParticipant(t, e, c, acc)

	inv := e.NewInvoker(c.intelligence, acc)

	s, err := inv.TestInvoke(t, "listBySubmitter", identityOf(acc))
	require.NoError(t, err)
	require.Equal(t, stackitem.Null{}, s.Pop().Item())

	expected := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		id := submitIntelligence(t, e, c, acc, randomBytes(32), 5, 80, 24, intelconst.MinSubmissionFee)
		expected = append(expected, base58.Encode(id))
	}

	s, err = inv.TestInvoke(t, "listBySubmitter", identityOf(acc))
	require.NoError(t, err)

	var actual []string
	for _, item := range s.Pop().Array() {
		raw, err := item.TryBytes()
		require.NoError(t, err)
		actual = append(actual, base58.Encode(raw))
	}
	require.ElementsMatch(t, expected, actual)
}

func TestIntelligence_IsExpired(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)
	registerParticipant(t, e, c, acc)

	inv := e.NewInvoker(c.intelligence, acc)

	liveID := submitIntelligence(t, e, c, acc, randomBytes(32), 5, 80, 24, intelconst.MinSubmissionFee)
	expiredID := submitIntelligence(t, e, c, acc, randomBytes(32), 5, 80, 0, intelconst.MinSubmissionFee)

	inv.Invoke(t, stackitem.NewBool(false), "isExpired", liveID)
	inv.Invoke(t, stackitem.NewBool(true), "isExpired", expiredID)
	inv.InvokeFail(t, "not found", "isExpired", randomBytes(32))
}

// Full lifecycle: registration, funded pool, submission, reputation-gated
// validation, reward claim.
func TestIntelligence_EndToEnd(t *testing.T) {
	e, c := newCTIExecutor(t)

	incInv := e.CommitteeInvoker(c.incentive)
	incInv.Invoke(t, nil, "setRewardRate", intelconst.CategoryValidation, int64(100))
	incInv.Invoke(t, nil, "addFunds", int64(10_000))

	alice := e.NewAccount(t)
	registerParticipant(t, e, c, alice)
	id := submitIntelligence(t, e, c, alice, randomBytes(32), 5, 80, 24, intelconst.MinSubmissionFee)

	bob := e.NewAccount(t)
	registerParticipant(t, e, c, bob)

	// Bob starts at score 10 and cannot validate.
	bobInv := e.NewInvoker(c.intelligence, bob)
	bobInv.InvokeFail(t, "insufficient reputation", "validateIntelligence",
		bob.ScriptHash(), id, int64(75), true, "")

	repInv := e.CommitteeInvoker(c.reputation)
	repInv.Invoke(t, nil, "adjust", identityOf(bob), int64(50), "manual_adjustment", []byte{})
	repInv.Invoke(t, stackitem.Make(60), "scoreOf", identityOf(bob))

	validate(t, e, c, bob, id, 75, true)

	record := recordOf(t, e, c, id)
	require.Equal(t, int64(1), intField(t, record, 9))
	require.Equal(t, false, record[11].Value().(bool))

	repInv.Invoke(t, stackitem.Make(61), "scoreOf", identityOf(bob))

	bobProfile := profileOf(t, e, c, bob)
	require.Equal(t, int64(1), intField(t, bobProfile, 3))

	platformInv := e.CommitteeInvoker(c.platform)
	s, err := platformInv.TestInvoke(t, "getStats")
	require.NoError(t, err)
	stats := s.Pop().Array()
	require.Equal(t, int64(1), intField(t, stats, 0))
	require.Equal(t, int64(1), intField(t, stats, 1))
	require.Equal(t, int64(intelconst.MinSubmissionFee), intField(t, stats, 2))

	incInv.Invoke(t, stackitem.Make(100), "pendingOf", identityOf(bob))
	e.NewInvoker(c.incentive, bob).Invoke(t, stackitem.Make(100), "claim", identityOf(bob))

	balance, distributed := poolState(t, incInv)
	require.Equal(t, int64(9_900), balance)
	require.Equal(t, int64(100), distributed)
}
