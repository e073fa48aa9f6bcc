package tests

import (
	"math/big"
	"testing"

	"github.com/ctinet-dev/cti-contract/contracts/access/accessconst"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func setPermissions(t *testing.T, e *neotest.Executor, c ctiContracts, owner neotest.Signer,
	id []byte, requiredLevel int64, isPublic bool, restrictionMs int64) {
	inv := e.NewInvoker(c.access, owner)
	inv.Invoke(t, nil, "setPermissions",
		owner.ScriptHash(), id, requiredLevel, isPublic, restrictionMs)
}

func TestAccess_SetPermissions(t *testing.T) {
	e, c := newCTIExecutor(t)

	owner := e.NewAccount(t)
	id := randomBytes(32)

	setPermissions(t, e, c, owner, id, 1, false, 0)

	t.Run("replace by stranger", func(t *testing.T) {
		stranger := e.NewAccount(t)
		inv := e.NewInvoker(c.access, stranger)
		inv.InvokeFail(t, accessconst.ErrNotAuthorized, "setPermissions",
			stranger.ScriptHash(), id, int64(1), true, int64(0))
	})

	t.Run("replace by owner", func(t *testing.T) {
		setPermissions(t, e, c, owner, id, 2, true, 0)

		inv := e.NewInvoker(c.access, owner)
		s, err := inv.TestInvoke(t, "getPermissions", id)
		require.NoError(t, err)

		fields := s.Pop().Array()
		require.Len(t, fields, 4)
		require.Equal(t, owner.ScriptHash().BytesBE(), fields[0].Value().([]byte))
		require.Equal(t, int64(2), fields[1].Value().(*big.Int).Int64())
		require.Equal(t, true, fields[2].Value().(bool))
	})

	t.Run("bad arguments", func(t *testing.T) {
		inv := e.NewInvoker(c.access, owner)
		inv.InvokeFail(t, "value out of range", "setPermissions",
			owner.ScriptHash(), id, int64(0), false, int64(0))
		inv.InvokeFail(t, "value out of range", "setPermissions",
			owner.ScriptHash(), id, int64(1), false, int64(-1))
	})
}

func TestAccess_GrantCapability(t *testing.T) {
	e, c := newCTIExecutor(t)

	owner := e.NewAccount(t)
	grantee := e.NewAccount(t)
	id := randomBytes(32)

	ownerInv := e.NewInvoker(c.access, owner)

	// No policy yet.
	ownerInv.InvokeFail(t, accessconst.ErrNotFound, "grantCapability",
		owner.ScriptHash(), id, identityOf(grantee), int64(1), int64(24),
		true, false, false, false)

	setPermissions(t, e, c, owner, id, 1, false, 0)

	t.Run("stranger issuance", func(t *testing.T) {
		stranger := e.NewAccount(t)
		inv := e.NewInvoker(c.access, stranger)
		inv.InvokeFail(t, accessconst.ErrNotAuthorized, "grantCapability",
			stranger.ScriptHash(), id, identityOf(grantee), int64(1), int64(24),
			true, false, false, false)
	})

	ownerInv.Invoke(t, nil, "grantCapability",
		owner.ScriptHash(), id, identityOf(grantee), int64(1), int64(24),
		true, true, false, true)

	checkRight := func(right int, expected bool) {
		ownerInv.Invoke(t, stackitem.NewBool(expected), "hasAccess",
			id, identityOf(grantee), int64(right))
	}

	checkRight(accessconst.RightRead, true)
	checkRight(accessconst.RightValidate, true)
	checkRight(accessconst.RightShare, false)
	checkRight(accessconst.RightComment, true)

	ownerInv.InvokeFail(t, accessconst.ErrUnknownRight, "hasAccess",
		id, identityOf(grantee), int64(5))

	ownerInv.Invoke(t, stackitem.NewBool(true), "isValid", id, identityOf(grantee))

	t.Run("zero duration expires immediately", func(t *testing.T) {
		shortLived := e.NewAccount(t)
		ownerInv.Invoke(t, nil, "grantCapability",
			owner.ScriptHash(), id, identityOf(shortLived), int64(1), int64(0),
			true, false, false, false)

		ownerInv.Invoke(t, stackitem.NewBool(false), "isValid", id, identityOf(shortLived))
		ownerInv.Invoke(t, stackitem.NewBool(false), "hasAccess",
			id, identityOf(shortLived), int64(accessconst.RightRead))
	})
}

func TestAccess_RevokeCapability(t *testing.T) {
	e, c := newCTIExecutor(t)

	owner := e.NewAccount(t)
	grantee := e.NewAccount(t)
	id := randomBytes(32)

	setPermissions(t, e, c, owner, id, 1, false, 0)

	ownerInv := e.NewInvoker(c.access, owner)
	ownerInv.Invoke(t, nil, "grantCapability",
		owner.ScriptHash(), id, identityOf(grantee), int64(1), int64(24),
		true, false, false, false)

	t.Run("stranger revocation", func(t *testing.T) {
		stranger := e.NewAccount(t)
		inv := e.NewInvoker(c.access, stranger)
		inv.InvokeFail(t, accessconst.ErrNotAuthorized, "revokeCapability",
			stranger.ScriptHash(), id, identityOf(grantee))
	})

	ownerInv.Invoke(t, nil, "revokeCapability",
		owner.ScriptHash(), id, identityOf(grantee))

	ownerInv.Invoke(t, stackitem.NewBool(false), "isValid", id, identityOf(grantee))
	ownerInv.InvokeFail(t, accessconst.ErrNotFound, "revokeCapability",
		owner.ScriptHash(), id, identityOf(grantee))
	ownerInv.InvokeFail(t, accessconst.ErrNotFound, "getCapability",
		id, identityOf(grantee))
}

func TestAccess_PublicPolicy(t *testing.T) {
	e, c := newCTIExecutor(t)

	owner := e.NewAccount(t)
	anyone := e.NewAccount(t)
	id := randomBytes(32)

	inv := e.NewInvoker(c.access, anyone)

	setPermissions(t, e, c, owner, id, 1, true, 0)

	// Reading needs no capability, other rights still do.
	inv.Invoke(t, stackitem.NewBool(true), "hasAccess",
		id, identityOf(anyone), int64(accessconst.RightRead))
	inv.Invoke(t, stackitem.NewBool(false), "hasAccess",
		id, identityOf(anyone), int64(accessconst.RightValidate))

	t.Run("embargo window", func(t *testing.T) {
		restrictedID := randomBytes(32)
		setPermissions(t, e, c, owner, restrictedID, 1, true, int64(3600*1000))

		inv.Invoke(t, stackitem.NewBool(false), "hasAccess",
			restrictedID, identityOf(anyone), int64(accessconst.RightRead))
	})
}

func TestAccess_IssueCapabilityGating(t *testing.T) {
	e, c := newCTIExecutor(t)

	acc := e.NewAccount(t)
	inv := e.NewInvoker(c.access, acc)

	inv.InvokeFail(t, accessconst.ErrNotAuthorized, "issueCapability",
		randomBytes(32), identityOf(acc), int64(1), int64(24),
		true, false, false, false)
}
