package access

import (
	"github.com/ctinet-dev/cti-contract/common"
	"github.com/ctinet-dev/cti-contract/contracts/access/accessconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Policy describes who may consume a single intelligence record.
	Policy struct {
		// Address of the record submitter controlling the policy.
		Owner []byte
		// Minimum participant access level required for capability
		// grants.
		RequiredLevel int
		// Record is readable by everybody once the restriction window
		// passes.
		IsPublic bool
		// Timestamp in milliseconds until which public access is
		// embargoed.
		RestrictedUntil int
	}

	// Capability is a time-bound access grant for one participant and one
	// intelligence record.
	Capability struct {
		// Identifier of the intelligence record.
		IntelligenceID []byte
		// Address of the grantee.
		Participant []byte
		// Access level the grantee had when the capability was issued.
		AccessLevel int
		// Granted rights.
		CanRead     bool
		CanValidate bool
		CanShare    bool
		CanComment  bool
		// Grant timestamp in milliseconds.
		GrantedAt int
		// Expiration timestamp in milliseconds.
		ExpiresAt int
	}
)

const (
	intelContractKey = 'i'

	policyPrefix     = 'p'
	capabilityPrefix = 'c'

	msPerHour = 3600 * 1000
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)

		common.CheckVersion(version)
		return
	}

	args := data.([]any)
	intelContract := args[0].(interop.Hash160)

	if len(intelContract) != interop.Hash160Len {
		panic("incorrect intelligence contract address")
	}

	storage.Put(ctx, intelContractKey, intelContract)

	runtime.Log("access contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("access contract updated")
}

// SetPermissions creates or replaces the sharing policy of the intelligence
// record. An existing policy can be replaced only by its owner. A public
// policy with a non-zero restriction keeps the record private for
// restrictionMs milliseconds after the call. It can be invoked only with a
// witness of the owner.
func SetPermissions(owner []byte, intelligenceID []byte, requiredLevel int, isPublic bool, restrictionMs int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(owner)

	if requiredLevel < 1 || restrictionMs < 0 {
		panic("value out of range")
	}

	key := policyKey(intelligenceID)
	rawPolicy := storage.Get(ctx, key)
	if rawPolicy != nil {
		existing := std.Deserialize(rawPolicy.([]byte)).(Policy)
		if !common.BytesEqual(existing.Owner, owner) {
			panic(accessconst.ErrNotAuthorized)
		}
	}

	restrictedUntil := 0
	if restrictionMs > 0 {
		restrictedUntil = runtime.GetTime() + restrictionMs
	}

	common.SetSerialized(ctx, key, Policy{
		Owner:           owner,
		RequiredLevel:   requiredLevel,
		IsPublic:        isPublic,
		RestrictedUntil: restrictedUntil,
	})
}

// GrantCapability issues an access capability directly. The policy of the
// record must exist and the caller must be the policy owner. Zero duration
// produces an immediately expired capability. It can be invoked only with a
// witness of the caller.
func GrantCapability(caller []byte, intelligenceID []byte, participant []byte,
	accessLevel int, durationHours int,
	canRead bool, canValidate bool, canShare bool, canComment bool) {
	ctx := storage.GetContext()

	policy := getPolicy(ctx, intelligenceID)
	if !common.BytesEqual(policy.Owner, caller) {
		panic(accessconst.ErrNotAuthorized)
	}

	common.CheckOwnerWitness(caller)

	putCapability(ctx, intelligenceID, participant, accessLevel, durationHours,
		canRead, canValidate, canShare, canComment)
}

// IssueCapability issues an access capability on behalf of the record
// submitter. No policy is required. It can be invoked only by the
// intelligence contract, which performs its own authorization of the grant.
func IssueCapability(intelligenceID []byte, participant []byte,
	accessLevel int, durationHours int,
	canRead bool, canValidate bool, canShare bool, canComment bool) {
	ctx := storage.GetContext()

	checkIntelligenceContract(ctx)

	putCapability(ctx, intelligenceID, participant, accessLevel, durationHours,
		canRead, canValidate, canShare, canComment)
}

// RevokeCapability deletes the capability of the participant for the record.
// It can be invoked by the intelligence contract or with a witness of the
// policy owner.
func RevokeCapability(caller []byte, intelligenceID []byte, participant []byte) {
	ctx := storage.GetContext()

	intelContract := storage.Get(ctx, intelContractKey).(interop.Hash160)
	if !common.CalledByContract(intelContract) {
		policy := getPolicy(ctx, intelligenceID)
		if !common.BytesEqual(policy.Owner, caller) {
			panic(accessconst.ErrNotAuthorized)
		}

		common.CheckOwnerWitness(caller)
	}

	key := capabilityKey(participant, intelligenceID)
	if storage.Get(ctx, key) == nil {
		panic(accessconst.ErrNotFound)
	}

	storage.Delete(ctx, key)

	runtime.Notify("CapabilityRevoked", intelligenceID, participant)
}

// HasAccess returns true when the participant currently holds the right for
// the record. Public policies grant read access to everybody once the
// restriction window passes. Other rights always require a live capability.
func HasAccess(intelligenceID []byte, participant []byte, right int) bool {
	if right < accessconst.RightRead || right > accessconst.RightComment {
		panic(accessconst.ErrUnknownRight)
	}

	ctx := storage.GetReadOnlyContext()

	if right == accessconst.RightRead {
		rawPolicy := storage.Get(ctx, policyKey(intelligenceID))
		if rawPolicy != nil {
			policy := std.Deserialize(rawPolicy.([]byte)).(Policy)
			if policy.IsPublic && runtime.GetTime() >= policy.RestrictedUntil {
				return true
			}
		}
	}

	rawCap := storage.Get(ctx, capabilityKey(participant, intelligenceID))
	if rawCap == nil {
		return false
	}

	grant := std.Deserialize(rawCap.([]byte)).(Capability)
	if runtime.GetTime() >= grant.ExpiresAt {
		return false
	}

	switch right {
	case accessconst.RightRead:
		return grant.CanRead
	case accessconst.RightValidate:
		return grant.CanValidate
	case accessconst.RightShare:
		return grant.CanShare
	default:
		return grant.CanComment
	}
}

// IsValid returns true when the participant holds a non-expired capability
// for the record.
func IsValid(intelligenceID []byte, participant []byte) bool {
	ctx := storage.GetReadOnlyContext()

	rawCap := storage.Get(ctx, capabilityKey(participant, intelligenceID))
	if rawCap == nil {
		return false
	}

	grant := std.Deserialize(rawCap.([]byte)).(Capability)

	return runtime.GetTime() < grant.ExpiresAt
}

// GetCapability returns the stored capability of the participant for the
// record. It panics if there is none.
func GetCapability(intelligenceID []byte, participant []byte) Capability {
	ctx := storage.GetReadOnlyContext()

	rawCap := storage.Get(ctx, capabilityKey(participant, intelligenceID))
	if rawCap == nil {
		panic(accessconst.ErrNotFound)
	}

	return std.Deserialize(rawCap.([]byte)).(Capability)
}

// GetPermissions returns the sharing policy of the record. It panics if there
// is none.
func GetPermissions(intelligenceID []byte) Policy {
	ctx := storage.GetReadOnlyContext()
	return getPolicy(ctx, intelligenceID)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func putCapability(ctx storage.Context, intelligenceID []byte, participant []byte,
	accessLevel int, durationHours int,
	canRead bool, canValidate bool, canShare bool, canComment bool) {
	if accessLevel < 1 || durationHours < 0 {
		panic("value out of range")
	}

	now := runtime.GetTime()

	common.SetSerialized(ctx, capabilityKey(participant, intelligenceID), Capability{
		IntelligenceID: intelligenceID,
		Participant:    participant,
		AccessLevel:    accessLevel,
		CanRead:        canRead,
		CanValidate:    canValidate,
		CanShare:       canShare,
		CanComment:     canComment,
		GrantedAt:      now,
		ExpiresAt:      now + durationHours*msPerHour,
	})

	runtime.Notify("CapabilityGranted", intelligenceID, participant, accessLevel)
}

func getPolicy(ctx storage.Context, intelligenceID []byte) Policy {
	rawPolicy := storage.Get(ctx, policyKey(intelligenceID))
	if rawPolicy == nil {
		panic(accessconst.ErrNotFound)
	}

	return std.Deserialize(rawPolicy.([]byte)).(Policy)
}

func checkIntelligenceContract(ctx storage.Context) {
	intelContract := storage.Get(ctx, intelContractKey).(interop.Hash160)
	if !common.CalledByContract(intelContract) {
		panic(accessconst.ErrNotAuthorized)
	}
}

func policyKey(intelligenceID []byte) []byte {
	return append([]byte{policyPrefix}, intelligenceID...)
}

func capabilityKey(participant []byte, intelligenceID []byte) []byte {
	key := append([]byte{capabilityPrefix}, participant...)
	return append(key, intelligenceID...)
}
