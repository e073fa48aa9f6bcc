package platform

import (
	"github.com/ctinet-dev/cti-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Stats groups platform-wide activity counters.
type Stats struct {
	// Total number of intelligence submissions recorded.
	TotalSubmissions int
	// Total number of validations recorded.
	TotalValidations int
	// Accumulated submission fees.
	FeeBalance int
}

const (
	adminKey            = 'a'
	intelContractKey    = 'i'
	totalSubmissionsKey = 's'
	totalValidationsKey = 'v'
	feeBalanceKey       = 'f'

	participantPrefix = 'm'
)

const errNotIntelligence = "caller is not the intelligence contract"

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
	admin := args[0].(interop.Hash160)
	intelContract := args[1].(interop.Hash160)

	if len(admin) != interop.Hash160Len {
		admin = common.CommitteeAddress()
	}
	if len(intelContract) != interop.Hash160Len {
		panic("incorrect intelligence contract address")
	}

	storage.Put(ctx, adminKey, admin)
	storage.Put(ctx, intelContractKey, intelContract)

	runtime.Log("platform contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("platform contract updated")
}

// AddParticipant registers the identity in the platform member set. It can be
// invoked only by the intelligence contract. AddParticipant panics if the
// identity is already a member.
func AddParticipant(identity []byte) {
	ctx := storage.GetContext()

	checkIntelligenceContract(ctx)

	key := participantKey(identity)
	if storage.Get(ctx, key) != nil {
		panic("duplicate entry")
	}

	storage.Put(ctx, key, []byte{1})
	runtime.Log("new platform participant registered")
}

// RecordSubmission increases the platform submission counter and accumulates
// the paid fee. It can be invoked only by the intelligence contract.
func RecordSubmission(fee int) {
	ctx := storage.GetContext()

	checkIntelligenceContract(ctx)

	common.AddToInt(ctx, totalSubmissionsKey, 1)
	common.AddToInt(ctx, feeBalanceKey, fee)
}

// RecordValidation increases the platform validation counter. It can be
// invoked only by the intelligence contract.
func RecordValidation() {
	ctx := storage.GetContext()

	checkIntelligenceContract(ctx)

	common.AddToInt(ctx, totalValidationsKey, 1)
}

// IsParticipant returns true if the identity has been registered on the
// platform.
func IsParticipant(identity []byte) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, participantKey(identity)) != nil
}

// GetStats returns platform-wide activity counters.
func GetStats() Stats {
	ctx := storage.GetReadOnlyContext()

	return Stats{
		TotalSubmissions: common.GetIntOrZero(ctx, totalSubmissionsKey),
		TotalValidations: common.GetIntOrZero(ctx, totalValidationsKey),
		FeeBalance:       common.GetIntOrZero(ctx, feeBalanceKey),
	}
}

// Admin returns the address of the platform administrator.
func Admin() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, adminKey).(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkIntelligenceContract(ctx storage.Context) {
	intelContract := storage.Get(ctx, intelContractKey).(interop.Hash160)
	if !common.CalledByContract(intelContract) {
		panic(errNotIntelligence)
	}
}

func participantKey(identity []byte) []byte {
	return append([]byte{participantPrefix}, identity...)
}
