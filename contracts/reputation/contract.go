package reputation

import (
	"github.com/ctinet-dev/cti-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Entry records a single reputation score change.
type Entry struct {
	// Signed score delta applied by the change.
	Delta int
	// Human-readable change reason.
	Reason string
	// Identifier of the intelligence record the change relates to,
	// empty for manual adjustments.
	IntelligenceRef []byte
	// Score before the change.
	OldScore int
	// Score after the change.
	NewScore int
	// Change timestamp in milliseconds.
	UpdatedAt int
}

const (
	adminKey         = 'a'
	intelContractKey = 'i'

	scorePrefix   = 's'
	historyPrefix = 'h'
	countPrefix   = 'c'
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

	runtime.Log("reputation contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("reputation contract updated")
}

// Register creates a reputation score for the identity. It can be invoked by
// the intelligence contract or with a witness of the contract administrator.
// Register panics if the identity already has a score.
func Register(identity []byte, initialScore int) {
	ctx := storage.GetContext()

	authorizeEngine(ctx)

	if initialScore < 0 {
		panic("value out of range")
	}

	key := scoreKey(identity)
	if storage.Get(ctx, key) != nil {
		panic("duplicate entry")
	}

	storage.Put(ctx, key, initialScore)
	runtime.Log("reputation score registered")
}

// Adjust applies a signed delta to the identity score. The score saturates at
// zero, it never becomes negative. Every change is appended to the identity
// history. It can be invoked by the intelligence contract or with a witness
// of the contract administrator.
func Adjust(identity []byte, delta int, reason string, intelligenceRef []byte) {
	ctx := storage.GetContext()

	authorizeEngine(ctx)

	key := scoreKey(identity)
	rawScore := storage.Get(ctx, key)
	if rawScore == nil {
		panic("not found")
	}

	oldScore := rawScore.(int)
	newScore := oldScore + delta
	if newScore < 0 {
		newScore = 0
	}

	storage.Put(ctx, key, newScore)

	appendHistory(ctx, identity, Entry{
		Delta:           delta,
		Reason:          reason,
		IntelligenceRef: intelligenceRef,
		OldScore:        oldScore,
		NewScore:        newScore,
		UpdatedAt:       runtime.GetTime(),
	})

	runtime.Notify("ReputationUpdated", identity, oldScore, newScore, reason)
}

// ScoreOf returns the current score of the identity. It panics if the
// identity has no score.
func ScoreOf(identity []byte) int {
	ctx := storage.GetReadOnlyContext()

	rawScore := storage.Get(ctx, scoreKey(identity))
	if rawScore == nil {
		panic("not found")
	}

	return rawScore.(int)
}

// IsRegistered returns true if the identity has a reputation score.
func IsRegistered(identity []byte) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, scoreKey(identity)) != nil
}

// TierOf maps a score to a participation tier from 1 to 5.
func TierOf(score int) int {
	switch {
	case score >= 1000:
		return 5
	case score >= 500:
		return 4
	case score >= 100:
		return 3
	case score >= 50:
		return 2
	default:
		return 1
	}
}

// History returns an iterator over Entry changes of the identity score in the
// order they were applied.
func History(identity []byte) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, historyKey(historyPrefix, identity),
		storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func authorizeEngine(ctx storage.Context) {
	intelContract := storage.Get(ctx, intelContractKey).(interop.Hash160)
	if common.CalledByContract(intelContract) {
		return
	}

	admin := storage.Get(ctx, adminKey).(interop.Hash160)
	common.CheckOwnerWitness(admin)
}

func appendHistory(ctx storage.Context, identity []byte, entry Entry) {
	countKey := historyKey(countPrefix, identity)
	cnt := common.AddToInt(ctx, countKey, 1)

	key := append(historyKey(historyPrefix, identity), convert.ToBytes(cnt)...)
	storage.Put(ctx, key, std.Serialize(entry))
}

func scoreKey(identity []byte) []byte {
	return append([]byte{scorePrefix}, identity...)
}

func historyKey(prefix byte, identity []byte) []byte {
	return append([]byte{prefix}, identity...)
}
