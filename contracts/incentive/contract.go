package incentive

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

type (
	// Distribution records a single reward awarded to a participant.
	Distribution struct {
		// Reward category the rate was taken from.
		Category string
		// Awarded amount, rate multiplied by the quality multiplier.
		Amount int
		// Identifier of the intelligence record the reward relates to.
		IntelligenceRef []byte
		// Quality multiplier the rate was scaled by.
		Multiplier int
		// Award timestamp in milliseconds.
		AwardedAt int
	}

	// PoolStats groups pool-wide counters.
	PoolStats struct {
		// Funds not yet awarded to anybody.
		Balance int
		// Total amount claimed by participants over the pool lifetime.
		TotalDistributed int
	}
)

const (
	adminKey         = 'a'
	intelContractKey = 'i'
	balanceKey       = 'b'
	distributedKey   = 'd'

	ratePrefix    = 'r'
	pendingPrefix = 'p'
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

	runtime.Log("incentive contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("incentive contract updated")
}

// AddFunds increases the free pool balance by the amount. It can be invoked
// only with a witness of the pool administrator.
func AddFunds(amount int) {
	ctx := storage.GetContext()

	checkAdminWitness(ctx)

	if amount <= 0 {
		panic("value out of range")
	}

	common.AddToInt(ctx, balanceKey, amount)

	runtime.Notify("FundsAdded", amount)
}

// SetRewardRate sets the base reward for the category. Zero rate disables
// awards for the category. It can be invoked only with a witness of the pool
// administrator.
func SetRewardRate(category string, rate int) {
	ctx := storage.GetContext()

	checkAdminWitness(ctx)

	if rate < 0 {
		panic("value out of range")
	}

	storage.Put(ctx, rateKey(category), rate)

	runtime.Notify("RewardRateSet", category, rate)
}

// Award moves rate*multiplier from the free pool balance to the participant
// pending amount. Funds stay inside the pool until the participant claims
// them. It can be invoked by the intelligence contract or with a witness of
// the pool administrator. Award panics on an unset category rate or when the
// free balance cannot cover the reward.
func Award(participant []byte, category string, intelligenceRef []byte, multiplier int) int {
	ctx := storage.GetContext()

	authorizeAward(ctx)

	if multiplier <= 0 {
		panic("value out of range")
	}

	rawRate := storage.Get(ctx, rateKey(category))
	if rawRate == nil || rawRate.(int) == 0 {
		panic("unknown reward category")
	}

	amount := rawRate.(int) * multiplier

	balance := common.GetIntOrZero(ctx, balanceKey)
	if balance < amount {
		panic("insufficient pool funds")
	}

	storage.Put(ctx, balanceKey, balance-amount)
	common.AddToInt(ctx, pendingKey(participant), amount)

	appendHistory(ctx, participant, Distribution{
		Category:        category,
		Amount:          amount,
		IntelligenceRef: intelligenceRef,
		Multiplier:      multiplier,
		AwardedAt:       runtime.GetTime(),
	})

	runtime.Notify("RewardEarned", participant, category, amount)

	return amount
}

// Claim finalizes all pending rewards of the participant. It can be invoked
// only with a witness of the participant. Claim panics when there is nothing
// pending.
func Claim(participant []byte) int {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(participant)

	key := pendingKey(participant)
	rawPending := storage.Get(ctx, key)
	if rawPending == nil || rawPending.(int) == 0 {
		panic("nothing to claim")
	}

	amount := rawPending.(int)

	storage.Delete(ctx, key)
	common.AddToInt(ctx, distributedKey, amount)

	runtime.Notify("RewardsClaimed", participant, amount)

	return amount
}

// PendingOf returns the unclaimed reward amount of the participant.
func PendingOf(participant []byte) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, pendingKey(participant))
}

// RewardRate returns the base reward of the category, zero when unset.
func RewardRate(category string) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, rateKey(category))
}

// GetPoolStats returns pool-wide counters.
func GetPoolStats() PoolStats {
	ctx := storage.GetReadOnlyContext()

	return PoolStats{
		Balance:          common.GetIntOrZero(ctx, balanceKey),
		TotalDistributed: common.GetIntOrZero(ctx, distributedKey),
	}
}

// History returns an iterator over Distribution records of the participant in
// the order they were awarded.
func History(participant []byte) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, participantKey(historyPrefix, participant),
		storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkAdminWitness(ctx storage.Context) {
	admin := storage.Get(ctx, adminKey).(interop.Hash160)
	common.CheckOwnerWitness(admin)
}

func authorizeAward(ctx storage.Context) {
	intelContract := storage.Get(ctx, intelContractKey).(interop.Hash160)
	if common.CalledByContract(intelContract) {
		return
	}

	checkAdminWitness(ctx)
}

func appendHistory(ctx storage.Context, participant []byte, d Distribution) {
	countKey := participantKey(countPrefix, participant)
	cnt := common.AddToInt(ctx, countKey, 1)

	key := append(participantKey(historyPrefix, participant), convert.ToBytes(cnt)...)
	storage.Put(ctx, key, std.Serialize(d))
}

func rateKey(category string) []byte {
	return append([]byte{ratePrefix}, []byte(category)...)
}

func pendingKey(participant []byte) []byte {
	return participantKey(pendingPrefix, participant)
}

func participantKey(prefix byte, participant []byte) []byte {
	return append([]byte{prefix}, participant...)
}
