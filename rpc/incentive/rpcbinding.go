// Package incentive contains RPC wrappers for CTI Incentive contract.
package incentive

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// IncentiveDistribution is a contract-specific incentive.Distribution type used by its methods.
type IncentiveDistribution struct {
	Category string
	Amount *big.Int
	IntelligenceRef []byte
	Multiplier *big.Int
	AwardedAt *big.Int
}

// IncentivePoolStats is a contract-specific incentive.PoolStats type used by its methods.
type IncentivePoolStats struct {
	Balance *big.Int
	TotalDistributed *big.Int
}

// FundsAddedEvent represents "FundsAdded" event emitted by the contract.
type FundsAddedEvent struct {
	Amount *big.Int
}

// RewardRateSetEvent represents "RewardRateSet" event emitted by the contract.
type RewardRateSetEvent struct {
	Category string
	Rate *big.Int
}

// RewardEarnedEvent represents "RewardEarned" event emitted by the contract.
type RewardEarnedEvent struct {
	Participant []byte
	Category string
	Amount *big.Int
}

// RewardsClaimedEvent represents "RewardsClaimed" event emitted by the contract.
type RewardsClaimedEvent struct {
	Participant []byte
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetPoolStats invokes `getPoolStats` method of contract.
func (c *ContractReader) GetPoolStats() (*IncentivePoolStats, error) {
	return itemToIncentivePoolStats(unwrap.Item(c.invoker.Call(c.hash, "getPoolStats")))
}

// History invokes `history` method of contract.
func (c *ContractReader) History(participant []byte) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "history", participant))
}

// HistoryExpanded is similar to History (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) HistoryExpanded(participant []byte, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "history", _numOfIteratorItems, participant))
}

// PendingOf invokes `pendingOf` method of contract.
func (c *ContractReader) PendingOf(participant []byte) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "pendingOf", participant))
}

// RewardRate invokes `rewardRate` method of contract.
func (c *ContractReader) RewardRate(category string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "rewardRate", category))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddFunds creates a transaction invoking `addFunds` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddFunds(amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addFunds", amount)
}

// AddFundsTransaction creates a transaction invoking `addFunds` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddFundsTransaction(amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addFunds", amount)
}

// AddFundsUnsigned creates a transaction invoking `addFunds` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddFundsUnsigned(amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addFunds", nil, amount)
}

// Award creates a transaction invoking `award` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Award(participant []byte, category string, intelligenceRef []byte, multiplier *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "award", participant, category, intelligenceRef, multiplier)
}

// AwardTransaction creates a transaction invoking `award` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AwardTransaction(participant []byte, category string, intelligenceRef []byte, multiplier *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "award", participant, category, intelligenceRef, multiplier)
}

// AwardUnsigned creates a transaction invoking `award` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AwardUnsigned(participant []byte, category string, intelligenceRef []byte, multiplier *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "award", nil, participant, category, intelligenceRef, multiplier)
}

// Claim creates a transaction invoking `claim` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Claim(participant []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claim", participant)
}

// ClaimTransaction creates a transaction invoking `claim` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimTransaction(participant []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claim", participant)
}

// ClaimUnsigned creates a transaction invoking `claim` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimUnsigned(participant []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claim", nil, participant)
}

// SetRewardRate creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetRewardRate(category string, rate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setRewardRate", category, rate)
}

// SetRewardRateTransaction creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetRewardRateTransaction(category string, rate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setRewardRate", category, rate)
}

// SetRewardRateUnsigned creates a transaction invoking `setRewardRate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetRewardRateUnsigned(category string, rate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setRewardRate", nil, category, rate)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToIncentiveDistribution converts stack item into *IncentiveDistribution.
func itemToIncentiveDistribution(item stackitem.Item, err error) (*IncentiveDistribution, error) {
	if err != nil {
		return nil, err
	}
	var res = new(IncentiveDistribution)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of IncentiveDistribution from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *IncentiveDistribution) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Category, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Category: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	res.IntelligenceRef, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field IntelligenceRef: %w", err)
	}

	index++
	res.Multiplier, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Multiplier: %w", err)
	}

	index++
	res.AwardedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AwardedAt: %w", err)
	}

	return nil
}

// itemToIncentivePoolStats converts stack item into *IncentivePoolStats.
func itemToIncentivePoolStats(item stackitem.Item, err error) (*IncentivePoolStats, error) {
	if err != nil {
		return nil, err
	}
	var res = new(IncentivePoolStats)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of IncentivePoolStats from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *IncentivePoolStats) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Balance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Balance: %w", err)
	}

	index++
	res.TotalDistributed, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalDistributed: %w", err)
	}

	return nil
}

// FundsAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "FundsAdded" name from the provided [result.ApplicationLog].
func FundsAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FundsAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FundsAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FundsAdded" {
				continue
			}
			event := new(FundsAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FundsAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FundsAddedEvent or
// returns an error if it's not possible to do to so.
func (e *FundsAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// RewardRateSetEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardRateSet" name from the provided [result.ApplicationLog].
func RewardRateSetEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardRateSetEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardRateSetEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardRateSet" {
				continue
			}
			event := new(RewardRateSetEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardRateSetEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardRateSetEvent or
// returns an error if it's not possible to do to so.
func (e *RewardRateSetEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Category, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Category: %w", err)
	}

	index++
	e.Rate, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Rate: %w", err)
	}

	return nil
}

// RewardEarnedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardEarned" name from the provided [result.ApplicationLog].
func RewardEarnedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardEarnedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardEarnedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardEarned" {
				continue
			}
			event := new(RewardEarnedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardEarnedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardEarnedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardEarnedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Participant, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Participant: %w", err)
	}

	index++
	e.Category, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Category: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// RewardsClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardsClaimed" name from the provided [result.ApplicationLog].
func RewardsClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardsClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardsClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardsClaimed" {
				continue
			}
			event := new(RewardsClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardsClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardsClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardsClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Participant, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Participant: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
