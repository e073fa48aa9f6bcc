// Package intelligence contains RPC wrappers for CTI Intelligence contract.
package intelligence

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

// IntelligenceProfileView is a contract-specific intelligence.ProfileView type used by its methods.
type IntelligenceProfileView struct {
	Owner []byte
	Organization string
	Contributions *big.Int
	SuccessfulValidations *big.Int
	AccessLevel *big.Int
	JoinedAt *big.Int
	ReputationScore *big.Int
}

// IntelligenceRecord is a contract-specific intelligence.Record type used by its methods.
type IntelligenceRecord struct {
	IOCHash []byte
	ThreatType string
	Severity *big.Int
	ConfidenceScore *big.Int
	StixPattern string
	MitreTechniques []string
	Submitter []byte
	SubmittedAt *big.Int
	ExpiresAt *big.Int
	ValidationCount *big.Int
	ValidationScoreSum *big.Int
	Verified bool
}

// ParticipantRegisteredEvent represents "ParticipantRegistered" event emitted by the contract.
type ParticipantRegisteredEvent struct {
	Identity []byte
	Organization string
}

// IntelligenceSubmittedEvent represents "IntelligenceSubmitted" event emitted by the contract.
type IntelligenceSubmittedEvent struct {
	ID util.Uint256
	Submitter []byte
	ThreatType string
	Severity *big.Int
}

// IntelligenceValidatedEvent represents "IntelligenceValidated" event emitted by the contract.
type IntelligenceValidatedEvent struct {
	ID util.Uint256
	Validator []byte
	QualityScore *big.Int
	IsAccurate bool
}

// IntelligenceVerifiedEvent represents "IntelligenceVerified" event emitted by the contract.
type IntelligenceVerifiedEvent struct {
	ID util.Uint256
	Submitter []byte
}

// AccessGrantedEvent represents "AccessGranted" event emitted by the contract.
type AccessGrantedEvent struct {
	ID util.Uint256
	Requestor []byte
	DurationHours *big.Int
}

// AccessLevelUpdatedEvent represents "AccessLevelUpdated" event emitted by the contract.
type AccessLevelUpdatedEvent struct {
	Identity []byte
	AccessLevel *big.Int
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

// GetIntelligence invokes `getIntelligence` method of contract.
func (c *ContractReader) GetIntelligence(id []byte) (*IntelligenceRecord, error) {
	return itemToIntelligenceRecord(unwrap.Item(c.invoker.Call(c.hash, "getIntelligence", id)))
}

// GetProfile invokes `getProfile` method of contract.
func (c *ContractReader) GetProfile(identity []byte) (*IntelligenceProfileView, error) {
	return itemToIntelligenceProfileView(unwrap.Item(c.invoker.Call(c.hash, "getProfile", identity)))
}

// IsExpired invokes `isExpired` method of contract.
func (c *ContractReader) IsExpired(id []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isExpired", id))
}

// ListBySubmitter invokes `listBySubmitter` method of contract.
func (c *ContractReader) ListBySubmitter(identity []byte) ([][]byte, error) {
	return unwrap.ArrayOfBytes(c.invoker.Call(c.hash, "listBySubmitter", identity))
}

// VerifyAccess invokes `verifyAccess` method of contract.
func (c *ContractReader) VerifyAccess(id []byte, holder []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "verifyAccess", id, holder))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// GrantAccess creates a transaction invoking `grantAccess` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) GrantAccess(identity []byte, id []byte, requestor []byte, durationHours *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "grantAccess", identity, id, requestor, durationHours)
}

// GrantAccessTransaction creates a transaction invoking `grantAccess` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) GrantAccessTransaction(identity []byte, id []byte, requestor []byte, durationHours *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "grantAccess", identity, id, requestor, durationHours)
}

// GrantAccessUnsigned creates a transaction invoking `grantAccess` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) GrantAccessUnsigned(identity []byte, id []byte, requestor []byte, durationHours *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "grantAccess", nil, identity, id, requestor, durationHours)
}

// RegisterParticipant creates a transaction invoking `registerParticipant` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterParticipant(identity []byte, organization string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerParticipant", identity, organization)
}

// RegisterParticipantTransaction creates a transaction invoking `registerParticipant` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterParticipantTransaction(identity []byte, organization string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerParticipant", identity, organization)
}

// RegisterParticipantUnsigned creates a transaction invoking `registerParticipant` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterParticipantUnsigned(identity []byte, organization string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerParticipant", nil, identity, organization)
}

// SubmitIntelligence creates a transaction invoking `submitIntelligence` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SubmitIntelligence(identity []byte, iocHash []byte, threatType string, severity *big.Int, confidence *big.Int, stixPattern string, mitreTechniques []string, expirationHours *big.Int, feeAmount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitIntelligence", identity, iocHash, threatType, severity, confidence, stixPattern, mitreTechniques, expirationHours, feeAmount)
}

// SubmitIntelligenceTransaction creates a transaction invoking `submitIntelligence` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubmitIntelligenceTransaction(identity []byte, iocHash []byte, threatType string, severity *big.Int, confidence *big.Int, stixPattern string, mitreTechniques []string, expirationHours *big.Int, feeAmount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "submitIntelligence", identity, iocHash, threatType, severity, confidence, stixPattern, mitreTechniques, expirationHours, feeAmount)
}

// SubmitIntelligenceUnsigned creates a transaction invoking `submitIntelligence` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubmitIntelligenceUnsigned(identity []byte, iocHash []byte, threatType string, severity *big.Int, confidence *big.Int, stixPattern string, mitreTechniques []string, expirationHours *big.Int, feeAmount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "submitIntelligence", nil, identity, iocHash, threatType, severity, confidence, stixPattern, mitreTechniques, expirationHours, feeAmount)
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

// UpdateAccessLevel creates a transaction invoking `updateAccessLevel` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateAccessLevel(identity []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateAccessLevel", identity)
}

// UpdateAccessLevelTransaction creates a transaction invoking `updateAccessLevel` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateAccessLevelTransaction(identity []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateAccessLevel", identity)
}

// UpdateAccessLevelUnsigned creates a transaction invoking `updateAccessLevel` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateAccessLevelUnsigned(identity []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateAccessLevel", nil, identity)
}

// ValidateIntelligence creates a transaction invoking `validateIntelligence` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ValidateIntelligence(identity []byte, id []byte, qualityScore *big.Int, isAccurate bool, comments string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "validateIntelligence", identity, id, qualityScore, isAccurate, comments)
}

// ValidateIntelligenceTransaction creates a transaction invoking `validateIntelligence` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ValidateIntelligenceTransaction(identity []byte, id []byte, qualityScore *big.Int, isAccurate bool, comments string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "validateIntelligence", identity, id, qualityScore, isAccurate, comments)
}

// ValidateIntelligenceUnsigned creates a transaction invoking `validateIntelligence` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ValidateIntelligenceUnsigned(identity []byte, id []byte, qualityScore *big.Int, isAccurate bool, comments string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "validateIntelligence", nil, identity, id, qualityScore, isAccurate, comments)
}

// itemToIntelligenceProfileView converts stack item into *IntelligenceProfileView.
func itemToIntelligenceProfileView(item stackitem.Item, err error) (*IntelligenceProfileView, error) {
	if err != nil {
		return nil, err
	}
	var res = new(IntelligenceProfileView)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of IntelligenceProfileView from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *IntelligenceProfileView) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Owner, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.Organization, err = func (item stackitem.Item) (string, error) {
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
		return fmt.Errorf("field Organization: %w", err)
	}

	index++
	res.Contributions, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Contributions: %w", err)
	}

	index++
	res.SuccessfulValidations, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field SuccessfulValidations: %w", err)
	}

	index++
	res.AccessLevel, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AccessLevel: %w", err)
	}

	index++
	res.JoinedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field JoinedAt: %w", err)
	}

	index++
	res.ReputationScore, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ReputationScore: %w", err)
	}

	return nil
}

// itemToIntelligenceRecord converts stack item into *IntelligenceRecord.
func itemToIntelligenceRecord(item stackitem.Item, err error) (*IntelligenceRecord, error) {
	if err != nil {
		return nil, err
	}
	var res = new(IntelligenceRecord)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of IntelligenceRecord from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *IntelligenceRecord) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 12 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.IOCHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field IOCHash: %w", err)
	}

	index++
	res.ThreatType, err = func (item stackitem.Item) (string, error) {
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
		return fmt.Errorf("field ThreatType: %w", err)
	}

	index++
	res.Severity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Severity: %w", err)
	}

	index++
	res.ConfidenceScore, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ConfidenceScore: %w", err)
	}

	index++
	res.StixPattern, err = func (item stackitem.Item) (string, error) {
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
		return fmt.Errorf("field StixPattern: %w", err)
	}

	index++
	res.MitreTechniques, err = func (item stackitem.Item) ([]string, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]string, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) (string, error) {
				b, err := item.TryBytes()
				if err != nil {
					return "", err
				}
				if !utf8.Valid(b) {
					return "", errors.New("not a UTF-8 string")
				}
				return string(b), nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field MitreTechniques: %w", err)
	}

	index++
	res.Submitter, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Submitter: %w", err)
	}

	index++
	res.SubmittedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field SubmittedAt: %w", err)
	}

	index++
	res.ExpiresAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ExpiresAt: %w", err)
	}

	index++
	res.ValidationCount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ValidationCount: %w", err)
	}

	index++
	res.ValidationScoreSum, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ValidationScoreSum: %w", err)
	}

	index++
	res.Verified, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Verified: %w", err)
	}

	return nil
}

// ParticipantRegisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "ParticipantRegistered" name from the provided [result.ApplicationLog].
func ParticipantRegisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*ParticipantRegisteredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ParticipantRegisteredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ParticipantRegistered" {
				continue
			}
			event := new(ParticipantRegisteredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ParticipantRegisteredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ParticipantRegisteredEvent or
// returns an error if it's not possible to do to so.
func (e *ParticipantRegisteredEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Identity, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Identity: %w", err)
	}

	index++
	e.Organization, err = func (item stackitem.Item) (string, error) {
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
		return fmt.Errorf("field Organization: %w", err)
	}

	return nil
}

// IntelligenceSubmittedEventsFromApplicationLog retrieves a set of all emitted events
// with "IntelligenceSubmitted" name from the provided [result.ApplicationLog].
func IntelligenceSubmittedEventsFromApplicationLog(log *result.ApplicationLog) ([]*IntelligenceSubmittedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*IntelligenceSubmittedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "IntelligenceSubmitted" {
				continue
			}
			event := new(IntelligenceSubmittedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize IntelligenceSubmittedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to IntelligenceSubmittedEvent or
// returns an error if it's not possible to do to so.
func (e *IntelligenceSubmittedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = func (item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Submitter, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Submitter: %w", err)
	}

	index++
	e.ThreatType, err = func (item stackitem.Item) (string, error) {
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
		return fmt.Errorf("field ThreatType: %w", err)
	}

	index++
	e.Severity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Severity: %w", err)
	}

	return nil
}

// IntelligenceValidatedEventsFromApplicationLog retrieves a set of all emitted events
// with "IntelligenceValidated" name from the provided [result.ApplicationLog].
func IntelligenceValidatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*IntelligenceValidatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*IntelligenceValidatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "IntelligenceValidated" {
				continue
			}
			event := new(IntelligenceValidatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize IntelligenceValidatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to IntelligenceValidatedEvent or
// returns an error if it's not possible to do to so.
func (e *IntelligenceValidatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ID, err = func (item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Validator, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Validator: %w", err)
	}

	index++
	e.QualityScore, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field QualityScore: %w", err)
	}

	index++
	e.IsAccurate, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field IsAccurate: %w", err)
	}

	return nil
}

// IntelligenceVerifiedEventsFromApplicationLog retrieves a set of all emitted events
// with "IntelligenceVerified" name from the provided [result.ApplicationLog].
func IntelligenceVerifiedEventsFromApplicationLog(log *result.ApplicationLog) ([]*IntelligenceVerifiedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*IntelligenceVerifiedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "IntelligenceVerified" {
				continue
			}
			event := new(IntelligenceVerifiedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize IntelligenceVerifiedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to IntelligenceVerifiedEvent or
// returns an error if it's not possible to do to so.
func (e *IntelligenceVerifiedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.ID, err = func (item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Submitter, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Submitter: %w", err)
	}

	return nil
}

// AccessGrantedEventsFromApplicationLog retrieves a set of all emitted events
// with "AccessGranted" name from the provided [result.ApplicationLog].
func AccessGrantedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AccessGrantedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AccessGrantedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AccessGranted" {
				continue
			}
			event := new(AccessGrantedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AccessGrantedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AccessGrantedEvent or
// returns an error if it's not possible to do to so.
func (e *AccessGrantedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.ID, err = func (item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Requestor, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Requestor: %w", err)
	}

	index++
	e.DurationHours, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field DurationHours: %w", err)
	}

	return nil
}

// AccessLevelUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "AccessLevelUpdated" name from the provided [result.ApplicationLog].
func AccessLevelUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AccessLevelUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AccessLevelUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AccessLevelUpdated" {
				continue
			}
			event := new(AccessLevelUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AccessLevelUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AccessLevelUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *AccessLevelUpdatedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Identity, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Identity: %w", err)
	}

	index++
	e.AccessLevel, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AccessLevel: %w", err)
	}

	return nil
}
