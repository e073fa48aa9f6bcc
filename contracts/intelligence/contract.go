package intelligence

import (
	"github.com/ctinet-dev/cti-contract/common"
	"github.com/ctinet-dev/cti-contract/contracts/intelligence/intelconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Profile stores participant metadata.
	Profile struct {
		// Address of the participant.
		Owner []byte
		// Organization the participant represents.
		Organization string
		// Number of records submitted by the participant.
		Contributions int
		// Number of accurate validations performed by the participant.
		SuccessfulValidations int
		// Current access level, from 1 to 5.
		AccessLevel int
		// Registration timestamp in milliseconds.
		JoinedAt int
	}

	// ProfileView is a Profile projection extended with the live
	// reputation score.
	ProfileView struct {
		Owner                 []byte
		Organization          string
		Contributions         int
		SuccessfulValidations int
		AccessLevel           int
		JoinedAt              int
		ReputationScore       int
	}

	// Record stores a single threat intelligence entry.
	Record struct {
		// Hash of the indicator of compromise.
		IOCHash []byte
		// Threat classification, e.g. "malware" or "phishing".
		ThreatType string
		// Severity from 0 to 10.
		Severity int
		// Submitter-declared confidence from 1 to 100.
		ConfidenceScore int
		// STIX 2.1 pattern describing the indicator.
		StixPattern string
		// MITRE ATT&CK technique identifiers.
		MitreTechniques []string
		// Address of the submitter.
		Submitter []byte
		// Submission timestamp in milliseconds.
		SubmittedAt int
		// Expiration timestamp in milliseconds.
		ExpiresAt int
		// Number of validations received.
		ValidationCount int
		// Sum of received validation quality scores.
		ValidationScoreSum int
		// Record passed community verification.
		Verified bool
	}

	// Validation stores a single community validation of a record.
	Validation struct {
		// Identifier of the validated record.
		IntelligenceID []byte
		// Address of the validator.
		Validator []byte
		// Quality score from 1 to 100.
		QualityScore int
		// Validator confirms the intelligence as accurate.
		IsAccurate bool
		// Free-form validator comments.
		Comments string
		// Validation timestamp in milliseconds.
		CreatedAt int
	}

	// poolStats is a copy of
	// github.com/ctinet-dev/cti-contract/contracts/incentive.PoolStats
	// to prevent cross-contract imports that may fail due to internal
	// `_deploy` calls.
	poolStats struct {
		Balance          int
		TotalDistributed int
	}
)

const (
	platformContractKey   = 'P'
	reputationContractKey = 'R'
	incentiveContractKey  = 'I'
	accessContractKey     = 'A'

	profilePrefix    = 'p'
	recordPrefix     = 'x'
	ownerPrefix      = 'o'
	validationPrefix = 'v'

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
	platformContract := args[0].(interop.Hash160)
	reputationContract := args[1].(interop.Hash160)
	incentiveContract := args[2].(interop.Hash160)
	accessContract := args[3].(interop.Hash160)

	if len(platformContract) != interop.Hash160Len ||
		len(reputationContract) != interop.Hash160Len ||
		len(incentiveContract) != interop.Hash160Len ||
		len(accessContract) != interop.Hash160Len {
		panic("incorrect contract addresses")
	}

	storage.Put(ctx, platformContractKey, platformContract)
	storage.Put(ctx, reputationContractKey, reputationContract)
	storage.Put(ctx, incentiveContractKey, incentiveContract)
	storage.Put(ctx, accessContractKey, accessContract)

	runtime.Log("intelligence contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("intelligence contract updated")
}

// RegisterParticipant creates a participant profile with the default access
// level, registers the initial reputation score and records the membership
// on the platform. It can be invoked only with a witness of the identity.
// RegisterParticipant panics if the identity is already a member.
func RegisterParticipant(identity []byte, organization string) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(identity)

	if storage.Get(ctx, profileKey(identity)) != nil {
		panic(intelconst.ErrAlreadyRegistered)
	}

	common.SetSerialized(ctx, profileKey(identity), Profile{
		Owner:                 identity,
		Organization:          organization,
		Contributions:         0,
		SuccessfulValidations: 0,
		AccessLevel:           intelconst.DefaultAccessLevel,
		JoinedAt:              runtime.GetTime(),
	})

	platformContract := storage.Get(ctx, platformContractKey).(interop.Hash160)
	contract.Call(platformContract, "addParticipant", contract.All, identity)

	reputationContract := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	contract.Call(reputationContract, "register", contract.All,
		identity, intelconst.InitialReputation)

	runtime.Notify("ParticipantRegistered", identity, organization)
}

// SubmitIntelligence stores a new threat intelligence record and returns its
// identifier, the SHA-256 hash of the IOC hash concatenated with the
// submitter address. Zero expirationHours produces an immediately expired
// record. It can be invoked only with a witness of a registered identity.
func SubmitIntelligence(identity []byte, iocHash []byte, threatType string,
	severity int, confidence int, stixPattern string, mitreTechniques []string,
	expirationHours int, feeAmount int) []byte {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(identity)

	profile := getProfile(ctx, identity)

	if severity < 0 || severity > intelconst.MaxSeverity ||
		confidence < intelconst.MinQualityScore || confidence > intelconst.MaxQualityScore ||
		expirationHours < 0 {
		panic(intelconst.ErrOutOfRange)
	}
	if feeAmount < intelconst.MinSubmissionFee {
		panic(intelconst.ErrInsufficientFee)
	}

	id := recordID(iocHash, identity)

	key := recordKey(id)
	if storage.Get(ctx, key) != nil {
		panic(intelconst.ErrDuplicateEntry)
	}

	now := runtime.GetTime()

	common.SetSerialized(ctx, key, Record{
		IOCHash:            iocHash,
		ThreatType:         threatType,
		Severity:           severity,
		ConfidenceScore:    confidence,
		StixPattern:        stixPattern,
		MitreTechniques:    mitreTechniques,
		Submitter:          identity,
		SubmittedAt:        now,
		ExpiresAt:          now + expirationHours*msPerHour,
		ValidationCount:    0,
		ValidationScoreSum: 0,
		Verified:           false,
	})
	storage.Put(ctx, ownerKey(identity, id), []byte{1})

	profile.Contributions += 1
	common.SetSerialized(ctx, profileKey(identity), profile)

	platformContract := storage.Get(ctx, platformContractKey).(interop.Hash160)
	contract.Call(platformContract, "recordSubmission", contract.All, feeAmount)

	runtime.Notify("IntelligenceSubmitted", interop.Hash256(id), identity, threatType, severity)

	return id
}

// ValidateIntelligence records a community validation of the record. The
// validator needs a registered profile, a reputation score of at least 50
// and may not validate own or expired records, one validation per record.
// A record becomes verified once it collects 3 validations with a truncated
// average quality of at least 70, verification is never unset. Accurate
// validations raise the validator reputation and earn the validation reward
// when the pool can pay it. It can be invoked only with a witness of the
// identity.
func ValidateIntelligence(identity []byte, id []byte, qualityScore int,
	isAccurate bool, comments string) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(identity)

	profile := getProfile(ctx, identity)
	record := getRecord(ctx, id)

	reputationContract := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	score := contract.Call(reputationContract, "scoreOf", contract.ReadOnly, identity).(int)
	if score < intelconst.MinValidationReputation {
		panic(intelconst.ErrInsufficientReputation)
	}

	if common.BytesEqual(record.Submitter, identity) {
		panic(intelconst.ErrSelfValidation)
	}
	if runtime.GetTime() >= record.ExpiresAt {
		panic(intelconst.ErrExpired)
	}
	if qualityScore < intelconst.MinQualityScore || qualityScore > intelconst.MaxQualityScore {
		panic(intelconst.ErrOutOfRange)
	}

	valKey := validationKey(id, identity)
	if storage.Get(ctx, valKey) != nil {
		panic(intelconst.ErrDuplicateEntry)
	}

	common.SetSerialized(ctx, valKey, Validation{
		IntelligenceID: id,
		Validator:      identity,
		QualityScore:   qualityScore,
		IsAccurate:     isAccurate,
		Comments:       comments,
		CreatedAt:      runtime.GetTime(),
	})

	record.ValidationCount += 1
	record.ValidationScoreSum += qualityScore

	promoted := false
	if !record.Verified &&
		record.ValidationCount >= intelconst.VerificationMinValidations &&
		record.ValidationScoreSum/record.ValidationCount >= intelconst.VerificationMinAverage {
		record.Verified = true
		promoted = true
	}

	common.SetSerialized(ctx, recordKey(id), record)

	if isAccurate {
		profile.SuccessfulValidations += 1
		common.SetSerialized(ctx, profileKey(identity), profile)

		contract.Call(reputationContract, "adjust", contract.All,
			identity, 1, intelconst.ReasonAccurateValidation, id)

		tryAward(ctx, identity, intelconst.CategoryValidation, id)
	}

	if promoted {
		tryAward(ctx, record.Submitter, intelconst.CategoryVerification, id)
		runtime.Notify("IntelligenceVerified", interop.Hash256(id), record.Submitter)
	}

	platformContract := storage.Get(ctx, platformContractKey).(interop.Hash160)
	contract.Call(platformContract, "recordValidation", contract.All)

	runtime.Notify("IntelligenceValidated", interop.Hash256(id), identity, qualityScore, isAccurate)
}

// GrantAccess issues a read and comment capability for the record to the
// requestor. High severity records require a higher requestor access level:
// 3 for severity 8 and above, 2 for severity 5 and above, 1 otherwise. It
// can be invoked only with a witness of the record submitter.
func GrantAccess(identity []byte, id []byte, requestor []byte, durationHours int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(identity)

	record := getRecord(ctx, id)
	if !common.BytesEqual(record.Submitter, identity) {
		panic(intelconst.ErrNotAuthorized)
	}

	requestorProfile := getProfile(ctx, requestor)

	if requestorProfile.AccessLevel < requiredTier(record.Severity) {
		panic(intelconst.ErrInsufficientAccessLevel)
	}

	accessContract := storage.Get(ctx, accessContractKey).(interop.Hash160)
	contract.Call(accessContract, "issueCapability", contract.All,
		id, requestor, requestorProfile.AccessLevel, durationHours,
		true, false, false, true)

	runtime.Notify("AccessGranted", interop.Hash256(id), requestor, durationHours)
}

// UpdateAccessLevel re-syncs the profile access level with the tier of the
// current reputation score. It can be invoked only with a witness of the
// identity.
func UpdateAccessLevel(identity []byte) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(identity)

	profile := getProfile(ctx, identity)

	reputationContract := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	score := contract.Call(reputationContract, "scoreOf", contract.ReadOnly, identity).(int)
	level := contract.Call(reputationContract, "tierOf", contract.ReadOnly, score).(int)

	if level == profile.AccessLevel {
		return
	}

	profile.AccessLevel = level
	common.SetSerialized(ctx, profileKey(identity), profile)

	runtime.Notify("AccessLevelUpdated", identity, level)
}

// GetProfile returns the participant profile extended with the live
// reputation score. It panics if the identity is not registered.
func GetProfile(identity []byte) ProfileView {
	ctx := storage.GetReadOnlyContext()

	profile := getProfile(ctx, identity)

	reputationContract := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	score := contract.Call(reputationContract, "scoreOf", contract.ReadOnly, identity).(int)

	return ProfileView{
		Owner:                 profile.Owner,
		Organization:          profile.Organization,
		Contributions:         profile.Contributions,
		SuccessfulValidations: profile.SuccessfulValidations,
		AccessLevel:           profile.AccessLevel,
		JoinedAt:              profile.JoinedAt,
		ReputationScore:       score,
	}
}

// GetIntelligence returns the stored record. It panics if there is none.
func GetIntelligence(id []byte) Record {
	ctx := storage.GetReadOnlyContext()
	return getRecord(ctx, id)
}

// IsExpired returns true when the record expiration timestamp has passed.
func IsExpired(id []byte) bool {
	ctx := storage.GetReadOnlyContext()
	record := getRecord(ctx, id)

	return runtime.GetTime() >= record.ExpiresAt
}

// VerifyAccess returns true when the holder has a non-expired capability for
// the record.
func VerifyAccess(id []byte, holder []byte) bool {
	ctx := storage.GetReadOnlyContext()

	accessContract := storage.Get(ctx, accessContractKey).(interop.Hash160)

	return contract.Call(accessContract, "isValid", contract.ReadOnly, id, holder).(bool)
}

// ListBySubmitter returns identifiers of all records submitted by the
// identity.
func ListBySubmitter(identity []byte) [][]byte {
	ctx := storage.GetReadOnlyContext()

	prefix := append([]byte{ownerPrefix}, identity...)
	it := storage.Find(ctx, prefix, storage.KeysOnly)

	var result [][]byte

	for iterator.Next(it) {
		key := iterator.Value(it).([]byte) // iterator MUST BE `storage.KeysOnly`
		result = append(result, key[len(prefix):])
	}

	return result
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// tryAward awards rate*1 of the category to the participant when the
// category rate is set and the pool can cover it. Lifecycle progress must
// not depend on the pool being funded.
func tryAward(ctx storage.Context, participant []byte, category string, id []byte) {
	incentiveContract := storage.Get(ctx, incentiveContractKey).(interop.Hash160)

	rate := contract.Call(incentiveContract, "rewardRate", contract.ReadOnly, category).(int)
	if rate == 0 {
		return
	}

	stats := contract.Call(incentiveContract, "getPoolStats", contract.ReadOnly).(poolStats)
	if stats.Balance < rate {
		return
	}

	contract.Call(incentiveContract, "award", contract.All,
		participant, category, id, 1)
}

func requiredTier(severity int) int {
	switch {
	case severity >= 8:
		return 3
	case severity >= 5:
		return 2
	default:
		return 1
	}
}

func getProfile(ctx storage.Context, identity []byte) Profile {
	rawProfile := storage.Get(ctx, profileKey(identity))
	if rawProfile == nil {
		panic(intelconst.ErrNotFound)
	}

	return std.Deserialize(rawProfile.([]byte)).(Profile)
}

func getRecord(ctx storage.Context, id []byte) Record {
	rawRecord := storage.Get(ctx, recordKey(id))
	if rawRecord == nil {
		panic(intelconst.ErrNotFound)
	}

	return std.Deserialize(rawRecord.([]byte)).(Record)
}

func recordID(iocHash []byte, submitter []byte) []byte {
	return crypto.Sha256(append(iocHash, submitter...))
}

func profileKey(identity []byte) []byte {
	return append([]byte{profilePrefix}, identity...)
}

func recordKey(id []byte) []byte {
	return append([]byte{recordPrefix}, id...)
}

func ownerKey(identity []byte, id []byte) []byte {
	key := append([]byte{ownerPrefix}, identity...)
	return append(key, id...)
}

func validationKey(id []byte, validator []byte) []byte {
	key := append([]byte{validationPrefix}, id...)
	return append(key, validator...)
}
