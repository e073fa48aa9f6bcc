// Package intelconst contains constants shared between the Intelligence
// contract and its clients.
package intelconst

// Lifecycle parameters.
const (
	// MinSubmissionFee is the smallest fee accepted with a submission,
	// expressed in the smallest pool token units.
	MinSubmissionFee = 1_0000_0000

	// MinValidationReputation is the reputation score required to
	// validate intelligence.
	MinValidationReputation = 50

	// InitialReputation is the score assigned to a participant on
	// registration.
	InitialReputation = 10

	// DefaultAccessLevel is the access level assigned to a participant on
	// registration.
	DefaultAccessLevel = 1

	// VerificationMinValidations is the number of validations required
	// before a record may become verified.
	VerificationMinValidations = 3

	// VerificationMinAverage is the truncated average quality score
	// required for verification.
	VerificationMinAverage = 70

	// MaxSeverity caps the record severity scale.
	MaxSeverity = 10

	// MinQualityScore and MaxQualityScore bound validation quality
	// scores.
	MinQualityScore = 1
	MaxQualityScore = 100
)

// Reward categories known to the Incentive contract.
const (
	CategoryValidation   = "validation"
	CategoryVerification = "verification"
)

// Reputation change reasons.
const (
	ReasonAccurateValidation = "accurate_validation"
)

// Error strings thrown by the Intelligence contract.
const (
	ErrAlreadyRegistered       = "already registered"
	ErrNotAuthorized           = "not authorized"
	ErrNotFound                = "not found"
	ErrOutOfRange              = "value out of range"
	ErrInsufficientFee         = "insufficient submission fee"
	ErrInsufficientReputation  = "insufficient reputation"
	ErrSelfValidation          = "self validation"
	ErrExpired                 = "intelligence expired"
	ErrDuplicateEntry          = "duplicate entry"
	ErrInsufficientAccessLevel = "insufficient access level"
)
