/*
Package intelligence implements the CTI Intelligence contract.

Intelligence contract drives the lifecycle of community threat intelligence:
participant registration, record submission, community validation with
verification promotion and capability-based sharing. It is the only contract
allowed to mutate Platform counters, drive Reputation score changes, award
Incentive pool rewards and issue delegated Access capabilities, their
addresses are wired in at deployment.

A record is identified by the SHA-256 hash of its IOC hash concatenated with
the submitter address, so each participant can submit any indicator exactly
once. Records expire at a fixed timestamp and expired records no longer
accept validations. Verification requires 3 validations with a truncated
average quality of at least 70 and is never unset.

# Contract notifications

ParticipantRegistered notification. This notification is produced when a new
participant joins.

	ParticipantRegistered:
	  - name: identity
	    type: ByteArray
	  - name: organization
	    type: String

IntelligenceSubmitted notification. This notification is produced when a new
record is stored.

	IntelligenceSubmitted:
	  - name: id
	    type: Hash256
	  - name: submitter
	    type: ByteArray
	  - name: threatType
	    type: String
	  - name: severity
	    type: Integer

IntelligenceValidated notification. This notification is produced when a
validation is recorded.

	IntelligenceValidated:
	  - name: id
	    type: Hash256
	  - name: validator
	    type: ByteArray
	  - name: qualityScore
	    type: Integer
	  - name: isAccurate
	    type: Boolean

IntelligenceVerified notification. This notification is produced when a
record passes community verification.

	IntelligenceVerified:
	  - name: id
	    type: Hash256
	  - name: submitter
	    type: ByteArray

AccessGranted notification. This notification is produced when the submitter
shares a record.

	AccessGranted:
	  - name: id
	    type: Hash256
	  - name: requestor
	    type: ByteArray
	  - name: durationHours
	    type: Integer

AccessLevelUpdated notification. This notification is produced when a profile
access level is re-synced with the reputation tier.

	AccessLevelUpdated:
	  - name: identity
	    type: ByteArray
	  - name: accessLevel
	    type: Integer
*/
package intelligence

/*
Contract storage model.

Current conventions:
 <identity>: binary unique identifier of the network participant
 <id>: 32-byte identifier of an intelligence record

# Summary
Key-value storage format:
 - 'P' -> interop.Hash160
   address of the Platform contract
 - 'R' -> interop.Hash160
   address of the Reputation contract
 - 'I' -> interop.Hash160
   address of the Incentive contract
 - 'A' -> interop.Hash160
   address of the Access contract
 - 'p<identity>' -> std.Serialize(Profile)
   participant profile
 - 'x<id>' -> std.Serialize(Record)
   threat intelligence record
 - 'o<identity><id>' -> []byte{1}
   submitter ownership index
 - 'v<id><identity>' -> std.Serialize(Validation)
   validation of the record by the participant
*/
