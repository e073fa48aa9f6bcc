/*
Package reputation implements the CTI Reputation contract.

Reputation contract is the single source of truth for participant scores.
Scores are created when a participant joins the network and change as the
Intelligence contract reports submission and validation outcomes. The
administrator can adjust scores directly, for example to penalize abusive
members. A score never goes below zero, negative deltas saturate. Scores map
to participation tiers from 1 to 5 which gate access level upgrades.

Every change is recorded in an append-only per-identity history.

# Contract notifications

ReputationUpdated notification. This notification is produced when a score
changes.

	ReputationUpdated:
	  - name: identity
	    type: ByteArray
	  - name: oldScore
	    type: Integer
	  - name: newScore
	    type: Integer
	  - name: reason
	    type: String
*/
package reputation

/*
Contract storage model.

Current conventions:
 <identity>: binary unique identifier of the network participant

# Summary
Key-value storage format:
 - 'a' -> interop.Hash160
   contract administrator address
 - 'i' -> interop.Hash160
   address of the Intelligence contract allowed to drive score changes
 - 's<identity>' -> int
   current reputation score of the participant
 - 'c<identity>' -> int
   number of score changes applied to the participant
 - 'h<identity>' + count -> std.Serialize(Entry)
   score change records, counted starting from 1
*/
