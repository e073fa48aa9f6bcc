/*
Package incentive implements the CTI Incentive contract.

Incentive contract holds the shared reward pool of the threat intelligence
network. The administrator funds the pool and configures per-category reward
rates. The Intelligence contract awards rewards for accurate validations and
verified submissions, awarding moves funds from the free pool balance into
the participant pending amount. Funds leave the pool accounting only when the
participant claims them, so free balance plus all pending amounts plus the
total distributed amount always equals everything ever added to the pool.

# Contract notifications

RewardEarned notification. This notification is produced when a reward is
awarded to a participant.

	RewardEarned:
	  - name: participant
	    type: ByteArray
	  - name: category
	    type: String
	  - name: amount
	    type: Integer

RewardsClaimed notification. This notification is produced when a participant
claims pending rewards.

	RewardsClaimed:
	  - name: participant
	    type: ByteArray
	  - name: amount
	    type: Integer
*/
package incentive

/*
Contract storage model.

Current conventions:
 <participant>: binary unique identifier of the network participant
 <category>: UTF-8 reward category name

# Summary
Key-value storage format:
 - 'a' -> interop.Hash160
   pool administrator address
 - 'i' -> interop.Hash160
   address of the Intelligence contract allowed to award rewards
 - 'b' -> int
   free pool balance, not yet awarded to anybody
 - 'd' -> int
   total amount claimed over the pool lifetime
 - 'r<category>' -> int
   base reward for the category
 - 'p<participant>' -> int
   pending reward amount of the participant
 - 'c<participant>' -> int
   number of rewards awarded to the participant
 - 'h<participant>' + count -> std.Serialize(Distribution)
   award records, counted starting from 1
*/
