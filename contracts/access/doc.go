/*
Package access implements the CTI Access contract.

Access contract stores per-record sharing policies and time-bound access
capabilities. A policy is created by the record submitter and names the
minimum participant access level required to receive a capability. Public
policies open the record for reading to everybody, optionally after an
embargo window. Capabilities carry four independent rights (read, validate,
share, comment) and expire at a fixed timestamp, an expired capability denies
everything but stays in storage until revoked.

Capabilities are issued either directly by the policy owner or by the
Intelligence contract on the owner's behalf.

# Contract notifications

CapabilityGranted notification. This notification is produced when a
capability is issued.

	CapabilityGranted:
	  - name: intelligenceID
	    type: ByteArray
	  - name: participant
	    type: ByteArray
	  - name: accessLevel
	    type: Integer

CapabilityRevoked notification. This notification is produced when a
capability is revoked.

	CapabilityRevoked:
	  - name: intelligenceID
	    type: ByteArray
	  - name: participant
	    type: ByteArray
*/
package access

/*
Contract storage model.

Current conventions:
 <id>: 32-byte identifier of an intelligence record
 <participant>: binary unique identifier of the network participant

# Summary
Key-value storage format:
 - 'i' -> interop.Hash160
   address of the Intelligence contract allowed to issue capabilities
 - 'p<id>' -> std.Serialize(Policy)
   sharing policy of the intelligence record
 - 'c<participant><id>' -> std.Serialize(Capability)
   capability of the participant for the intelligence record
*/
