/*
Package platform implements the CTI Platform contract.

Platform contract tracks the member set and the aggregated activity counters
of the threat intelligence sharing network. All mutating methods are reserved
for the Intelligence contract, which reports membership changes, submissions
and validations as they happen. The counters are monotonic and fee balance
only grows, there is no fee withdrawal mechanism in the contract itself.

# Contract notifications

Platform contract does not produce notifications to process.
*/
package platform

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'a' -> interop.Hash160
   platform administrator address
 - 'i' -> interop.Hash160
   address of the Intelligence contract allowed to mutate counters
 - 's' -> int
   total number of intelligence submissions
 - 'v' -> int
   total number of validations
 - 'f' -> int
   accumulated submission fees
 - 'm<identity>' -> []byte{1}
   platform membership marker for the participant with the given identity
*/
