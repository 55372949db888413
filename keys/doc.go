// Package keys provides the verifiable-identity layer: public keys,
// signatures, and keypairs closed over exactly three schemes (Ed25519,
// BLS threshold group, BLS threshold-group share), with a uniform
// sign/verify contract.
//
// A PublicKey can only be obtained from a Keypair; keys and signatures must
// name the same scheme to verify together. Equality, ordering, and hashing
// of keys and signatures are defined over their canonical byte encodings,
// never over scheme internals, so comparisons agree across replicas.
package keys
