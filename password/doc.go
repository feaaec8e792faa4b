// Package password implements argon2id credential hashing in PHC string
// format, plus a worker [Pool] that keeps the memory-hard derivation off
// request-serving goroutines.
//
// The encoded form embeds algorithm id, version, cost parameters and salt,
// so verification is self-describing and parameter upgrades never
// invalidate stored hashes.
package password
