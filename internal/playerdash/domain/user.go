package domain

// User is one registered account. Username is unique (case-sensitive, no
// normalization) and immutable after creation. PasswordHash is a salted
// Argon2id PHC string; the plaintext is never stored or logged.
//
// The JSON tags are a compatibility contract with the on-disk users file:
// {"users": [{"username": ..., "password_hash": ...}, ...]}
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}
