package domain

// Credentials is the decrypted form of a stored exchange credential pair.
//
// Instances only ever live in memory on the decryption path; the pair is
// serialized to canonical JSON and sealed by the credential cipher before
// anything touches storage.
type Credentials struct {
	APIKey    string
	SecretKey string
}

// Zero clears both key fields.
func (c *Credentials) Zero() {
	c.APIKey = ""
	c.SecretKey = ""
}
