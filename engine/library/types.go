package library

// ResidentID identifies a resident in the registry and on the ledger.
type ResidentID = uint32

// Amount is a quantity of COPT in its smallest unit.
type Amount = uint64

type Sha256 = string

// KeyMaterial is a freshly generated resident key. SeedWords can rebuild PrivateKey and are only
// ever handed out once, at registration.
type KeyMaterial struct {
	PrivateKey string // base64
	PublicKey  string // base64, x-only
	SeedWords  string
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
