package repository

// Factory describes access to account repositories of a storage backend.
type Factory interface {
	Users() UserRepository
	Ledger() LedgerRepository
}
