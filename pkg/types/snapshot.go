package types

// Snapshot is the full persisted state of an address book as read back by a
// persistence backend.
type Snapshot struct {
	// Contacts in stored order.
	Contacts []Contact
	// NextID is the persisted id counter, or 0 when the backend does not
	// store one.
	NextID int
	// Declared is the record count the backend claimed to hold.
	Declared int
	// Skipped counts records that could not be decoded.
	Skipped int
}
