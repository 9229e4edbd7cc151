package service

// TaskKey is the structured composite key addressing a task. It only collapses
// to the joined "<owner>.<name>" form at the storage boundary, where the id is
// the primary key.
type TaskKey struct {
	Owner string
	Name  string
}

// ID serializes the key. The joined form is kept for storage compatibility;
// everything above the repository layer works with the structured key.
func (k TaskKey) ID() string { return k.Owner + "." + k.Name }
