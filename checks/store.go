package checks

// Store manages data regarding checks.
type Store interface {
	// Get a check by its code and type.
	Check(code string, checkType Type) (Check, error)

	// Insert a new check, invalidating any previous checks of the same
	// type held by the same user.
	InsertCheck(c *Check) error

	// Permanently delete a consumed check.
	DeleteCheck(c *Check) error
}
