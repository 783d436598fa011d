package repository

// onePresent converts a COUNT over a predicate that the schema keeps
// unique into a boolean answer. Zero rows is false, one row is true.
// Anything larger means the uniqueness has been bypassed; the count is
// never coerced to true and comes back as ErrIntegrity instead.
func onePresent(count int) (bool, error) {
    switch count {
    case 0:
        return false, nil
    case 1:
        return true, nil
    }
    return false, ErrIntegrity
}
