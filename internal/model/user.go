package model

// User mirrors a profile held by the external identity provider.  The
// service never writes users; it resolves display names through the
// identity client when rendering reservations.  Empty first or last
// names are tolerated.
type User struct {
    UserID    UserID
    FirstName string
    LastName  string
}

// DisplayName joins the first and last name with a space, matching how
// reservation listings render owners.
func (u User) DisplayName() string {
    return u.FirstName + " " + u.LastName
}
