package users

// User is a registered user. ID is assigned by the database.
type User struct {
	ID       uint64 `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
}

// createRequest is the JSON body of POST /users. Username is a pointer so a
// missing field can be told apart from an empty string.
type createRequest struct {
	Username *string `json:"username"`
}
