package domain

// User models an account held by the credential store.
type User struct {
	ID           string `json:"id"`
	Login        string `json:"login"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Avatar       string `json:"avatar"`
}

// Profile is the public view of a User returned by /private/me.
type Profile struct {
	ID     string `json:"id"`
	Login  string `json:"login"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Profile strips the credential fields from u.
func (u *User) Profile() Profile {
	return Profile{
		ID:     u.ID,
		Login:  u.Login,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
}
