package authapimodels

import (
	userapimodels "collab-backend/models/api/user"
)

type JWTResponse struct {
	Token string                 `json:"token"`
	User  userapimodels.UserView `json:"user"`
}
