package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// AuthController issues identity tokens.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken handles POST /jwt. It signs a token for the submitted email
// without checking whether the email exists in the users collection.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body tokenRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := auth.GenerateToken(body.Email)
	if err != nil {
		response.ServerError(w, "Error signing token", err)
		return
	}

	logger.WithCtx(r.Context()).Debug("token issued", "email", body.Email)
	response.Success(w, map[string]string{"token": token})
}
