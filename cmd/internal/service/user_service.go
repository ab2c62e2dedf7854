package service

import (
	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils/apierror"
)

// DefaultUserService exposes the authenticated user. Accounts are managed by
// the identity provider and only mirrored here.
type DefaultUserService struct{}

func NewUserService() *DefaultUserService {
	return &DefaultUserService{}
}

func (u *DefaultUserService) GetMe(actor *entity.User) (*contract.UserResponse, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}
	return toUserResponse(actor), nil
}
