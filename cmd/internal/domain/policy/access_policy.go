package policy

import (
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils/apierror"
)

// Require checks that 'actor' holds 'perm' (or is an administrator).
func Require(actor *entity.User, perm entity.Permission) apierror.ErrorResponse {
	if actor == nil {
		return apierror.UnauthorizedError
	}

	if !actor.Permissions.HasEffective(perm) {
		return permError(perm)
	}
	return nil
}

// SameUnidade reports whether a record owned by 'unidadeID' is visible to 'actor'.
// Records of other unidades are reported as not found, never as forbidden,
// so ids cannot be enumerated across tenants.
func SameUnidade(actor *entity.User, unidadeID int64) apierror.ErrorResponse {
	if actor == nil || actor.UnidadeID != unidadeID {
		return apierror.NotFoundError
	}
	return nil
}

func permError(perm entity.Permission) *apierror.APIError {
	return apierror.NewPermissionError(int64(perm))
}
