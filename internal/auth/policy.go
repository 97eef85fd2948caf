package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduvia/elearning-service/internal/models"
)

// The predicates below encode the platform's three authorization shapes.
// Services turn a false result into a permission error; handlers map
// that to 403.

// IsAdmin reports whether the caller holds the admin flag.
func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.IsAdmin
}

// HasRole reports whether the caller carries the given role. Admins pass
// regardless of their own role.
func HasRole(claims *Claims, role models.UserRole) bool {
	return claims != nil && (claims.Role == role || claims.IsAdmin)
}

// IsSelf reports whether the caller is the account identified by userID.
func IsSelf(claims *Claims, userID primitive.ObjectID) bool {
	if claims == nil {
		return false
	}
	subject, err := claims.Subject()
	if err != nil {
		return false
	}
	return subject == userID
}

// IsSelfOrAdmin allows the account owner and any admin.
func IsSelfOrAdmin(claims *Claims, userID primitive.ObjectID) bool {
	return IsSelf(claims, userID) || IsAdmin(claims)
}

// Owns reports whether the caller owns the resource whose owner field is
// ownerID. Identical to IsSelf but named for resource checks.
func Owns(claims *Claims, ownerID primitive.ObjectID) bool {
	return IsSelf(claims, ownerID)
}

// OwnsOrAdmin allows the resource owner and any admin.
func OwnsOrAdmin(claims *Claims, ownerID primitive.ObjectID) bool {
	return Owns(claims, ownerID) || IsAdmin(claims)
}
