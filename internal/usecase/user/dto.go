package user

import domain "users-api/internal/domain/user"

// ListUsersResponse carries every row of the users table.
type ListUsersResponse struct {
	Users []domain.Record
}
