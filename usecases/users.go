package usecases

import (
	"context"
	"strings"

	"task-server/apperrors"
	"task-server/auth"
	"task-server/entities"
	"task-server/repositories"
)

// errInvalidLogin is returned for both an unknown email and a wrong password.
var errInvalidLogin = apperrors.InvalidCredential("Invalid credentials")

type UserUseCase struct {
	UserRepo    repositories.UserRepository
	Credentials *auth.Credentials
}

func NewUserUseCase(userRepo repositories.UserRepository, credentials *auth.Credentials) *UserUseCase {
	return &UserUseCase{
		UserRepo:    userRepo,
		Credentials: credentials,
	}
}

// Register creates a user with a hashed password. The email must not be taken.
func (uc *UserUseCase) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.InvalidArgument("Name, email and password are required")
	}

	taken, err := uc.emailTaken(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Conflict("User already exists")
	}

	digest, err := uc.Credentials.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{Name: name, Email: email, Password: digest}
	if err := uc.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user owning email if password matches.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, errInvalidLogin
		}
		return nil, err
	}
	if !uc.Credentials.Verify(password, user.Password) {
		return nil, errInvalidLogin
	}
	return user, nil
}

// FetchProfile returns the user without its password digest.
func (uc *UserUseCase) FetchProfile(ctx context.Context, userID string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// ProfileUpdate lists the optional profile changes; empty strings mean "leave as is".
type ProfileUpdate struct {
	Name        string
	Email       string
	OldPassword string
	NewPassword string
}

// UpdateProfile applies name, email and password changes in a single save.
// Every check runs before anything is written.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) error {
	user, err := uc.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if upd.Email != "" && upd.Email != user.Email {
		taken, err := uc.emailTaken(ctx, upd.Email, user.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.Conflict("Email already in use")
		}
		user.Email = upd.Email
	}

	if upd.Name != "" {
		user.Name = upd.Name
	}

	// the password only changes when both halves are supplied; a lone field
	// leaves it alone and the name/email change still goes through
	if upd.OldPassword != "" && upd.NewPassword != "" {
		digest, err := uc.Credentials.Rotate(upd.OldPassword, upd.NewPassword, user.Password)
		if err != nil {
			return err
		}
		user.Password = digest
	}

	return uc.UserRepo.Update(ctx, user)
}

// UpdatePassword replaces the password after verifying the old one.
func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperrors.InvalidArgument("oldPassword and newPassword are required")
	}

	user, err := uc.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	digest, err := uc.Credentials.Rotate(oldPassword, newPassword, user.Password)
	if err != nil {
		return err
	}
	user.Password = digest
	return uc.UserRepo.Update(ctx, user)
}

// ListAll returns every user without password digests.
func (uc *UserUseCase) ListAll(ctx context.Context) ([]entities.User, error) {
	users, err := uc.UserRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// emailTaken reports whether email belongs to a user other than exceptID.
func (uc *UserUseCase) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	existing, err := uc.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return false, nil
		}
		return false, err
	}
	return existing.ID != exceptID, nil
}
