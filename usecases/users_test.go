package usecases

import (
	"context"
	"testing"

	"task-server/apperrors"
)

func TestRegisterHashesPassword(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "Ann", "ann@x.com", "pw1")

	stored, err := f.userRepo.GetByID(context.Background(), ann.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Password == "pw1" || stored.Password == "" {
		t.Fatalf("password stored as %q", stored.Password)
	}
	if !f.users.Credentials.Verify("pw1", stored.Password) {
		t.Fatalf("stored digest does not verify")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ann", "ann@x.com", "pw1")

	_, err := f.users.Register(context.Background(), "Ann Again", "ann@x.com", "pw2")
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// emails are case-sensitive as stored
	if _, err := f.users.Register(context.Background(), "Ann", "ANN@x.com", "pw1"); err != nil {
		t.Fatalf("Register with different case: %v", err)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.Register(context.Background(), "", "ann@x.com", "pw1")
	if apperrors.KindOf(err) != apperrors.KindInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestAuthenticateSameErrorForBothFailures(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "Ann", "ann@x.com", "pw1")
	ctx := context.Background()

	got, err := f.users.Authenticate(ctx, "ann@x.com", "pw1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != ann.ID {
		t.Fatalf("id=%s want=%s", got.ID, ann.ID)
	}

	_, wrongPassword := f.users.Authenticate(ctx, "ann@x.com", "nope")
	_, unknownEmail := f.users.Authenticate(ctx, "bob@x.com", "pw1")
	for _, err := range []error{wrongPassword, unknownEmail} {
		if apperrors.KindOf(err) != apperrors.KindInvalidCredential {
			t.Fatalf("expected invalid credential, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestFetchProfileAndListAllOmitDigest(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "Ann", "ann@x.com", "pw1")
	f.register(t, "Bob", "bob@x.com", "pw2")
	ctx := context.Background()

	profile, err := f.users.FetchProfile(ctx, ann.ID)
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.Password != "" || profile.Email != "ann@x.com" {
		t.Fatalf("profile=%+v", profile)
	}

	if _, err := f.users.FetchProfile(ctx, "missing"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	users, err := f.users.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.Password != "" {
			t.Fatalf("digest leaked for %s", u.Email)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "Ann", "ann@x.com", "pw1")
	f.register(t, "Bob", "bob@x.com", "pw2")
	ctx := context.Background()

	err := f.users.UpdateProfile(ctx, ann.ID, ProfileUpdate{Email: "bob@x.com"})
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// same email as current is not a conflict
	if err := f.users.UpdateProfile(ctx, ann.ID, ProfileUpdate{Email: "ann@x.com", Name: "Annie"}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	err = f.users.UpdateProfile(ctx, ann.ID, ProfileUpdate{Name: "Anna", OldPassword: "wrong", NewPassword: "pw9"})
	if apperrors.KindOf(err) != apperrors.KindInvalidCredential {
		t.Fatalf("expected invalid credential, got %v", err)
	}
	stored, _ := f.userRepo.GetByID(ctx, ann.ID)
	if stored.Name != "Annie" {
		t.Fatalf("failed update must not persist name, got %q", stored.Name)
	}

	// a lone password field is ignored, the name change still lands
	if err := f.users.UpdateProfile(ctx, ann.ID, ProfileUpdate{Name: "Annie B", NewPassword: "pw9"}); err != nil {
		t.Fatalf("UpdateProfile with lone newPassword: %v", err)
	}
	stored, _ = f.userRepo.GetByID(ctx, ann.ID)
	if stored.Name != "Annie B" {
		t.Fatalf("name=%q", stored.Name)
	}
	if _, err := f.users.Authenticate(ctx, "ann@x.com", "pw1"); err != nil {
		t.Fatalf("password must be unchanged: %v", err)
	}
	if err := f.users.UpdateProfile(ctx, ann.ID, ProfileUpdate{OldPassword: "pw1"}); err != nil {
		t.Fatalf("UpdateProfile with lone oldPassword: %v", err)
	}
	if _, err := f.users.Authenticate(ctx, "ann@x.com", "pw1"); err != nil {
		t.Fatalf("password must be unchanged: %v", err)
	}

	err = f.users.UpdateProfile(ctx, ann.ID, ProfileUpdate{Name: "Anna", Email: "anna@x.com", OldPassword: "pw1", NewPassword: "pw9"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if _, err := f.users.Authenticate(ctx, "anna@x.com", "pw9"); err != nil {
		t.Fatalf("login with new email and password: %v", err)
	}
	stored, _ = f.userRepo.GetByID(ctx, ann.ID)
	if stored.Name != "Anna" {
		t.Fatalf("name=%q", stored.Name)
	}

	if err := f.users.UpdateProfile(ctx, "missing", ProfileUpdate{Name: "x"}); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "Ann", "ann@x.com", "pw1")
	ctx := context.Background()

	before, _ := f.userRepo.GetByID(ctx, ann.ID)

	err := f.users.UpdatePassword(ctx, ann.ID, "wrong", "pw2")
	if apperrors.KindOf(err) != apperrors.KindInvalidCredential {
		t.Fatalf("expected invalid credential, got %v", err)
	}
	after, _ := f.userRepo.GetByID(ctx, ann.ID)
	if after.Password != before.Password {
		t.Fatalf("digest changed after failed rotation")
	}

	if err := f.users.UpdatePassword(ctx, ann.ID, "", "pw2"); apperrors.KindOf(err) != apperrors.KindInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	if err := f.users.UpdatePassword(ctx, ann.ID, "pw1", "pw2"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := f.users.Authenticate(ctx, "ann@x.com", "pw1"); err == nil {
		t.Fatalf("old password still works")
	}
	if _, err := f.users.Authenticate(ctx, "ann@x.com", "pw2"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := f.users.UpdatePassword(ctx, "missing", "pw1", "pw2"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
