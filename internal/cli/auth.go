package cli

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/services"
)

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return a.report(ctx, err)
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(password)

	confirm, err := a.readSecret("Confirm password")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(confirm)

	if err := services.ConfirmPassword(password, confirm); err != nil {
		return a.report(ctx, err)
	}
	if userName == "" || len(password) == 0 {
		failure(a.out, "Username and password cannot be empty!")
		return common.ErrInvalidInput
	}

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return a.report(ctx, err)
	}
	success(a.out, "Registration successful! You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return a.report(ctx, err)
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Authenticate(ctx, userName, password); err != nil {
		return a.report(ctx, err)
	}

	a.userName = userName
	success(a.out, "Authentication successful.")
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.userName = ""
	info(a.out, "Logged out.")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	current, err := a.readSecret("Current password")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(current)

	next, err := a.readSecret("New password")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(next)

	confirm, err := a.readSecret("Confirm new password")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(confirm)

	if err := services.ConfirmPassword(next, confirm); err != nil {
		failure(a.out, "New passwords do not match!")
		return err
	}

	if err := a.authService.ChangePassword(ctx, a.userName, current, next); err != nil {
		return a.report(ctx, err)
	}
	success(a.out, "Password changed successfully.")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	password, err := a.readSecret("Password")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(password)

	if len(password) == 0 {
		failure(a.out, "Password is required!")
		return common.ErrInvalidInput
	}

	if err := a.authService.DeleteUser(ctx, a.userName, password); err != nil {
		return a.report(ctx, err)
	}

	a.userName = ""
	success(a.out, "User account deleted successfully.")
	return nil
}
