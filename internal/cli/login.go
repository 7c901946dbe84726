package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/podlift/podlift/internal/common"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	if err := a.auth.Login(rctx, email, password); err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			fmt.Fprintln(a.out, "Server unavailable; stored data stays readable offline")
		} else {
			fmt.Fprintf(a.out, "Login unsuccessful: %s\n", err.Error())
		}
		return
	}

	a.userName = email
	fmt.Fprintln(a.out, "Login successful")
}

func (a *App) Logout(ctx context.Context) {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	if err := a.auth.Logout(rctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err.Error())
		return
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out, local data cleared")
}
