package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

const entryTimeLayout = "2006-01-02 15:04:05"

func (a *App) Store(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Enter data to encrypt", a.out)
	if err != nil {
		return a.report(ctx, err)
	}
	passkey, err := a.readSecret("Passkey")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(passkey)

	if text == "" || len(passkey) == 0 {
		failure(a.out, "Please provide both text and passkey!")
		return common.ErrInvalidInput
	}

	if _, err := a.secretService.Store(ctx, a.userName, text, passkey); err != nil {
		return a.report(ctx, err)
	}
	success(a.out, "Data stored successfully!")
	return nil
}

func (a *App) List(ctx context.Context) error {
	entries, err := a.secretService.List(ctx, a.userName)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(entries) == 0 {
		info(a.out, "You don't have any stored data yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "Data Entry %d - %s\n", e.Index+1, e.CreatedAt.Format(entryTimeLayout))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	index, err := a.entryIndex(args)
	if err != nil {
		return a.report(ctx, err)
	}
	passkey, err := a.readSecret("Passkey")
	if err != nil {
		return a.report(ctx, err)
	}
	defer common.WipeByteArray(passkey)

	text, err := a.secretService.Reveal(ctx, a.userName, index, passkey)
	if err != nil {
		return a.report(ctx, err)
	}
	success(a.out, "Decryption successful!")
	fmt.Fprintln(a.out, text)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	index, err := a.entryIndex(args)
	if err != nil {
		return a.report(ctx, err)
	}
	if err := a.secretService.Delete(ctx, a.userName, index); err != nil {
		failure(a.out, "Failed to delete entry.")
		if isUnexpected(err) {
			a.log.Error(ctx, "delete entry", "error", err)
		}
		return err
	}
	success(a.out, "Entry deleted successfully!")
	return nil
}

// entryIndex returns the 0-based index of the entry number given as the
// first argument, prompting for it when absent.
func (a *App) entryIndex(args []string) (int, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := GetSimpleText(a.reader, "Entry number", a.out)
		if err != nil {
			return 0, err
		}
		raw = s
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: entry number %q", common.ErrIndexOutOfRange, raw)
	}
	if n < 1 {
		return 0, common.ErrIndexOutOfRange
	}
	return n - 1, nil
}
