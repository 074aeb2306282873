package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"MemoKeeper/internal/blob"
	"MemoKeeper/internal/cli/bootstrap"
	"MemoKeeper/internal/config"
)

func parseSubaccount(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid subaccount %q: expected 0..4294967295", s)
	}
	return uint32(n), nil
}

type nameSetCmd struct{}

func (nameSetCmd) Name() string { return "name-set" }
func (nameSetCmd) Description() string {
	return "Задать имя субаккаунта (без имени — удалить)"
}
func (nameSetCmd) Usage() string { return "name-set <subaccount> [name]" }

func (nameSetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	sub, err := parseSubaccount(args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")
	return withSession(cfg, func(s *bootstrap.Session) error {
		if _, err := s.Service.Update(ctx, s.Owner, s.Keys, func(d *blob.Document) {
			d.SetSubaccountName(sub, name)
		}); err != nil {
			return err
		}
		if name == "" {
			fmt.Fprintf(Out, "✓ Имя субаккаунта %d удалено\n", sub)
		} else {
			fmt.Fprintf(Out, "✓ Субаккаунт %d: %s\n", sub, name)
		}
		return nil
	})
}

type nameGetCmd struct{}

func (nameGetCmd) Name() string { return "name-get" }
func (nameGetCmd) Description() string {
	return "Показать имя субаккаунта"
}
func (nameGetCmd) Usage() string { return "name-get <subaccount>" }

func (nameGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	sub, err := parseSubaccount(args[0])
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		doc, _, err := s.Service.Load(ctx, s.Owner, s.Keys)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, doc.GetSubaccountName(sub))
		return nil
	})
}

func init() {
	RegisterCmd(nameSetCmd{})
	RegisterCmd(nameGetCmd{})
}
