package commands

import (
	"context"
	"fmt"

	"MemoKeeper/internal/cli/bootstrap"
	"MemoKeeper/internal/config"
)

type resetCmd struct{}

func (resetCmd) Name() string { return "reset" }
func (resetCmd) Description() string {
	return "Удалить сохранённый блоб владельца (нужен --yes)"
}
func (resetCmd) Usage() string { return "reset --yes" }

func (resetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || (args[0] != "--yes" && args[0] != "-y") {
		return ErrUsage
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		if err := s.Service.Reset(ctx, s.Owner); err != nil {
			return err
		}
		fmt.Fprintf(Out, "✓ Блоб владельца %s удалён\n", s.Owner)
		return nil
	})
}

func init() { RegisterCmd(resetCmd{}) }
