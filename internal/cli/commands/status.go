package commands

import (
	"context"
	"fmt"

	"MemoKeeper/internal/blob"
	"MemoKeeper/internal/cli/bootstrap"
	"MemoKeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string { return "status" }
func (statusCmd) Description() string {
	return "Состояние блоба владельца"
}
func (statusCmd) Usage() string { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		doc, hmac, err := s.Service.Load(ctx, s.Owner, s.Keys)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "owner:     %s\n", s.Owner)
		if blob.IsZeroHMAC(hmac) {
			fmt.Fprintln(Out, "stored:    no")
		} else {
			fmt.Fprintln(Out, "stored:    yes")
		}
		fmt.Fprintf(Out, "hmac:      %s\n", hmac)
		fmt.Fprintf(Out, "names:     %d\n", doc.Len(blob.SubaccountNames))
		fmt.Fprintf(Out, "memos:     %d\n", doc.Len(blob.TxMemos))
		return nil
	})
}

func init() { RegisterCmd(statusCmd{}) }
