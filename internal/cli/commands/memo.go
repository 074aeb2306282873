package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"MemoKeeper/internal/blob"
	"MemoKeeper/internal/cli/bootstrap"
	"MemoKeeper/internal/config"
)

// parseTxID проверяет hex-идентификатор транзакции и приводит его к нижнему регистру.
func parseTxID(s string) (string, error) {
	txid := strings.ToLower(s)
	if txid == "" {
		return "", fmt.Errorf("empty txid")
	}
	if _, err := hex.DecodeString(txid); err != nil {
		return "", fmt.Errorf("invalid txid %q: expected hex", s)
	}
	return txid, nil
}

type memoSetCmd struct{}

func (memoSetCmd) Name() string { return "memo-set" }
func (memoSetCmd) Description() string {
	return "Задать заметку к транзакции (без текста — удалить)"
}
func (memoSetCmd) Usage() string { return "memo-set <txid> [memo]" }

func (memoSetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	txid, err := parseTxID(args[0])
	if err != nil {
		return err
	}
	memo := strings.Join(args[1:], " ")
	return withSession(cfg, func(s *bootstrap.Session) error {
		if _, err := s.Service.Update(ctx, s.Owner, s.Keys, func(d *blob.Document) {
			d.SetTxMemo(txid, memo)
		}); err != nil {
			return err
		}
		if memo == "" {
			fmt.Fprintf(Out, "✓ Заметка к %s удалена\n", txid)
		} else {
			fmt.Fprintf(Out, "✓ %s: %s\n", txid, memo)
		}
		return nil
	})
}

type memoGetCmd struct{}

func (memoGetCmd) Name() string { return "memo-get" }
func (memoGetCmd) Description() string {
	return "Показать заметку к транзакции"
}
func (memoGetCmd) Usage() string { return "memo-get <txid>" }

func (memoGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	txid, err := parseTxID(args[0])
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		doc, _, err := s.Service.Load(ctx, s.Owner, s.Keys)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, doc.GetTxMemo(txid))
		return nil
	})
}

func init() {
	RegisterCmd(memoSetCmd{})
	RegisterCmd(memoGetCmd{})
}
