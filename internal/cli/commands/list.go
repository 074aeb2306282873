package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"MemoKeeper/internal/blob"
	"MemoKeeper/internal/cli/bootstrap"
	"MemoKeeper/internal/config"
)

type listCmd struct{}

func (listCmd) Name() string { return "list" }
func (listCmd) Description() string {
	return "Показать все имена субаккаунтов и заметки"
}
func (listCmd) Usage() string { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		doc, _, err := s.Service.Load(ctx, s.Owner, s.Keys)
		if err != nil {
			return err
		}
		names := doc.Entries(blob.SubaccountNames)
		memos := doc.Entries(blob.TxMemos)
		if len(names) == 0 && len(memos) == 0 {
			fmt.Fprintln(Out, "Нет записей")
			return nil
		}

		if len(names) > 0 {
			fmt.Fprintln(Out, "Субаккаунты:")
			// номера субаккаунтов сортируем численно
			subs := make([]uint64, 0, len(names))
			for k := range names {
				n, err := strconv.ParseUint(k, 10, 32)
				if err != nil {
					continue
				}
				subs = append(subs, n)
			}
			sort.Slice(subs, func(i, j int) bool { return subs[i] < subs[j] })
			for _, n := range subs {
				k := strconv.FormatUint(n, 10)
				fmt.Fprintf(Out, "  %-10s %s\n", k, names[k])
			}
		}
		if len(memos) > 0 {
			fmt.Fprintln(Out, "Заметки:")
			txids := make([]string, 0, len(memos))
			for k := range memos {
				txids = append(txids, k)
			}
			sort.Strings(txids)
			for _, k := range txids {
				fmt.Fprintf(Out, "  %s  %s\n", k, memos[k])
			}
		}
		fmt.Fprintf(Out, "Всего: %d\n", len(names)+len(memos))
		return nil
	})
}

func init() { RegisterCmd(listCmd{}) }
