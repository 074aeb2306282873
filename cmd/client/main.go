package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"MemoKeeper/internal/cli/commands"
	"MemoKeeper/internal/config"

	"go.uber.org/zap"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	// логи только в режиме отладки, чтобы не мешать выводу команд
	logger := zap.NewNop()
	if cfg.Debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l
	}
	sugar := logger.Sugar()
	commands.SetLogger(sugar)
	if cfg.InvalidOwner != "" {
		sugar.Warnw("invalid owner given, commands will refuse to run", "owner", cfg.InvalidOwner)
	}
	commands.ApplySavedOwner(cfg, commands.OwnerStoreFor(cfg))

	sugar.Debugw("Config",
		"Owner", cfg.Owner,
		"DatabaseDSN", cfg.DatabaseDSN,
		"KeyFile", cfg.KeyFile,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	_ = logger.Sync()
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("MemoKeeper CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
