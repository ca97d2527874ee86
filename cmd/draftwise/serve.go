// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/draftwise/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workspace over an HTTP JSON API",
	Long: `Serve exposes every DraftWise step over HTTP for a browser front end.
The session starts from the workspace file when one exists and lives in
memory; use GET /api/pack to export it.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default "+server.DefaultAddr+")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openSession("dev")
	if err != nil {
		return err
	}
	defer s.close()

	cfg := s.cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if s.cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(s.studio, cfg, s.log)
	fmt.Fprintf(os.Stderr, "DraftWise API on http://%s\n", displayAddr(cfg.Addr))
	return srv.Run(ctx)
}

func displayAddr(addr string) string {
	if addr == "" {
		return server.DefaultAddr
	}
	if addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
