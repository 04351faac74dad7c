// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/meterio/dexpet/api"
	"github.com/meterio/dexpet/co"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/genesis"
	"github.com/meterio/dexpet/node"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "DexPet",
		Usage:     "Pet auction marketplace node",
		Copyright: "2020 Meter Foundation <https://meter.io/>",
		Flags: []cli.Flag{
			networkFlag,
			dataDirFlag,
			adminFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := selectGenesis(ctx)
	dataDir := makeDataDir(ctx)

	mainDB := openMainDB(ctx, dataDir)
	defer func() { slog.Info("closing main database..."); mainDB.Close() }()

	logDB := openLogDB(ctx, dataDir)
	defer func() { slog.Info("closing log database..."); logDB.Close() }()

	n, err := node.New(mainDB, logDB, gene)
	if err != nil {
		fatal(fmt.Sprintf("initialize node: %v", err))
	}

	apiHandler, apiCloser := api.New(n, logDB, ctx.String(apiCorsFlag.Name))
	defer func() { slog.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer func() { slog.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(gene, dataDir, apiURL)

	<-handleExitSignal()
	n.Wait()
	return nil
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	network := ctx.String(networkFlag.Name)
	switch network {
	case "devnet":
		return genesis.NewDevnet()
	case "custom":
		adminStr := ctx.String(adminFlag.Name)
		if adminStr == "" {
			fatal(fmt.Sprintf("admin flag not specified: -%s", adminFlag.Name))
		}
		admin, err := dexpet.ParseAddress(adminStr)
		if err != nil {
			fatal(fmt.Sprintf("invalid admin address '%s': %v", adminStr, err))
		}
		return genesis.NewCustomNet(admin, nil)
	default:
		cli.ShowAppHelp(ctx)
		fmt.Printf("unrecognized value '%s' for flag -%s\n", network, networkFlag.Name)
		os.Exit(1)
		return nil
	}
}

func startAPIServer(ctx *cli.Context, handler http.HandlerFunc) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}

	srv := &http.Server{Handler: handler}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		goes.Wait()
	}
}

func printStartupMessage(gene *genesis.Genesis, dataDir string, apiURL string) {
	fmt.Printf(`Starting %v
    Network     [ %v ]
    Admin       [ %v ]
    Data dir    [ %v ]
    API portal  [ %v ]
`,
		"DexPet "+fullVersion(),
		gene.Name(),
		gene.Admin(),
		dataDir,
		apiURL)
}
