package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mfeld/cauchyrs/ecfile"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	app := &cli.App{
		Name:    "cauchyrs",
		Usage:   "split and reconstruct files with Cauchy Reed-Solomon erasure coding",
		Version: VERSION,
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "split a file into data and recovery blocks",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "datashard",
						Aliases: []string{"k"},
						Value:   10,
						Usage:   "number of data blocks",
					},
					&cli.IntFlag{
						Name:    "parityshard",
						Aliases: []string{"m"},
						Value:   3,
						Usage:   "number of recovery blocks",
					},
				},
				Action: runEncode,
			},
			{
				Name:      "decode",
				Usage:     "reconstruct a file from its surviving data and recovery blocks",
				ArgsUsage: "<path>",
				Action:    runDecode,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

func runEncode(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit(fmt.Sprintf("usage: %s encode [options] <path>", c.App.Name), 1)
	}
	k := c.Int("datashard")
	m := c.Int("parityshard")

	logrus.Infof("cauchyrs: encoding %s with k=%d m=%d", path, k, m)
	if err := ecfile.Split(path, k, m); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func runDecode(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit(fmt.Sprintf("usage: %s decode <path>", c.App.Name), 1)
	}

	logrus.Infof("cauchyrs: reconstructing %s", path)
	if err := ecfile.Reconstruct(path); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
