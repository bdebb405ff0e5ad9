package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/clangfmt/plugin"
	"github.com/signadot/clangfmt/style"
)

func showConfig(cfg *ConfigConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Config.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}
	res, err := cfg.resolve()
	if err != nil {
		return err
	}
	reportDiagnostics(os.Stderr, res.Diagnostics)
	var text string
	if cfg.File != "" {
		d, err := os.ReadFile(cfg.File)
		if err != nil {
			return fmt.Errorf("could not read %q: %w", cfg.File, err)
		}
		text = string(d)
	}
	d, err := res.Config.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, d, "", "  "); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "%s\n%s\n", buf.Bytes(), style.Flag(res.Config, text))
	return nil
}

func info(cfg *InfoConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Info.Parse(cc, args); err != nil {
		return err
	}
	d, err := json.MarshalIndent(plugin.GetInfo(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "%s\n", d)
	return nil
}

func license(cfg *LicenseConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.License.Parse(cc, args); err != nil {
		return err
	}
	_, err := fmt.Fprint(cc.Out, plugin.LicenseText())
	return err
}
