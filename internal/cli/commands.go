// Package cli provides command definitions for envsync.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/klauern/envsync/internal/config"
	"github.com/klauern/envsync/internal/export"
	"github.com/klauern/envsync/internal/model"
	"github.com/klauern/envsync/internal/progress"
	"github.com/klauern/envsync/internal/store"
	"github.com/klauern/envsync/internal/sync"
	"github.com/klauern/envsync/internal/ui"
	"github.com/klauern/envsync/internal/ui/tui"
)

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Aliases:   []string{"import"},
		Usage:     "Persist variables from a file or KEY=VALUE arguments",
		UsageText: "envsync apply [options] [KEY=VALUE ...]",
		Description: `Import variables and persist them in the host's variable store.

   Variables come from --file (JSON, YAML, or TOML) or from KEY=VALUE
   arguments. Existing variables are detected before anything is written;
   pick the ones to overwrite interactively or with --overwrite.

   Examples:
     envsync apply --file config.json
     envsync apply --overwrite all EDITOR=vim PAGER=less
     envsync apply --dry-run --file config.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Import variables from `FILE` instead of arguments",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Force the import format (json, yaml, toml)",
			},
			&cli.StringFlag{
				Name:    "scope",
				Aliases: []string{"s"},
				Usage:   "Target scope (user, system)",
			},
			&cli.StringFlag{
				Name:  "overwrite",
				Usage: "Overwrite policy for existing variables: 'all' or a comma-separated key list",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Preview changes without modifying the store",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Use plain prompts instead of the full-screen picker",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return runApply(cmd)
		},
	}
}

func runApply(cmd *cli.Command) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	vars, err := collectVariables(cmd, cfg)
	if err != nil {
		return err
	}
	if len(vars) == 0 {
		return errors.New("no variables provided: pass KEY=VALUE arguments or --file")
	}

	scope, err := resolveScope(cmd, cfg)
	if err != nil {
		return err
	}

	platform := model.DetectPlatform()
	st, err := store.New(platform, store.Options{ProfilePath: cfg.Store.ProfilePath})
	if err != nil {
		return err
	}

	if scope == model.ScopeSystem && platform != model.Windows {
		fmt.Println(ui.StatusWarning("system scope is Windows-only; shell profiles always target the current user"))
	}

	orch := sync.NewOrchestrator(st)

	if !cmd.Bool("yes") && !cmd.Bool("dry-run") && isTerminal() {
		fmt.Println("Variables to apply:")
		for _, v := range vars.Variables() {
			fmt.Printf("  %s=%s\n", ui.Bold(v.Key), v.Value)
		}
		ok, err := NewPrompter().Confirm(fmt.Sprintf("Apply %d variable(s) to the %s scope?", len(vars), scope))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(ui.StatusSkipped("operation cancelled"))
			return nil
		}
	}

	sel, cancelled, err := resolveSelection(cmd, orch, vars, scope)
	if err != nil {
		return err
	}
	if cancelled {
		fmt.Println(ui.StatusSkipped("operation cancelled"))
		return nil
	}

	bar := progress.Simple(int64(len(vars)), "Applying")
	result, err := orch.Apply(vars, sync.Options{
		Scope:     scope,
		Selection: sel,
		DryRun:    cmd.Bool("dry-run"),
		OnVariable: func(vr sync.VariableResult) {
			bar.Describe("Applying " + vr.Key)
			_ = bar.Add(1)
		},
	})
	_ = bar.Finish()
	if errors.Is(err, sync.ErrNothingToDo) {
		fmt.Println(ui.StatusSkipped("nothing to do"))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Print(result.Summary())
	if !result.Success() {
		return fmt.Errorf("%d variable(s) failed to apply", len(result.Failed()))
	}
	if !result.DryRun && result.TotalChanged() > 0 {
		fmt.Println(ui.StatusSuccess("changes take effect in new shell sessions"))
	}
	return nil
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export persisted variables to a file or stdout",
		UsageText: "envsync export [options] [KEY ... | all]",
		Description: `Export variables from the host's variable store.

   Name the keys to export, or pass 'all' (or nothing) for every variable
   in the store. Without --output the result is written to stdout.

   Examples:
     envsync export --output backup.json
     envsync export EDITOR PAGER --output editors.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the result to `FILE` (format detected from the extension)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Force the export format (json, yaml, toml)",
			},
			&cli.StringFlag{
				Name:    "scope",
				Aliases: []string{"s"},
				Usage:   "Source scope (user, system)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return runExport(cmd)
		},
	}
}

func runExport(cmd *cli.Command) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	scope, err := resolveScope(cmd, cfg)
	if err != nil {
		return err
	}

	st, err := store.New(model.DetectPlatform(), store.Options{ProfilePath: cfg.Store.ProfilePath})
	if err != nil {
		return err
	}
	orch := sync.NewOrchestrator(st)

	filter := exportFilter(cmd.Args().Slice())

	vars, err := orch.Export(filter, scope)
	if errors.Is(err, sync.ErrNothingToDo) {
		fmt.Println(ui.StatusSkipped("no matching variables found"))
		return nil
	}
	if err != nil {
		return err
	}

	output := cmd.String("output")
	format, err := resolveFormat(cmd, cfg, output)
	if err != nil {
		return err
	}

	exporter := export.New(format)
	if output == "" {
		return exporter.Export(vars, os.Stdout)
	}
	if err := exporter.ExportFile(vars, output); err != nil {
		return err
	}
	fmt.Println(ui.StatusSuccess(fmt.Sprintf("exported %d variable(s) to %s", len(vars), output)))
	return nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List variables persisted in the host store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scope",
				Aliases: []string{"s"},
				Usage:   "Source scope (user, system)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(config.Path())
			if err != nil {
				return err
			}
			scope, err := resolveScope(cmd, cfg)
			if err != nil {
				return err
			}
			st, err := store.New(model.DetectPlatform(), store.Options{ProfilePath: cfg.Store.ProfilePath})
			if err != nil {
				return err
			}

			vars, err := sync.NewOrchestrator(st).Export(nil, scope)
			if errors.Is(err, sync.ErrNothingToDo) {
				fmt.Println(ui.StatusSkipped("store is empty"))
				return nil
			}
			if err != nil {
				return err
			}

			for _, v := range vars.Variables() {
				fmt.Printf("%s=%s\n", ui.Bold(v.Key), v.Value)
			}
			return nil
		},
	}
}

func unsetCommand() *cli.Command {
	return &cli.Command{
		Name:      "unset",
		Usage:     "Remove variables from the host store",
		UsageText: "envsync unset [options] KEY [KEY ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scope",
				Aliases: []string{"s"},
				Usage:   "Target scope (user, system)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return errors.New("unset requires at least one KEY argument")
			}

			cfg, err := config.Load(config.Path())
			if err != nil {
				return err
			}
			scope, err := resolveScope(cmd, cfg)
			if err != nil {
				return err
			}
			st, err := store.New(model.DetectPlatform(), store.Options{ProfilePath: cfg.Store.ProfilePath})
			if err != nil {
				return err
			}

			failed := 0
			for _, key := range args {
				if err := st.Delete(key, scope); err != nil {
					fmt.Println(ui.StatusError(fmt.Sprintf("%s: %v", key, err)))
					failed++
					continue
				}
				fmt.Println(ui.StatusSuccess("removed " + key))
			}
			if failed > 0 {
				return fmt.Errorf("%d variable(s) could not be removed", failed)
			}
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display the resolved configuration and selected backend",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(config.Path())
			if err != nil {
				return err
			}

			platform := model.DetectPlatform()
			fmt.Println("Configuration:")
			fmt.Printf("  Config file:    %s\n", config.Path())
			fmt.Printf("  Platform:       %s (%s)\n", platform, platform.Description())

			if st, err := store.New(platform, store.Options{ProfilePath: cfg.Store.ProfilePath}); err == nil {
				if shell, ok := st.(*store.ShellStore); ok {
					fmt.Printf("  Profile file:   %s\n", shell.Profile())
				}
			}

			fmt.Printf("  Default scope:  %s\n", cfg.Store.DefaultScope)
			fmt.Printf("  Default format: %s\n", cfg.Output.Format)
			return nil
		},
	}
}

// collectVariables builds the variable set from --file or KEY=VALUE args.
func collectVariables(cmd *cli.Command, cfg *config.Config) (model.VariableSet, error) {
	if file := cmd.String("file"); file != "" {
		format, err := resolveFormat(cmd, cfg, file)
		if err != nil {
			return nil, err
		}
		return export.NewImporter(format).ImportFile(file)
	}

	vars := model.VariableSet{}
	for _, arg := range cmd.Args().Slice() {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid variable %q (expected KEY=VALUE)", arg)
		}
		vars[key] = value
	}
	return vars, nil
}

// resolveSelection determines the overwrite policy: the --overwrite flag
// wins, otherwise conflicts are probed and the operator picks
// interactively. The bool result reports cancellation.
func resolveSelection(cmd *cli.Command, orch *sync.Orchestrator, vars model.VariableSet, scope model.Scope) (sync.Selection, bool, error) {
	if ov := cmd.String("overwrite"); ov != "" {
		return parseSelection(ov), false, nil
	}

	conflicts := orch.Probe(vars, scope)
	if conflicts.Empty() {
		return sync.SelectAll(), false, nil
	}

	if !isTerminal() {
		return sync.Selection{}, false, fmt.Errorf(
			"%d existing variable(s) found (%s); re-run with --overwrite all or --overwrite KEY1,KEY2",
			len(conflicts), strings.Join(conflicts.Keys(), ", "))
	}

	if cmd.Bool("plain") {
		return NewPrompter().PromptOverwrite(conflicts.Keys())
	}

	// Current values are display-only; a read failure just leaves them blank.
	current, err := orch.Export(conflicts.Keys(), scope)
	if err != nil && !errors.Is(err, sync.ErrNothingToDo) {
		return sync.Selection{}, false, err
	}

	entries := make([]tui.ConflictEntry, 0, len(conflicts))
	for _, k := range conflicts.Keys() {
		entries = append(entries, tui.ConflictEntry{
			Key:      k,
			Current:  current[k],
			Incoming: vars[k],
		})
	}

	res, err := tui.RunOverwriteList(entries, scope)
	if err != nil {
		return sync.Selection{}, false, err
	}
	if res.Action != tui.OverwriteActionApply {
		return sync.Selection{}, true, nil
	}
	return sync.SelectKeys(res.Keys), false, nil
}

// parseSelection maps the --overwrite flag value to a Selection: the
// literal token 'all' overwrites everything, anything else is a
// comma-separated key list.
func parseSelection(s string) sync.Selection {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return sync.SelectAll()
	}
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return sync.SelectKeys(keys)
}

// exportFilter maps export arguments to a store filter: no arguments or
// the literal token 'all' means every variable (nil filter).
func exportFilter(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		return nil
	}
	return args
}

func resolveScope(cmd *cli.Command, cfg *config.Config) (model.Scope, error) {
	s := cmd.String("scope")
	if s == "" {
		s = cfg.Store.DefaultScope
	}
	return model.ParseScope(s)
}

// resolveFormat picks the serialization format: the --format flag wins,
// then the file extension, then the configured default.
func resolveFormat(cmd *cli.Command, cfg *config.Config, path string) (export.Format, error) {
	if f := cmd.String("format"); f != "" {
		return export.ParseFormat(f)
	}
	if path != "" {
		return export.DetectFormat(path), nil
	}
	return export.ParseFormat(cfg.Output.Format)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
