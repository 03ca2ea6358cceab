// Package commands turns chat commands into service calls. Arguments are
// parsed and checked here, per command, before any service sees them.
package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/scrim-tournaments/services"
	"github.com/urfave/cli/v2"
)

// Invocation describes who sent a command and from where.
type Invocation struct {
	ScopeID string `json:"scope_id"` // сервер/гильдия
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

type Reply struct {
	Text string `json:"reply"`
}

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingScope   = errors.New("command must be sent from a server")
)

// usageError - аргументы не разобрались (флаг, тип значения).
type usageError struct {
	command string
	err     error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type Dispatcher struct {
	templates   services.TemplateCatalog
	tournaments services.TournamentRegistry
	roster      services.TeamRoster
	workflow    services.SubmissionWorkflow
	leaderboard services.LeaderboardBuilder
	logger      *slog.Logger
}

func NewDispatcher(
	templates services.TemplateCatalog,
	tournaments services.TournamentRegistry,
	roster services.TeamRoster,
	workflow services.SubmissionWorkflow,
	leaderboard services.LeaderboardBuilder,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		templates:   templates,
		tournaments: tournaments,
		roster:      roster,
		workflow:    workflow,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Dispatch runs one command. args are the tokens after the command prefix,
// e.g. ["submit", "--match", "1", "--rank", "3", "--kills", "4", "--proof", url].
// It never returns an error: failures become reply text.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation, args []string) Reply {
	if len(args) == 0 {
		return Reply{Text: usageText}
	}
	if strings.TrimSpace(inv.ScopeID) == "" {
		return Reply{Text: "⚠️ " + errMissingScope.Error()}
	}

	var (
		out   bytes.Buffer
		reply string
	)
	app := &cli.App{
		Name:            "scrim",
		HideHelp:        true,
		HideHelpCommand: true,
		HideVersion:     true,
		Writer:          &out,
		ErrWriter:       &out,
		ExitErrHandler:  func(*cli.Context, error) {},
		OnUsageError:    onUsageError(""),
		Action: func(c *cli.Context) error {
			return fmt.Errorf("%w: %s", errUnknownCommand, c.Args().First())
		},
		Commands: withoutHelp(d.commandSet(inv, &reply)),
	}

	err := app.RunContext(ctx, append([]string{app.Name}, args...))
	if err != nil {
		return Reply{Text: d.errorReply(ctx, inv, args, err)}
	}
	if reply == "" {
		reply = strings.TrimSpace(out.String())
	}
	return Reply{Text: reply}
}

const usageText = "Commands: template create|list, tournament create|start|complete|leaderboard, register, submit"

func (d *Dispatcher) errorReply(ctx context.Context, inv Invocation, args []string, err error) string {
	var usage *usageError
	switch {
	case errors.As(err, &usage):
		hint, ok := commandUsage[usage.command]
		if !ok {
			hint = usageText
		}
		return fmt.Sprintf("⚠️ %s (usage: %s)", usage.err, hint)
	case errors.Is(err, errUnknownCommand):
		return "❓ " + err.Error() + ". " + usageText
	case errors.Is(err, services.ErrValidation):
		return "⚠️ " + err.Error()
	case errors.Is(err, services.ErrAuthorization):
		return "⛔ " + err.Error()
	case errors.Is(err, services.ErrNoActiveTournament):
		return "No active tournament in this server."
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrConflict):
		return "❌ " + err.Error()
	case errors.Is(err, services.ErrPersistence):
		d.logger.ErrorContext(ctx, "command not recorded",
			slog.String("command", strings.Join(args, " ")),
			slog.String("scope_id", inv.ScopeID),
			slog.Any("error", err))
		return "💾 Could not save the change, nothing was recorded. Please try again."
	default:
		d.logger.ErrorContext(ctx, "command failed",
			slog.String("command", strings.Join(args, " ")),
			slog.String("scope_id", inv.ScopeID),
			slog.Any("error", err))
		return "Something went wrong. Please try again later."
	}
}

var commandUsage = map[string]string{
	"template create":        "template create --name <name> --kp <points> --pp <10,5,0> --size <players>",
	"template list":          "template list",
	"tournament create":      "tournament create --name <name> --template <template> --matches <count>",
	"tournament start":       "tournament start",
	"tournament complete":    "tournament complete",
	"tournament leaderboard": "tournament leaderboard",
	"register":               "register --team <name>",
	"submit":                 "submit --match <n> --rank <place> --kills <kills> --proof <url>",
}

func onUsageError(command string) cli.OnUsageErrorFunc {
	return func(c *cli.Context, err error, isSubcommand bool) error {
		return &usageError{command: command, err: err}
	}
}

// withoutHelp drops urfave's help flag and command, so --help is a usage
// error with our own hint instead of help text nobody reads.
func withoutHelp(cmds []*cli.Command) []*cli.Command {
	for _, cmd := range cmds {
		cmd.HideHelp = true
		cmd.HideHelpCommand = true
		if cmd.OnUsageError == nil {
			cmd.OnUsageError = onUsageError(cmd.Name)
		}
		withoutHelp(cmd.Subcommands)
	}
	return cmds
}

func requireAdmin(inv Invocation) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if !inv.IsAdmin {
			return services.ErrAdminRequired
		}
		return nil
	}
}

func unknownSubcommand(parent string) cli.ActionFunc {
	return func(c *cli.Context) error {
		if !c.Args().Present() {
			return fmt.Errorf("%w: %s needs a subcommand", errUnknownCommand, parent)
		}
		return fmt.Errorf("%w: %s %s", errUnknownCommand, parent, c.Args().First())
	}
}

func (d *Dispatcher) commandSet(inv Invocation, reply *string) []*cli.Command {
	return []*cli.Command{
		{
			Name:   "template",
			Action: unknownSubcommand("template"),
			Subcommands: []*cli.Command{
				{
					Name:         "create",
					Flags:        templateCreateFlags,
					Before:       requireAdmin(inv),
					OnUsageError: onUsageError("template create"),
					Action: func(c *cli.Context) error {
						args, err := parseTemplateCreate(c)
						if err != nil {
							return err
						}
						text, err := d.templateCreate(c.Context, args)
						*reply = text
						return err
					},
				},
				{
					Name:         "list",
					OnUsageError: onUsageError("template list"),
					Action: func(c *cli.Context) error {
						text, err := d.templateList(c.Context)
						*reply = text
						return err
					},
				},
			},
		},
		{
			Name:   "tournament",
			Action: unknownSubcommand("tournament"),
			Subcommands: []*cli.Command{
				{
					Name:         "create",
					Flags:        tournamentCreateFlags,
					Before:       requireAdmin(inv),
					OnUsageError: onUsageError("tournament create"),
					Action: func(c *cli.Context) error {
						args, err := parseTournamentCreate(c)
						if err != nil {
							return err
						}
						text, err := d.tournamentCreate(c.Context, inv, args)
						*reply = text
						return err
					},
				},
				{
					Name:         "start",
					Before:       requireAdmin(inv),
					OnUsageError: onUsageError("tournament start"),
					Action: func(c *cli.Context) error {
						text, err := d.tournamentStart(c.Context, inv)
						*reply = text
						return err
					},
				},
				{
					Name:         "complete",
					Before:       requireAdmin(inv),
					OnUsageError: onUsageError("tournament complete"),
					Action: func(c *cli.Context) error {
						text, err := d.tournamentComplete(c.Context, inv)
						*reply = text
						return err
					},
				},
				{
					Name:         "leaderboard",
					OnUsageError: onUsageError("tournament leaderboard"),
					Action: func(c *cli.Context) error {
						text, err := d.tournamentLeaderboard(c.Context, inv)
						*reply = text
						return err
					},
				},
			},
		},
		{
			Name:         "register",
			Flags:        registerFlags,
			OnUsageError: onUsageError("register"),
			Action: func(c *cli.Context) error {
				args, err := parseRegister(c)
				if err != nil {
					return err
				}
				text, err := d.register(c.Context, inv, args)
				*reply = text
				return err
			},
		},
		{
			Name:         "submit",
			Flags:        submitFlags,
			OnUsageError: onUsageError("submit"),
			Action: func(c *cli.Context) error {
				args, err := parseSubmit(c)
				if err != nil {
					return err
				}
				text, err := d.submit(c.Context, inv, args)
				*reply = text
				return err
			},
		},
	}
}
